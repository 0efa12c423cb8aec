package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	orderIDPrefix   = "DIB-"
	orderIDLength   = 6
	orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateOrderID returns a short code such as DIB-AB12CD.
func GenerateOrderID() (string, error) {
	limit := big.NewInt(int64(len(orderIDAlphabet)))
	buf := make([]byte, orderIDLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate order id: %w", err)
		}
		buf[i] = orderIDAlphabet[n.Int64()]
	}
	return orderIDPrefix + string(buf), nil
}
