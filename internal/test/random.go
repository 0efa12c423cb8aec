package test

import (
	"math/rand/v2"
	"strings"
)

const orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandomOrderID returns an id in the DIB-XXXXXX shape used by clients.
func RandomOrderID() string {
	var b strings.Builder
	b.WriteString("DIB-")
	for i := 0; i < 6; i++ {
		b.WriteByte(orderIDAlphabet[rand.IntN(len(orderIDAlphabet))])
	}
	return b.String()
}

// RandomOrderIDs returns n distinct random order ids.
func RandomOrderIDs(n int) []string {
	seen := make(map[string]struct{}, n)
	ids := make([]string, 0, n)
	for len(ids) < n {
		id := RandomOrderID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
