package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Authorizer validates a caller supplied admin credential.
type Authorizer interface {
	Authorize(credential string) bool
}

// StaticAuthorizer accepts exactly one process-wide secret.
type StaticAuthorizer struct {
	secret []byte
}

// NewStaticAuthorizer builds StaticAuthorizer for the provided secret.
func NewStaticAuthorizer(secret string) *StaticAuthorizer {
	return &StaticAuthorizer{secret: []byte(secret)}
}

// Authorize reports whether credential equals the configured secret.
func (a *StaticAuthorizer) Authorize(credential string) bool {
	if len(a.secret) == 0 || credential == "" {
		return false
	}
	return subtle.ConstantTimeCompare(a.secret, []byte(credential)) == 1
}

// BcryptAuthorizer checks credentials against a bcrypt hash of the secret.
type BcryptAuthorizer struct {
	hash []byte
}

// NewBcryptAuthorizer validates the hash format and builds BcryptAuthorizer.
func NewBcryptAuthorizer(hash string) (*BcryptAuthorizer, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid admin secret hash: %w", err)
	}
	return &BcryptAuthorizer{hash: []byte(hash)}, nil
}

// Authorize reports whether credential matches the stored hash.
func (a *BcryptAuthorizer) Authorize(credential string) bool {
	if credential == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(a.hash, []byte(credential)) == nil
}

// HashSecret produces a bcrypt hash suitable for ADMIN_SECRET_HASH.
func HashSecret(secret string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	encoded, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
