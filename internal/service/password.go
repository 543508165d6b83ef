package service

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordModePlain  = "plain"
	PasswordModeBcrypt = "bcrypt"
)

// PasswordVerifier turns a submitted password into its stored form and
// checks submissions against stored values.
type PasswordVerifier interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

// NewPasswordVerifier returns the verifier for mode.
func NewPasswordVerifier(mode string) (PasswordVerifier, error) {
	switch mode {
	case "", PasswordModePlain:
		return PlainPasswords{}, nil
	case PasswordModeBcrypt:
		return BcryptPasswords{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password mode %q", mode)
	}
}

// PlainPasswords stores passwords as submitted.
type PlainPasswords struct{}

func (PlainPasswords) Hash(password string) (string, error) { return password, nil }

func (PlainPasswords) Verify(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// BcryptPasswords hashes new passwords. Rows written before the switch
// still hold plain text and are compared as such.
type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptPasswords) Verify(stored, password string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return PlainPasswords{}.Verify(stored, password)
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
