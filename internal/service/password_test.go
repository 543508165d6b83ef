package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPlainPasswords(t *testing.T) {
	p, err := NewPasswordVerifier("plain")
	if err != nil {
		t.Fatal(err)
	}
	stored, _ := p.Hash("secret")
	if stored != "secret" {
		t.Fatalf("plain hash = %q", stored)
	}
	if !p.Verify(stored, "secret") {
		t.Fatal("exact match rejected")
	}
	if p.Verify(stored, "Secret") || p.Verify(stored, "secret ") {
		t.Fatal("comparison must be exact")
	}
}

func TestBcryptPasswords(t *testing.T) {
	p := BcryptPasswords{Cost: bcrypt.MinCost}
	stored, err := p.Hash("secret")
	if err != nil {
		t.Fatal(err)
	}
	if stored == "secret" || !isBcryptHash(stored) {
		t.Fatalf("expected a bcrypt hash, got %q", stored)
	}
	if !p.Verify(stored, "secret") {
		t.Fatal("hash did not verify")
	}
	if p.Verify(stored, "wrong") {
		t.Fatal("wrong password verified")
	}
	if !p.Verify("legacy", "legacy") {
		t.Fatal("plain-text rows should still verify")
	}
}

func TestNewPasswordVerifierUnknownMode(t *testing.T) {
	if _, err := NewPasswordVerifier("md5"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
