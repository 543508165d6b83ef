package service

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestPlainCodecRoundTrip(t *testing.T) {
	c := NewSessionCodec("", time.Hour)
	tok, err := c.Encode("a@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if tok != "a@example.com" {
		t.Fatalf("plain token = %q; want the raw email", tok)
	}
	email, err := c.Decode(tok)
	if err != nil || email != "a@example.com" {
		t.Fatalf("Decode = %q, %v", email, err)
	}
	if _, err := c.Decode(""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("empty token err = %v", err)
	}
}

func TestJWTCodecRoundTrip(t *testing.T) {
	c := NewSessionCodec("secret-a", time.Hour)
	tok, err := c.Encode("a@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(tok, "a@example.com") {
		t.Fatal("jwt token should not carry the email in clear text")
	}
	email, err := c.Decode(tok)
	if err != nil || email != "a@example.com" {
		t.Fatalf("Decode = %q, %v", email, err)
	}
}

func TestJWTCodecRejectsForeignSecret(t *testing.T) {
	tok, err := NewJWTCodec([]byte("secret-a"), time.Hour).Encode("a@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewJWTCodec([]byte("secret-b"), time.Hour).Decode(tok); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("foreign secret err = %v; want ErrUnauthenticated", err)
	}
}

func TestJWTCodecRejectsExpired(t *testing.T) {
	c := NewJWTCodec([]byte("secret"), time.Hour)
	tok, err := c.Encode("a@example.com")
	if err != nil {
		t.Fatal(err)
	}
	c.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := c.Decode(tok); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expired err = %v; want ErrUnauthenticated", err)
	}
}

func TestJWTCodecRejectsPlainEmail(t *testing.T) {
	c := NewJWTCodec([]byte("secret"), time.Hour)
	if _, err := c.Decode("a@example.com"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("raw email err = %v; want ErrUnauthenticated", err)
	}
}
