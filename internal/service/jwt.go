package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCodec converts a user's email into the value carried by the
// session cookie and back.
type SessionCodec interface {
	Encode(email string) (string, error)
	Decode(token string) (string, error)
}

// NewSessionCodec returns a JWTCodec when secret is set, otherwise PlainCodec.
func NewSessionCodec(secret string, ttl time.Duration) SessionCodec {
	if secret == "" {
		return PlainCodec{}
	}
	return NewJWTCodec([]byte(secret), ttl)
}

// PlainCodec stores the raw email in the cookie.
type PlainCodec struct{}

func (PlainCodec) Encode(email string) (string, error) { return email, nil }

func (PlainCodec) Decode(token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}
	return token, nil
}

// JWTCodec signs the email into an HS256 token with a bounded lifetime.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTCodec(secret []byte, ttl time.Duration) *JWTCodec {
	return &JWTCodec{secret: secret, ttl: ttl, now: time.Now}
}

func (c *JWTCodec) Encode(email string) (string, error) {
	now := c.now()
	claims := jwt.MapClaims{
		"sub": email,
		"exp": now.Add(c.ttl).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

func (c *JWTCodec) Decode(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrUnauthenticated
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(c.now))
	if err != nil || !token.Valid {
		return "", ErrUnauthenticated
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrUnauthenticated
	}
	return sub, nil
}
