package main

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionCookie  = "session"
	sessionKeySize = 32
)

var (
	errNoSession   = errors.New("no session")
	errEmptySecret = errors.New("empty session secret")
)

// Sessions signs and verifies the HS256 token carried in the session cookie.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessions refuses an empty secret; HS256 accepts an empty key.
func NewSessions(secret []byte, ttl time.Duration) (*Sessions, error) {
	if len(secret) == 0 {
		return nil, errEmptySecret
	}
	return &Sessions{secret: secret, ttl: ttl, now: time.Now}, nil
}

// RandomSessionKey returns a fresh signing key. Sessions signed with it do
// not survive a restart.
func RandomSessionKey() ([]byte, error) {
	key := make([]byte, sessionKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("session key: %w", err)
	}
	return key, nil
}

// Issue returns a session cookie for username.
func (s *Sessions) Issue(username string) (*Cookie, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	return &Cookie{
		Name:     sessionCookie,
		Value:    token,
		MaxAge:   int(s.ttl / time.Second),
		Path:     "/",
		HTTPOnly: true,
	}, nil
}

// Username verifies the request's session cookie and returns its subject.
func (s *Sessions) Username(req *Request) (string, error) {
	raw, ok := req.Cookies[sessionCookie]
	if !ok || raw == "" {
		return "", errNoSession
	}
	claims := new(jwt.RegisteredClaims)
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("verify session: %w", err)
	}
	if claims.Subject == "" {
		return "", errNoSession
	}
	return claims.Subject, nil
}

// Expire returns a cookie that deletes the session on the client.
func (s *Sessions) Expire() *Cookie {
	return &Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HTTPOnly: true,
	}
}
