// Package admin gates catalog mutations behind a single shared admin
// password. With no password hash configured the gate is open.
package admin

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL       = 8 * time.Hour
	minSecretLen   = 32
	adminSubject   = "admin"
	minPasswordLen = 8
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDisabled           = errors.New("admin login disabled")
	ErrWeakSecret         = errors.New("jwt secret must be at least 32 chars")
	ErrShortPassword      = errors.New("password too short")
)

type Service struct {
	hash   []byte
	tokens *TokenMaker
	ttl    time.Duration
}

// NewService returns a Service that accepts the password behind
// passwordHash (a bcrypt hash). An empty hash disables the gate.
func NewService(passwordHash, jwtSecret string) (*Service, error) {
	passwordHash = strings.TrimSpace(passwordHash)
	if passwordHash == "" {
		return &Service{}, nil
	}
	if len(jwtSecret) < minSecretLen {
		return nil, ErrWeakSecret
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, err
	}

	return &Service{
		hash:   []byte(passwordHash),
		tokens: NewTokenMaker(jwtSecret),
		ttl:    tokenTTL,
	}, nil
}

func (s *Service) Enabled() bool {
	return s != nil && len(s.hash) > 0
}

// Login exchanges the admin password for a bearer token.
func (s *Service) Login(password string) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(strings.TrimSpace(password))); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.New(adminSubject, s.ttl)
}

func (s *Service) Verify(token string) error {
	if !s.Enabled() {
		return nil
	}
	_, err := s.tokens.Parse(token)
	return err
}

// HashPassword produces the value expected in the admin password hash
// setting.
func HashPassword(password string) (string, error) {
	password = strings.TrimSpace(password)
	if len(password) < minPasswordLen {
		return "", ErrShortPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
