package auth

import (
	"context"
	"log"
	"strings"
	"time"

	"debtledger/internal/pkg/jwt"
)

// OwnerSubject is the token subject of the single ledger owner.
const OwnerSubject = "owner"

// Service authenticates the ledger owner against a bcrypt hash and issues
// access tokens.
type Service struct {
	passwordHash string
	jwt          *jwt.Service
	ttl          time.Duration
}

func NewService(passwordHash string, jwtService *jwt.Service, ttl time.Duration) *Service {
	return &Service{
		passwordHash: strings.TrimSpace(passwordHash),
		jwt:          jwtService,
		ttl:          ttl,
	}
}

type LoginResult struct {
	AccessToken string
	ExpiresIn   time.Duration
}

func (s *Service) Login(ctx context.Context, password string) (*LoginResult, error) {
	if s.passwordHash == "" {
		return nil, ErrAuthDisabled
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := CheckPassword(password, s.passwordHash); err != nil {
		log.Printf("auth_login_failed subject=%s", OwnerSubject)
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(OwnerSubject, jwt.RoleOwner)
	if err != nil {
		return nil, err
	}

	return &LoginResult{AccessToken: token, ExpiresIn: s.ttl}, nil
}
