package service

import (
	"errors"
	"time"

	"github.com/lixenwraith/auth"
)

const (
	AdminSubject = "admin"
	TokenTTL     = 12 * time.Hour
)

var (
	ErrAdminDisabled      = errors.New("admin login disabled")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// SetAdminHash enables admin login with a password hash produced by auth.HashPassword
func (s *Service) SetAdminHash(hash string) {
	s.adminHash = hash
}

// AdminEnabled reports whether an admin password is configured
func (s *Service) AdminEnabled() bool {
	return s.adminHash != "" && len(s.jwtSecret) > 0
}

// AuthenticateAdmin verifies the admin password and issues a token
func (s *Service) AuthenticateAdmin(password string) (string, time.Time, error) {
	if !s.AdminEnabled() {
		return "", time.Time{}, ErrAdminDisabled
	}

	if err := auth.VerifyPassword(password, s.adminHash); err != nil {
		s.log.Warn().Msg("admin login rejected")
		return "", time.Time{}, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(TokenTTL)
	token, err := auth.GenerateHS256Token(s.jwtSecret, AdminSubject, map[string]any{"role": "admin"}, TokenTTL)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ValidateToken verifies a JWT and returns its subject with claims
func (s *Service) ValidateToken(token string) (string, map[string]any, error) {
	if len(s.jwtSecret) == 0 {
		return "", nil, ErrAdminDisabled
	}
	return auth.ValidateHS256Token(s.jwtSecret, token)
}
