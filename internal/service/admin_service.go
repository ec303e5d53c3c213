package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"storefront/internal/repository"
)

var ErrUnauthorized = errors.New("invalid admin credentials")

// AdminCredentials литеральная пара логин/пароль; механизмом безопасности не является
type AdminCredentials struct {
	Username string
	Password string
}

var DefaultAdminCredentials = AdminCredentials{Username: "admin", Password: "admin123"}

// AdminService the gate the admin endpoints consult.
type AdminService struct {
	kv    repository.KV
	creds AdminCredentials
	log   *zap.Logger
}

func NewAdminService(kv repository.KV, creds AdminCredentials, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if creds.Username == "" {
		creds = DefaultAdminCredentials
	}
	return &AdminService{kv: kv, creds: creds, log: logger}
}

func (s *AdminService) Login(ctx context.Context, username, password string) error {
	if username != s.creds.Username || password != s.creds.Password {
		s.log.Warn("admin login rejected", zap.String("username", username))
		return ErrUnauthorized
	}
	return repository.SaveFlag(ctx, s.kv, repository.KeyAdminAuthenticated, true)
}

func (s *AdminService) Logout(ctx context.Context) error {
	return s.kv.Remove(ctx, repository.KeyAdminAuthenticated)
}

// IsAuthenticated treats a storage failure as not authenticated.
func (s *AdminService) IsAuthenticated(ctx context.Context) bool {
	on, err := repository.LoadFlag(ctx, s.kv, repository.KeyAdminAuthenticated)
	if err != nil {
		s.log.Warn("read admin flag", zap.Error(err))
		return false
	}
	return on
}
