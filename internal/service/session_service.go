package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// SessionService хранит имя покупателя. Это не аутентификация: пароля нет.
type SessionService struct {
	mu       sync.RWMutex
	kv       repository.KV
	log      *zap.Logger
	identity *domain.Identity
}

// NewSessionService restores the identity. A corrupt record is removed and
// the session starts anonymous.
func NewSessionService(ctx context.Context, kv repository.KV, logger *zap.Logger) (*SessionService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SessionService{kv: kv, log: logger}

	var id domain.Identity
	found, err := repository.LoadJSON(ctx, kv, repository.KeyUser, &id)
	switch {
	case errors.Is(err, repository.ErrMalformed):
		logger.Warn("discarding stored identity", zap.Error(err))
		if err := kv.Remove(ctx, repository.KeyUser); err != nil {
			return nil, fmt.Errorf("remove corrupt identity: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("load identity: %w", err)
	case found && strings.TrimSpace(id.Name) != "":
		s.identity = &id
	}
	return s, nil
}

// Login records name as the current identity. Blank names are rejected
// without touching the stored state.
func (s *SessionService) Login(ctx context.Context, name string) (*domain.Identity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	id := domain.Identity{Name: name}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := repository.SaveJSON(ctx, s.kv, repository.KeyUser, id); err != nil {
		return nil, fmt.Errorf("save identity: %w", err)
	}
	s.identity = &id
	s.log.Info("shopper logged in", zap.String("name", name))
	out := id
	return &out, nil
}

func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Remove(ctx, repository.KeyUser); err != nil {
		return fmt.Errorf("remove identity: %w", err)
	}
	s.identity = nil
	return nil
}

// Current returns the identity and whether one is set.
func (s *SessionService) Current(ctx context.Context) (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

func (s *SessionService) IsLoggedIn(ctx context.Context) bool {
	_, ok := s.Current(ctx)
	return ok
}

// LoginPrompted reports whether the one-time login nudge was already shown.
func (s *SessionService) LoginPrompted(ctx context.Context) (bool, error) {
	return repository.LoadFlag(ctx, s.kv, repository.KeyLoginPrompted)
}

func (s *SessionService) MarkLoginPrompted(ctx context.Context) error {
	return repository.SaveFlag(ctx, s.kv, repository.KeyLoginPrompted, true)
}
