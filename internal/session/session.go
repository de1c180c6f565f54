// Package session owns the logged-in user. Only the Manager creates or
// destroys a session; the cookie itself lives in the api client's jar.
package session

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dogfinder/dogfinder/internal/api"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/logging"
	"github.com/go-playground/validator/v10"
)

// Manager logs users in and out.
type Manager struct {
	svc      api.Service
	validate *validator.Validate
	logger   logging.Logger

	mu      sync.RWMutex
	current *domain.Session
}

// NewManager creates a manager backed by svc.
func NewManager(svc api.Service) *Manager {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Manager{
		svc:      svc,
		validate: v,
		logger:   logging.With("component", "session"),
	}
}

// Validate checks credentials without contacting the service.
func (m *Manager) Validate(creds domain.Credentials) error {
	err := m.validate.Struct(creds)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fe.Field()+" "+fe.Tag())
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, strings.Join(fields, ", "))
}

// Login validates name and email and posts them to the service. Invalid
// credentials fail before any request is made.
func (m *Manager) Login(ctx context.Context, name, email string) (*domain.Session, error) {
	creds := domain.Credentials{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
	if err := m.Validate(creds); err != nil {
		return nil, domain.NewFailure(domain.AuthFailure, "login", err)
	}
	if err := m.svc.Login(ctx, creds); err != nil {
		m.logger.Warn("login failed", "email", creds.Email, "error", err.Error())
		return nil, domain.NewFailure(domain.AuthFailure, "login", err)
	}

	s := creds.Session()
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	m.logger.Info("logged in", "email", creds.Email)
	return s, nil
}

// Logout ends the session. The local session is cleared even when the
// service call fails; the failure is still returned.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	was := m.current
	m.current = nil
	m.mu.Unlock()
	if was == nil {
		return domain.NewFailure(domain.AuthFailure, "logout", domain.ErrNotLoggedIn)
	}

	if err := m.svc.Logout(ctx); err != nil {
		m.logger.Warn("logout failed", "error", err.Error())
		return domain.NewFailure(domain.AuthFailure, "logout", err)
	}
	m.logger.Info("logged out")
	return nil
}

// Current returns the session, or nil when logged out.
func (m *Manager) Current() *domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	s := *m.current
	return &s
}

// LoggedIn reports whether a session exists.
func (m *Manager) LoggedIn() bool {
	return m.Current() != nil
}

// Clear drops the local session without contacting the service.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}
