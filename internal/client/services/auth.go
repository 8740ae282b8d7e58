// Package services contains the application services of the TruthLens
// client. Services sit between the CLI pages and the API clients: they own
// input validation, the session lifecycle in the local store, and the
// forced-logout reaction to unauthorized responses.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/truthlens/internal/client/api"
	"github.com/dmitrijs2005/truthlens/internal/client/models"
	"github.com/dmitrijs2005/truthlens/internal/client/repositories/session"
	"github.com/dmitrijs2005/truthlens/internal/common"
	"github.com/dmitrijs2005/truthlens/internal/logging"
)

// AuthService defines the account operations used by the CLI.
//
// Contract:
//   - Register/Login: authenticate against the backend and persist the
//     returned token and user as a side effect.
//   - CurrentUser: fail without a stored token; otherwise fetch and cache
//     the identity.
//   - Logout: drop the stored session.
//
// Any unauthorized response clears the stored session before the error is
// returned, so a stale token can never outlive its first rejection.
type AuthService interface {
	Register(ctx context.Context, email, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
}

type authService struct {
	auth    api.AuthClient
	profile api.ProfileClient
	store   *session.Store
	log     logging.Logger
}

func NewAuthService(auth api.AuthClient, profile api.ProfileClient, store *session.Store, log logging.Logger) AuthService {
	return &authService{auth: auth, profile: profile, store: store, log: log}
}

func (s *authService) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	sess, err := s.auth.Register(ctx, email, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}
	return &sess.User, nil
}

// Login authenticates, persists the session, then fetches the full profile
// as a best effort: a failed profile fetch is logged but does not
// invalidate the already-stored token.
func (s *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	sess, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	if p, err := s.profile.GetProfile(ctx, sess.Token); err != nil {
		s.log.Warn(ctx, "profile fetch after login failed", "error", err)
	} else if err := s.store.SetProfile(ctx, p); err != nil {
		s.log.Warn(ctx, "profile cache write failed", "error", err)
	}

	return &sess.User, nil
}

func (s *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	token, err := s.store.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, common.ErrNotAuthenticated
	}

	u, err := s.auth.CurrentUser(ctx, token)
	if err != nil {
		return nil, s.mapAuthError(ctx, err)
	}
	if err := s.store.SetUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.store.ClearSession(ctx)
}

func (s *authService) IsAuthenticated(ctx context.Context) bool {
	token, err := s.store.Token(ctx)
	return err == nil && token != ""
}

func (s *authService) saveSession(ctx context.Context, sess *models.Session) error {
	if err := s.store.SetToken(ctx, sess.Token); err != nil {
		return err
	}
	return s.store.SetUser(ctx, &sess.User)
}

// mapAuthError clears the stored session when the backend rejected the
// token, then passes the error through.
func (s *authService) mapAuthError(ctx context.Context, err error) error {
	if errors.Is(err, common.ErrUnauthorized) {
		if clearErr := s.store.ClearSession(ctx); clearErr != nil {
			s.log.Error(ctx, "failed to clear session after 401", "error", clearErr)
		}
	}
	return err
}
