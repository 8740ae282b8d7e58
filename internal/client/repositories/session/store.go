package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/truthlens/internal/client/models"
	"github.com/dmitrijs2005/truthlens/internal/common"
)

// Store is the typed facade over Repository. It owns the fixed key names
// and the JSON (de)serialization of the session objects, so the rest of
// the client never touches raw keys or bytes.
type Store struct {
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Token returns the stored session token, or "" if none is stored.
func (s *Store) Token(ctx context.Context) (string, error) {
	b, err := s.repo.Get(ctx, common.KeyToken)
	if errors.Is(err, common.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.KeyToken, []byte(token))
}

func (s *Store) User(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := s.getJSON(ctx, common.KeyUser, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) SetUser(ctx context.Context, u *models.User) error {
	return s.setJSON(ctx, common.KeyUser, u)
}

func (s *Store) Profile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := s.getJSON(ctx, common.KeyProfile, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) SetProfile(ctx context.Context, p *models.Profile) error {
	return s.setJSON(ctx, common.KeyProfile, p)
}

func (s *Store) Challenge(ctx context.Context) (*models.EmailChallenge, error) {
	var c models.EmailChallenge
	if err := s.getJSON(ctx, common.KeyEmailVerification, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) SetChallenge(ctx context.Context, c *models.EmailChallenge) error {
	return s.setJSON(ctx, common.KeyEmailVerification, c)
}

func (s *Store) DeleteChallenge(ctx context.Context) error {
	return s.repo.Delete(ctx, common.KeyEmailVerification)
}

// Theme returns the stored UI theme, defaulting to "light".
func (s *Store) Theme(ctx context.Context) (string, error) {
	b, err := s.repo.Get(ctx, common.KeyTheme)
	if errors.Is(err, common.ErrNotFound) {
		return "light", nil
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Store) SetTheme(ctx context.Context, theme string) error {
	return s.repo.Set(ctx, common.KeyTheme, []byte(theme))
}

// ClearSession removes the auth-related keys in one shot; logout
// intentionally leaves the theme preference untouched.
func (s *Store) ClearSession(ctx context.Context) error {
	return s.repo.DeleteKeys(ctx,
		common.KeyToken, common.KeyUser, common.KeyProfile, common.KeyEmailVerification)
}

func (s *Store) getJSON(ctx context.Context, key string, v any) error {
	b, err := s.repo.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.repo.Set(ctx, key, b)
}
