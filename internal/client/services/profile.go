package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/truthlens/internal/client/api"
	"github.com/dmitrijs2005/truthlens/internal/client/models"
	"github.com/dmitrijs2005/truthlens/internal/client/repositories/session"
	"github.com/dmitrijs2005/truthlens/internal/common"
	"github.com/dmitrijs2005/truthlens/internal/logging"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 30
	passwordMinLen = 8
)

// reservedUsernames cannot be taken; "error" in particular collides with
// template placeholders in downstream rendering.
var reservedUsernames = map[string]struct{}{
	"error": {},
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UpdateOutcome is the result of a profile update request. Exactly one
// field is set: Profile when the change was applied directly, Challenge
// when the new email must be verified first (the caller then completes the
// flow with ConfirmEmailChange).
type UpdateOutcome struct {
	Profile   *models.Profile
	Challenge *models.EmailChallenge
}

// ProfileService covers profile viewing/editing and the two-step
// email-change verification flow.
type ProfileService interface {
	Get(ctx context.Context) (*models.Profile, error)
	Update(ctx context.Context, upd models.ProfileUpdate) (*UpdateOutcome, error)
	ConfirmEmailChange(ctx context.Context, challengeID, code string, upd models.ProfileUpdate) (*models.Profile, error)
	PendingChallenge(ctx context.Context) (*models.EmailChallenge, error)
}

type profileService struct {
	client api.ProfileClient
	store  *session.Store
	log    logging.Logger
}

func NewProfileService(client api.ProfileClient, store *session.Store, log logging.Logger) ProfileService {
	return &profileService{client: client, store: store, log: log}
}

// Get returns the cached profile when available, otherwise fetches and
// caches it.
func (s *profileService) Get(ctx context.Context) (*models.Profile, error) {
	p, err := s.store.Profile(ctx)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	token, err := s.requireToken(ctx)
	if err != nil {
		return nil, err
	}
	p, err = s.client.GetProfile(ctx, token)
	if err != nil {
		return nil, s.mapAuthError(ctx, err)
	}
	if err := s.store.SetProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update validates the requested change locally, then either applies it
// directly (email unchanged) or starts the email-change verification flow
// (email changed). Validation fails on the first violated rule, before any
// request leaves the client.
func (s *profileService) Update(ctx context.Context, upd models.ProfileUpdate) (*UpdateOutcome, error) {
	if err := validateUpdate(upd); err != nil {
		return nil, err
	}

	token, err := s.requireToken(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if upd.Email != current.Email {
		ch, err := s.client.SendEmailVerification(ctx, token, upd.Email)
		if err != nil {
			return nil, s.mapAuthError(ctx, err)
		}
		// Persist the pending challenge without the development code so a
		// restart can resume the flow but never read the code back.
		stored := *ch
		stored.DevCode = ""
		if err := s.store.SetChallenge(ctx, &stored); err != nil {
			return nil, err
		}
		return &UpdateOutcome{Challenge: ch}, nil
	}

	p, err := s.applyUpdate(ctx, token, upd)
	if err != nil {
		return nil, err
	}
	return &UpdateOutcome{Profile: p}, nil
}

// ConfirmEmailChange completes the two-step flow: it verifies the code and,
// on success, applies the originally pending update. A challenge consumed
// by expiry or exhausted attempts is also removed from the local store.
func (s *profileService) ConfirmEmailChange(ctx context.Context, challengeID, code string, upd models.ProfileUpdate) (*models.Profile, error) {
	token, err := s.requireToken(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.client.VerifyEmail(ctx, token, challengeID, code); err != nil {
		if errors.Is(err, common.ErrChallengeExpired) || errors.Is(err, common.ErrTooManyAttempts) {
			if delErr := s.store.DeleteChallenge(ctx); delErr != nil {
				s.log.Warn(ctx, "failed to drop consumed challenge", "error", delErr)
			}
		}
		return nil, s.mapAuthError(ctx, err)
	}

	if err := s.store.DeleteChallenge(ctx); err != nil {
		s.log.Warn(ctx, "failed to drop verified challenge", "error", err)
	}

	return s.applyUpdate(ctx, token, upd)
}

// PendingChallenge returns the stored challenge, or nil when none is pending.
func (s *profileService) PendingChallenge(ctx context.Context) (*models.EmailChallenge, error) {
	ch, err := s.store.Challenge(ctx)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// applyUpdate sends the update and mirrors the result into the cached
// profile and session user.
func (s *profileService) applyUpdate(ctx context.Context, token string, upd models.ProfileUpdate) (*models.Profile, error) {
	p, err := s.client.UpdateProfile(ctx, token, upd)
	if err != nil {
		return nil, s.mapAuthError(ctx, err)
	}
	if err := s.store.SetProfile(ctx, p); err != nil {
		return nil, err
	}
	if err := s.store.SetUser(ctx, &models.User{Username: p.Username, Email: p.Email}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileService) requireToken(ctx context.Context) (string, error) {
	token, err := s.store.Token(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", common.ErrNotAuthenticated
	}
	return token, nil
}

func (s *profileService) mapAuthError(ctx context.Context, err error) error {
	if errors.Is(err, common.ErrUnauthorized) {
		if clearErr := s.store.ClearSession(ctx); clearErr != nil {
			s.log.Error(ctx, "failed to clear session after 401", "error", clearErr)
		}
	}
	return err
}

// validateUpdate checks the editable fields in a fixed order and fails on
// the first violated rule.
func validateUpdate(upd models.ProfileUpdate) error {
	if upd.Username == "" {
		return fmt.Errorf("%w: Username is required", common.ErrValidation)
	}
	if len(upd.Username) < usernameMinLen {
		return fmt.Errorf("%w: Username must be at least %d characters", common.ErrValidation, usernameMinLen)
	}
	if len(upd.Username) > usernameMaxLen {
		return fmt.Errorf("%w: Username must be at most %d characters", common.ErrValidation, usernameMaxLen)
	}
	if _, reserved := reservedUsernames[upd.Username]; reserved {
		return fmt.Errorf("%w: This username is not allowed", common.ErrValidation)
	}
	if !emailPattern.MatchString(upd.Email) {
		return fmt.Errorf("%w: Please enter a valid email address", common.ErrValidation)
	}
	if upd.Password != "" && len(upd.Password) < passwordMinLen {
		return fmt.Errorf("%w: Password must be at least %d characters", common.ErrValidation, passwordMinLen)
	}
	return nil
}
