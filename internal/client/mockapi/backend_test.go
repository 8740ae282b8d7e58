package mockapi

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/truthlens/internal/client/models"
	"github.com/dmitrijs2005/truthlens/internal/common"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T, dev bool) *Backend {
	t.Helper()
	b := NewBackend(dev)
	b.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	b.randFloat = func() float64 { return 0.5 }
	return b
}

func loginDemo(t *testing.T, b *Backend) *models.Session {
	t.Helper()
	sess, err := b.Login(context.Background(), "demo", "demo123")
	require.NoError(t, err)
	return sess
}

func TestBackend_LoginDemo(t *testing.T) {
	b := newTestBackend(t, false)

	sess := loginDemo(t, b)
	require.NotEmpty(t, sess.Token)
	require.Equal(t, "demo", sess.User.Username)
	require.Equal(t, "demo@truthlens.com", sess.User.Email)
}

func TestBackend_LoginWrongPassword(t *testing.T) {
	b := newTestBackend(t, false)

	_, err := b.Login(context.Background(), "demo", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.EqualError(t, err, "Invalid username or password")
}

func TestBackend_LoginUnknownUser(t *testing.T) {
	b := newTestBackend(t, false)

	_, err := b.Login(context.Background(), "ghost", "demo123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestBackend_RegisterAndCurrentUser(t *testing.T) {
	b := newTestBackend(t, false)
	ctx := context.Background()

	sess, err := b.Register(ctx, "alice@example.com", "alice", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	u, err := b.CurrentUser(ctx, sess.Token)
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
	require.Equal(t, "alice@example.com", u.Email)
}

func TestBackend_RegisterDuplicateUsername(t *testing.T) {
	b := newTestBackend(t, false)

	_, err := b.Register(context.Background(), "x@example.com", "demo", "password123")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestBackend_CurrentUserBadToken(t *testing.T) {
	b := newTestBackend(t, false)
	ctx := context.Background()

	_, err := b.CurrentUser(ctx, "not-a-jwt")
	require.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = b.CurrentUser(ctx, "")
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestBackend_GetProfile(t *testing.T) {
	b := newTestBackend(t, false)
	sess := loginDemo(t, b)

	p, err := b.GetProfile(context.Background(), sess.Token)
	require.NoError(t, err)
	require.Equal(t, "demo", p.Username)
	require.Equal(t, "2024-01-15", p.JoinedDate)
}

func TestBackend_UpdateProfile(t *testing.T) {
	b := newTestBackend(t, false)
	ctx := context.Background()
	sess := loginDemo(t, b)

	p, err := b.UpdateProfile(ctx, sess.Token, models.ProfileUpdate{
		Username: "demo", Email: "demo@truthlens.com", Bio: "updated bio",
	})
	require.NoError(t, err)
	require.Equal(t, "updated bio", p.Bio)
}

func TestBackend_UpdateProfileRenameKeepsSession(t *testing.T) {
	b := newTestBackend(t, false)
	ctx := context.Background()
	sess := loginDemo(t, b)

	p, err := b.UpdateProfile(ctx, sess.Token, models.ProfileUpdate{
		Username: "renamed", Email: "demo@truthlens.com",
	})
	require.NoError(t, err)
	require.Equal(t, "renamed", p.Username)

	// The old token still resolves to the same account.
	u, err := b.CurrentUser(ctx, sess.Token)
	require.NoError(t, err)
	require.Equal(t, "renamed", u.Username)

	// The old username is free again.
	_, err = b.Register(ctx, "new@example.com", "demo", "password123")
	require.NoError(t, err)
}

func TestBackend_UpdateProfileSimulatedFailure(t *testing.T) {
	b := newTestBackend(t, false)
	sess := loginDemo(t, b)

	b.randFloat = func() float64 { return 0.0 } // below the failure rate

	_, err := b.UpdateProfile(context.Background(), sess.Token, models.ProfileUpdate{Username: "demo"})
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestBackend_EmailChallengeOneShot(t *testing.T) {
	b := newTestBackend(t, true)
	ctx := context.Background()
	sess := loginDemo(t, b)

	ch, err := b.SendEmailVerification(ctx, sess.Token, "new@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, ch.VerificationID)
	require.Len(t, ch.DevCode, 6)
	require.Equal(t, 0, ch.Attempts)

	require.NoError(t, b.VerifyEmail(ctx, sess.Token, ch.VerificationID, ch.DevCode))

	// The challenge was destroyed on success.
	err = b.VerifyEmail(ctx, sess.Token, ch.VerificationID, ch.DevCode)
	require.ErrorIs(t, err, common.ErrChallengeNotFound)
	require.EqualError(t, err, "session not found")
}

func TestBackend_EmailChallengeThreeStrikes(t *testing.T) {
	b := newTestBackend(t, true)
	ctx := context.Background()
	sess := loginDemo(t, b)

	ch, err := b.SendEmailVerification(ctx, sess.Token, "new@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if ch.DevCode == wrong {
		wrong = "000001"
	}

	err = b.VerifyEmail(ctx, sess.Token, ch.VerificationID, wrong)
	require.ErrorIs(t, err, common.ErrCodeMismatch)
	require.Contains(t, err.Error(), "2 attempt(s) remaining")

	err = b.VerifyEmail(ctx, sess.Token, ch.VerificationID, wrong)
	require.ErrorIs(t, err, common.ErrCodeMismatch)
	require.Contains(t, err.Error(), "1 attempt(s) remaining")

	err = b.VerifyEmail(ctx, sess.Token, ch.VerificationID, wrong)
	require.ErrorIs(t, err, common.ErrTooManyAttempts)

	// Even the correct code fails now: the challenge is gone.
	err = b.VerifyEmail(ctx, sess.Token, ch.VerificationID, ch.DevCode)
	require.ErrorIs(t, err, common.ErrChallengeNotFound)
}

func TestBackend_EmailChallengeExpiry(t *testing.T) {
	b := newTestBackend(t, true)
	ctx := context.Background()
	sess := loginDemo(t, b)

	base := time.Now()
	b.now = func() time.Time { return base }

	ch, err := b.SendEmailVerification(ctx, sess.Token, "new@example.com")
	require.NoError(t, err)

	b.now = func() time.Time { return base.Add(11 * time.Minute) }

	err = b.VerifyEmail(ctx, sess.Token, ch.VerificationID, ch.DevCode)
	require.ErrorIs(t, err, common.ErrChallengeExpired)

	// Expiry destroyed the challenge.
	err = b.VerifyEmail(ctx, sess.Token, ch.VerificationID, ch.DevCode)
	require.ErrorIs(t, err, common.ErrChallengeNotFound)
}

func TestBackend_EmailChallengeIDMismatch(t *testing.T) {
	b := newTestBackend(t, true)
	ctx := context.Background()
	sess := loginDemo(t, b)

	ch, err := b.SendEmailVerification(ctx, sess.Token, "new@example.com")
	require.NoError(t, err)

	err = b.VerifyEmail(ctx, sess.Token, "other-id", ch.DevCode)
	require.ErrorIs(t, err, common.ErrChallengeNotFound)
}

func TestBackend_DevCodeHiddenOutsideDevMode(t *testing.T) {
	b := newTestBackend(t, false)
	sess := loginDemo(t, b)

	ch, err := b.SendEmailVerification(context.Background(), sess.Token, "new@example.com")
	require.NoError(t, err)
	require.Empty(t, ch.DevCode)
}
