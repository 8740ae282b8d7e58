package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/truthlens/internal/client/models"
	"github.com/dmitrijs2005/truthlens/internal/common"
	"github.com/stretchr/testify/require"
)

func TestVerificationService_EmptyTextFailsLocally(t *testing.T) {
	client := &fakeVerificationClient{}
	svc := NewVerificationService(client, newTestStore(), nopLogger())

	_, err := svc.Verify(context.Background(), "   \n\t ", false)
	require.ErrorIs(t, err, common.ErrValidation)
	require.Contains(t, err.Error(), "Article text is required")
	require.Equal(t, 0, client.Calls)
}

func TestVerificationService_OversizedTextFailsLocally(t *testing.T) {
	client := &fakeVerificationClient{}
	svc := NewVerificationService(client, newTestStore(), nopLogger())

	_, err := svc.Verify(context.Background(), strings.Repeat("a", common.MaxArticleChars+1), false)
	require.ErrorIs(t, err, common.ErrValidation)
	require.Equal(t, 0, client.Calls)
}

func TestVerificationService_PassesStoredToken(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, "tok-7"))

	client := &fakeVerificationClient{Ret: &models.VerificationResult{Score: 60}}
	svc := NewVerificationService(client, store, nopLogger())

	res, err := svc.Verify(ctx, "some article text", false)
	require.NoError(t, err)
	require.Equal(t, 60, res.Score)
	require.Equal(t, "tok-7", client.LastToken)
}

func TestVerificationService_GuestIgnoresStoredToken(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, "tok-7"))

	client := &fakeVerificationClient{Ret: &models.VerificationResult{}}
	svc := NewVerificationService(client, store, nopLogger())

	_, err := svc.Verify(ctx, "some article text", true)
	require.NoError(t, err)
	require.Equal(t, "", client.LastToken)
}

func TestVerificationService_UnauthorizedClearsSession(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, "stale"))

	client := &fakeVerificationClient{Err: common.ErrUnauthorized}
	svc := NewVerificationService(client, store, nopLogger())

	_, err := svc.Verify(ctx, "some article text", false)
	require.ErrorIs(t, err, common.ErrUnauthorized)

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "", tok)
}
