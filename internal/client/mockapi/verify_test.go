package mockapi

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/truthlens/internal/client/models"
	"github.com/dmitrijs2005/truthlens/internal/common"
	"github.com/stretchr/testify/require"
)

// newTestVerifier returns a Verifier with no real sleeping and a fixed
// rng value (0.5 never trips the failure branch).
func newTestVerifier() *Verifier {
	v := NewVerifier()
	v.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	v.randFloat = func() float64 { return 0.5 }
	return v
}

// pad extends s past the short-text threshold with neutral filler.
func pad(s string, n int) string {
	filler := " lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor"
	for len(s) < n {
		s += filler
	}
	return s
}

func TestVerify_ShortTextFixedResult(t *testing.T) {
	v := newTestVerifier()

	for _, text := range []string{"short claim", "hoax", "cdc study"} {
		res, err := v.Verify(context.Background(), "tok", text)
		require.NoError(t, err)
		require.Len(t, res.Sources, 1)
		require.Equal(t, models.ConfidenceLow, res.Confidence)
		require.Equal(t, models.VerdictUncertain, res.Verdict)
	}
}

func TestVerify_GuestOverride(t *testing.T) {
	v := newTestVerifier()

	// Heavy credibility signals would normally produce "Likely True"/high.
	text := pad("A CDC study and WHO research from a major university confirm the findings.", 600)

	res, err := v.Verify(context.Background(), "", text)
	require.NoError(t, err)
	require.Equal(t, models.VerdictUncertain, res.Verdict)
	require.Equal(t, models.ConfidenceLow, res.Confidence)
	require.LessOrEqual(t, len(res.Sources), 2)
	// The numeric score is not masked for guests.
	require.Greater(t, res.Score, 50)
}

func TestVerify_AuthenticatedCredibleText(t *testing.T) {
	v := newTestVerifier()

	text := pad("A CDC study and WHO research from a major university confirm the findings.", 600)

	res, err := v.Verify(context.Background(), "tok", text)
	require.NoError(t, err)
	require.Equal(t, 100, res.Score)
	require.Equal(t, models.VerdictLikelyTrue, res.Verdict)
	require.Equal(t, models.ConfidenceHigh, res.Confidence)
	require.Len(t, res.Sources, 3)
	require.Equal(t, models.StanceSupports, res.Sources[0].Stance)
}

func TestVerify_HoaxOnlyScoreAtMostFifty(t *testing.T) {
	v := newTestVerifier()

	text := pad("This viral hoax has been circulating on social media for weeks now.", 250)
	require.NotContains(t, strings.ToLower(text), "who")

	res, err := v.Verify(context.Background(), "", text)
	require.NoError(t, err)
	require.LessOrEqual(t, res.Score, 50)
}

func TestVerify_SkepticismSelectsContradictingSource(t *testing.T) {
	v := newTestVerifier()

	text := pad("An unverified rumor, widely called a hoax and a conspiracy, spread fast.", 250)

	res, err := v.Verify(context.Background(), "tok", text)
	require.NoError(t, err)
	require.Equal(t, models.VerdictLikelyFalse, res.Verdict)

	var stances []models.Stance
	for _, s := range res.Sources {
		stances = append(stances, s.Stance)
	}
	require.Contains(t, stances, models.StanceContradicts)
}

func TestVerify_ScoreClamped(t *testing.T) {
	v := newTestVerifier()

	inputs := []string{
		pad("hoax fake conspiracy unverified rumor hoax fake conspiracy", 600),
		pad("who cdc research study university who cdc research study", 600),
		pad("plain text with no signal words at all", 300),
	}
	for _, text := range inputs {
		res, err := v.Verify(context.Background(), "tok", text)
		require.NoError(t, err)
		require.GreaterOrEqual(t, res.Score, 0)
		require.LessOrEqual(t, res.Score, 100)
	}
}

func TestVerify_SimulatedServerError(t *testing.T) {
	v := newTestVerifier()
	v.randFloat = func() float64 { return 0.0 } // below the failure rate

	_, err := v.Verify(context.Background(), "tok", pad("anything", 300))
	require.True(t, errors.Is(err, common.ErrUnavailable))
}

func TestVerify_DelayWithinRange(t *testing.T) {
	v := NewVerifier()

	var slept time.Duration
	v.sleep = func(ctx context.Context, d time.Duration) error {
		slept = d
		return nil
	}
	v.randFloat = func() float64 { return 0.5 }

	_, err := v.Verify(context.Background(), "tok", pad("x", 300))
	require.NoError(t, err)
	require.GreaterOrEqual(t, slept, 600*time.Millisecond)
	require.LessOrEqual(t, slept, 1400*time.Millisecond)
}

func TestVerify_ContextCancelledDuringDelay(t *testing.T) {
	v := NewVerifier()
	v.randFloat = func() float64 { return 0.5 }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := v.Verify(ctx, "tok", pad("x", 300))
	require.ErrorIs(t, err, context.Canceled)
}
