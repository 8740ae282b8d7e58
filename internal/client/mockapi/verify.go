package mockapi

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/truthlens/internal/client/models"
	"github.com/dmitrijs2005/truthlens/internal/common"
)

// Scoring weights for keyword presence. Each keyword counts once however
// often it appears; matching is a case-insensitive substring check, the
// same way the production scorer treats raw article text.
var credibilityWeights = []keywordWeight{
	{"who", 15},
	{"cdc", 15},
	{"research", 10},
	{"study", 10},
	{"university", 12},
}

var skepticismWeights = []keywordWeight{
	{"hoax", -25},
	{"fake", -20},
	{"conspiracy", -20},
	{"unverified", -10},
	{"rumor", -15},
}

type keywordWeight struct {
	word   string
	weight int
}

const (
	baseScore        = 50
	shortTextChars   = 200
	longTextChars    = 500
	longTextBonus    = 5
	failureRate      = 0.08
	minDelay         = 600 * time.Millisecond
	delaySpread      = 800 * time.Millisecond
	guestSourceCap   = 2
	userSourceCap    = 3
	guestRationale   = "Sign in to see the full analysis. Guest results are limited to a preliminary assessment."
	shortRationale   = "The text is too short for a reliable analysis. Provide a longer excerpt for a full assessment."
	verifiedTemplate = "Found %d credibility signal(s) and %d skepticism signal(s) in the text."
)

// Verifier fabricates verification results from keyword heuristics plus
// randomized latency and a transient failure rate.
type Verifier struct {
	now       func() time.Time
	randFloat func() float64
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewVerifier() *Verifier {
	return &Verifier{
		now:       time.Now,
		randFloat: rand.Float64,
		sleep:     sleepContext,
	}
}

func (v *Verifier) Ping(ctx context.Context) error { return nil }

// Verify scores the text and assembles evidence sources. An empty token
// marks a guest request: guests always receive an "Uncertain"/"low"
// verdict and at most two sources, while the numeric score stays as
// computed.
func (v *Verifier) Verify(ctx context.Context, token, text string) (*models.VerificationResult, error) {
	delay := minDelay + time.Duration(v.randFloat()*float64(delaySpread))
	if err := v.sleep(ctx, delay); err != nil {
		return nil, err
	}

	if v.randFloat() < failureRate {
		return nil, common.ErrUnavailable
	}

	if utf8.RuneCountInString(text) < shortTextChars {
		return shortTextResult(), nil
	}

	lowered := strings.ToLower(text)

	score := baseScore
	credHits, skeptHits := 0, 0
	for _, kw := range credibilityWeights {
		if strings.Contains(lowered, kw.word) {
			score += kw.weight
			credHits++
		}
	}
	for _, kw := range skepticismWeights {
		if strings.Contains(lowered, kw.word) {
			score += kw.weight
			skeptHits++
		}
	}
	if utf8.RuneCountInString(text) > longTextChars {
		score += longTextBonus
	}
	score = clamp(score, 0, 100)

	authenticated := token != ""
	sources := selectSources(credHits > 0, skeptHits > 0, authenticated)

	res := &models.VerificationResult{
		Score:      score,
		Verdict:    verdictFor(score),
		Confidence: confidenceFor(score),
		Rationale:  fmt.Sprintf(verifiedTemplate, credHits, skeptHits),
		Sources:    sources,
	}

	if !authenticated {
		// Guest policy: verdict, confidence, rationale and source count are
		// masked; the numeric score is intentionally left visible.
		res.Verdict = models.VerdictUncertain
		res.Confidence = models.ConfidenceLow
		res.Rationale = guestRationale
		if len(res.Sources) > guestSourceCap {
			res.Sources = res.Sources[:guestSourceCap]
		}
	}

	return res, nil
}

func verdictFor(score int) models.Verdict {
	switch {
	case score >= 70:
		return models.VerdictLikelyTrue
	case score >= 40:
		return models.VerdictUncertain
	default:
		return models.VerdictLikelyFalse
	}
}

func confidenceFor(score int) models.Confidence {
	switch {
	case score >= 75 || score <= 25:
		return models.ConfidenceHigh
	case score >= 60 || score <= 40:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func shortTextResult() *models.VerificationResult {
	return &models.VerificationResult{
		Score:      baseScore,
		Verdict:    models.VerdictUncertain,
		Confidence: models.ConfidenceLow,
		Rationale:  shortRationale,
		Sources:    []models.EvidenceSource{neutralSource},
	}
}

func selectSources(hasCred, hasSkept, authenticated bool) []models.EvidenceSource {
	var sources []models.EvidenceSource
	if hasCred {
		sources = append(sources, whoSource, cdcSource)
	}
	if hasSkept {
		sources = append(sources, factCheckSource)
	} else {
		sources = append(sources, neutralSource)
	}
	if authenticated {
		sources = append(sources, academicSource)
	}

	limit := guestSourceCap
	if authenticated {
		limit = userSourceCap
	}
	if len(sources) > limit {
		sources = sources[:limit]
	}
	return sources
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Fixed evidence pool. Dates are static: the pool emulates an index of
// previously published material, not live lookups.
var (
	whoSource = models.EvidenceSource{
		Title:     "WHO situation report on the claim topic",
		URL:       "https://www.who.int/emergencies/situation-reports",
		Publisher: "World Health Organization",
		Stance:    models.StanceSupports,
		Date:      "2024-11-02",
		Excerpt:   "Official guidance consistent with the article's central claim.",
	}
	cdcSource = models.EvidenceSource{
		Title:     "CDC data brief covering the reported findings",
		URL:       "https://www.cdc.gov/datastatistics",
		Publisher: "Centers for Disease Control and Prevention",
		Stance:    models.StanceSupports,
		Date:      "2024-10-18",
		Excerpt:   "Surveillance data aligns with the figures cited in the article.",
	}
	factCheckSource = models.EvidenceSource{
		Title:     "Fact check: viral claim lacks supporting evidence",
		URL:       "https://www.factcheck.example/claims/2041",
		Publisher: "FactCheck Desk",
		Stance:    models.StanceContradicts,
		Date:      "2025-01-07",
		Excerpt:   "Independent reviewers found no credible sourcing for the claim.",
	}
	neutralSource = models.EvidenceSource{
		Title:     "Wire report on the underlying story",
		URL:       "https://www.reuters.example/article/2025/coverage",
		Publisher: "Reuters",
		Stance:    models.StanceNeutral,
		Date:      "2025-01-03",
		Excerpt:   "Straight news coverage of the events referenced by the article.",
	}
	academicSource = models.EvidenceSource{
		Title:     "Peer-reviewed study of the claim's subject area",
		URL:       "https://doi.example/10.1000/truthlens.2024.117",
		Publisher: "Journal of Media Verification",
		Stance:    models.StanceSupports,
		Date:      "2024-08-21",
		Excerpt:   "Methodology and findings relevant to assessing the article's accuracy.",
	}
)
