// Package models contains the plain data types exchanged between the
// TruthLens API clients, the service layer and the CLI pages.
package models

// Verdict is the coarse three-way classification of an article.
type Verdict string

const (
	VerdictLikelyTrue  Verdict = "Likely True"
	VerdictUncertain   Verdict = "Uncertain"
	VerdictLikelyFalse Verdict = "Likely False"
)

// Confidence is the qualitative certainty attached to a verdict.
// It is distinct from the numeric score.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Stance describes how an evidence source relates to the claim.
type Stance string

const (
	StanceSupports    Stance = "supports"
	StanceContradicts Stance = "contradicts"
	StanceNeutral     Stance = "neutral"
)

// EvidenceSource is one supporting/contradicting reference attached to
// a verification result.
type EvidenceSource struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Publisher string `json:"publisher"`
	Stance    Stance `json:"stance"`
	Date      string `json:"date"`
	Excerpt   string `json:"excerpt"`
}

// VerificationResult is the outcome of checking one article.
// Produced fresh per request and never persisted.
type VerificationResult struct {
	Score      int              `json:"score"`
	Verdict    Verdict          `json:"verdict"`
	Confidence Confidence       `json:"confidence"`
	Rationale  string           `json:"rationale"`
	Sources    []EvidenceSource `json:"sources"`
}
