package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/truthlens/internal/client/models"
	"github.com/dmitrijs2005/truthlens/internal/common"
)

// Check runs the document-checker page: collect text, resolve the guest
// question if needed, submit, render.
func (a *App) Check(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "Paste the article text", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return err
	}
	return a.submitArticle(ctx, text)
}

// CheckFile checks an article loaded from a .txt file. Files of the wrong
// type or size are reported to the user and do not count as command errors.
func (a *App) CheckFile(ctx context.Context, path string) error {
	text, ok := a.readArticleFile(path)
	if !ok {
		return nil
	}
	return a.submitArticle(ctx, text)
}

// readArticleFile enforces the upload contract: .txt only, capped size.
// Violations produce a user-facing message, not an error.
func (a *App) readArticleFile(path string) (string, bool) {
	if !strings.EqualFold(filepath.Ext(path), ".txt") {
		a.printf("Only .txt files are supported.\n")
		return "", false
	}

	info, err := os.Stat(path)
	if err != nil {
		a.printf("Cannot read file: %v\n", err)
		return "", false
	}
	if info.Size() > common.MaxUploadBytes {
		a.printf("File is too large: the limit is %d KB.\n", common.MaxUploadBytes/1024)
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		a.printf("Cannot read file: %v\n", err)
		return "", false
	}
	return string(data), true
}

// submitArticle decides between an authenticated and a guest submission.
// An unauthenticated user is offered the login page or guest access first.
func (a *App) submitArticle(ctx context.Context, text string) error {
	asGuest := false
	if !a.auth.IsAuthenticated(ctx) {
		choice, err := GetSimpleText(a.reader,
			"You are not signed in. (l)og in, continue as (g)uest, or (c)ancel?", a.out)
		if err != nil {
			return err
		}
		switch strings.ToLower(choice) {
		case "l", "login":
			if err := a.Login(ctx); err != nil {
				return nil
			}
			if !a.auth.IsAuthenticated(ctx) {
				return nil
			}
		case "g", "guest":
			asGuest = true
		default:
			a.printf("Cancelled.\n")
			return nil
		}
	}

	a.printf("Checking...\n")
	res, err := a.verify.Verify(ctx, text, asGuest)
	if err != nil {
		a.printf("error: %v\n", err)
		return err
	}

	a.renderResult(res, asGuest)
	return nil
}

func (a *App) renderResult(res *models.VerificationResult, asGuest bool) {
	a.printf("\nTruth score: %d/100\n", res.Score)
	a.printf("Verdict:     %s\n", res.Verdict)
	a.printf("Confidence:  %s\n", res.Confidence)
	a.printf("Rationale:   %s\n", res.Rationale)

	if len(res.Sources) > 0 {
		a.printf("\nSources:\n")
		for i, s := range res.Sources {
			a.printf("  %d. [%s] %s | %s (%s)\n", i+1, stanceMark(s.Stance), s.Title, s.Publisher, s.Date)
			if s.Excerpt != "" {
				a.printf("     %s\n", s.Excerpt)
			}
			a.printf("     %s\n", s.URL)
		}
	}

	if asGuest {
		a.printf("\nSign in for the full analysis and more sources.\n")
	}
	a.printf("\n")
}

func stanceMark(s models.Stance) string {
	switch s {
	case models.StanceSupports:
		return "+"
	case models.StanceContradicts:
		return "-"
	default:
		return "="
	}
}
