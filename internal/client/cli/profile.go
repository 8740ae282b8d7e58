package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/truthlens/internal/client/models"
	"github.com/dmitrijs2005/truthlens/internal/common"
)

// Profile shows the profile page of the signed-in user.
func (a *App) Profile(ctx context.Context) error {
	if !a.auth.IsAuthenticated(ctx) {
		a.printf("Please log in first.\n")
		return nil
	}

	p, err := a.profile.Get(ctx)
	if err != nil {
		a.printf("error: %v\n", err)
		return err
	}

	a.printf("\nUsername: %s\n", p.Username)
	a.printf("Email:    %s\n", p.Email)
	if p.Bio != "" {
		a.printf("Bio:      %s\n", p.Bio)
	}
	a.printf("Joined:   %s\n\n", p.JoinedDate)
	return nil
}

// Edit runs the profile editor. Each field defaults to its current value,
// so pressing Enter keeps it. Changing the email address starts the
// verification flow before anything is applied.
func (a *App) Edit(ctx context.Context) error {
	if !a.auth.IsAuthenticated(ctx) {
		a.printf("Please log in first.\n")
		return nil
	}

	current, err := a.profile.Get(ctx)
	if err != nil {
		a.printf("error: %v\n", err)
		return err
	}

	// A verification flow interrupted by a restart can be resumed here.
	if pending, err := a.profile.PendingChallenge(ctx); err == nil && pending != nil {
		a.printf("A verification code was already sent to %s.\n", pending.Email)
		upd := models.ProfileUpdate{
			Username: current.Username,
			Email:    pending.Email,
			Bio:      current.Bio,
		}
		return a.confirmEmailChange(ctx, pending, upd)
	}

	username, err := GetDefaultedText(a.reader, "Username", current.Username, a.out)
	if err != nil {
		return err
	}
	email, err := GetDefaultedText(a.reader, "Email", current.Email, a.out)
	if err != nil {
		return err
	}
	bio, err := GetDefaultedText(a.reader, "Bio", current.Bio, a.out)
	if err != nil {
		return err
	}
	a.printf("New password (leave empty to keep the current one)\n")
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	upd := models.ProfileUpdate{
		Username: username,
		Email:    email,
		Bio:      bio,
		Password: password,
	}

	outcome, err := a.profile.Update(ctx, upd)
	if err != nil {
		a.printf("error: %v\n", err)
		return err
	}

	if outcome.Challenge != nil {
		a.printf("A verification code has been sent to %s.\n", outcome.Challenge.Email)
		return a.confirmEmailChange(ctx, outcome.Challenge, upd)
	}

	a.printf("Profile updated.\n")
	return nil
}

// confirmEmailChange runs the code-entry loop of the email verification
// flow. A wrong code re-prompts while attempts remain; an empty line
// leaves the flow, keeping the challenge pending for a later resume.
func (a *App) confirmEmailChange(ctx context.Context, ch *models.EmailChallenge, upd models.ProfileUpdate) error {
	if ch.DevCode != "" {
		a.printf("[dev] verification code: %s\n", ch.DevCode)
	}

	for {
		code, err := GetSimpleText(a.reader, "Enter the 6-digit code (empty line to postpone)", a.out)
		if err != nil {
			return err
		}
		if code == "" {
			a.printf("Verification postponed. Run 'edit' again to resume.\n")
			return nil
		}

		_, err = a.profile.ConfirmEmailChange(ctx, ch.VerificationID, code, upd)
		if err == nil {
			a.printf("Email verified. Profile updated.\n")
			return nil
		}
		if errors.Is(err, common.ErrCodeMismatch) {
			a.printf("%v\n", err)
			continue
		}
		a.printf("error: %v\n", err)
		return err
	}
}
