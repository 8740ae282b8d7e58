package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/truthlens/internal/client/api"
	"github.com/dmitrijs2005/truthlens/internal/client/models"
	"github.com/dmitrijs2005/truthlens/internal/client/repositories/session"
	"github.com/dmitrijs2005/truthlens/internal/common"
	"github.com/dmitrijs2005/truthlens/internal/logging"
)

// VerificationService submits article text for fact checking.
type VerificationService interface {
	// Verify checks the article text. With asGuest set, the stored token is
	// ignored and the request goes out unauthenticated.
	Verify(ctx context.Context, text string, asGuest bool) (*models.VerificationResult, error)
}

type verificationService struct {
	client api.VerificationClient
	store  *session.Store
	log    logging.Logger
}

func NewVerificationService(client api.VerificationClient, store *session.Store, log logging.Logger) VerificationService {
	return &verificationService{client: client, store: store, log: log}
}

func (s *verificationService) Verify(ctx context.Context, text string, asGuest bool) (*models.VerificationResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: Article text is required", common.ErrValidation)
	}
	if utf8.RuneCountInString(text) > common.MaxArticleChars {
		return nil, fmt.Errorf("%w: Article text exceeds the %d character limit", common.ErrValidation, common.MaxArticleChars)
	}

	token := ""
	if !asGuest {
		t, err := s.store.Token(ctx)
		if err != nil {
			return nil, err
		}
		token = t
	}

	res, err := s.client.Verify(ctx, token, text)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			if clearErr := s.store.ClearSession(ctx); clearErr != nil {
				s.log.Error(ctx, "failed to clear session after 401", "error", clearErr)
			}
		}
		return nil, err
	}
	return res, nil
}
