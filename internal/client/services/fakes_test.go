package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrijs2005/truthlens/internal/client/models"
	"github.com/dmitrijs2005/truthlens/internal/client/repositories/session"
	"github.com/dmitrijs2005/truthlens/internal/logging"
)

// ---- shared test plumbing ----

func nopLogger() logging.Logger {
	return logging.NewDefault(io.Discard, slog.LevelError)
}

func newTestStore() *session.Store {
	return session.NewStore(session.NewMemoryRepository())
}

// fakeAuthClient implements api.AuthClient and records the last arguments
// for assertions.
type fakeAuthClient struct {
	RegisterSess *models.Session
	RegisterErr  error
	LoginSess    *models.Session
	LoginErr     error
	CurrentRet   *models.User
	CurrentErr   error

	LastRegisterEmail    string
	LastRegisterUsername string
	LastRegisterPassword string
	LastLoginUsername    string
	LastLoginPassword    string
	LastCurrentToken     string
}

func (f *fakeAuthClient) Register(ctx context.Context, email, username, password string) (*models.Session, error) {
	f.LastRegisterEmail = email
	f.LastRegisterUsername = username
	f.LastRegisterPassword = password
	return f.RegisterSess, f.RegisterErr
}

func (f *fakeAuthClient) Login(ctx context.Context, username, password string) (*models.Session, error) {
	f.LastLoginUsername = username
	f.LastLoginPassword = password
	return f.LoginSess, f.LoginErr
}

func (f *fakeAuthClient) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	f.LastCurrentToken = token
	return f.CurrentRet, f.CurrentErr
}

// fakeProfileClient implements api.ProfileClient.
type fakeProfileClient struct {
	GetRet    *models.Profile
	GetErr    error
	UpdateRet *models.Profile
	UpdateErr error
	SendRet   *models.EmailChallenge
	SendErr   error
	VerifyErr error

	GetCalls    int
	UpdateCalls int
	SendCalls   int
	VerifyCalls int

	LastUpdateToken string
	LastUpdate      models.ProfileUpdate
	LastSendEmail   string
	LastVerifyID    string
	LastVerifyCode  string
}

func (f *fakeProfileClient) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	f.GetCalls++
	return f.GetRet, f.GetErr
}

func (f *fakeProfileClient) UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (*models.Profile, error) {
	f.UpdateCalls++
	f.LastUpdateToken = token
	f.LastUpdate = upd
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeProfileClient) SendEmailVerification(ctx context.Context, token, newEmail string) (*models.EmailChallenge, error) {
	f.SendCalls++
	f.LastSendEmail = newEmail
	return f.SendRet, f.SendErr
}

func (f *fakeProfileClient) VerifyEmail(ctx context.Context, token, challengeID, code string) error {
	f.VerifyCalls++
	f.LastVerifyID = challengeID
	f.LastVerifyCode = code
	return f.VerifyErr
}

// fakeVerificationClient implements api.VerificationClient.
type fakeVerificationClient struct {
	Ret *models.VerificationResult
	Err error

	Calls     int
	LastToken string
	LastText  string
}

func (f *fakeVerificationClient) Verify(ctx context.Context, token, text string) (*models.VerificationResult, error) {
	f.Calls++
	f.LastToken = token
	f.LastText = text
	return f.Ret, f.Err
}
