package mockapi

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dmitrijs2005/truthlens/internal/client/models"
	"github.com/dmitrijs2005/truthlens/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	challengeTTL      = 10 * time.Minute
	maxCodeAttempts   = 3
	updateFailureRate = 0.05
	authMinDelay      = 300 * time.Millisecond
	authDelaySpread   = 400 * time.Millisecond
)

// signingKey signs the simulated session tokens. The client never verifies
// them; the backend mints real-looking JWTs only so tokens round-trip the
// same way production ones do.
var signingKey = []byte("truthlens-mock-signing-key")

var (
	ErrInvalidCredentials = errors.New("Invalid username or password")
	ErrUsernameTaken      = errors.New("Username already taken")
)

type account struct {
	id           string
	passwordHash []byte
	profile      models.Profile
}

// Backend is the in-memory auth/profile simulator. It satisfies
// api.AuthClient and api.ProfileClient.
//
// Accounts are keyed by a stable internal id; session tokens carry the id
// in the "sub" claim so a username change never invalidates a session.
type Backend struct {
	mu         sync.Mutex
	accounts   map[string]*account               // by account id
	usernames  map[string]string                 // username -> account id
	challenges map[string]*models.EmailChallenge // by account id

	dev       bool
	now       func() time.Time
	randFloat func() float64
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewBackend builds a simulator seeded with the demo account
// (demo / demo123). When dev is true, SendEmailVerification exposes the
// plain code in the DevCode field so the flow can be driven without mail.
func NewBackend(dev bool) *Backend {
	b := &Backend{
		accounts:   make(map[string]*account),
		usernames:  make(map[string]string),
		challenges: make(map[string]*models.EmailChallenge),
		dev:        dev,
		now:        time.Now,
		randFloat:  rand.Float64,
		sleep:      sleepContext,
	}
	b.seedDemoUser()
	return b
}

func (b *Backend) seedDemoUser() {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	b.addAccount(&account{
		id:           uuid.NewString(),
		passwordHash: hash,
		profile: models.Profile{
			Username:   "demo",
			Email:      "demo@truthlens.com",
			Bio:        "Just a curious reader.",
			JoinedDate: "2024-01-15",
		},
	})
}

// addAccount registers the account in both indexes. Callers must hold b.mu
// (or run before the backend is shared).
func (b *Backend) addAccount(acc *account) {
	b.accounts[acc.id] = acc
	b.usernames[acc.profile.Username] = acc.id
}

func (b *Backend) Ping(ctx context.Context) error { return nil }

func (b *Backend) Register(ctx context.Context, email, username, password string) (*models.Session, error) {
	if err := b.simulateLatency(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.usernames[username]; exists {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	acc := &account{
		id:           uuid.NewString(),
		passwordHash: hash,
		profile: models.Profile{
			Username:   username,
			Email:      email,
			JoinedDate: b.now().Format("2006-01-02"),
		},
	}
	b.addAccount(acc)

	return b.newSession(acc)
}

func (b *Backend) Login(ctx context.Context, username, password string) (*models.Session, error) {
	if err := b.simulateLatency(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id, ok := b.usernames[username]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	acc := b.accounts[id]
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return b.newSession(acc)
}

func (b *Backend) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc, err := b.resolve(token)
	if err != nil {
		return nil, err
	}
	return &models.User{Username: acc.profile.Username, Email: acc.profile.Email}, nil
}

func (b *Backend) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc, err := b.resolve(token)
	if err != nil {
		return nil, err
	}
	p := acc.profile
	return &p, nil
}

// UpdateProfile applies the update after a simulated round trip with a
// small transient-failure rate. Field validation is the caller's job; the
// simulator behaves like a backend that trusts its input.
func (b *Backend) UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (*models.Profile, error) {
	if err := b.simulateLatency(ctx); err != nil {
		return nil, err
	}
	if b.randFloat() < updateFailureRate {
		return nil, common.ErrUnavailable
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acc, err := b.resolve(token)
	if err != nil {
		return nil, err
	}

	if upd.Username != "" && upd.Username != acc.profile.Username {
		if _, exists := b.usernames[upd.Username]; exists {
			return nil, ErrUsernameTaken
		}
		delete(b.usernames, acc.profile.Username)
		b.usernames[upd.Username] = acc.id
		acc.profile.Username = upd.Username
	}
	if upd.Email != "" {
		acc.profile.Email = upd.Email
	}
	acc.profile.Bio = upd.Bio
	if upd.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(upd.Password), bcrypt.MinCost)
		if err != nil {
			return nil, err
		}
		acc.passwordHash = hash
	}

	p := acc.profile
	return &p, nil
}

// SendEmailVerification creates a fresh challenge for the account, replacing
// any previous one. Only a bcrypt hash of the code is retained.
func (b *Backend) SendEmailVerification(ctx context.Context, token, newEmail string) (*models.EmailChallenge, error) {
	if err := b.simulateLatency(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acc, err := b.resolve(token)
	if err != nil {
		return nil, err
	}

	code, err := common.MakeVerificationCode()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	ch := &models.EmailChallenge{
		VerificationID: uuid.NewString(),
		Email:          newEmail,
		CodeHash:       string(hash),
		ExpiresAt:      b.now().Add(challengeTTL),
		Attempts:       0,
	}
	b.challenges[acc.id] = ch

	out := *ch
	if b.dev {
		out.DevCode = code
	}
	return &out, nil
}

// VerifyEmail checks the submitted code against the pending challenge.
// The challenge is destroyed on success, on expiry, and after the third
// failed attempt.
func (b *Backend) VerifyEmail(ctx context.Context, token, challengeID, code string) error {
	if err := b.simulateLatency(ctx); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acc, err := b.resolve(token)
	if err != nil {
		return err
	}

	ch, ok := b.challenges[acc.id]
	if !ok {
		return common.ErrChallengeNotFound
	}
	if ch.Expired(b.now()) {
		delete(b.challenges, acc.id)
		return common.ErrChallengeExpired
	}
	if ch.Attempts >= maxCodeAttempts {
		delete(b.challenges, acc.id)
		return common.ErrTooManyAttempts
	}
	if ch.VerificationID != challengeID {
		return common.ErrChallengeNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(ch.CodeHash), []byte(code)) != nil {
		ch.Attempts++
		if ch.Attempts >= maxCodeAttempts {
			delete(b.challenges, acc.id)
			return common.ErrTooManyAttempts
		}
		return fmt.Errorf("%w, %d attempt(s) remaining", common.ErrCodeMismatch, maxCodeAttempts-ch.Attempts)
	}

	delete(b.challenges, acc.id)
	return nil
}

// newSession mints an HS256 token for the account. Callers must hold b.mu.
func (b *Backend) newSession(acc *account) (*models.Session, error) {
	now := b.now()
	claims := jwt.MapClaims{
		"sub":   acc.id,
		"email": acc.profile.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
		"jti":   uuid.NewString(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		return nil, err
	}
	return &models.Session{
		Token: token,
		User:  models.User{Username: acc.profile.Username, Email: acc.profile.Email},
	}, nil
}

// resolve maps a bearer token back to its account. Callers must hold b.mu.
func (b *Backend) resolve(token string) (*account, error) {
	if token == "" {
		return nil, common.ErrNotAuthenticated
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return signingKey, nil
	}, jwt.WithTimeFunc(b.now))
	if err != nil || !parsed.Valid {
		return nil, common.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, common.ErrUnauthorized
	}
	id, _ := claims["sub"].(string)

	acc, ok := b.accounts[id]
	if !ok {
		return nil, common.ErrUnauthorized
	}
	return acc, nil
}

func (b *Backend) simulateLatency(ctx context.Context) error {
	delay := authMinDelay + time.Duration(b.randFloat()*float64(authDelaySpread))
	return b.sleep(ctx, delay)
}
