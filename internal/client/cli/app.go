package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/truthlens/internal/client/api"
	"github.com/dmitrijs2005/truthlens/internal/client/config"
	"github.com/dmitrijs2005/truthlens/internal/client/mockapi"
	"github.com/dmitrijs2005/truthlens/internal/client/repositories/session"
	"github.com/dmitrijs2005/truthlens/internal/client/services"
	"github.com/dmitrijs2005/truthlens/internal/common"
	"github.com/dmitrijs2005/truthlens/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	auth    services.AuthService
	profile services.ProfileService
	verify  services.VerificationService
	store   *session.Store
	pinger  api.Pinger
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp wires the whole client: session store, API clients (mock or HTTP,
// chosen once from config), and the services the pages talk to.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewDefault(os.Stderr, logLevel(c))

	db, err := session.InitDatabase(ctx, c.StorePath)
	if err != nil {
		log.Error(ctx, "error initializing session store", "error", err)
		return nil, err
	}

	store := session.NewStore(session.NewSQLiteRepository(db))

	var (
		verifyClient  api.VerificationClient
		authClient    api.AuthClient
		profileClient api.ProfileClient
		pinger        api.Pinger
	)
	if c.Mock {
		backend := mockapi.NewBackend(c.Dev)
		verifyClient = mockapi.NewVerifier()
		authClient, profileClient, pinger = backend, backend, backend
	} else {
		h := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)
		verifyClient, authClient, profileClient, pinger = h, h, h, h
	}

	return &App{
		config:  c,
		auth:    services.NewAuthService(authClient, profileClient, store, log),
		profile: services.NewProfileService(profileClient, store, log),
		verify:  services.NewVerificationService(verifyClient, store, log),
		store:   store,
		pinger:  pinger,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func logLevel(c *config.Config) slog.Level {
	if c.Dev {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func (a *App) Run(ctx context.Context) {
	a.printf("Welcome to TruthLens (type 'help' for commands)\n")

	if err := a.pinger.Ping(ctx); err != nil {
		a.log.Warn(ctx, "backend unreachable", "error", err)
		a.printf("Note: the verification service is currently unreachable.\n")
	}

	// A previous login survives restarts via the session store.
	if u, err := a.store.User(ctx); err == nil {
		a.printf("Signed in as %s\n", u.Username)
	} else if !errors.Is(err, common.ErrNotFound) {
		a.log.Warn(ctx, "could not restore session", "error", err)
	}

	runREPL(ctx, a, a.statusLine, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated(context.Background())
}

func (a *App) statusLine() string {
	ctx := context.Background()
	if u, err := a.store.User(ctx); err == nil && u.Username != "" {
		return fmt.Sprintf("(%s)", u.Username)
	}
	return "(guest)"
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
