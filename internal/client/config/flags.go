package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/truthlens/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (default from Config)
//	-m bool     use the local mock backend instead of HTTP
//	-d bool     development mode (mock exposes email verification codes)
//	-t int      request timeout in seconds (default from Config)
//	-s string   path to the session store database file
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-d", "-t", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	fs.BoolVar(&cfg.Mock, "m", cfg.Mock, "use the local mock backend")
	fs.BoolVar(&cfg.Dev, "d", cfg.Dev, "development mode")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "path to the session store database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
