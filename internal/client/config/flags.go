package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
)

// parseFlags populates client Config fields from command-line flags.
//
// Supported flags:
//
//	-s string   API base URL (e.g., "http://localhost:8080")
//	-t int      request timeout, seconds
//	-k string   access token issued by the identity provider
//	-u string   explicit owner id (local development only)
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-t", "-k", "-u"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&config.ServerBaseURL, "s", config.ServerBaseURL, "API base URL")
	requestTimeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&config.AccessToken, "k", config.AccessToken, "access token")
	fs.StringVar(&config.UserID, "u", config.UserID, "owner id (dev only)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
