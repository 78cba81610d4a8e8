package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN; pass -d= to force the in-memory store
//
// os.Args is filtered to only the flags handled here, avoiding collisions
// with flags owned by other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
