package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
)

var (
	knownFlags = []string{"-a", "-l", "-d", "-t", "-v", "-ephemeral"}
	boolFlags  = []string{"-v", "-ephemeral"}
)

// parseFlags overlays cfg with command-line flags.
//
//	-a string     notes API base URL
//	-l string     callback listener address
//	-d string     SQLite database file
//	-t int        request timeout in seconds
//	-v            debug logging
//	-ephemeral    keep the session in memory only
//
// Unknown arguments (such as -c) are filtered out before parsing.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "notes API base URL")
	fs.StringVar(&cfg.CallbackAddr, "l", cfg.CallbackAddr, "address for the login callback listener")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")
	fs.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "do not persist the session token")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags, boolFlags...)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *timeout < 0 {
		return fmt.Errorf("parse flags: negative request timeout %d", *timeout)
	}

	// -t only replaces the timeout when given, so a sub-second value from
	// JSON survives.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
