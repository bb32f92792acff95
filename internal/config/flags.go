package config

import (
	"flag"
	"os"
	"time"

	"github.com/flixvault/flixvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   DSN of the document store (default from Config)
//	-t int      remote operation timeout in seconds (default from Config)
//	-s string   session token secret
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-t", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "DSN of the document store")
	remoteTimeout := fs.Int("t", int(cfg.RemoteTimeout.Seconds()), "remote operation timeout (in seconds)")
	fs.StringVar(&cfg.TokenSecret, "s", cfg.TokenSecret, "session token secret")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RemoteTimeout = time.Duration(*remoteTimeout) * time.Second
}
