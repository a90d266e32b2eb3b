package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/msclient/internal/flagx"
	"github.com/dmitrijs2005/msclient/internal/logging"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   API base URL
//	-t int      request timeout (in seconds)
//	-r int      max retries for idempotent requests
//	-d string   data directory
//	-l string   log level
//	-m string   metrics listen address
//
// os.Args is filtered with flagx.FilterArgs first, so -c/-config and unknown
// flags do not break parsing. Invalid values panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-t", "-r", "-d", "-l", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "u", cfg.BaseURL, "API base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.Uint64Var(&cfg.MaxRetries, "r", cfg.MaxRetries, "max retries for idempotent requests")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address, empty to disable")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name != "t" {
			return
		}
		if *timeout <= 0 {
			panic(fmt.Sprintf("request timeout must be positive, got %d", *timeout))
		}
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	})

	if !logging.ValidLevel(cfg.LogLevel) {
		panic(fmt.Sprintf("unknown log level %q", cfg.LogLevel))
	}
}
