package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/textdesk/internal/flagx"
)

var knownFlags = []string{"-e", "-k", "-s", "-d", "-a", "-o", "-b", "-g", "-x", "-u", "-p", "-l"}

// parseFlags populates Config fields from command-line flags (see package doc).
//
// Only the flags listed in knownFlags are looked at, so -c/-config and flags of
// other components never make parsing fail. Invalid input panics.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointBaseURL, "e", cfg.EndpointBaseURL, "endpoint base URL")
	fs.StringVar(&cfg.EndpointSecret, "k", cfg.EndpointSecret, "endpoint token secret")
	fs.StringVar(&cfg.StoreDriver, "s", cfg.StoreDriver, "draft store driver (sqlite, postgres, redis)")
	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "draft store DSN")
	fs.StringVar(&cfg.WebAddr, "a", cfg.WebAddr, "web form listen address")
	fs.StringVar(&cfg.ExportDir, "o", cfg.ExportDir, "export directory")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3Endpoint, "x", cfg.S3Endpoint, "S3 base endpoint")
	fs.StringVar(&cfg.S3User, "u", cfg.S3User, "S3 access key")
	fs.StringVar(&cfg.S3Password, "p", cfg.S3Password, "S3 secret key")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
