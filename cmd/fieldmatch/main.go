// Command fieldmatch searches reference tables and standardizes identifiers.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonwraymond/fieldmatch/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, version); err != nil {
		stop()
		os.Exit(1)
	}
}
