// Package main provides catalogctl, the catalog administration tool.
//
// Usage:
//
//	catalogctl seed --books 50 --magazines 20
//	catalogctl inspect --format json
//	catalogctl export catalog.bksn
//	catalogctl import catalog.bksn
//
// The server should be stopped first: both backends hold an exclusive
// lock on the data directory.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
