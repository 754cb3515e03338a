// Package main is the entrypoint of ryt.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ryt/internal/cfg"
	"ryt/internal/domain/logger"

	"github.com/mattn/go-colorable"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	stderr := colorable.NewColorableStderr()
	err := cfg.Execute(ctx, os.Args[1:], cfg.Env{
		In:  os.Stdin,
		Out: colorable.NewColorableStdout(),
		Err: stderr,
	})
	stop()

	if err != nil {
		logger.Pl.E("ryt exiting with error: %v", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
