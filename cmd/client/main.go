package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"todoapi/internal/cli/commands"
	"todoapi/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// env + flags
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	if exitCode == 0 {
		return
	}
	os.Exit(exitCode)
}

func printVersion() {
	fmt.Printf("Todo CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
