package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	cliplugins "mcast/internal/cli_plugins"
	"mcast/internal/presets"
	"mcast/internal/session"
	"mcast/pkg/cli"
)

const defaultPresetsPath = "presets.db"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	presetsPath := os.Getenv("PRESETS_PATH")
	if presetsPath == "" {
		presetsPath = defaultPresetsPath
	}

	store, err := presets.NewStore(presets.Config{Path: presetsPath})
	if err != nil {
		return fmt.Errorf("failed to open presets store: %w", err)
	}
	defer store.Close()

	// the CLI prints its own output; keep engine logs out of the way
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sess := session.New(log, nil)

	c := cli.NewCLI("mcast", "LAN multicast presence and messaging")
	c.RegisterPlugin(ctx, cliplugins.NewRunCommand(sess, store))
	c.RegisterPlugin(ctx, cliplugins.NewPresetCommand(store))

	return c.Run()
}
