package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/cmd"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/environment"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/logging"
)

func main() {
	fs := afero.NewOsFs()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logging.CreateLogger()
	logger := logging.GetLogger()

	// A local .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Debug("no .env file loaded", "error", err)
	}

	env, err := environment.NewEnvironment(fs)
	if err != nil {
		logger.Error("failed to set up environment", "error", err)
		os.Exit(1)
	}

	setupSignalHandler(cancel, logger)

	rootCmd := cmd.NewRootCommand(fs, ctx, env, logger)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func setupSignalHandler(cancel context.CancelFunc, logger *logging.Logger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		logger.Info("shutting down", "signal", sig)
		cancel()
	}()
}
