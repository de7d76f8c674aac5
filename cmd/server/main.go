package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyaneshwarpardhi/opsdash/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("opsdash failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:           "opsdash",
		Short:         "Operations dashboard backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config (defaults and OPSDASH_* env when empty)")
	cmd.AddCommand(newServeCmd(&cfgPath), newLayoutCmd(&cfgPath), newConfigCmd(&cfgPath))
	return cmd
}

// loadConfig loads the config and installs the text logger at its level.
func loadConfig(path string) (*config.Loader, error) {
	loader, err := config.NewLoader(path)
	if err != nil {
		return nil, err
	}
	setupLogger(loader.Config())
	return loader, nil
}

func setupLogger(cfg *config.Config) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
}
