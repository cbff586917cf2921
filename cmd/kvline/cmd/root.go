package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/KimNorgaard/go-kvline/internal/config"
	"github.com/KimNorgaard/go-kvline/internal/logger"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type ctxKey int

const configCtxKey ctxKey = iota

// errLinesFailed is returned after failures have already been reported.
var errLinesFailed = errors.New("one or more lines failed to parse")

// NewRootCmd builds the kvline command tree.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "kvline",
		Short:         "Parse key=value lines",
		Long:          "kvline parses lines of whitespace-separated key=value pairs and prints them as text, JSON or YAML.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			log, err := logger.Initialize(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel, color.NoColor)
			if err != nil {
				return err
			}
			log.Debug("configuration loaded",
				"strict", cfg.Strict(),
				"allowed_keys", cfg.AllowedKeys,
				"output", cfg.Output,
				"jobs", cfg.Jobs)
			cmd.SetContext(context.WithValue(cmd.Context(), configCtxKey, cfg))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/kvline/kvline.yaml)")
	root.PersistentFlags().String("log-format", "text", "log format: text or json")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(newParseCmd(), newVersionCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errLinesFailed) {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
		}
		os.Exit(1)
	}
}

func configFromContext(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value(configCtxKey).(*config.Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("config not found in context")
	}
	return cfg, nil
}
