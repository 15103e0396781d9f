package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ai8future/actual-model/internal/config"
	"github.com/ai8future/actual-model/internal/resolve"
	"github.com/ai8future/actual-model/internal/router"
	"github.com/ai8future/actual-model/internal/status"
	"github.com/ai8future/actual-model/internal/transcript"
)

// Options carries process-level dependencies into the command.
type Options struct {
	Version string
	// Home resolves the user's home directory for the router config.
	// Nil uses os.UserHomeDir.
	Home router.HomeFunc
}

// RootCmd builds the actual-model command. It reads the status payload from
// stdin and prints the resolved model, or nothing when no lookup succeeds.
// Only an unreadable or unparseable payload makes it return an error.
func RootCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actual-model",
		Short: "Print the model actually serving a coding assistant session",
		Long: "Reads the status line JSON payload on stdin and prints the model in use.\n" +
			"Sources, in order: the session transcript, the claude-code-router\n" +
			"default route, then the model reported in the payload.",
		Args:          cobra.NoArgs,
		Version:       opts.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Silence env parsing warnings until the configured level is known
			configureLogger(config.Default().Logging, cmd.ErrOrStderr())

			cfg, loadErr := config.Load()
			if loadErr != nil {
				cfg = config.Default()
			}
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}

			configureLogger(cfg.Logging, cmd.ErrOrStderr())
			if loadErr != nil {
				slog.Warn("config load failed, using defaults", "error", loadErr)
			}

			rec, err := status.Parse(cmd.InOrStdin())
			if err != nil {
				slog.Debug("status payload rejected", "error", err)
				return err
			}

			resolver := NewResolver(cfg, opts.Home)
			res, ok := resolver.Resolve(rec)
			if !ok {
				return nil
			}
			return PrintModel(cmd.OutOrStdout(), res, cfg.Output)
		},
	}

	cmd.Flags().String("router-config", "", "Path to the claude-code-router config (default ~/.claude-code-router/config.json)")
	cmd.Flags().Bool("no-transcript", false, "Skip the transcript lookup")
	cmd.Flags().Bool("no-router", false, "Skip the router config lookup")
	cmd.Flags().String("color", "", "Wrap the model in an ANSI color (red, green, yellow, blue, magenta, cyan, white)")
	cmd.Flags().Bool("show-source", false, "Append the lookup that produced the model")
	cmd.Flags().String("log-level", "", "Diagnostics level on stderr (off, debug, info, warn, error)")
	cmd.Flags().String("log-format", "", "Diagnostics format (text, json)")

	return cmd
}

// applyFlags overrides config values with flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("router-config") {
		cfg.Router.ConfigPath, _ = flags.GetString("router-config")
	}
	if flags.Changed("no-transcript") {
		skip, _ := flags.GetBool("no-transcript")
		cfg.Transcript.Enabled = !skip
	}
	if flags.Changed("no-router") {
		skip, _ := flags.GetBool("no-router")
		cfg.Router.Enabled = !skip
	}
	if flags.Changed("show-source") {
		cfg.Output.ShowSource, _ = flags.GetBool("show-source")
	}
	if flags.Changed("color") {
		name, _ := flags.GetString("color")
		if err := config.ValidateColor(name); err != nil {
			return fmt.Errorf("invalid --color: %w", err)
		}
		cfg.Output.Color = name
	}
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		if err := config.ValidateLevel(level); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		cfg.Logging.Level = level
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format, _ = flags.GetString("log-format")
	}
	return nil
}

// NewResolver builds the lookup chain described by cfg: transcript, router,
// then the payload's own model field, which is always consulted last.
func NewResolver(cfg *config.Config, home router.HomeFunc) *resolve.Resolver {
	var tiers []resolve.Tier
	if cfg.Transcript.Enabled {
		tiers = append(tiers, transcript.Tier{})
	}
	if cfg.Router.Enabled {
		tiers = append(tiers, router.NewReader(cfg.Router.ConfigPath, home))
	}
	tiers = append(tiers, resolve.PayloadTier{})
	return resolve.New(tiers...)
}
