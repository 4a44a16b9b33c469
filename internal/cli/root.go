// Package cli implements the keychord command line.
package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input"
	"github.com/dshills/keychord/internal/trace"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "keychord",
		Short: "keychord - a Vim-style key command dispatcher",
		Long: `keychord resolves Vim-style key sequences ("3 d d", "c i (", "f x")
into editor commands through per-mode command tables.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default is the user config dir)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	cmd.AddCommand(NewMatchCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))

	return cmd
}

// sessionEnv is what a subcommand works with: a session over a trace
// editor, configured from the config file and flags.
type sessionEnv struct {
	cfg     *config.Config
	log     *logrus.Logger
	editor  *trace.Editor
	session *input.Session
}

// setup loads the configuration and opens a session. A non-empty modeName
// overrides the configured initial mode.
func (o *rootOptions) setup(cmd *cobra.Command, modeName string) (*sessionEnv, error) {
	cfg := config.Default()
	path := o.configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if modeName != "" {
		cfg.DefaultMode = modeName
	}

	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	if err := cfg.Log.Configure(logger); err != nil {
		return nil, err
	}

	ed := trace.New()
	s, err := input.NewSession(ed,
		input.WithLogger(logger),
		input.WithInitialMode(cfg.DefaultMode),
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	if err := cfg.ApplyKeys(s); err != nil {
		s.Close()
		return nil, fmt.Errorf("applying key remaps: %w", err)
	}

	return &sessionEnv{cfg: cfg, log: logger, editor: ed, session: s}, nil
}
