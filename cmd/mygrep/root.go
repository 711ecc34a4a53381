package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"mygrep/internal/config"
	"mygrep/internal/logging"
)

// errRejected makes the process exit with status 1 without printing an
// error, like grep does when nothing matches.
var errRejected = errors.New("rejected")

type app struct {
	fs    afero.Fs
	stdin io.Reader
	cfg   *config.Config
	log   *slog.Logger
}

func newApp() *app {
	return &app{
		fs:    afero.NewOsFs(),
		stdin: os.Stdin,
		cfg:   config.Default(),
		log:   logging.NewNop(),
	}
}

// traceLogger returns the logger to hand to the matcher, or nil when
// tracing is off.
func (a *app) traceLogger(cmd *cobra.Command) *slog.Logger {
	trace := a.cfg.Trace
	if cmd.Flags().Changed("trace") {
		trace, _ = cmd.Flags().GetBool("trace")
	}
	if !trace {
		return nil
	}
	return logging.NewWriter(cmd.ErrOrStderr(), slog.LevelDebug)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "mygrep",
		Short: "A small NFA based regular expression engine",
		Long: `mygrep compiles regular expressions built from literals, concatenation,
| and * into nondeterministic finite automata, removes their lambda arrows
and matches whole strings by tracking every active state at once.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(a.fs, path)
			if err != nil {
				return err
			}
			a.cfg = cfg
			verbose := cfg.Verbose
			if cmd.Flags().Changed("verbose") {
				verbose, _ = cmd.Flags().GetBool("verbose")
			}
			a.log = logging.NewWriter(cmd.ErrOrStderr(), logging.Level(verbose))
			a.log.Debug("config loaded", "path", path, "alphabet", cfg.Alphabet, "max_len", cfg.MaxLen)
			return nil
		},
	}
	root.PersistentFlags().String("config", config.DefaultPath, "path to the YAML config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newPostfixCmd(a),
		newBuildCmd(a),
		newMatchCmd(a),
		newGrepCmd(a),
		newRunCmd(a),
		newCheckCmd(a),
	)
	return root
}
