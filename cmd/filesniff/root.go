package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gobeaver/filesniff"
	_ "github.com/gobeaver/filesniff/driver/local"
	_ "github.com/gobeaver/filesniff/driver/memory"
)

// errSomeFailed is returned after every path has been tried when at least
// one of them could not be read.
var errSomeFailed = errors.New("some paths could not be classified")

type rootOptions struct {
	prefix   string
	logLevel string
	rules    string
	driver   string
	root     string
	json     bool
}

type detection struct {
	Path  string `json:"path"`
	Type  string `json:"type,omitempty"`
	Stage string `json:"stage,omitempty"`
	Error string `json:"error,omitempty"`
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "filesniff [paths...]",
		Short: "Detect content types from leading bytes",
		Long: `filesniff prints the content type of each named file, detected from
its first 512 bytes and never from its name or extension.

Use "-" to read from standard input. Configuration is read from
BEAVER_FILESNIFF_* environment variables unless --prefix is given.`,
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSniffer(opts, stderr)
			if err != nil {
				return err
			}
			return runDetect(cmd.Context(), s, opts, args, stdin, stdout, stderr)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.prefix, "prefix", "", "Environment variable prefix (default BEAVER_)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Logging level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.rules, "rules", "", "YAML rule file replacing the built-in table")
	cmd.Flags().StringVar(&opts.driver, "driver", "", "Read paths through a storage driver (local, memory)")
	cmd.Flags().StringVar(&opts.root, "root", "", "Root directory for the local driver")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print one JSON object per path")

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.AddCommand(newRulesCmd(opts, stdout, stderr))

	return cmd
}

// newSniffer loads the configuration and applies flag overrides.
func newSniffer(opts *rootOptions, stderr io.Writer) (*filesniff.Sniffer, error) {
	var (
		cfg *filesniff.Config
		err error
	)
	if opts.prefix != "" {
		cfg, err = filesniff.WithPrefix(opts.prefix).Config()
	} else {
		cfg, err = filesniff.GetConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.rules != "" {
		cfg.RulesFile = opts.rules
	}
	if opts.driver != "" {
		cfg.Driver = opts.driver
	}
	if opts.root != "" {
		cfg.LocalBasePath = opts.root
	}

	logger, err := filesniff.NewLogger(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	return filesniff.New(cfg, filesniff.WithLogger(logger))
}

func runDetect(ctx context.Context, s *filesniff.Sniffer, opts *rootOptions, paths []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	enc := json.NewEncoder(stdout)
	failed := false

	for _, path := range paths {
		r, err := detect(ctx, s, opts, path, stdin)

		d := detection{Path: path}
		if err != nil {
			failed = true
			d.Error = err.Error()
		} else {
			d.Type = r.Type()
			d.Stage = r.Stage()
		}

		if opts.json {
			if err := enc.Encode(d); err != nil {
				return err
			}
			continue
		}
		if d.Error != "" {
			fmt.Fprintf(stderr, "%s: %s\n", path, d.Error)
			continue
		}
		fmt.Fprintf(stdout, "%s: %s\n", path, d.Type)
	}

	if failed {
		return errSomeFailed
	}
	return nil
}

func detect(ctx context.Context, s *filesniff.Sniffer, opts *rootOptions, path string, stdin io.Reader) (*filesniff.Result, error) {
	switch {
	case path == "-":
		return s.SniffReader(ctx, stdin)
	case opts.driver != "":
		return s.SniffPath(ctx, path)
	default:
		return s.SniffFile(ctx, path)
	}
}
