package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/syssam/sqlmaker/schema"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	Schema  string
	Verbose bool
	Format  string // "json" | "text"
}

var validFormats = []string{"text", "json"}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "sqlmaker",
		Short:         "Render parameterized SQL statements",
		Long:          "Render parameterized SQL statements for the entities declared in a YAML schema file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}
			if opts.Schema == "" {
				return fmt.Errorf("--schema is required")
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Schema, "schema", "s", "", "YAML schema file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log debug events to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(newRenderCommand(opts))
	cmd.AddCommand(newTablesCommand(opts))
	return cmd
}

// logger returns the logger for a command run. Debug events are discarded
// unless --verbose is set.
func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// registry loads the schema file into a new registry.
func (o *rootOptions) registry(logger *slog.Logger) (*schema.Registry, error) {
	reg := schema.NewRegistry(schema.WithRegistryLogger(logger))
	if err := reg.LoadFile(o.Schema); err != nil {
		return nil, err
	}
	return reg, nil
}
