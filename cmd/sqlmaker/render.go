package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syssam/sqlmaker/maker"
)

type renderOptions struct {
	Entity   string
	Op       string
	Columns  []string
	Where    []string
	Limit    int
	HasLimit bool // --limit was given
	All      bool
}

func newRenderCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a statement for an entity",
		Long: `Render a statement for an entity and print its text and arguments.

Each --where flag adds an equality predicate of the form column=value.
Column and field names are both accepted. Integer values are bound as
integers, everything else as strings.`,
		Example: `  sqlmaker render -s schema.yaml --entity user --columns id,name --where name=a8m --limit 10
  sqlmaker render -s schema.yaml --entity user --op delete --where id=1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.HasLimit = cmd.Flags().Changed("limit")
			return runRender(rootOpts, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.Entity, "entity", "e", "", "entity name")
	cmd.Flags().StringVar(&opts.Op, "op", "select", "statement kind (select|count|delete)")
	cmd.Flags().StringSliceVar(&opts.Columns, "columns", nil, "selected columns (default all)")
	cmd.Flags().StringArrayVarP(&opts.Where, "where", "w", nil, "equality predicate column=value (repeatable)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "row limit for select (default none)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "allow delete without predicates")
	_ = cmd.MarkFlagRequired("entity")
	return cmd
}

func runRender(rootOpts *rootOptions, opts *renderOptions, out, errOut io.Writer) error {
	logger := rootOpts.logger(errOut)
	reg, err := rootOpts.registry(logger)
	if err != nil {
		return err
	}
	r, err := opts.renderer()
	if err != nil {
		return err
	}
	b := maker.New(r, maker.WithResolver(reg), maker.WithLogger(logger)).Bind(opts.Entity)
	for _, w := range opts.Where {
		column, value, ok := strings.Cut(w, "=")
		if !ok || column == "" {
			return fmt.Errorf("invalid --where %q: want column=value", w)
		}
		b.Where(maker.EQ(b.C(column), parseValue(value)))
	}
	st, err := b.Statement()
	if err != nil {
		return err
	}
	if rootOpts.Format == "json" {
		return json.NewEncoder(out).Encode(st)
	}
	args, err := json.Marshal(st.Args)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, st.SQL)
	fmt.Fprintln(out, string(args))
	return nil
}

func (o *renderOptions) renderer() (maker.Renderer, error) {
	switch o.Op {
	case "select":
		s := maker.Select(o.Columns...)
		if o.HasLimit {
			s.Limit(o.Limit)
		}
		return s, nil
	case "count":
		return maker.Count(), nil
	case "delete":
		d := maker.Delete()
		if o.All {
			d.All()
		}
		return d, nil
	default:
		return nil, fmt.Errorf("invalid --op %q: must be one of select, count, delete", o.Op)
	}
}

func parseValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}
