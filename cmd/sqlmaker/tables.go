package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// tableInfo is one row of the tables listing.
type tableInfo struct {
	Entity  string   `json:"entity"`
	Table   string   `json:"table"`
	Columns []string `json:"columns,omitempty"`
}

func newTablesCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the entities of a schema file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func runTables(rootOpts *rootOptions, out, errOut io.Writer) error {
	reg, err := rootOpts.registry(rootOpts.logger(errOut))
	if err != nil {
		return err
	}
	ds := reg.Descriptors()
	infos := make([]tableInfo, 0, len(ds))
	for _, name := range slices.Sorted(maps.Keys(ds)) {
		d := ds[name]
		infos = append(infos, tableInfo{Entity: name, Table: d.Table(), Columns: d.Columns()})
	}
	if rootOpts.Format == "json" {
		return json.NewEncoder(out).Encode(infos)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTITY\tTABLE\tCOLUMNS")
	for _, info := range infos {
		columns := "(unchecked)"
		if len(info.Columns) > 0 {
			columns = strings.Join(info.Columns, ", ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Entity, info.Table, columns)
	}
	return tw.Flush()
}
