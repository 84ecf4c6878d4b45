package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vitalvas/navroute/dashboard"
	"github.com/vitalvas/navroute/router"
)

func newRoutesCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the route table in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == formatTable {
				return writeRoutesTable(cmd.OutOrStdout(), a.table)
			}
			return writeOutput(cmd.OutOrStdout(), output, a.table.Manifest())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatTable, fmt.Sprintf("output format: %s, %s or %s", formatTable, formatJSON, formatYAML))

	return cmd
}

func writeRoutesTable(w io.Writer, table *router.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tTEMPLATE\tTARGET\tTITLE")

	err := table.Walk(func(route *router.Route, index int) error {
		info := route.Info()

		target := info.View
		title := dashboard.Title(info.View)
		if info.Redirect != "" {
			target = "-> " + info.Redirect
			title = ""
		}

		_, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", index, dash(info.Name), info.Template, target, dash(title))
		return err
	})
	if err != nil {
		return err
	}

	return tw.Flush()
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
