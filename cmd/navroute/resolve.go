package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitalvas/navroute/navigator"
	"github.com/vitalvas/navroute/router"
)

// resolveResult is one resolved path in the resolve output.
type resolveResult struct {
	Path   string            `json:"path" yaml:"path"`
	Match  *router.MatchInfo `json:"match,omitempty" yaml:"match,omitempty"`
	Result string            `json:"result" yaml:"result"`
	Error  string            `json:"error,omitempty" yaml:"error,omitempty"`
}

var errUnresolved = errors.New("some paths did not resolve")

func newResolveCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Resolve paths against the route table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]resolveResult, 0, len(args))
			failed := false

			for _, p := range args {
				res := resolveResult{Path: p}

				m, err := a.table.Resolve(p)
				res.Result = navigator.ResultLabel(err)
				if err != nil {
					failed = true
					res.Error = err.Error()
				} else {
					info := m.Info()
					res.Match = &info
				}

				results = append(results, res)
			}

			if err := writeOutput(cmd.OutOrStdout(), output, results); err != nil {
				return err
			}

			if failed {
				return errUnresolved
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatJSON, fmt.Sprintf("output format: %s or %s", formatJSON, formatYAML))

	return cmd
}
