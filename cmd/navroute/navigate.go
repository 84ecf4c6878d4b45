package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vitalvas/navroute/navigator"
)

// navigateStep reports one step of a navigate session.
type navigateStep struct {
	Step           string            `json:"step" yaml:"step"`
	Kind           string            `json:"kind" yaml:"kind"`
	Path           string            `json:"path,omitempty" yaml:"path,omitempty"`
	View           string            `json:"view,omitempty" yaml:"view,omitempty"`
	Params         map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	RedirectedFrom []string          `json:"redirected_from,omitempty" yaml:"redirected_from,omitempty"`
	History        int               `json:"history_index" yaml:"history_index"`
	Result         string            `json:"result" yaml:"result"`
	Error          string            `json:"error,omitempty" yaml:"error,omitempty"`
}

var errNavigationFailed = errors.New("some navigations failed")

func newNavigateCmd(a *app) *cobra.Command {
	var (
		output      string
		start       string
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "navigate <path|back|forward|go:N|replace:path>...",
		Short: "Replay a navigation session against the route table",
		Long: "Starts a session at --start and applies every step in order, " +
			"reporting the view and parameters after each one. A path pushes a " +
			"history entry; back, forward and go:N move through the history; " +
			"replace:path overwrites the current entry.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			hist := navigator.NewMemoryHistory(start)

			reg := prometheus.NewRegistry()
			metrics, err := navigator.NewMetrics(reg)
			if err != nil {
				return err
			}

			var last navigator.Event
			nav := navigator.New(a.table,
				navigator.WithHistory(hist),
				navigator.WithLogger(a.logger),
				navigator.WithMetrics(metrics),
				navigator.WithListeners(func(ev navigator.Event) { last = ev }),
			)

			steps := make([]navigateStep, 0, len(args)+1)
			failed := false

			record := func(step string, err error) {
				s := navigateStep{
					Step:    step,
					Kind:    last.Kind.String(),
					History: hist.Index(),
					Result:  navigator.ResultLabel(err),
				}
				if err != nil {
					failed = true
					s.Error = err.Error()
				} else {
					s.Path = last.To.Path
					s.View = last.To.View
					s.Params = last.To.Params
					s.RedirectedFrom = last.To.RedirectedFrom
				}
				steps = append(steps, s)
			}

			record("start", nav.Start(ctx))

			for _, arg := range args {
				var err error

				switch {
				case arg == "back":
					err = nav.Back(ctx)
				case arg == "forward":
					err = nav.Forward(ctx)
				case strings.HasPrefix(arg, "go:"):
					delta, perr := strconv.Atoi(strings.TrimPrefix(arg, "go:"))
					if perr != nil {
						return fmt.Errorf("invalid step %q: %w", arg, perr)
					}
					err = nav.Go(ctx, delta)
				case strings.HasPrefix(arg, "replace:"):
					err = nav.Replace(ctx, strings.TrimPrefix(arg, "replace:"))
				default:
					err = nav.Navigate(ctx, arg)
				}

				record(arg, err)
			}

			if err := writeOutput(cmd.OutOrStdout(), output, steps); err != nil {
				return err
			}

			if metricsFile != "" {
				if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}

			if failed {
				return errNavigationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatJSON, fmt.Sprintf("output format: %s or %s", formatJSON, formatYAML))
	cmd.Flags().StringVar(&start, "start", "/", "initial history location")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write navigation counters to this file in Prometheus text format")

	return cmd
}
