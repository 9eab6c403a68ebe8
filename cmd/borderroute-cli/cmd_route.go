package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/persistorai/borderroute/client"
)

func newRouteCmd() *cobra.Command {
	var (
		mode   string
		stream bool
	)

	cmd := &cobra.Command{
		Use:   "route <from> <to>",
		Short: "Find all shortest land routes between two countries (names or alpha-3 codes)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.FindOptions{Mode: mode}

			var (
				report *client.RouteReport
				err    error
			)
			if stream {
				report, err = apiClient.Routes.Stream(cmd.Context(), args[0], args[1], opts, func(ev client.RoundEvent) {
					formatRound(cmd.ErrOrStderr(), ev)
				})
			} else {
				report, err = apiClient.Routes.Find(cmd.Context(), args[0], args[1], opts)
			}
			if err != nil {
				if client.IsBadRequest(err) {
					return fmt.Errorf("invalid route request: %w", err)
				}
				return fmt.Errorf("find routes: %w", err)
			}

			if flagFmt == "json" {
				return formatJSON(cmd.OutOrStdout(), report)
			}
			formatReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Lookup mode: api|table|store (default: server setting)")
	cmd.Flags().BoolVar(&stream, "stream", false, "Print search progress round by round")

	return cmd
}
