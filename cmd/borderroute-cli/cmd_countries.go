package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCountriesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List countries by area, largest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := apiClient.Routes.Countries(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list countries: %w", err)
			}

			if flagFmt == "json" {
				return formatJSON(cmd.OutOrStdout(), list)
			}

			rows := make([][]string, len(list.Countries))
			for i, c := range list.Countries {
				rows[i] = []string{c.Code, c.Name, strconv.FormatFloat(c.Area, 'f', 0, 64)}
			}
			formatTable(cmd.OutOrStdout(), []string{"CODE", "NAME", "AREA_KM2"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show only the N largest countries (0 = all)")

	return cmd
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := apiClient.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check: %w", err)
			}

			if flagFmt == "json" {
				return formatJSON(cmd.OutOrStdout(), resp)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (version %s, database %s, modes %v)\n",
				resp.Status, resp.Version, resp.Database, resp.Modes)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil // no client needed
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}
}
