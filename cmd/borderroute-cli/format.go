package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/persistorai/borderroute/client"
)

func formatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func formatTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, width := range widths {
		seps[i] = strings.Repeat("-", width)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

// formatReport prints one line per route, or the failure or no-route notice,
// followed by the request count.
func formatReport(w io.Writer, r *client.RouteReport) {
	switch {
	case !r.OK:
		fmt.Fprintln(w, "Error on request. May be too far away?")
	case len(r.Routes) == 0:
		fmt.Fprintln(w, "No such routes")
	default:
		for _, route := range r.Routes {
			fmt.Fprintf(w, "%s (%d %s)\n", route.Text, route.Hops, plural(route.Hops, "border", "borders"))
		}
	}

	fmt.Fprintf(w, "Done in %d requests\n", r.QueryCount)
}

func formatRound(w io.Writer, ev client.RoundEvent) {
	fmt.Fprintf(w, "round %d %s: expanded %s, frontier %d, %d requests\n",
		ev.Index, ev.Side, strings.Join(ev.Expanded, ","), ev.FrontierSize, ev.QueryCount)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
