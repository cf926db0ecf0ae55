package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"meetjoin/internal/deps"
)

func newDepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Report the availability of external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, status := range deps.CheckBinaries(deps.Default()) {
				mark := "ok"
				if !status.Available {
					mark = "missing"
					if status.Optional {
						mark = "missing (optional)"
					}
				}
				fmt.Fprintf(out, "%-8s %-8s %s", status.Name, mark, status.Description)
				if status.Detail != "" {
					fmt.Fprintf(out, " (%s)", status.Detail)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
