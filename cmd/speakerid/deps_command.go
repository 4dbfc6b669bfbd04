package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"speakerid/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Check availability of external tools and models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			statuses := deps.Check(deps.Requirements(cfg))
			if jsonOutput {
				if err := writeJSON(cmd, statuses); err != nil {
					return err
				}
			} else {
				rows := make([][]string, 0, len(statuses))
				for _, s := range statuses {
					state := "ok"
					if !s.Available {
						state = s.Detail
					}
					rows = append(rows, []string{s.Name, s.Path, state})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Dependency", "Path", "Status"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
			}
			if !deps.AllAvailable(statuses) {
				return errors.New("missing required dependencies")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit dependency status as JSON")
	return cmd
}
