package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var availablePlans = []string{"basic", "standard", "premium"}

func newPlanCommand(ctx *commandContext) *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Select the service plan in the final step",
	}

	planCmd.AddCommand(newPlanSelectCommand(ctx))
	planCmd.AddCommand(newPlanShowCommand(ctx))

	return planCmd
}

func newPlanSelectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "select <plan>",
		Short: "Record the selected plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := strings.ToLower(strings.TrimSpace(args[0]))
			valid := false
			for _, candidate := range availablePlans {
				if plan == candidate {
					valid = true
					break
				}
			}
			if !valid {
				return fmt.Errorf("unknown plan %q (available: %s)", args[0], strings.Join(availablePlans, ", "))
			}
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				if err := ws.store.SelectPlan(plan); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Selected plan %s\n", plan)
				return nil
			})
		},
	}
}

func newPlanShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the selected plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				rec := ws.store.Record()
				out := cmd.OutOrStdout()
				if rec.SelectedPlan == "" {
					fmt.Fprintln(out, "No plan selected")
					return nil
				}
				fmt.Fprintf(out, "Plan: %s (selected %s)\n", rec.SelectedPlan, formatTime(rec.PlanSelectedAt))
				return nil
			})
		},
	}
}
