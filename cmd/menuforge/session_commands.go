package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"menuforge/internal/backup"
	"menuforge/internal/session"
)

func newSessionCommand(ctx *commandContext) *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and manage the active intake session",
	}

	sessionCmd.AddCommand(newSessionShowCommand(ctx))
	sessionCmd.AddCommand(newSessionStepCommand(ctx))
	sessionCmd.AddCommand(newSessionResetCommand(ctx))
	sessionCmd.AddCommand(newSessionExportCommand(ctx))
	sessionCmd.AddCommand(newSessionImportCommand(ctx))

	return sessionCmd
}

func newSessionShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the session summary and step gate status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				rec := ws.store.Record()
				out := cmd.OutOrStdout()

				rows := [][]string{
					{"session", rec.SessionID},
					{"created", formatTime(rec.CreatedAt)},
					{"updated", formatTime(rec.LastUpdated)},
					{"current step", strconv.Itoa(rec.CurrentStep)},
					{"reachable step", strconv.Itoa(session.MaxEnterableStep(rec))},
					{"venue", rec.Venue.Name},
					{"items", strconv.Itoa(len(rec.Items))},
					{"narrative approved", yesNo(rec.NarrativeApproved)},
					{"plan", rec.SelectedPlan},
				}
				fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))

				problems := session.Validate(rec)
				if len(problems) == 0 {
					fmt.Fprintln(out, "No validation problems")
					return nil
				}
				fmt.Fprintln(out, "Validation problems:")
				for _, problem := range problems {
					fmt.Fprintf(out, "  - %s\n", problem)
				}
				return ws.store.SetValidationErrors(problems)
			})
		},
	}
}

func newSessionStepCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "step <number>",
		Short: "Move the workflow to a step, subject to the step gate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("step must be a number between %d and %d", session.FirstStep, session.LastStep)
			}
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				if err := ws.store.AdvanceStep(target); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Now on step %d\n", target)
				return nil
			})
		},
	}
}

func newSessionResetCommand(ctx *commandContext) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the session and start a fresh one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to discard the session without --yes")
			}
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				fresh := ws.store.Reset()
				fmt.Fprintf(cmd.OutOrStdout(), "Started fresh session %s\n", fresh.SessionID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm discarding the current session")
	return cmd
}

func newSessionExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the session record to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				data, err := backup.Export(ws.store.Record())
				if err != nil {
					return err
				}
				if err := os.WriteFile(args[0], data, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported session to %s\n", args[0])
				return nil
			})
		},
	}
}

func newSessionImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the session record from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			rec, err := backup.Import(data)
			if err != nil {
				return err
			}
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				if err := ws.store.Replace(rec); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported session %s\n", rec.SessionID)
				return nil
			})
		},
	}
}
