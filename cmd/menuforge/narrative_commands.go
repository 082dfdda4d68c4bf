package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"menuforge/internal/generate"
	"menuforge/internal/language"
	"menuforge/internal/logging"
)

func newNarrativeCommand(ctx *commandContext) *cobra.Command {
	narrativeCmd := &cobra.Command{
		Use:   "narrative",
		Short: "Generate, review, and translate the venue narrative",
	}

	narrativeCmd.AddCommand(newNarrativeGenerateCommand(ctx))
	narrativeCmd.AddCommand(newNarrativeShowCommand(ctx))
	narrativeCmd.AddCommand(newNarrativeApproveCommand(ctx))
	narrativeCmd.AddCommand(newNarrativeTranslateCommand(ctx))

	return narrativeCmd
}

func newNarrativeGenerateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Draft the narrative from the interview answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				orch := ws.orchestrator(nil)
				result, err := orch.GenerateNarrative(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if result.Fallback() {
					fmt.Fprintln(out, "Generation degraded to template text; review carefully before approving.")
				}
				fmt.Fprintln(out, result.Text)
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Draft stored. Approve it with `menuforge narrative approve` once it reads well.")
				if ws.cfg.Notifications.Generation {
					if err := ws.notifier.NotifyNarrativeReady(cmd.Context(), ws.store.Record().Venue.Name); err != nil {
						ws.logger.Warn("notification failed", logging.Error(err))
					}
				}
				return nil
			})
		},
	}
}

func newNarrativeShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the narrative and its approval state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				rec := ws.store.Record()
				out := cmd.OutOrStdout()
				if strings.TrimSpace(rec.Narrative) == "" {
					fmt.Fprintln(out, "No narrative yet. Draft one with `menuforge narrative generate`.")
					return nil
				}
				fmt.Fprintln(out, rec.Narrative)
				fmt.Fprintln(out)
				fmt.Fprintf(out, "Length: %d characters, approved: %s\n", len([]rune(rec.Narrative)), yesNo(rec.NarrativeApproved))
				if rec.NarrativeApproved {
					fmt.Fprintf(out, "Approved at: %s\n", formatTime(rec.NarrativeApprovedAt))
				}
				if len(rec.NarrativeTranslations) > 0 {
					fmt.Fprintf(out, "Translations: %d languages\n", len(rec.NarrativeTranslations))
				}
				return nil
			})
		},
	}
}

func newNarrativeApproveCommand(ctx *commandContext) *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Approve the narrative, optionally replacing it from a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				text := ws.store.Record().Narrative
				if fromFile != "" {
					data, err := os.ReadFile(fromFile)
					if err != nil {
						return fmt.Errorf("read narrative file: %w", err)
					}
					text = strings.TrimSpace(string(data))
				}
				if err := ws.store.ApproveNarrative(text); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Narrative approved")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fromFile, "file", "", "Read the final narrative text from a file")
	return cmd
}

func newNarrativeTranslateCommand(ctx *commandContext) *cobra.Command {
	var languagesFlag string

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Render the approved narrative into the target languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				langs, err := resolveLanguages(ws.cfg, languagesFlag)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				progress := func(p generate.Progress) {
					name := p.Language
					if info, ok := language.Lookup(p.Language); ok {
						name = info.Name
					}
					fmt.Fprintf(out, "[%d/%d] %s (%s)\n", p.Done, p.Total, name, p.Source)
				}
				orch := ws.orchestrator(progress)
				if err := orch.TranslateNarrative(cmd.Context(), langs); err != nil {
					return err
				}
				fmt.Fprintf(out, "Narrative translated into %d languages\n", len(langs))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&languagesFlag, "languages", "", "Comma-separated language codes (defaults to the configured set)")
	return cmd
}
