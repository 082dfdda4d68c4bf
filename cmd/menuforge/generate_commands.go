package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"menuforge/internal/generate"
	"menuforge/internal/language"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate multilingual item descriptions",
	}

	generateCmd.AddCommand(newGenerateItemCommand(ctx))
	generateCmd.AddCommand(newGenerateAllCommand(ctx))

	return generateCmd
}

// sweepProgress renders per-language progress, rewriting the line on an
// interactive terminal and printing plain lines otherwise.
func sweepProgress(out io.Writer) generate.ProgressFunc {
	interactive := false
	if f, ok := out.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return func(p generate.Progress) {
		name := p.Language
		if info, ok := language.Lookup(p.Language); ok {
			name = info.Name
		}
		if interactive {
			fmt.Fprintf(out, "\r\033[K[%d/%d] %s (%s)", p.Done, p.Total, name, p.Source)
			if p.Done == p.Total {
				fmt.Fprintln(out)
			}
			return
		}
		fmt.Fprintf(out, "[%d/%d] %s (%s)\n", p.Done, p.Total, name, p.Source)
	}
}

func newGenerateItemCommand(ctx *commandContext) *cobra.Command {
	var languagesFlag string

	cmd := &cobra.Command{
		Use:   "item <id>",
		Short: "Generate descriptions for one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				langs, err := resolveLanguages(ws.cfg, languagesFlag)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				orch := ws.orchestrator(sweepProgress(out))
				fallbacks, err := orch.DescribeItem(cmd.Context(), args[0], langs)
				if err != nil {
					return err
				}
				if fallbacks > 0 {
					fmt.Fprintf(out, "Done; %d of %d languages fell back to template text\n", fallbacks, len(langs))
				} else {
					fmt.Fprintf(out, "Done; %d languages generated\n", len(langs))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&languagesFlag, "languages", "", "Comma-separated language codes (defaults to the configured set)")
	return cmd
}

func newGenerateAllCommand(ctx *commandContext) *cobra.Command {
	var languagesFlag string

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Generate descriptions for every item in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				langs, err := resolveLanguages(ws.cfg, languagesFlag)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				progress := sweepProgress(out)
				var lastItem string
				orch := ws.orchestrator(func(p generate.Progress) {
					if p.ItemID != lastItem {
						lastItem = p.ItemID
						if item := ws.store.Record().ItemByID(p.ItemID); item != nil {
							fmt.Fprintf(out, "%s:\n", item.Name)
						}
					}
					progress(p)
				})
				if err := orch.DescribeAll(cmd.Context(), langs); err != nil {
					return err
				}
				fmt.Fprintln(out, "Generation sweep complete")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&languagesFlag, "languages", "", "Comma-separated language codes (defaults to the configured set)")
	return cmd
}
