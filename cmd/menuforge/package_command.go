package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"menuforge/internal/delivery"
	"menuforge/internal/logging"
	"menuforge/internal/session"
)

func newPackageCommand(ctx *commandContext) *cobra.Command {
	var (
		languagesFlag string
		outputDir     string
		force         bool
	)

	cmd := &cobra.Command{
		Use:   "package",
		Short: "Assemble the delivery package into the export directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				langs, err := resolveLanguages(ws.cfg, languagesFlag)
				if err != nil {
					return err
				}
				rec := ws.store.Record()
				if problems := session.Validate(rec); len(problems) > 0 && !force {
					fmt.Fprintln(cmd.ErrOrStderr(), "Record has validation problems:")
					for _, problem := range problems {
						fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", problem)
					}
					return fmt.Errorf("refusing to package an incomplete record (use --force to override)")
				}

				pkg, err := delivery.Assemble(rec, langs)
				if err != nil {
					return err
				}

				dir := outputDir
				if dir == "" {
					dir = ws.cfg.Paths.ExportDir
				}
				dir = filepath.Join(dir, rec.SessionID)
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create export directory: %w", err)
				}

				files := map[string][]byte{
					"venue.csv":     pkg.VenueCSV,
					"narrative.csv": pkg.NarrativeCSV,
					"items.csv":     pkg.ItemsCSV,
				}
				for name, data := range files {
					if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
						return fmt.Errorf("write %s: %w", name, err)
					}
				}
				if len(pkg.Assets) > 0 {
					assetDir := filepath.Join(dir, "images")
					if err := os.MkdirAll(assetDir, 0o755); err != nil {
						return fmt.Errorf("create image directory: %w", err)
					}
					for itemID, data := range pkg.Assets {
						if err := os.WriteFile(filepath.Join(assetDir, itemID), data, 0o644); err != nil {
							return fmt.Errorf("write image for %s: %w", itemID, err)
						}
					}
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Package assembled in %s\n", dir)
				fmt.Fprintf(out, "  venue.csv, narrative.csv, items.csv, %d images\n", len(pkg.Assets))
				if ws.cfg.Notifications.Generation {
					if err := ws.notifier.NotifyPackageAssembled(cmd.Context(), rec.Venue.Name, rec.SelectedPlan); err != nil {
						ws.logger.Warn("notification failed", logging.Error(err))
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&languagesFlag, "languages", "", "Comma-separated language codes (defaults to the configured set)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Override the export directory")
	cmd.Flags().BoolVar(&force, "force", false, "Package even when validation problems remain")
	return cmd
}
