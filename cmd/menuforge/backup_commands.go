package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"menuforge/internal/logging"
)

func newBackupCommand(ctx *commandContext) *cobra.Command {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Inspect and restore session snapshots",
	}

	backupCmd.AddCommand(newBackupListCommand(ctx))
	backupCmd.AddCommand(newBackupRestoreCommand(ctx))

	return backupCmd
}

func newBackupListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				entries, err := ws.backups.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No snapshots stored")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						entry.Name,
						formatTime(entry.CreatedAt),
						strconv.FormatInt(entry.Size, 10),
					})
				}
				headers := []string{"Name", "Created", "Bytes"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignRight}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
				return nil
			})
		},
	}
}

func newBackupRestoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <name>",
		Short: "Restore the session from a named snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				rec, err := ws.backups.Restore(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := ws.store.Replace(rec); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored session %s from %s\n", rec.SessionID, args[0])
				if ws.cfg.Notifications.Backup {
					if err := ws.notifier.NotifyBackupRestored(cmd.Context(), args[0]); err != nil {
						ws.logger.Warn("notification failed", logging.Error(err))
					}
				}
				return nil
			})
		},
	}
}
