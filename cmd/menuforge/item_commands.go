package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"menuforge/internal/generate"
	"menuforge/internal/session"
)

func newItemCommand(ctx *commandContext) *cobra.Command {
	itemCmd := &cobra.Command{
		Use:   "item",
		Short: "Manage menu items",
	}

	itemCmd.AddCommand(newItemAddCommand(ctx))
	itemCmd.AddCommand(newItemListCommand(ctx))
	itemCmd.AddCommand(newItemUpdateCommand(ctx))
	itemCmd.AddCommand(newItemRemoveCommand(ctx))
	itemCmd.AddCommand(newItemFeatureCommand(ctx))
	itemCmd.AddCommand(newItemReorderCommand(ctx))

	return itemCmd
}

func newItemAddCommand(ctx *commandContext) *cobra.Command {
	var (
		price     int
		category  string
		notes     string
		rating    int
		imagePath string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a menu item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item := session.Item{
				Name:        strings.TrimSpace(args[0]),
				Price:       price,
				Category:    category,
				Description: notes,
				Rating:      rating,
			}
			if imagePath != "" {
				data, err := os.ReadFile(imagePath)
				if err != nil {
					return fmt.Errorf("read image: %w", err)
				}
				item.Image = data
			}
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				stored, err := ws.store.AddItem(item)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added item %s (%s)\n", stored.Name, stored.ID)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&price, "price", 0, "Price in JPY")
	cmd.Flags().StringVar(&category, "category", "", "Menu category")
	cmd.Flags().StringVar(&notes, "notes", "", "Operator notes fed to generation")
	cmd.Flags().IntVar(&rating, "rating", 1, "House recommendation level (1-5)")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to an item photo")
	return cmd
}

func newItemListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List menu items in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				rec := ws.store.Record()
				langs := ws.cfg.Generation.Languages
				rows := make([][]string, 0, len(rec.Items))
				for i, item := range rec.OrderedItems() {
					featured := ""
					if item.ID == rec.FeaturedItemID {
						featured = "*"
					}
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						featured,
						item.Name,
						strconv.Itoa(item.Price),
						item.Category,
						strconv.Itoa(item.Rating),
						string(generate.ItemState(rec, item.ID, langs)),
						item.ID,
					})
				}
				headers := []string{"#", "", "Name", "Price", "Category", "Rating", "Content", "ID"}
				aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft, alignLeft}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
				return nil
			})
		},
	}
}

func newItemUpdateCommand(ctx *commandContext) *cobra.Command {
	var (
		name     string
		price    int
		category string
		notes    string
		rating   int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update item fields; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				rec := ws.store.Record()
				item := rec.ItemByID(args[0])
				if item == nil {
					return fmt.Errorf("no item with id %s", args[0])
				}
				updated := *item
				if cmd.Flags().Changed("name") {
					updated.Name = name
				}
				if cmd.Flags().Changed("price") {
					updated.Price = price
				}
				if cmd.Flags().Changed("category") {
					updated.Category = category
				}
				if cmd.Flags().Changed("notes") {
					updated.Description = notes
				}
				if cmd.Flags().Changed("rating") {
					updated.Rating = rating
				}
				if err := ws.store.UpdateItem(updated); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated item %s\n", updated.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().IntVar(&price, "price", 0, "Price in JPY")
	cmd.Flags().StringVar(&category, "category", "", "Menu category")
	cmd.Flags().StringVar(&notes, "notes", "", "Operator notes fed to generation")
	cmd.Flags().IntVar(&rating, "rating", 0, "House recommendation level (1-5)")
	return cmd
}

func newItemRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an item and its generated content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				if err := ws.store.RemoveItem(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed item %s\n", args[0])
				return nil
			})
		},
	}
}

func newItemFeatureCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "feature <id>",
		Short: "Mark an item as the featured dish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				if err := ws.store.SetFeaturedItem(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Featured item %s\n", args[0])
				return nil
			})
		},
	}
}

func newItemReorderCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <id> [<id> ...]",
		Short: "Set the display order; every item must be listed exactly once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				if err := ws.store.ReorderItems(args); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Display order updated")
				return nil
			})
		},
	}
}
