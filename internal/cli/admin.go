package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <player>",
		Short: "Remove a player's tracked stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if err := client.Delete("/admin/players/" + url.PathEscape(name)); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Removed stats for %s", name))
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	var player, category string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset stats for one player or everyone",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"category": category}
			path := "/admin/reset"
			if player != "" {
				path = "/admin/players/" + url.PathEscape(player) + "/reset"
			}

			var result ResetResult
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "Reset only this player")
	cmd.Flags().StringVar(&category, "category", "ALL", "Stat category to reset")

	return cmd
}

func newWipeCmd() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete every tracked player record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("wipe deletes all player records; re-run with --yes to confirm")
			}

			var result WipeResult
			if err := client.Post("/admin/wipe", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm the wipe")

	return cmd
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List resettable stat categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []CategoryEntry

			if err := client.Get("/admin/categories", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
