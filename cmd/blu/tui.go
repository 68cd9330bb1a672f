package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/blu/internal/app"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive now-playing view",
	Long: `Open a terminal UI showing the player's live status, refreshed
at the configured poll interval, with transport keys for play/pause,
skip, back, volume, repeat, and shuffle.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), app.Options{
			Player:     flagPlayer,
			ConfigPath: flagConfig,
			PrefsPath:  flagPrefs,
			Log:        logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
