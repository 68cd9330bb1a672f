package main

import (
	"github.com/spf13/cobra"
)

var (
	queueStart int
	queueEnd   int
)

var inputsCmd = &cobra.Command{
	Use:   "inputs",
	Short: "List the player's capture inputs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		rec, err := client.Inputs(cmd.Context())
		if err != nil {
			return err
		}
		printRecord(rec)
		return nil
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the saved radio presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		rec, err := client.RadioPresets(cmd.Context())
		if err != nil {
			return err
		}
		printRecord(rec)
		return nil
	},
}

var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "List the saved playlists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		rec, err := client.Playlists(cmd.Context())
		if err != nil {
			return err
		}
		printRecord(rec)
		return nil
	},
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "List the play queue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		rec, err := client.Queue(cmd.Context(), queueStart, queueEnd)
		if err != nil {
			return err
		}
		printRecord(rec)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current playback status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		rec, err := client.Status(cmd.Context())
		if err != nil {
			return err
		}
		printRecord(rec)
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Show the player's identity and grouping state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		rec, err := client.SyncStatus(cmd.Context())
		if err != nil {
			return err
		}
		printRecord(rec)
		return nil
	},
}

func init() {
	queueCmd.Flags().IntVar(&queueStart, "start", 0, "first queue index to list")
	queueCmd.Flags().IntVar(&queueEnd, "end", 0, "last queue index to list (default 100)")

	rootCmd.AddCommand(inputsCmd, presetsCmd, playlistsCmd, queueCmd, statusCmd, syncCmd)
}
