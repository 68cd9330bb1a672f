package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/blu/internal/bluos"
)

var (
	playTrack int
	playURL   string
	playSeek  int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Resume playback, or start a track, stream URL, or position",
	Long: `Resume playback after a pause. With one of --track, --url, or
--seek, start that track index, stream URL, or position instead. The
three options are mutually exclusive.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		opts := bluos.PlayOptions{URL: playURL}
		if cmd.Flags().Changed("track") {
			opts.TrackID = bluos.Int(playTrack)
		}
		if cmd.Flags().Changed("seek") {
			opts.Seek = bluos.Int(playSeek)
		}
		return client.Play(cmd.Context(), opts)
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause playback",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		return client.Pause(cmd.Context())
	},
}

var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Skip to the next track",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		return client.Skip(cmd.Context())
	},
}

var backCmd = &cobra.Command{
	Use:   "back",
	Short: "Restart the current track or step back",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		return client.Back(cmd.Context())
	},
}

var volumeCmd = &cobra.Command{
	Use:   "volume <0-100>",
	Short: "Set the playback volume in percent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("volume level %q is not a number", args[0])
		}
		client, _, err := newClient()
		if err != nil {
			return err
		}
		return client.Volume(cmd.Context(), level)
	},
}

var repeatCmd = &cobra.Command{
	Use:       "repeat <all|track|off>",
	Short:     "Set the repeat mode",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"all", "track", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var mode bluos.RepeatMode
		switch args[0] {
		case "all":
			mode = bluos.RepeatAll
		case "track":
			mode = bluos.RepeatTrack
		case "off":
			mode = bluos.RepeatOff
		default:
			return fmt.Errorf("repeat mode %q: want all, track, or off", args[0])
		}
		client, _, err := newClient()
		if err != nil {
			return err
		}
		return client.Repeat(cmd.Context(), mode)
	},
}

var shuffleCmd = &cobra.Command{
	Use:       "shuffle <on|off>",
	Short:     "Toggle shuffled playback",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var enabled bool
		switch args[0] {
		case "on":
			enabled = true
		case "off":
			enabled = false
		default:
			return fmt.Errorf("shuffle %q: want on or off", args[0])
		}
		client, _, err := newClient()
		if err != nil {
			return err
		}
		return client.Shuffle(cmd.Context(), enabled)
	},
}

var addCmd = &cobra.Command{
	Use:   "add <playlist>",
	Short: "Queue a saved playlist and start playing it",
	Long: `Queue the named saved playlist and start playing it now. Names
come from 'blu playlists'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		return client.QueuePlaylist(cmd.Context(), args[0])
	},
}

func init() {
	playCmd.Flags().IntVar(&playTrack, "track", 0, "zero-based queue index to start")
	playCmd.Flags().StringVar(&playURL, "url", "", "stream URL to play (see 'blu presets' and 'blu inputs')")
	playCmd.Flags().IntVar(&playSeek, "seek", 0, "seconds into the current track to jump to")

	rootCmd.AddCommand(playCmd, pauseCmd, skipCmd, backCmd, volumeCmd, repeatCmd, shuffleCmd, addCmd)
}
