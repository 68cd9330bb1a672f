package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/blu/internal/bluos"
)

var (
	watchSync     bool
	watchInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the player and print every status change",
	Long: `Poll the player's status once per interval and print one line
per tick. Failures are printed and polling continues; stop with ctrl-c.
With --sync, /SyncStatus is polled instead of /Status.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}
		interval := watchInterval
		if interval <= 0 {
			interval = cfg.PollInterval
		}

		ctx := cmd.Context()
		var sub *bluos.Subscription
		if watchSync {
			sub, err = client.PollSyncStatus(ctx, interval)
		} else {
			sub, err = client.PollStatus(ctx, interval)
		}
		if err != nil {
			return err
		}
		defer sub.Cancel()

		for note := range sub.Updates() {
			if note.Err != nil {
				fmt.Printf("%s  #%d  error: %v\n", formatAge(time.Now()), note.Seq, note.Err)
				continue
			}
			fmt.Printf("%s  #%d  %s\n", formatAge(note.Snapshot.At), note.Seq, watchLine(note.Snapshot.Record))
		}
		return nil
	},
}

// watchLine condenses one snapshot into a single log-style line.
func watchLine(rec bluos.Record) string {
	if name, ok := rec.Get("name"); ok && rec.Field("state") == "" {
		// Sync status: identity rather than transport state.
		return fmt.Sprintf("%s (%s %s) volume=%s group=%s",
			name, rec.Field("brand"), rec.Field("model"), rec.Field("volume"), rec.Field("group"))
	}
	line := rec.Field("state")
	if t1 := rec.Field("title1"); t1 != "" {
		line += "  " + t1
	}
	if t2 := rec.Field("title2"); t2 != "" {
		line += " / " + t2
	}
	if v := rec.Field("volume"); v != "" {
		line += fmt.Sprintf("  vol=%s", v)
	}
	return line
}

func init() {
	watchCmd.Flags().BoolVar(&watchSync, "sync", false, "poll /SyncStatus instead of /Status")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "poll interval (default from config, 1s)")

	rootCmd.AddCommand(watchCmd)
}
