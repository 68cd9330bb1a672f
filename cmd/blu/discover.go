package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/blu/internal/bluos"
	"github.com/five82/blu/internal/discover"
	"github.com/five82/blu/internal/prefs"
)

var (
	discoverTimeout time.Duration
	discoverSave    bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find BluOS players on the local network",
	Long: `Browse mDNS for BluOS players, probe each candidate's
/SyncStatus, and list the ones that answered. With --save, the first
reachable player is written to the prefs file and used by later
invocations that do not specify a player.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		candidates, err := discover.Players(ctx, discoverTimeout, logger)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			return fmt.Errorf("no players found on the network")
		}

		var saved bool
		for _, url := range candidates {
			rec, err := probePlayer(ctx, url)
			if err != nil {
				logger.Debug().Str("player", url).Err(err).Msg("probe failed")
				fmt.Printf("%s  (unreachable)\n", url)
				continue
			}
			fmt.Printf("%s  %s (%s %s)\n", url, rec.Field("name"), rec.Field("brand"), rec.Field("model"))
			if discoverSave && !saved {
				p := prefs.Load(flagPrefs)
				p.Player = url
				if err := prefs.Save(flagPrefs, p); err != nil {
					return fmt.Errorf("save prefs: %w", err)
				}
				fmt.Printf("saved as default player\n")
				saved = true
			}
		}
		return nil
	},
}

// probePlayer verifies a discovered address actually answers the BluOS
// API before it gets shown or saved.
func probePlayer(ctx context.Context, url string) (bluos.Record, error) {
	client, err := bluos.NewClient(url,
		bluos.WithTimeout(3*time.Second),
		bluos.WithLogger(logger),
	)
	if err != nil {
		return bluos.Record{}, err
	}
	return client.SyncStatus(ctx)
}

func init() {
	discoverCmd.Flags().DurationVar(&discoverTimeout, "timeout", 5*time.Second, "how long to browse for players")
	discoverCmd.Flags().BoolVar(&discoverSave, "save", false, "remember the first reachable player")

	rootCmd.AddCommand(discoverCmd)
}
