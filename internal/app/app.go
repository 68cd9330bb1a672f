// Package app wires configuration, the player client, the poll
// subscription, and the UI into the interactive blu session.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/five82/blu/internal/bluos"
	"github.com/five82/blu/internal/config"
	"github.com/five82/blu/internal/prefs"
	"github.com/five82/blu/internal/state"
	"github.com/five82/blu/internal/ui"
)

// Options configure the blu TUI session.
type Options struct {
	// Player overrides the configured player address when non-empty.
	Player     string
	ConfigPath string
	PrefsPath  string
	Log        zerolog.Logger
}

// Run boots the now-playing TUI until the context is cancelled or the
// user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	userPrefs := prefs.Load(opts.PrefsPath)

	player := opts.Player
	if player == "" {
		player = cfg.Player
	}
	if player == "" {
		player = userPrefs.Player
	}
	if player == "" {
		return fmt.Errorf("no player configured: pass --player, set BLU_PLAYER, or run blu discover --save")
	}

	client, err := bluos.NewClient(player,
		bluos.WithTimeout(cfg.Timeout),
		bluos.WithLogger(opts.Log),
	)
	if err != nil {
		return fmt.Errorf("init player client: %w", err)
	}

	sub, err := client.PollStatus(ctx, cfg.PollInterval)
	if err != nil {
		return fmt.Errorf("start status poll: %w", err)
	}
	defer sub.Cancel()

	store := &state.Store{}
	go func() {
		for note := range sub.Updates() {
			store.Apply(note)
		}
	}()

	return ui.Run(ctx, ui.Options{
		Client:    client,
		Store:     store,
		PollTick:  cfg.PollInterval,
		ThemeName: userPrefs.Theme,
	})
}
