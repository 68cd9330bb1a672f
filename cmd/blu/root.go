package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/five82/blu/internal/bluos"
	"github.com/five82/blu/internal/config"
	"github.com/five82/blu/internal/prefs"
)

var (
	flagPlayer  string
	flagConfig  string
	flagPrefs   string
	flagVerbose bool

	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "blu",
	Short: "Control and watch BluOS audio players",
	Long: `blu is a command-line remote for BluOS network audio players.

The player address comes from --player, the BLU_PLAYER environment
variable (a .env file works), the config file, or the player saved by
'blu discover --save', in that order of precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if flagVerbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPlayer, "player", "P", "", "player address (host, host:port, or URL)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default ~/.config/blu/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagPrefs, "prefs", "", "prefs file path (default ~/.config/blu/prefs.toml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log player requests")
}

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blu: %v\n", err)
	}
	return err
}

// loadConfig resolves the effective configuration for this invocation.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if cfg.Player == "" {
		cfg.Player = prefs.Load(flagPrefs).Player
	}
	return cfg, nil
}

// newClient builds the player client for this invocation.
func newClient() (*bluos.Client, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, config.Config{}, err
	}
	if cfg.Player == "" {
		return nil, config.Config{}, fmt.Errorf("no player configured: pass --player, set BLU_PLAYER, or run blu discover --save")
	}
	client, err := bluos.NewClient(cfg.Player,
		bluos.WithTimeout(cfg.Timeout),
		bluos.WithLogger(logger),
	)
	if err != nil {
		return nil, config.Config{}, err
	}
	return client, cfg, nil
}

// printRecord dumps a Record's scalar fields sorted by name, then each
// child sequence with its entries' labels.
func printRecord(rec bluos.Record) {
	keys := make([]string, 0, len(rec.Fields))
	for k := range rec.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s: %s\n", k, rec.Fields[k])
	}

	tags := make([]string, 0, len(rec.Lists))
	for tag := range rec.Lists {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		for i, child := range rec.List(tag) {
			label := child.Text()
			if label == "" {
				label = "(unnamed)"
			}
			fmt.Printf("%3d  %s\n", i+1, label)
			if sub := child.Field("subtext"); sub != "" {
				fmt.Printf("     %s\n", sub)
			}
		}
	}
}

func formatAge(t time.Time) string {
	return t.Format("15:04:05")
}
