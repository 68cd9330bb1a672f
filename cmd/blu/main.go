// blu is a command-line remote for BluOS network audio players:
// playback commands, library reads, live status watching, an
// interactive now-playing TUI, and mDNS player discovery.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	// Load a .env file when present so BLU_PLAYER can live next to the
	// shell profile instead of in every invocation.
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := Execute(ctx); err != nil {
		os.Exit(1)
	}
}
