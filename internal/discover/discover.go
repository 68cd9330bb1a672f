// Package discover finds BluOS players on the local network.
//
// BluOS devices announce themselves over mDNS under a handful of
// service types depending on model generation, so all of them are
// browsed and the results deduplicated into candidate player URLs.
// Discovery is best-effort: it reports what answered within the
// timeout, and reachability is the caller's problem (a probe against
// /SyncStatus is the usual follow-up).
package discover

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/mdns"
	"github.com/rs/zerolog"
)

// serviceTypes are the mDNS services BluOS hardware registers.
var serviceTypes = []string{"_musc._tcp", "_musp._tcp", "_mush._tcp"}

const defaultTimeout = 5 * time.Second

// Players browses the local network and returns candidate player URLs
// in http://ip:port form, deduplicated, in discovery order.
func Players(ctx context.Context, timeout time.Duration, log zerolog.Logger) ([]string, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	entries := make(chan *mdns.ServiceEntry, 16)
	go func() {
		defer close(entries)
		per := timeout / time.Duration(len(serviceTypes))
		for _, service := range serviceTypes {
			err := mdns.Query(&mdns.QueryParam{
				Service: service,
				Domain:  "local",
				Timeout: per,
				Entries: entries,
			})
			if err != nil {
				log.Debug().Str("service", service).Err(err).Msg("mdns query failed")
			}
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var players []string
	seen := make(map[string]bool)
	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return players, nil
			}
			url, ok := entryURL(entry)
			if !ok || seen[url] {
				continue
			}
			log.Debug().Str("player", url).Str("host", entry.Host).Msg("discovered player")
			seen[url] = true
			players = append(players, url)
		case <-ctx.Done():
			return players, nil
		}
	}
}

// entryURL turns one mDNS answer into a player URL. Entries without an
// IPv4 address are skipped; BluOS firmware advertises v4.
func entryURL(entry *mdns.ServiceEntry) (string, bool) {
	if entry == nil || entry.AddrV4 == nil || entry.Port == 0 {
		return "", false
	}
	return fmt.Sprintf("http://%s:%d", entry.AddrV4, entry.Port), true
}
