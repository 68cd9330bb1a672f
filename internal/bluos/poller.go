package bluos

import (
	"context"
	"fmt"
	"time"
)

// Snapshot is one successful poll of live player state: the normalized
// Record plus when it was fetched and its position in the stream.
// Snapshots are immutable once published.
type Snapshot struct {
	Seq    uint64
	At     time.Time
	Record Record
}

// Notification is one poll outcome delivered to a subscriber. Exactly
// one of Snapshot and Err is set. Seq carries the snapshot's sequence
// number; failure notifications repeat the last successful one, since
// sequence numbers count snapshots, not ticks.
type Notification struct {
	Seq      uint64
	Snapshot *Snapshot
	Err      error
}

// Subscription is a live handle on a polling loop. The loop is the sole
// writer of its sequence counter; subscribers only receive. A cancelled
// Subscription is terminal: start a new poll for a fresh stream.
type Subscription struct {
	ch     chan Notification
	cancel context.CancelFunc
	done   chan struct{}
}

// Updates streams notifications until the Subscription is cancelled or
// its parent context ends, after which the channel is closed.
func (s *Subscription) Updates() <-chan Notification {
	return s.ch
}

// Cancel stops the loop and waits for it to exit, so no notification is
// delivered after Cancel returns. An in-flight read is left to finish
// and its result dropped rather than aborted mid-transfer, which bounds
// Cancel by the client's request timeout.
func (s *Subscription) Cancel() {
	s.cancel()
	<-s.done
}

// PollStatus polls /Status every interval and streams the results.
func (c *Client) PollStatus(ctx context.Context, interval time.Duration) (*Subscription, error) {
	return c.poll(ctx, interval, epStatus, c.Status)
}

// PollSyncStatus polls /SyncStatus every interval and streams the
// results.
func (c *Client) PollSyncStatus(ctx context.Context, interval time.Duration) (*Subscription, error) {
	return c.poll(ctx, interval, epSyncStatus, c.SyncStatus)
}

type readFunc func(ctx context.Context) (Record, error)

func (c *Client) poll(ctx context.Context, interval time.Duration, ep endpoint, read readFunc) (*Subscription, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("poll interval %v must be positive: %w", interval, ErrInvalidArgument)
	}
	loopCtx, cancel := context.WithCancel(ctx)
	// Unbuffered: a notification is only ever handed straight to a
	// receiver, so nothing can sit queued past cancellation.
	sub := &Subscription{
		ch:     make(chan Notification),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go c.pollLoop(loopCtx, sub, interval, ep, read)
	return sub, nil
}

// pollLoop reads once per tick and publishes the outcome. Failures are
// delivered, not fatal: the player may be briefly unreachable during
// standby or reboot and the stream must ride that out. The ticker wait
// comes after the read, so a read slower than the interval defers the
// next tick instead of overlapping it.
func (c *Client) pollLoop(ctx context.Context, sub *Subscription, interval time.Duration, ep endpoint, read readFunc) {
	defer close(sub.done)
	defer close(sub.ch)

	// Reads run on a context detached from Cancel so an in-flight tick
	// completes naturally; the publish guard below drops its result.
	readCtx := context.WithoutCancel(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var seq uint64
	for {
		rec, err := read(readCtx)
		select {
		case <-ctx.Done():
			return
		default:
		}

		var note Notification
		if err != nil {
			c.log.Debug().Str("endpoint", ep.name).Err(err).Msg("poll tick failed")
			note = Notification{Seq: seq, Err: err}
		} else {
			seq++
			note = Notification{
				Seq:      seq,
				Snapshot: &Snapshot{Seq: seq, At: time.Now(), Record: rec},
			}
		}
		select {
		case sub.ch <- note:
		case <-ctx.Done():
			return
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
