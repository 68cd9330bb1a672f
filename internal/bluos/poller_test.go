package bluos

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoll_InvalidInterval(t *testing.T) {
	t.Parallel()

	c, err := NewClient("192.168.1.38")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.PollStatus(context.Background(), 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("PollStatus(0) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := c.PollSyncStatus(context.Background(), -time.Second); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("PollSyncStatus(-1s) error = %v, want ErrInvalidArgument", err)
	}
}

func TestPollStatus_ContinuesAcrossFailures(t *testing.T) {
	t.Parallel()

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		if n == 3 {
			http.Error(w, "rebooting", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`<status etag="e"><state>play</state></status>`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	sub, err := c.PollStatus(context.Background(), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("PollStatus returned error: %v", err)
	}
	defer sub.Cancel()

	var notes []Notification
	for len(notes) < 4 {
		select {
		case n, ok := <-sub.Updates():
			if !ok {
				t.Fatalf("stream closed after %d notifications, want 4", len(notes))
			}
			notes = append(notes, n)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out after %d notifications, want 4", len(notes))
		}
	}

	if notes[0].Err != nil || notes[0].Seq != 1 {
		t.Fatalf("note 0 = %+v, want snapshot seq 1", notes[0])
	}
	if notes[1].Err != nil || notes[1].Seq != 2 {
		t.Fatalf("note 1 = %+v, want snapshot seq 2", notes[1])
	}
	if notes[2].Err == nil || notes[2].Snapshot != nil {
		t.Fatalf("note 2 = %+v, want failure notification", notes[2])
	}
	if !errors.Is(notes[2].Err, ErrUnexpectedStatus) {
		t.Fatalf("note 2 error = %v, want ErrUnexpectedStatus", notes[2].Err)
	}
	if notes[2].Seq != 2 {
		t.Fatalf("note 2 seq = %d, want last successful sequence 2", notes[2].Seq)
	}
	if notes[3].Err != nil || notes[3].Seq != 3 {
		t.Fatalf("note 3 = %+v, want snapshot seq 3 after recovery", notes[3])
	}
	if notes[3].Snapshot.Record.Field("state") != "play" {
		t.Fatalf("note 3 record = %v, want normalized status", notes[3].Snapshot.Record.Fields)
	}
	if notes[3].Snapshot.At.IsZero() {
		t.Fatalf("note 3 snapshot has no fetch time")
	}
}

func TestPollStatus_SnapshotsStayOrdered(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<status><state>play</state></status>`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	sub, err := c.PollStatus(context.Background(), time.Millisecond)
	if err != nil {
		t.Fatalf("PollStatus returned error: %v", err)
	}
	defer sub.Cancel()

	var last uint64
	for i := 0; i < 10; i++ {
		n := <-sub.Updates()
		if n.Err != nil {
			t.Fatalf("notification %d failed: %v", i, n.Err)
		}
		if n.Seq != last+1 {
			t.Fatalf("seq = %d after %d, want monotonic increments", n.Seq, last)
		}
		last = n.Seq
	}
}

func TestPollStatus_CancelStopsDelivery(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<status><state>play</state></status>`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	sub, err := c.PollStatus(context.Background(), 5*time.Millisecond)
	if err != nil {
		t.Fatalf("PollStatus returned error: %v", err)
	}

	if n := <-sub.Updates(); n.Err != nil {
		t.Fatalf("first notification failed: %v", n.Err)
	}
	sub.Cancel()

	// Cancel waits for the loop, so the stream must already be closed
	// and nothing further may arrive.
	select {
	case n, ok := <-sub.Updates():
		if ok {
			t.Fatalf("received %+v after Cancel returned", n)
		}
	case <-time.After(time.Second):
		t.Fatalf("stream not closed after Cancel")
	}
}

func TestPollStatus_ParentContextStopsLoop(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<status><state>play</state></status>`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	sub, err := c.PollStatus(ctx, 5*time.Millisecond)
	if err != nil {
		t.Fatalf("PollStatus returned error: %v", err)
	}

	<-sub.Updates()
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-sub.Updates():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("stream not closed after parent context cancellation")
		}
	}
}
