package bluos

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

// commandServer records every request the client sends and answers with
// an empty 200, the way a player acknowledges commands.
func commandServer(t *testing.T) (*Client, *[]*url.URL) {
	t.Helper()
	var got []*url.URL
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := *r.URL
		got = append(got, &u)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c, &got
}

func TestParseBaseURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"192.168.1.38", "http://192.168.1.38:11000"},
		{"192.168.1.38:11000", "http://192.168.1.38:11000"},
		{"player.local:8080", "http://player.local:8080"},
		{"http://192.168.1.38:11000/some/path?x=1", "http://192.168.1.38:11000"},
	}
	for _, tc := range cases {
		u, err := parseBaseURL(tc.in)
		if err != nil {
			t.Fatalf("parseBaseURL(%q) returned error: %v", tc.in, err)
		}
		if u.String() != tc.want {
			t.Fatalf("parseBaseURL(%q) = %q, want %q", tc.in, u.String(), tc.want)
		}
	}

	for _, in := range []string{"", "   ", "http://"} {
		if _, err := parseBaseURL(in); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("parseBaseURL(%q) error = %v, want ErrInvalidArgument", in, err)
		}
	}
}

func TestCommands_EncodeRequests(t *testing.T) {
	t.Parallel()

	c, got := commandServer(t)
	ctx := context.Background()

	steps := []struct {
		run       func() error
		wantPath  string
		wantQuery url.Values
	}{
		{func() error { return c.Play(ctx, PlayOptions{}) }, "/Play", url.Values{}},
		{func() error { return c.Play(ctx, PlayOptions{TrackID: Int(0)}) }, "/Play", url.Values{"id": {"0"}}},
		{func() error { return c.Play(ctx, PlayOptions{URL: "Capture:bluez:bluetooth"}) }, "/Play", url.Values{"url": {"Capture:bluez:bluetooth"}}},
		{func() error { return c.Play(ctx, PlayOptions{Seek: Int(42)}) }, "/Play", url.Values{"seek": {"42"}}},
		{func() error { return c.Pause(ctx) }, "/Pause", url.Values{}},
		{func() error { return c.Skip(ctx) }, "/Skip", url.Values{}},
		{func() error { return c.Back(ctx) }, "/Back", url.Values{}},
		{func() error { return c.Volume(ctx, 40) }, "/Volume", url.Values{"level": {"40"}}},
		{func() error { return c.Repeat(ctx, RepeatTrack) }, "/Repeat", url.Values{"state": {"1"}}},
		{func() error { return c.Repeat(ctx, RepeatOff) }, "/Repeat", url.Values{"state": {"2"}}},
		{func() error { return c.Shuffle(ctx, true) }, "/Shuffle", url.Values{"state": {"1"}}},
		{func() error { return c.Shuffle(ctx, false) }, "/Shuffle", url.Values{"state": {"0"}}},
		{func() error { return c.QueuePlaylist(ctx, "Party time") }, "/Add", url.Values{"playlist": {"Party time"}, "playnow": {"1"}, "service": {"LocalMusic"}}},
	}
	for i, step := range steps {
		if err := step.run(); err != nil {
			t.Fatalf("step %d returned error: %v", i, err)
		}
		u := (*got)[i]
		if u.Path != step.wantPath {
			t.Fatalf("step %d path = %q, want %q", i, u.Path, step.wantPath)
		}
		q := u.Query()
		for k, want := range step.wantQuery {
			if q.Get(k) != want[0] {
				t.Fatalf("step %d query %s = %q, want %q", i, k, q.Get(k), want[0])
			}
		}
		if len(q) != len(step.wantQuery) {
			t.Fatalf("step %d query = %v, want %v", i, q, step.wantQuery)
		}
	}
}

func TestCommands_RejectedBeforeAnyRequest(t *testing.T) {
	t.Parallel()

	c, got := commandServer(t)
	ctx := context.Background()

	cases := []struct {
		name string
		run  func() error
	}{
		{"play id+url", func() error { return c.Play(ctx, PlayOptions{TrackID: Int(5), URL: "x"}) }},
		{"play url+seek", func() error { return c.Play(ctx, PlayOptions{URL: "x", Seek: Int(1)}) }},
		{"play all three", func() error { return c.Play(ctx, PlayOptions{TrackID: Int(1), URL: "x", Seek: Int(2)}) }},
		{"volume low", func() error { return c.Volume(ctx, -1) }},
		{"volume high", func() error { return c.Volume(ctx, 101) }},
		{"repeat unknown", func() error { return c.Repeat(ctx, RepeatMode(9)) }},
		{"empty playlist name", func() error { return c.QueuePlaylist(ctx, "  ") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
	if len(*got) != 0 {
		t.Fatalf("server saw %d requests, want rejection before any I/O", len(*got))
	}

	// The documented boundary values still go through.
	if err := c.Volume(ctx, 0); err != nil {
		t.Fatalf("Volume(0) returned error: %v", err)
	}
	if err := c.Volume(ctx, 100); err != nil {
		t.Fatalf("Volume(100) returned error: %v", err)
	}
}

func TestQueue_BoundsAndDefaults(t *testing.T) {
	t.Parallel()

	var got []*url.URL
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := *r.URL
		got = append(got, &u)
		_, _ = w.Write([]byte(`<playlist length="0"/>`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	if _, err := c.Queue(ctx, 10, 5); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Queue(10,5) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := c.Queue(ctx, -1, 10); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Queue(-1,10) error = %v, want ErrInvalidArgument", err)
	}
	if len(got) != 0 {
		t.Fatalf("server saw %d requests, want rejection before any I/O", len(got))
	}

	if _, err := c.Queue(ctx, 0, 0); err != nil {
		t.Fatalf("Queue(0,0) returned error: %v", err)
	}
	q := got[0].Query()
	if q.Get("start") != "0" || q.Get("end") != "100" {
		t.Fatalf("default queue window = %v, want start=0 end=100", q)
	}
}

func TestReads_FetchAndNormalize(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/RadioBrowse":
			if r.URL.Query().Get("service") != "Capture" {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte(`<radiotime service="Capture"><item text="Bluetooth" URL="Capture%3Abluez%3Abluetooth"/></radiotime>`))
		case "/RadioPresets":
			_, _ = w.Write([]byte(`<radiotime service="TuneIn"><item text="90.8 | DR P1" preset_id="s24860" is_preset="true"/></radiotime>`))
		case "/Playlists":
			_, _ = w.Write([]byte(`<playlists service="LocalMusic"><name>Easy listening</name></playlists>`))
		case "/Status":
			_, _ = w.Write([]byte(`<status etag="a1"><state>play</state><volume>30</volume></status>`))
		case "/SyncStatus":
			_, _ = w.Write([]byte(`<SyncStatus name="Kitchen" brand="Bluesound" volume="30"/>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	inputs, err := c.Inputs(ctx)
	if err != nil {
		t.Fatalf("Inputs returned error: %v", err)
	}
	if items := inputs.List("item"); len(items) != 1 || items[0].Text() != "Bluetooth" {
		t.Fatalf("inputs = %#v, want one Bluetooth item", items)
	}

	presets, err := c.RadioPresets(ctx)
	if err != nil {
		t.Fatalf("RadioPresets returned error: %v", err)
	}
	if items := presets.List("item"); len(items) != 1 || items[0].Field("preset_id") != "s24860" {
		t.Fatalf("presets = %#v, want preset s24860", items)
	}

	playlists, err := c.Playlists(ctx)
	if err != nil {
		t.Fatalf("Playlists returned error: %v", err)
	}
	if names := playlists.List("name"); len(names) != 1 || names[0].Text() != "Easy listening" {
		t.Fatalf("playlists = %#v, want one aliased entry", names)
	}

	status, err := c.Status(ctx)
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if status.Field("state") != "play" {
		t.Fatalf("status = %v, want state=play", status.Fields)
	}

	sync, err := c.SyncStatus(ctx)
	if err != nil {
		t.Fatalf("SyncStatus returned error: %v", err)
	}
	if sync.Field("name") != "Kitchen" {
		t.Fatalf("sync status = %v, want name=Kitchen", sync.Fields)
	}
}

func TestReads_ErrorTaxonomy(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Status":
			http.Error(w, "busy", http.StatusServiceUnavailable)
		case "/SyncStatus":
			_, _ = w.Write([]byte("<not-sync-status/>"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	if _, err := c.Status(ctx); !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("Status error = %v, want ErrUnexpectedStatus", err)
	}
	if _, err := c.SyncStatus(ctx); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("SyncStatus error = %v, want ErrMalformedResponse", err)
	}

	// A dead socket is unreachable, not malformed.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := dead.URL
	dead.Close()
	c2, err := NewClient(addr, WithTimeout(500*time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c2.Status(ctx); !errors.Is(err, ErrUnreachable) {
		t.Fatalf("Status error = %v, want ErrUnreachable", err)
	}
}
