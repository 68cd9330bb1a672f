package bluos

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// BluOS players answer on 11000; the constructor fills it in when
	// the caller gives a bare host or IP.
	defaultPort      = "11000"
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "blu/0.1"

	maxVolume       = 100
	defaultQueueEnd = 100
)

// RepeatMode selects the player's repeat behavior.
type RepeatMode int

const (
	RepeatAll RepeatMode = iota
	RepeatTrack
	RepeatOff
)

// deviceCode returns the numeric code the /Repeat endpoint expects.
func (m RepeatMode) deviceCode() (string, error) {
	switch m {
	case RepeatAll:
		return "0", nil
	case RepeatTrack:
		return "1", nil
	case RepeatOff:
		return "2", nil
	default:
		return "", fmt.Errorf("repeat mode %d: %w", int(m), ErrInvalidArgument)
	}
}

func (m RepeatMode) String() string {
	switch m {
	case RepeatAll:
		return "all"
	case RepeatTrack:
		return "track"
	case RepeatOff:
		return "off"
	default:
		return fmt.Sprintf("repeat(%d)", int(m))
	}
}

// PlayOptions select what /Play should start. At most one field may be
// set; the zero value is the bare resume request. The device API does
// not document precedence between them, so ambiguous combinations are
// rejected instead of silently picking one.
type PlayOptions struct {
	// TrackID starts the queue at the given zero-based track index.
	TrackID *int
	// URL plays a stream URL as returned by RadioPresets or Inputs.
	URL string
	// Seek jumps the given number of seconds into the current track.
	Seek *int
}

// Int is a convenience for building PlayOptions literals.
func Int(v int) *int { return &v }

// Client talks to one BluOS player. It owns its http.Client; nothing in
// this package keeps process-global state. A Client is safe for
// concurrent use: one-shot calls share no mutable state and the poller
// is the sole writer of its own counters.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       zerolog.Logger
}

// Option tweaks a Client at construction time.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Its expiry surfaces as
// ErrUnreachable.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient substitutes the transport wholesale.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger attaches a logger. Without it the client stays silent.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient builds a Client for the player at addr. Accepted forms are
// a bare host or IP, host:port, or a full http URL; a missing port
// defaults to 11000.
func NewClient(addr string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(addr)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL reports the normalized player address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func parseBaseURL(addr string) (*url.URL, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		return nil, fmt.Errorf("player address is empty: %w", ErrInvalidArgument)
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse player address %q: %w", addr, ErrInvalidArgument)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("player address %q has no host: %w", addr, ErrInvalidArgument)
	}
	if u.Port() == "" {
		u.Host = net.JoinHostPort(u.Hostname(), defaultPort)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// Playback commands. Commands never read a response body: the player
// sends no meaningful acknowledgment, so success is a completed round
// trip with a 2xx status.

// Play resumes playback, or starts the track, URL, or seek position in
// opts. Setting more than one option is ErrInvalidArgument.
func (c *Client) Play(ctx context.Context, opts PlayOptions) error {
	set := 0
	values := url.Values{}
	if opts.TrackID != nil {
		set++
		values.Set("id", strconv.Itoa(*opts.TrackID))
	}
	if opts.URL != "" {
		set++
		values.Set("url", opts.URL)
	}
	if opts.Seek != nil {
		set++
		values.Set("seek", strconv.Itoa(*opts.Seek))
	}
	if set > 1 {
		return fmt.Errorf("play accepts at most one of id, url, seek: %w", ErrInvalidArgument)
	}
	return c.command(ctx, "/Play", values)
}

// Pause pauses playback.
func (c *Client) Pause(ctx context.Context) error {
	return c.command(ctx, "/Pause", nil)
}

// Skip advances to the next track.
func (c *Client) Skip(ctx context.Context) error {
	return c.command(ctx, "/Skip", nil)
}

// Back restarts the current track, or steps to the previous one when
// already at the beginning.
func (c *Client) Back(ctx context.Context) error {
	return c.command(ctx, "/Back", nil)
}

// Volume sets the playback level in percent, 0 through 100.
func (c *Client) Volume(ctx context.Context, level int) error {
	if level < 0 || level > maxVolume {
		return fmt.Errorf("volume level %d outside [0,%d]: %w", level, maxVolume, ErrInvalidArgument)
	}
	return c.command(ctx, "/Volume", url.Values{"level": {strconv.Itoa(level)}})
}

// Repeat sets the repeat mode.
func (c *Client) Repeat(ctx context.Context, mode RepeatMode) error {
	code, err := mode.deviceCode()
	if err != nil {
		return err
	}
	return c.command(ctx, "/Repeat", url.Values{"state": {code}})
}

// Shuffle toggles shuffled playback.
func (c *Client) Shuffle(ctx context.Context, enabled bool) error {
	state := "0"
	if enabled {
		state = "1"
	}
	return c.command(ctx, "/Shuffle", url.Values{"state": {state}})
}

// QueuePlaylist puts the named saved playlist on the queue and starts
// playing it. Names come from the text field of Playlists entries.
func (c *Client) QueuePlaylist(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("playlist name is empty: %w", ErrInvalidArgument)
	}
	values := url.Values{
		"playlist": {name},
		"playnow":  {"1"},
		"service":  {"LocalMusic"},
	}
	return c.command(ctx, "/Add", values)
}

// One-shot reads. Each fetches one endpoint and normalizes the body
// into a Record; nothing is retried inside a single call.

// Inputs lists the player's capture inputs (Bluetooth, optical,
// streaming hand-offs). TuneIn and the local library are not included.
func (c *Client) Inputs(ctx context.Context) (Record, error) {
	return c.read(ctx, epInputs, nil)
}

// RadioPresets lists the radio stations saved as favourites.
func (c *Client) RadioPresets(ctx context.Context) (Record, error) {
	return c.read(ctx, epRadioPresets, nil)
}

// Playlists lists the saved playlists of the local library.
func (c *Client) Playlists(ctx context.Context) (Record, error) {
	return c.read(ctx, epPlaylists, nil)
}

// Queue returns the window [start,end) of the play queue. start
// defaults to 0; end <= 0 selects the default window of 100 songs.
func (c *Client) Queue(ctx context.Context, start, end int) (Record, error) {
	if end <= 0 {
		end = defaultQueueEnd
	}
	if start < 0 {
		return Record{}, fmt.Errorf("queue start %d is negative: %w", start, ErrInvalidArgument)
	}
	if end < start {
		return Record{}, fmt.Errorf("queue end %d before start %d: %w", end, start, ErrInvalidArgument)
	}
	values := url.Values{
		"start": {strconv.Itoa(start)},
		"end":   {strconv.Itoa(end)},
	}
	return c.read(ctx, epQueue, values)
}

// SyncStatus reads the player's identity and grouping state. Cheap
// enough to poll every second.
func (c *Client) SyncStatus(ctx context.Context) (Record, error) {
	return c.read(ctx, epSyncStatus, nil)
}

// Status reads the live playback state. Cheap enough to poll every
// second; the fields vary with the active input.
func (c *Client) Status(ctx context.Context) (Record, error) {
	return c.read(ctx, epStatus, nil)
}

func (c *Client) read(ctx context.Context, ep endpoint, extra url.Values) (Record, error) {
	body, err := c.get(ctx, ep.path, mergeValues(ep.query, extra))
	if err != nil {
		return Record{}, err
	}
	return normalizeBody(ep, body)
}

func (c *Client) command(ctx context.Context, path string, values url.Values) error {
	_, err := c.get(ctx, path, values)
	return err
}

func (c *Client) get(ctx context.Context, path string, values url.Values) ([]byte, error) {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path, RawQuery: values.Encode()})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.log.Debug().Str("url", reqURL.String()).Msg("player request")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s returned %d: %w", path, resp.StatusCode, ErrUnexpectedStatus)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(err)
	}
	return body, nil
}

func mergeValues(fixed, extra url.Values) url.Values {
	if len(fixed) == 0 && len(extra) == 0 {
		return nil
	}
	merged := url.Values{}
	for k, vs := range fixed {
		merged[k] = vs
	}
	for k, vs := range extra {
		merged[k] = vs
	}
	return merged
}
