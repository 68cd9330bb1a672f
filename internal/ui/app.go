package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/five82/blu/internal/bluos"
	"github.com/five82/blu/internal/state"
)

// Options configure the UI runtime.
type Options struct {
	Client    *bluos.Client
	Store     *state.Store
	PollTick  time.Duration
	ThemeName string
}

const (
	defaultUITick = time.Second
	volumeStep    = 5
	gaugeWidth    = 20
)

// Run blocks until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Client == nil || opts.Store == nil {
		return fmt.Errorf("ui requires a client and a data store")
	}
	tick := opts.PollTick
	if tick <= 0 || tick > defaultUITick {
		tick = defaultUITick
	}
	m := model{
		opts:  opts,
		tick:  tick,
		keys:  DefaultKeyMap(),
		theme: ResolveTheme(opts.ThemeName),
		wait:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		ctx:   ctx,
	}
	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		// Interrupted from outside, not a UI failure.
		return nil
	}
	return err
}

type tickMsg time.Time

// commandDoneMsg reports the outcome of a transport command issued from
// a key press.
type commandDoneMsg struct {
	label string
	err   error
}

type model struct {
	opts  Options
	tick  time.Duration
	keys  keyMap
	theme Theme
	wait  spinner.Model
	ctx   context.Context

	snap    state.Snapshot
	width   int
	flash   string // last command feedback line
	started bool
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.wait.Tick, m.refresh())
}

func (m model) refresh() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// command runs one player call off the update loop and reports back.
func (m model) command(label string, run func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return commandDoneMsg{label: label, err: run(ctx)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		m.snap = m.opts.Store.Snapshot()
		m.started = true
		return m, m.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.wait, cmd = m.wait.Update(msg)
		return m, cmd

	case commandDoneMsg:
		if msg.err != nil {
			m.flash = fmt.Sprintf("%s failed: %v", msg.label, msg.err)
		} else {
			m.flash = msg.label
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.opts.Client
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.PlayPause):
		if isPlaying(m.snap.Status.Field("state")) {
			return m, m.command("pause", c.Pause)
		}
		return m, m.command("play", func(ctx context.Context) error {
			return c.Play(ctx, bluos.PlayOptions{})
		})

	case key.Matches(msg, m.keys.Next):
		return m, m.command("skip", c.Skip)

	case key.Matches(msg, m.keys.Back):
		return m, m.command("back", c.Back)

	case key.Matches(msg, m.keys.VolumeUp):
		return m, m.adjustVolume(volumeStep)

	case key.Matches(msg, m.keys.VolumeDown):
		return m, m.adjustVolume(-volumeStep)

	case key.Matches(msg, m.keys.Repeat):
		next := nextRepeatMode(m.snap.Status.Field("repeat"))
		return m, m.command("repeat "+next.String(), func(ctx context.Context) error {
			return c.Repeat(ctx, next)
		})

	case key.Matches(msg, m.keys.Shuffle):
		enable := m.snap.Status.Field("shuffle") != "1"
		label := "shuffle off"
		if enable {
			label = "shuffle on"
		}
		return m, m.command(label, func(ctx context.Context) error {
			return c.Shuffle(ctx, enable)
		})
	}
	return m, nil
}

func (m model) adjustVolume(delta int) tea.Cmd {
	level := currentVolume(m.snap.Status)
	if level < 0 {
		return func() tea.Msg {
			return commandDoneMsg{label: "volume unknown"}
		}
	}
	target := clampVolume(level + delta)
	return m.command(fmt.Sprintf("volume %d%%", target), func(ctx context.Context) error {
		return m.opts.Client.Volume(ctx, target)
	})
}

// nextRepeatMode cycles all → track → off → all, starting from the
// device's reported code.
func nextRepeatMode(code string) bluos.RepeatMode {
	switch code {
	case "0":
		return bluos.RepeatTrack
	case "1":
		return bluos.RepeatOff
	default:
		return bluos.RepeatAll
	}
}

func (m model) View() string {
	var b strings.Builder

	if !m.started || !m.snap.HasStatus {
		line := m.wait.View() + " waiting for player..."
		if m.snap.LastError != nil {
			line = m.theme.Error.Render(fmt.Sprintf("player unreachable: %v", m.snap.LastError))
		}
		return m.theme.Frame.Render(line) + "\n"
	}

	status := m.snap.Status

	b.WriteString(m.theme.Header.Render(stateLabel(status)))
	if m.snap.IsOffline() {
		b.WriteString("  ")
		b.WriteString(m.theme.Error.Render("(offline)"))
	}
	b.WriteString("\n\n")

	t1, t2, t3 := trackLines(status)
	if t1 != "" {
		b.WriteString(m.theme.Track.Render(t1))
		b.WriteString("\n")
	}
	if t2 != "" {
		b.WriteString(m.theme.Artist.Render(t2))
		b.WriteString("\n")
	}
	if t3 != "" {
		b.WriteString(m.theme.Dim.Render(t3))
		b.WriteString("\n")
	}
	if line := serviceLine(status); line != "" {
		b.WriteString(m.theme.Dim.Render(line))
		b.WriteString("\n")
	}

	if level := currentVolume(status); level >= 0 {
		on, off := volumeGauge(level, gaugeWidth)
		b.WriteString("\n")
		b.WriteString(m.theme.Gauge.Render(on))
		b.WriteString(m.theme.GaugeOff.Render(off))
		b.WriteString(m.theme.Dim.Render(fmt.Sprintf(" %d%%", level)))
		b.WriteString("\n")
	}

	if m.flash != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Dim.Render(m.flash))
		b.WriteString("\n")
	}
	if m.snap.LastError != nil && !m.snap.IsOffline() {
		b.WriteString(m.theme.Error.Render(fmt.Sprintf("last poll: %v", m.snap.LastError)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(helpLine(m.keys)))

	return m.theme.Frame.Render(b.String()) + "\n"
}

func helpLine(keys keyMap) string {
	var parts []string
	for _, binding := range keys.helpBindings() {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
