package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/five82/blu/internal/bluos"
)

// The /Status state values that mean audio is coming out.
func isPlaying(state string) bool {
	switch state {
	case "play", "stream":
		return true
	default:
		return false
	}
}

// currentVolume extracts the volume percent from a status Record. The
// device reports it as a string; anything unparsable reads as -1 so the
// caller can tell "unknown" from "muted".
func currentVolume(rec bluos.Record) int {
	v, ok := rec.Get("volume")
	if !ok {
		return -1
	}
	level, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || level < 0 {
		return -1
	}
	return level
}

// clampVolume keeps a volume adjustment inside the device's range.
func clampVolume(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

// trackLines pulls the three display lines out of a status Record.
// title1/2/3 carry whatever the active service wants shown: track,
// artist and album for local music, station and show for radio.
func trackLines(rec bluos.Record) (string, string, string) {
	return rec.Field("title1"), rec.Field("title2"), rec.Field("title3")
}

// volumeGauge renders a fixed-width bar like ██████░░░░ for the given
// percent. Width is the number of cells, not counting the label.
func volumeGauge(level, width int) (filled, rest string) {
	if width <= 0 || level < 0 {
		return "", ""
	}
	n := level * width / 100
	if n > width {
		n = width
	}
	return strings.Repeat("█", n), strings.Repeat("░", width-n)
}

// stateLabel renders the transport state with repeat/shuffle flags,
// e.g. "playing · repeat track · shuffle".
func stateLabel(rec bluos.Record) string {
	var parts []string

	switch state := rec.Field("state"); state {
	case "play", "stream":
		parts = append(parts, "playing")
	case "pause":
		parts = append(parts, "paused")
	case "stop":
		parts = append(parts, "stopped")
	case "":
		parts = append(parts, "unknown")
	default:
		parts = append(parts, state)
	}

	switch rec.Field("repeat") {
	case "0":
		parts = append(parts, "repeat all")
	case "1":
		parts = append(parts, "repeat track")
	}
	if rec.Field("shuffle") == "1" {
		parts = append(parts, "shuffle")
	}
	return strings.Join(parts, " · ")
}

// serviceLine renders the source line, e.g. "TuneIn · MP3 128 kb/s".
func serviceLine(rec bluos.Record) string {
	var parts []string
	if s := rec.Field("serviceName"); s != "" {
		parts = append(parts, s)
	} else if s := rec.Field("service"); s != "" {
		parts = append(parts, s)
	}
	if f := rec.Field("streamFormat"); f != "" {
		parts = append(parts, f)
	}
	if secs := rec.Field("secs"); secs != "" {
		if total := rec.Field("totlen"); total != "" {
			parts = append(parts, fmt.Sprintf("%ss / %ss", secs, total))
		} else {
			parts = append(parts, secs+"s")
		}
	}
	return strings.Join(parts, " · ")
}
