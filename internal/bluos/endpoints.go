package bluos

import "net/url"

// endpoint describes one read capability of the player: where to fetch
// it and how to normalize what comes back. Descriptors are static; the
// normalizer consumes them instead of hand-patching each response.
type endpoint struct {
	name string // for error messages and poll logging
	path string
	// query carries fixed query parameters. Per-call parameters (queue
	// bounds) are merged in by the client.
	query url.Values
	// root is the element to unwrap. Its absence makes the whole
	// response malformed, never an empty Record.
	root string
	// repeatTags lists the child tags the device schema declares
	// repeatable. These always normalize to a sequence, including when
	// the parser yields a lone node for a one-element collection.
	repeatTags []string
	// textAlias names the source field copied into "text" when the
	// element does not already carry one. Empty means the device sends
	// text itself (inputs, presets) or the endpoint is not listable.
	textAlias string
}

var (
	epInputs = endpoint{
		name:       "inputs",
		path:       "/RadioBrowse",
		query:      url.Values{"service": {"Capture"}},
		root:       "radiotime",
		repeatTags: []string{"item"},
	}
	epRadioPresets = endpoint{
		name:       "radio presets",
		path:       "/RadioPresets",
		root:       "radiotime",
		repeatTags: []string{"item"},
	}
	epPlaylists = endpoint{
		name:       "playlists",
		path:       "/Playlists",
		root:       "playlists",
		repeatTags: []string{"name"},
		textAlias:  "#text",
	}
	epQueue = endpoint{
		name:       "queue",
		path:       "/Playlist",
		root:       "playlist",
		repeatTags: []string{"song"},
		textAlias:  "title",
	}
	epStatus = endpoint{
		name: "status",
		path: "/Status",
		root: "status",
	}
	epSyncStatus = endpoint{
		name: "sync status",
		path: "/SyncStatus",
		root: "SyncStatus",
	}
)

func (ep endpoint) repeatable(tag string) bool {
	for _, t := range ep.repeatTags {
		if t == tag {
			return true
		}
	}
	return false
}
