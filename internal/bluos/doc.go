// Package bluos is an HTTP client for BluOS network audio players.
//
// # Overview
//
// BluOS players expose their whole interface as ad-hoc HTTP GET
// endpoints returning XML. This package covers three concerns:
//
//   - playback commands (Play, Pause, Skip, Back, Volume, Repeat,
//     Shuffle, QueuePlaylist), which are fire-and-forget: the player
//     returns no meaningful acknowledgment body, so success is a
//     completed round trip with a 2xx status
//   - one-shot reads (Inputs, RadioPresets, Playlists, Queue, Status,
//     SyncStatus), each normalized into a canonical Record
//   - sub-second polling of live state (PollStatus, PollSyncStatus)
//     delivered as a stream of sequence-numbered Snapshots
//
// # Records
//
// The device's XML is inconsistent: some endpoints put values in
// attributes, some in text nodes; a collection of one element parses
// differently from a collection of many; the human-readable label is
// sometimes a text attribute, sometimes the element's character data,
// sometimes a title child. Rather than one struct per payload, every
// response is folded into a Record, a map of scalar fields plus ordered
// sequences of child Records, under three rules driven by a static
// per-endpoint descriptor:
//
//   - the endpoint's root element is unwrapped; a missing root is
//     ErrMalformedResponse, never an empty Record
//   - schema-repeatable tags (item, name, song) always normalize to
//     sequences, even for a one-element collection
//   - every listable entry exposes a "text" label, synthesized from the
//     endpoint's alias field when the device does not send one
//
// # Polling
//
// PollStatus and PollSyncStatus run one read per tick on a fixed
// wall-clock interval. Transport and parse failures are delivered as
// failure notifications and the loop keeps going; the player being
// briefly unreachable during standby or reboot must not kill a status
// feed. Reads never overlap: a slow read defers the next tick.
// Subscription.Cancel is cooperative and terminal.
//
// # Errors
//
// Everything surfaced wraps one of four sentinels: ErrInvalidArgument
// (rejected before any network I/O), ErrUnreachable, and
// ErrMalformedResponse / ErrUnexpectedStatus for broken responses.
// Match with errors.Is. One-shot calls never retry; pollers are the
// only place failures are absorbed, and only by reporting them.
package bluos
