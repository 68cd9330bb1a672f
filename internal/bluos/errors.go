package bluos

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Every failure the client surfaces wraps one of these sentinels so
// callers can branch with errors.Is without parsing message strings.
var (
	// ErrInvalidArgument marks a caller contract violation. It is
	// returned before any network I/O happens.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnreachable marks connection, timeout, and resolver failures.
	ErrUnreachable = errors.New("player unreachable")

	// ErrMalformedResponse marks a body that could not be parsed as XML
	// or that lacked the endpoint's expected root element.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrUnexpectedStatus marks a non-2xx HTTP status from the player.
	ErrUnexpectedStatus = errors.New("unexpected http status")
)

// classifyTransport folds the error soup from http.Client.Do into the
// unreachable sentinel. Timeouts, refused connections, and DNS failures
// all land here; the original cause stays wrapped for the message.
func classifyTransport(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	var netErr net.Error
	switch {
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w: request timed out: %v", ErrUnreachable, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: request timed out: %v", ErrUnreachable, err)
	default:
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
}
