package protocol

import "github.com/haldorsen/sinisterwar/cerrs"

const (
	// ErrPeerClosed is returned when a read hits EOF with no bytes buffered:
	// the peer closed its side of the connection cleanly.
	ErrPeerClosed = cerrs.Error("protocol: peer closed the connection")
	// ErrMalformed covers every other violation: an unknown tag, a wrong
	// argument count or shape, or a line past MaxLineBytes. Whether a known
	// tag is expected in the caller's current state is checked by the caller.
	ErrMalformed = cerrs.Error("protocol: malformed message")
)
