package teamrt

import "github.com/haldorsen/sinisterwar/cerrs"

const (
	// ErrProtocol covers a handshake or controller message that doesn't
	// match the expected shape for the current mode.
	ErrProtocol = cerrs.Error("teamrt: protocol error")
	// ErrConnectTeam is raised when a controller-dispatched challenge
	// can't reach the opposing team's listening port.
	ErrConnectTeam = cerrs.Error("teamrt: unable to connect to team")
)
