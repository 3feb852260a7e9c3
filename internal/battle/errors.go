package battle

import "github.com/haldorsen/sinisterwar/cerrs"

const (
	// ErrProtocol covers every violation of the battle state machine: a
	// message of the wrong kind arriving for the current state, or an
	// attack naming an agent or attack that isn't the live opposing member.
	ErrProtocol = cerrs.Error("battle: protocol error")
)
