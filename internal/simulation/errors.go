package simulation

import "github.com/haldorsen/sinisterwar/cerrs"

const (
	// ErrProtocol covers any barrier or recruitment message that doesn't
	// match the expected shape for the simulation's current state.
	ErrProtocol = cerrs.Error("simulation: protocol error")
	// ErrInvalidPort is raised when a recruited team's self-reported port
	// falls outside (0, 65535].
	ErrInvalidPort = cerrs.Error("simulation: invalid port")
)
