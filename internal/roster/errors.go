package roster

import "github.com/haldorsen/sinisterwar/cerrs"

const (
	ErrUnexpectedEOF    = cerrs.Error("team: unexpected end of file")
	ErrEmptyLine        = cerrs.Error("team: empty line where content was expected")
	ErrUnknownAgent     = cerrs.Error("team: unknown agent name")
	ErrUnknownAttack    = cerrs.Error("team: unknown attack name")
	ErrIllegalAttack    = cerrs.Error("team: attack is not legal for this agent")
	ErrNoAttacks        = cerrs.Error("team: member must list at least one attack")
	ErrBadCoordinate    = cerrs.Error("team: coordinate must be a non-negative integer")
	ErrWrongCoordCount  = cerrs.Error("team: expected exactly two coordinates")
	ErrBadDirection     = cerrs.Error("team: direction must be one of N, E, S, W")
	ErrNoDirections     = cerrs.Error("team: direction ring must be non-empty")
)
