package exitcode

import (
	"errors"

	"github.com/haldorsen/sinisterwar/cerrs"
	"github.com/haldorsen/sinisterwar/internal/battle"
	"github.com/haldorsen/sinisterwar/internal/protocol"
	"github.com/haldorsen/sinisterwar/internal/roster"
	"github.com/haldorsen/sinisterwar/internal/rulebook"
	"github.com/haldorsen/sinisterwar/internal/simulation"
	"github.com/haldorsen/sinisterwar/internal/teamrt"
)

// Result is a mapped failure: the line to write to stderr and the code to
// exit the process with.
type Result struct {
	Message string
	Code    int
}

// ForController maps an error raised while running the controller binary.
func ForController(err error) Result {
	switch {
	case err == nil:
		return Result{"", 0}
	case isRulebookError(err):
		return Result{"Error reading sinister file", 5}
	case errors.Is(err, rulebook.ErrEmptyWorld):
		return Result{"Error reading sinister file", 5}
	case errors.Is(err, simulation.ErrInvalidPort):
		// Grounded on original_source/controller.c's recruit step: a
		// self-reported port failing valid_port() falls through to the
		// same EXIT_BAD_MESSAGE path as any other malformed message.
		return Result{"Protocol error", 19}
	case isProtocolError(err):
		return Result{"Protocol error", 19}
	default:
		return Result{"System error", 20}
	}
}

// ForTeam maps an error raised while running the team binary.
func ForTeam(err error) Result {
	switch {
	case err == nil:
		return Result{"", 0}
	case isRulebookError(err):
		return Result{"Error reading sinister file", 3}
	case isRosterError(err):
		return Result{"Error reading team file", 5}
	case errors.Is(err, cerrs.ErrControllerLost):
		return Result{"Unexpected loss of controller", 9}
	case errors.Is(err, cerrs.ErrTeamLost):
		return Result{"Unexpected loss of team", 10}
	case errors.Is(err, teamrt.ErrConnectTeam):
		return Result{"Unable to connect to team", 8}
	case isProtocolError(err):
		return Result{"Protocol error", 19}
	default:
		return Result{"System error", 20}
	}
}

func isRulebookError(err error) bool {
	for _, sentinel := range []error{
		rulebook.ErrBlankLine, rulebook.ErrUnexpectedEOF, rulebook.ErrBadSpacing,
		rulebook.ErrWrongFieldCount, rulebook.ErrDuplicateType, rulebook.ErrUnknownType,
		rulebook.ErrDuplicateEffectiveness, rulebook.ErrDuplicateRelation, rulebook.ErrBadRelationToken,
		rulebook.ErrDuplicateAttack, rulebook.ErrDuplicateAgent, rulebook.ErrUnknownAttack,
		rulebook.ErrMissingEffectiveness, rulebook.ErrEmptyWorld,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func isRosterError(err error) bool {
	for _, sentinel := range []error{
		roster.ErrUnexpectedEOF, roster.ErrEmptyLine, roster.ErrUnknownAgent, roster.ErrUnknownAttack,
		roster.ErrIllegalAttack, roster.ErrNoAttacks, roster.ErrBadCoordinate, roster.ErrWrongCoordCount,
		roster.ErrBadDirection, roster.ErrNoDirections,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func isProtocolError(err error) bool {
	return errors.Is(err, cerrs.ErrProtocol) ||
		errors.Is(err, protocol.ErrMalformed) ||
		errors.Is(err, battle.ErrProtocol) ||
		errors.Is(err, simulation.ErrProtocol) ||
		errors.Is(err, teamrt.ErrProtocol)
}
