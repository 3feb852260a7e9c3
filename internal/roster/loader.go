package roster

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/haldorsen/sinisterwar/internal/definitions"
)

const maxLineBytes = 64 * 1024

var validDirections = map[byte]bool{'N': true, 'E': true, 'S': true, 'W': true}

// Load parses a team file into a Team: a name line, MaxTeamPlayers member
// lines, one coordinate line, and one direction line. Coordinates are
// validated as non-negative but are not clamped to any grid here; that's
// the simulation's job.
func Load(name string, r io.Reader, defs *definitions.Definitions_t, debug bool) (*Team, error) {
	debugp := func(format string, args ...any) {
		if debug {
			log.Printf("[roster] %s: "+format, append([]any{name}, args...)...)
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 4096), maxLineBytes)

	nextLine := func() (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", ErrUnexpectedEOF
		}
		line := scanner.Text()
		if line == "" {
			return "", ErrEmptyLine
		}
		return line, nil
	}

	teamName, err := nextLine()
	if err != nil {
		return nil, err
	}

	team := &Team{Name: teamName}
	for i := 0; i < MaxTeamPlayers; i++ {
		line, err := nextLine()
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("member %d: %w", i+1, ErrNoAttacks)
		}
		agentName := fields[0]
		agent := defs.Agent(agentName)
		if agent == nil {
			return nil, fmt.Errorf("member %d: %q: %w", i+1, agentName, ErrUnknownAgent)
		}
		var attacks []*definitions.Attack_t
		for _, attackName := range fields[1:] {
			attack := defs.Attack(attackName)
			if attack == nil {
				return nil, fmt.Errorf("member %d: %q: %w", i+1, attackName, ErrUnknownAttack)
			}
			if !agent.LegalAttack(attack) {
				return nil, fmt.Errorf("member %d: %q not legal for %q: %w", i+1, attackName, agentName, ErrIllegalAttack)
			}
			attacks = append(attacks, attack)
		}
		team.Members[i] = NewMember(agent, attacks)
		debugp("member %d: agent %q, %d attacks", i+1, agentName, len(attacks))
	}

	coordLine, err := nextLine()
	if err != nil {
		return nil, err
	}
	coordFields := strings.Fields(coordLine)
	if len(coordFields) != 2 {
		return nil, ErrWrongCoordCount
	}
	x, err := parseNonNegative(coordFields[0])
	if err != nil {
		return nil, err
	}
	y, err := parseNonNegative(coordFields[1])
	if err != nil {
		return nil, err
	}
	team.X, team.Y = x, y
	debugp("position (%d, %d)", x, y)

	dirLine, err := nextLine()
	if err != nil {
		return nil, err
	}
	dirFields := strings.Fields(dirLine)
	if len(dirFields) == 0 {
		return nil, ErrNoDirections
	}
	directions := make([]byte, 0, len(dirFields))
	for _, tok := range dirFields {
		if len(tok) != 1 || !validDirections[tok[0]] {
			return nil, fmt.Errorf("%q: %w", tok, ErrBadDirection)
		}
		directions = append(directions, tok[0])
	}
	team.Directions = NewRing(directions)
	debugp("direction ring %q", string(directions))

	return team, nil
}

func parseNonNegative(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q: %w", s, ErrBadCoordinate)
	}
	return n, nil
}
