package battle

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/haldorsen/sinisterwar/internal/definitions"
	"github.com/haldorsen/sinisterwar/internal/protocol"
	"github.com/haldorsen/sinisterwar/internal/roster"
)

// Result_t is what a finished battle produced: the losing team's name and
// this battle's narrative, newline-joined, ready to be merged into a
// round's narrative buffer by the caller.
type Result_t struct {
	LoserName string
	Narrative string
}

// opponent is the shadow model of the live opposing member: known only by
// the agent name its iselectyou/attack messages reveal, resolved against
// the shared Definitions.
type opponent struct {
	agent  *definitions.Agent_t
	health int
}

// Battle_t drives one two-party battle to completion. Own's Members are
// cloned at construction time so that a Team fighting several opponents in
// parallel (controller-simulation mode) never shares mutable health across
// concurrent battles.
type Battle_t struct {
	ID           string
	OwnTeamName  string
	OpponentName string
	GoFirst      bool

	own       [roster.MaxTeamPlayers]*roster.Member
	rw        *protocol.ReadWriter
	defs      *definitions.Definitions_t
	narrative *Narrative_t
	debug     bool
}

// New builds a Battle_t. own's current Members are cloned at full health;
// opponentName is used only for narrative text, since the opposing roster
// is never known locally.
func New(own *roster.Team, opponentName string, goFirst bool, rw *protocol.ReadWriter, defs *definitions.Definitions_t, debug bool) *Battle_t {
	var members [roster.MaxTeamPlayers]*roster.Member
	for i, m := range own.Members {
		members[i] = m.Clone()
	}
	return &Battle_t{
		ID:           uuid.NewString(),
		OwnTeamName:  own.Name,
		OpponentName: opponentName,
		GoFirst:      goFirst,
		own:          members,
		rw:           rw,
		defs:         defs,
		narrative:    &Narrative_t{},
		debug:        debug,
	}
}

func (b *Battle_t) debugf(format string, args ...any) {
	if b.debug {
		log.Printf("[battle %s] "+format, append([]any{b.ID}, args...)...)
	}
}

// Run drives the battle to completion: initial selection, then alternating
// attacks until one team is fully eliminated.
func (b *Battle_t) Run(ctx context.Context) (*Result_t, error) {
	i, j := 0, 0 // i: index of own's live member; j: count of opponent members eliminated so far
	var opp *opponent

	selectOwn := func() error {
		m := b.own[i]
		if err := b.rw.WriteSelect(m.Agent.Name); err != nil {
			return err
		}
		b.narrative.Append(fmt.Sprintf("%s chooses %s\n", b.OwnTeamName, m.Agent.Name))
		return nil
	}
	selectOpp := func() error {
		msg, err := b.rw.ReadMessage()
		if err != nil {
			return err
		}
		sel, ok := msg.(protocol.SelectMsg)
		if !ok {
			return fmt.Errorf("expected iselectyou: %w", ErrProtocol)
		}
		agent := b.defs.Agent(sel.AgentName)
		if agent == nil {
			return fmt.Errorf("iselectyou %q: %w", sel.AgentName, ErrProtocol)
		}
		opp = &opponent{agent: agent, health: roster.MaxHealth}
		b.narrative.Append(fmt.Sprintf("%s chooses %s\n", b.OpponentName, agent.Name))
		return nil
	}

	if b.GoFirst {
		if err := selectOwn(); err != nil {
			return nil, err
		}
		if err := selectOpp(); err != nil {
			return nil, err
		}
	} else {
		if err := selectOpp(); err != nil {
			return nil, err
		}
		if err := selectOwn(); err != nil {
			return nil, err
		}
	}
	b.debugf("opening selection: own=%s opp=%s", b.own[i].Agent.Name, opp.agent.Name)

	ownTurn := b.GoFirst
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if ownTurn {
			m := b.own[i]
			attack := m.NextAttack()
			if err := b.rw.WriteAttack(m.Agent.Name, attack.Name); err != nil {
				return nil, err
			}
			level := definitions.Effectiveness(attack, opp.agent)
			opp.health -= int(level)
			b.narrative.Append(attackLine(m.Agent.Name, attack, level, opp.health <= 0, opp.agent.Name))

			if opp.health <= 0 {
				j++
				if j == roster.MaxTeamPlayers {
					return b.finish(b.OpponentName)
				}
				if err := selectOpp(); err != nil {
					return nil, err
				}
			}
		} else {
			msg, err := b.rw.ReadMessage()
			if err != nil {
				return nil, err
			}
			atk, ok := msg.(protocol.AttackMsg)
			if !ok {
				return nil, fmt.Errorf("expected attack: %w", ErrProtocol)
			}
			if atk.AgentName != opp.agent.Name {
				return nil, fmt.Errorf("attack names %q, expected live member %q: %w", atk.AgentName, opp.agent.Name, ErrProtocol)
			}
			attack := b.defs.Attack(atk.AttackName)
			if attack == nil || !opp.agent.LegalAttack(attack) {
				return nil, fmt.Errorf("illegal attack %q for %q: %w", atk.AttackName, opp.agent.Name, ErrProtocol)
			}
			m := b.own[i]
			level := definitions.Effectiveness(attack, m.Agent)
			m.ApplyDamage(level)
			b.narrative.Append(attackLine(opp.agent.Name, attack, level, m.Eliminated(), m.Agent.Name))

			if m.Eliminated() {
				i++
				if i == roster.MaxTeamPlayers {
					return b.finish(b.OwnTeamName)
				}
				if err := selectOwn(); err != nil {
					return nil, err
				}
			}
		}
		ownTurn = !ownTurn
	}
}

func (b *Battle_t) finish(loserName string) (*Result_t, error) {
	b.narrative.Append(fmt.Sprintf("Team %s was eliminated.\n", loserName))
	return &Result_t{LoserName: loserName, Narrative: b.narrative.String()}, nil
}

// attackLine renders one attack's narrative line, including the
// elimination suffix when the target's health just dropped to zero.
func attackLine(attackerAgent string, attack *definitions.Attack_t, level definitions.Level_e, eliminated bool, targetAgent string) string {
	effStr := strings.ReplaceAll(attack.Type.EffectivenessString(level), "_", " ")
	line := fmt.Sprintf("%s uses %s: %s", attackerAgent, attack.Name, effStr)
	if eliminated {
		line += fmt.Sprintf(" - %s was eliminated.", targetAgent)
	}
	return line + "\n"
}
