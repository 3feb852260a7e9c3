package teamrt

import (
	"context"
	"fmt"

	"github.com/haldorsen/sinisterwar/internal/battle"
	"github.com/haldorsen/sinisterwar/internal/definitions"
	"github.com/haldorsen/sinisterwar/internal/protocol"
	"github.com/haldorsen/sinisterwar/internal/roster"
)

// runOneBattle drives a single battle to completion and returns the
// complete narrative block for it: the opening "<opponentName> has a
// difference of opinion" line the mode driver is responsible for,
// immediately followed by the battle engine's own narrative. The block is
// returned as one string so that a round buffer treats it as a single
// sortable unit, matching the narrative ordering law's "line-group" rule.
func runOneBattle(own *roster.Team, opponentName string, goFirst bool, rw *protocol.ReadWriter, defs *definitions.Definitions_t, debug bool) (block string, loserName string, err error) {
	opening := fmt.Sprintf("%s has a difference of opinion\n", opponentName)
	b := battle.New(own, opponentName, goFirst, rw, defs, debug)
	result, err := b.Run(context.Background())
	if err != nil {
		return "", "", err
	}
	return opening + result.Narrative, result.LoserName, nil
}

// printNarrative drains a round buffer in sorted order and writes it to
// stdout, the drain/sort/print critical section every mode performs at a
// round boundary.
func printNarrative(buf *battle.Narrative_t) {
	for _, block := range buf.Drain() {
		fmt.Print(block)
	}
}
