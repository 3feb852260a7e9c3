package battle_test

import (
	"context"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/haldorsen/sinisterwar/internal/battle"
	"github.com/haldorsen/sinisterwar/internal/protocol"
	"github.com/haldorsen/sinisterwar/internal/roster"
	"github.com/haldorsen/sinisterwar/internal/rulebook"
)

const goldenRulebook = `fire
water
grass
.
fire weak normal super
water weak normal super
grass weak normal super
.
water +fire
fire +grass
grass +water
.
splash water
ember fire
vine grass
.
A water splash splash splash
B fire ember ember ember
C grass vine vine vine
.
`

func TestBattleRunToCompletion(t *testing.T) {
	defs, err := rulebook.Parse("golden", strings.NewReader(goldenRulebook), false)
	if err != nil {
		t.Fatalf("parse rulebook: %v", err)
	}

	const teamFileFmt = "%s\nA splash\nA splash\nA splash\nA splash\n0 0\nN\n"

	alpha, err := roster.Load("alpha", strings.NewReader(fmt.Sprintf(teamFileFmt, "Alpha")), defs, false)
	if err != nil {
		t.Fatalf("load alpha: %v", err)
	}
	beta, err := roster.Load("beta", strings.NewReader(fmt.Sprintf(teamFileFmt, "Beta")), defs, false)
	if err != nil {
		t.Fatalf("load beta: %v", err)
	}

	connA, connB := net.Pipe()
	defer connA.Close()
	defer connB.Close()

	alphaBattle := battle.New(alpha, "Beta", true, protocol.NewReadWriter(connA), defs, false)
	betaBattle := battle.New(beta, "Alpha", false, protocol.NewReadWriter(connB), defs, false)

	type outcome struct {
		result *battle.Result_t
		err    error
	}
	alphaCh := make(chan outcome, 1)
	betaCh := make(chan outcome, 1)

	go func() {
		r, err := alphaBattle.Run(context.Background())
		alphaCh <- outcome{r, err}
	}()
	go func() {
		r, err := betaBattle.Run(context.Background())
		betaCh <- outcome{r, err}
	}()

	aOut := <-alphaCh
	bOut := <-betaCh

	if aOut.err != nil {
		t.Fatalf("alpha battle: unexpected error: %v", aOut.err)
	}
	if bOut.err != nil {
		t.Fatalf("beta battle: unexpected error: %v", bOut.err)
	}
	if aOut.result.LoserName != bOut.result.LoserName {
		t.Fatalf("loser mismatch: alpha saw %q, beta saw %q", aOut.result.LoserName, bOut.result.LoserName)
	}
	if aOut.result.LoserName != "Alpha" && aOut.result.LoserName != "Beta" {
		t.Fatalf("unexpected loser %q", aOut.result.LoserName)
	}
	if !strings.Contains(aOut.result.Narrative, "was eliminated") {
		t.Errorf("expected alpha narrative to record an elimination, got %q", aOut.result.Narrative)
	}
	if !strings.Contains(bOut.result.Narrative, "was eliminated") {
		t.Errorf("expected beta narrative to record an elimination, got %q", bOut.result.Narrative)
	}
}

