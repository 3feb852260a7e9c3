package roster_test

import (
	"strings"
	"testing"

	"github.com/haldorsen/sinisterwar/internal/definitions"
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

func mustDefs(t *testing.T) *definitions.Definitions_t {
	t.Helper()
	defs, err := rulebook.Parse("golden", strings.NewReader(goldenRulebook), false)
	if err != nil {
		t.Fatalf("parse rulebook: %v", err)
	}
	return defs
}

func TestLoadTeam(t *testing.T) {
	defs := mustDefs(t)
	const teamFile = `Alpha
A splash
A splash splash
B ember
C vine vine
3 4
N E S W
`
	team, err := roster.Load("alpha.team", strings.NewReader(teamFile), defs, false)
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if team.Name != "Alpha" {
		t.Errorf("Name = %q, want Alpha", team.Name)
	}
	if team.X != 3 || team.Y != 4 {
		t.Errorf("position = (%d, %d), want (3, 4)", team.X, team.Y)
	}
	if team.Directions.Len() != 4 {
		t.Errorf("direction ring len = %d, want 4", team.Directions.Len())
	}
	if team.Members[0].Agent.Name != "A" {
		t.Errorf("member 0 agent = %q, want A", team.Members[0].Agent.Name)
	}
	if len(team.Members[1].Attacks()) != 2 {
		t.Errorf("member 1 attacks = %d, want 2", len(team.Members[1].Attacks()))
	}
}

func TestLoadTeamErrors(t *testing.T) {
	defs := mustDefs(t)

	tests := []struct {
		name string
		file string
	}{
		{
			name: "unknown agent",
			file: "Alpha\nGoblin splash\nA splash\nB ember\nC vine\n0 0\nN\n",
		},
		{
			name: "illegal attack for agent",
			file: "Alpha\nA ember\nA splash\nB ember\nC vine\n0 0\nN\n",
		},
		{
			name: "negative coordinate",
			file: "Alpha\nA splash\nA splash\nB ember\nC vine\n-1 0\nN\n",
		},
		{
			name: "bad direction letter",
			file: "Alpha\nA splash\nA splash\nB ember\nC vine\n0 0\nQ\n",
		},
		{
			name: "too few member lines",
			file: "Alpha\nA splash\nA splash\nB ember\n0 0\nN\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := roster.Load(tt.name, strings.NewReader(tt.file), defs, false); err == nil {
				t.Fatalf("expected an error, got nil")
			}
		})
	}
}
