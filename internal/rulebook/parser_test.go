package rulebook_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/haldorsen/sinisterwar/internal/definitions"
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
fire +grass -water
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

func TestParseGolden(t *testing.T) {
	defs, err := rulebook.Parse("golden", strings.NewReader(goldenRulebook), false)
	if err != nil {
		t.Fatalf("parse: unexpected error: %v", err)
	}

	splash, ember, vine := defs.Attack("splash"), defs.Attack("ember"), defs.Attack("vine")
	agentA, agentB, agentC := defs.Agent("A"), defs.Agent("B"), defs.Agent("C")
	if splash == nil || ember == nil || vine == nil || agentA == nil || agentB == nil || agentC == nil {
		t.Fatalf("expected all attacks and agents to resolve")
	}

	tests := []struct {
		name   string
		attack *definitions.Attack_t
		target *definitions.Agent_t
		want   definitions.Level_e
	}{
		{"splash vs B is high", splash, agentB, definitions.High},
		{"ember vs A is low", ember, agentA, definitions.Low},
		{"vine vs C is normal", vine, agentC, definitions.Normal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := definitions.Effectiveness(tt.attack, tt.target); got != tt.want {
				t.Errorf("Effectiveness() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	defs, err := rulebook.Parse("golden", strings.NewReader(goldenRulebook), false)
	if err != nil {
		t.Fatalf("parse: unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := rulebook.Write(&buf, defs); err != nil {
		t.Fatalf("write: unexpected error: %v", err)
	}

	reparsed, err := rulebook.Parse("golden-roundtrip", &buf, false)
	if err != nil {
		t.Fatalf("reparse: unexpected error: %v", err)
	}

	if diff := deep.Equal(defs, reparsed); diff != nil {
		t.Errorf("round trip mismatch: %v", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error // nil means "just check non-nil"
	}{
		{
			name: "duplicate type",
			input: "fire\nfire\n.\n" +
				"fire a b c\n.\n.\n.\n",
		},
		{
			name:  "unknown type in effectiveness",
			input: "fire\n.\nwater a b c\n.\n.\n.\n",
		},
		{
			name: "blank line inside section",
			input: "fire\n\nwater\n.\n.\n.\n.\n",
		},
		{
			name:  "unexpected eof inside section",
			input: "fire\nwater",
		},
		{
			name:  "bad spacing in effectiveness line",
			input: "fire\n.\nfire  a b c\n.\n.\n.\n",
		},
		{
			name: "missing effectiveness for declared type",
			input: "fire\nwater\n.\n" +
				"fire a b c\n.\n.\n.\n.\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rulebook.Parse(tt.name, strings.NewReader(tt.input), false)
			if err == nil {
				t.Fatalf("expected an error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseEmptyWorldRejected(t *testing.T) {
	_, err := rulebook.Parse("empty", strings.NewReader(".\n.\n.\n.\n.\n"), false)
	if !errors.Is(err, rulebook.ErrEmptyWorld) {
		t.Errorf("got error %v, want %v", err, rulebook.ErrEmptyWorld)
	}
}
