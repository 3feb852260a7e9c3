package teamrt_test

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/haldorsen/sinisterwar/internal/definitions"
	"github.com/haldorsen/sinisterwar/internal/netlisten"
	"github.com/haldorsen/sinisterwar/internal/protocol"
	"github.com/haldorsen/sinisterwar/internal/roster"
	"github.com/haldorsen/sinisterwar/internal/rulebook"
	"github.com/haldorsen/sinisterwar/internal/teamrt"
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

func mustTeam(t *testing.T, defs *definitions.Definitions_t, name string) *roster.Team {
	t.Helper()
	text := fmt.Sprintf("%s\nA splash\nA splash\nA splash\nA splash\n0 0\nN\n", name)
	team, err := roster.Load(name, strings.NewReader(text), defs, false)
	if err != nil {
		t.Fatalf("load team %s: %v", name, err)
	}
	return team
}

// captureStdout redirects os.Stdout for the duration of fn and returns
// whatever it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	saved := os.Stdout
	os.Stdout = w
	fn()
	os.Stdout = saved
	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestStandaloneWaitAndChallenge(t *testing.T) {
	defs := mustDefs(t)
	alpha := mustTeam(t, defs, "Alpha")
	beta := mustTeam(t, defs, "Beta")

	ln, err := netlisten.Listen(0)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	// free the port so StandaloneWait can bind it itself.
	ln.Close()

	waitErr := make(chan error, 1)
	combined := captureStdout(t, func() {
		go func() {
			waitErr <- teamrt.StandaloneWait(defs, beta, ln.Port, false)
		}()

		// give the wait side a moment to be listening before challenging.
		time.Sleep(20 * time.Millisecond)

		if err := teamrt.StandaloneChallenge(defs, alpha, ln.Port, false); err != nil {
			t.Fatalf("StandaloneChallenge: %v", err)
		}

		select {
		case err := <-waitErr:
			if err != nil {
				t.Fatalf("StandaloneWait: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("StandaloneWait did not return")
		}
	})

	if !strings.Contains(combined, strconv.Itoa(ln.Port)) {
		t.Errorf("stdout %q doesn't report the bound port", combined)
	}
	if strings.Count(combined, "has a difference of opinion") != 2 {
		t.Errorf("expected one opening line per side, got %q", combined)
	}
	if !strings.Contains(combined, "was eliminated") {
		t.Errorf("stdout missing elimination: %q", combined)
	}
}

// TestControllerSimulationJoinAndGameOver drives the controller side of the
// protocol manually, for exercising ControllerSimulation against a single
// team with no zone mates: join, then an immediate gameoverman.
func TestControllerSimulationJoinAndGameOver(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()

	teamFile := strings.NewReader("Alpha\nA splash\nA splash\nA splash\nA splash\n0 0\nN\n")

	done := make(chan error, 1)
	go func() {
		done <- teamrt.ControllerSimulation(clientConn, teamFile, "alpha.team", false)
	}()

	rw := protocol.NewReadWriter(serverConn)
	if err := rw.WriteSinister(); err != nil {
		t.Fatalf("write sinister: %v", err)
	}
	if err := rw.WriteRaw([]byte(goldenRulebook)); err != nil {
		t.Fatalf("write rulebook: %v", err)
	}

	msg, err := rw.ReadMessage()
	if err != nil {
		t.Fatalf("read iwannaplay: %v", err)
	}
	join, ok := msg.(protocol.IWannaPlayMsg)
	if !ok {
		t.Fatalf("expected iwannaplay, got %T", msg)
	}
	if join.Name != "Alpha" || join.X != 0 || join.Y != 0 || join.Port <= 0 {
		t.Fatalf("unexpected join: %+v", join)
	}

	if err := rw.WriteGameOverMan(); err != nil {
		t.Fatalf("write gameoverman: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ControllerSimulation: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ControllerSimulation did not return after gameoverman")
	}
}
