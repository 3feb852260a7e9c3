package teamrt

import (
	"errors"
	"fmt"
	"net"

	"github.com/haldorsen/sinisterwar/cerrs"
	"github.com/haldorsen/sinisterwar/internal/battle"
	"github.com/haldorsen/sinisterwar/internal/definitions"
	"github.com/haldorsen/sinisterwar/internal/netlisten"
	"github.com/haldorsen/sinisterwar/internal/protocol"
	"github.com/haldorsen/sinisterwar/internal/roster"
)

// StandaloneWait opens a listener on port (0 for ephemeral), prints the
// bound port, accepts exactly one connection, runs the be-challenged
// handshake and a single battle with goFirst=false, then prints the
// narrative in sorted order. It returns after the one battle completes.
func StandaloneWait(defs *definitions.Definitions_t, team *roster.Team, port int, debug bool) error {
	ln, err := netlisten.Listen(port)
	if err != nil {
		return err
	}
	defer ln.Close()

	fmt.Printf("%d\n", ln.Port)

	conn, err := ln.Accept()
	if err != nil {
		return err
	}
	defer conn.Close()

	rw := protocol.NewReadWriter(conn)
	opponentName, err := beChallenged(rw, team.Name)
	if err != nil {
		return wrapPeerLost(err)
	}
	block, _, err := runOneBattle(team, opponentName, false, rw, defs, debug)
	if err != nil {
		return wrapPeerLost(err)
	}

	buf := &battle.Narrative_t{}
	buf.Append(block)
	printNarrative(buf)
	return nil
}

// StandaloneChallenge connects to localhost:targetPort, runs the
// challenge handshake and a single battle with goFirst=true, then prints
// the narrative in sorted order.
func StandaloneChallenge(defs *definitions.Definitions_t, team *roster.Team, targetPort int, debug bool) error {
	conn, err := net.Dial("tcp", fmt.Sprintf("localhost:%d", targetPort))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectTeam, err)
	}
	defer conn.Close()

	rw := protocol.NewReadWriter(conn)
	opponentName, err := doChallenge(rw, team.Name)
	if err != nil {
		return wrapPeerLost(err)
	}
	block, _, err := runOneBattle(team, opponentName, true, rw, defs, debug)
	if err != nil {
		return wrapPeerLost(err)
	}

	buf := &battle.Narrative_t{}
	buf.Append(block)
	printNarrative(buf)
	return nil
}

// wrapPeerLost turns a bare peer disconnect into cerrs.ErrTeamLost, the
// outcome spec §4.3/§6 calls "team-disconnected" for a one-on-one
// standalone battle. In controller-simulation mode the same
// protocol.ErrPeerClosed instead degrades to a disco notice, so this
// translation belongs here rather than in runOneBattle itself.
func wrapPeerLost(err error) error {
	if errors.Is(err, protocol.ErrPeerClosed) {
		return cerrs.ErrTeamLost
	}
	return err
}
