package teamrt

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/haldorsen/sinisterwar/cerrs"
	"github.com/haldorsen/sinisterwar/internal/battle"
	"github.com/haldorsen/sinisterwar/internal/definitions"
	"github.com/haldorsen/sinisterwar/internal/netlisten"
	"github.com/haldorsen/sinisterwar/internal/protocol"
	"github.com/haldorsen/sinisterwar/internal/roster"
	"github.com/haldorsen/sinisterwar/internal/rulebook"
)

// runner holds the state one controller-simulation team keeps alive for
// the whole run: the shared rulebook and team, a listener for incoming
// challenges, the controller connection (writes are mutex-guarded because
// every battle goroutine reports back to it independently), the per-round
// narrative buffer, and a channel any goroutine can use to abort the whole
// process the way the source's exit_game does from any thread.
type runner struct {
	id     string
	defs   *definitions.Definitions_t
	team   *roster.Team
	ctrl   *protocol.ReadWriter
	ctrlMu sync.Mutex
	round  *battle.Narrative_t
	fatal  chan error
	debug  bool
}

func (r *runner) debugf(format string, args ...any) {
	if r.debug {
		log.Printf("[teamrt %s] "+format, append([]any{r.id}, args...)...)
	}
}

// ControllerSimulation drives controller-simulation mode over an already
// connected controller socket: read the embedded rulebook, load the team
// file, open an ephemeral listener for incoming challenges, join the
// simulation, then service battle/wherenow?/gameoverman until the
// controller ends the simulation or is lost.
func ControllerSimulation(conn net.Conn, teamFile io.Reader, teamFileName string, debug bool) error {
	ctrl := protocol.NewReadWriter(conn)

	msg, err := ctrl.ReadMessage()
	if err != nil {
		if errors.Is(err, protocol.ErrPeerClosed) {
			return cerrs.ErrControllerLost
		}
		return err
	}
	if _, ok := msg.(protocol.SinisterMsg); !ok {
		return fmt.Errorf("expected sinister: %w", cerrs.ErrProtocol)
	}

	defs, err := rulebook.Parse("controller-embedded", ctrl.Underlying(), debug)
	if err != nil {
		return err
	}

	team, err := roster.Load(teamFileName, teamFile, defs, debug)
	if err != nil {
		return err
	}

	ln, err := netlisten.Listen(0)
	if err != nil {
		return err
	}
	defer ln.Close()
	team.Port = ln.Port

	r := &runner{
		id:    uuid.NewString(),
		defs:  defs,
		team:  team,
		ctrl:  ctrl,
		round: &battle.Narrative_t{},
		fatal: make(chan error, 1),
		debug: debug,
	}
	r.debugf("joining at (%d, %d) on port %d", team.X, team.Y, ln.Port)

	go r.acceptLoop(ln)

	if err := ctrl.WriteIWannaPlay(team.X, team.Y, team.Name, ln.Port); err != nil {
		return err
	}

	msgCh := make(chan protocol.Message, 1)
	errCh := make(chan error, 1)
	go func() {
		for {
			m, err := ctrl.ReadMessage()
			if err != nil {
				errCh <- err
				return
			}
			msgCh <- m
			if _, ok := m.(protocol.GameOverManMsg); ok {
				return
			}
		}
	}()

	for {
		select {
		case err := <-r.fatal:
			return err
		case err := <-errCh:
			if errors.Is(err, protocol.ErrPeerClosed) {
				return cerrs.ErrControllerLost
			}
			return err
		case m := <-msgCh:
			switch v := m.(type) {
			case protocol.BattleMsg:
				fmt.Printf("Team is in zone %d %d\n", v.X, v.Y)
				for _, port := range v.Ports {
					go r.challenge(port)
				}
			case protocol.WhereNowMsg:
				printNarrative(r.round)
				dir := team.Directions.Current()
				team.Directions.Advance()
				r.ctrlMu.Lock()
				err := ctrl.WriteTravel(dir)
				r.ctrlMu.Unlock()
				if err != nil {
					return err
				}
			case protocol.GameOverManMsg:
				printNarrative(r.round)
				return nil
			default:
				return fmt.Errorf("unexpected controller message %T: %w", m, cerrs.ErrProtocol)
			}
		}
	}
}

// acceptLoop accepts challenge connections for as long as the listener is
// open, spawning one battle goroutine per connection. It returns once the
// listener is closed by the caller at the end of ControllerSimulation.
func (r *runner) acceptLoop(ln *netlisten.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go r.beChallengedAndReport(conn)
	}
}

// beChallengedAndReport handles one accepted connection end to end: the
// be-challenged handshake, the battle itself, and the donefighting/disco
// report back to the controller.
func (r *runner) beChallengedAndReport(conn net.Conn) {
	defer conn.Close()
	rw := protocol.NewReadWriter(conn)
	opponentName, err := beChallenged(rw, r.team.Name)
	if err != nil {
		r.reportOutcome("", err)
		return
	}
	block, _, err := runOneBattle(r.team, opponentName, false, rw, r.defs, r.debug)
	r.reportOutcome(block, err)
}

// challenge connects to a port named in a controller "battle" message,
// runs the challenge handshake and battle with goFirst=true, then reports
// back to the controller.
func (r *runner) challenge(port int) {
	conn, err := net.Dial("tcp", fmt.Sprintf("localhost:%d", port))
	if err != nil {
		r.sendFatal(fmt.Errorf("%w: %v", ErrConnectTeam, err))
		return
	}
	defer conn.Close()

	rw := protocol.NewReadWriter(conn)
	opponentName, err := doChallenge(rw, r.team.Name)
	if err != nil {
		r.reportOutcome("", err)
		return
	}
	block, _, err := runOneBattle(r.team, opponentName, true, rw, r.defs, r.debug)
	r.reportOutcome(block, err)
}

// reportOutcome is the tail end of every battle goroutine: a clean result
// is appended to the round buffer and reported donefighting; a peer
// disconnect degrades to a disco notice and the goroutine quietly exits;
// anything else is fatal to the whole process, matching the source's
// exit_game called from any thread.
func (r *runner) reportOutcome(block string, err error) {
	if err != nil {
		if errors.Is(err, protocol.ErrPeerClosed) {
			r.sendDisco()
			return
		}
		r.sendFatal(err)
		return
	}
	r.round.Append(block)
	r.sendDone()
}

func (r *runner) sendDone() {
	r.ctrlMu.Lock()
	defer r.ctrlMu.Unlock()
	if err := r.ctrl.WriteDoneFighting(); err != nil {
		r.sendFatal(err)
	}
}

func (r *runner) sendDisco() {
	r.ctrlMu.Lock()
	defer r.ctrlMu.Unlock()
	_ = r.ctrl.WriteDisco()
}

func (r *runner) sendFatal(err error) {
	select {
	case r.fatal <- err:
	default:
	}
}
