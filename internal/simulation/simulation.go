package simulation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sort"

	"github.com/google/uuid"

	"github.com/haldorsen/sinisterwar/internal/netlisten"
	"github.com/haldorsen/sinisterwar/internal/protocol"
)

// Config is the (rounds, port, teams) triple from the controller's
// command line, plus the grid dimensions shared by every worker.
type Config struct {
	Width, Height int
	Rounds        int
	NumTeams      int
}

// connectedTeam is the controller's view of one recruited team: just
// enough to group zones, dispatch messages, and broadcast. The controller
// never loads a team file, so an Agent/Member roster isn't part of this.
type connectedTeam struct {
	Name string
	X, Y int
	Port int
	rw   *protocol.ReadWriter
	conn net.Conn
}

// Simulation_t drives one worker end to end: recruit, then round loop,
// then broadcast gameoverman.
type Simulation_t struct {
	ID           string
	cfg          Config
	rulebookText []byte
	ln           *netlisten.Listener
	debug        bool
}

// New builds a Simulation_t. rulebookText is the verbatim bytes sent after
// every "sinister" line; ln is already bound and listening.
func New(cfg Config, rulebookText []byte, ln *netlisten.Listener, debug bool) *Simulation_t {
	return &Simulation_t{
		ID:           uuid.NewString(),
		cfg:          cfg,
		rulebookText: rulebookText,
		ln:           ln,
		debug:        debug,
	}
}

func (s *Simulation_t) debugf(format string, args ...any) {
	if s.debug {
		log.Printf("[simulation %s] "+format, append([]any{s.ID}, args...)...)
	}
}

// Run recruits the configured number of teams, then drives the round loop
// to completion, broadcasting gameoverman on every clean exit path.
func (s *Simulation_t) Run(ctx context.Context) error {
	defer s.ln.Close()

	teams, err := s.recruit(ctx)
	if err != nil {
		return err
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	s.debugf("recruited %d teams", len(teams))

	for round := 1; round <= s.cfg.Rounds; round++ {
		zones := zoneGroups(teams)
		s.debugf("round %d: %d zones", round, len(zones))

		ended, err := s.dispatchAndBarrier(zones)
		if err != nil {
			return err
		}
		if ended {
			s.broadcastGameOverMan(teams)
			return nil
		}

		if round != s.cfg.Rounds {
			if err := s.movement(teams); err != nil {
				return err
			}
		}
	}

	s.broadcastGameOverMan(teams)
	return nil
}

// recruit accepts exactly cfg.NumTeams connections, sends each the
// rulebook, and reads back its iwannaplay line.
func (s *Simulation_t) recruit(ctx context.Context) ([]*connectedTeam, error) {
	teams := make([]*connectedTeam, 0, s.cfg.NumTeams)
	for i := 0; i < s.cfg.NumTeams; i++ {
		conn, err := s.ln.Accept()
		if err != nil {
			return nil, err
		}
		rw := protocol.NewReadWriter(conn)
		if err := rw.WriteSinister(); err != nil {
			conn.Close()
			return nil, err
		}
		if err := rw.WriteRaw(s.rulebookText); err != nil {
			conn.Close()
			return nil, err
		}

		msg, err := rw.ReadMessage()
		if err != nil {
			conn.Close()
			return nil, err
		}
		join, ok := msg.(protocol.IWannaPlayMsg)
		if !ok {
			conn.Close()
			return nil, fmt.Errorf("expected iwannaplay: %w", ErrProtocol)
		}
		if join.Port <= 0 || join.Port > 65535 {
			conn.Close()
			return nil, fmt.Errorf("%d: %w", join.Port, ErrInvalidPort)
		}

		x, y := wrap(join.X, s.cfg.Width), wrap(join.Y, s.cfg.Height)
		teams = append(teams, &connectedTeam{Name: join.Name, X: x, Y: y, Port: join.Port, rw: rw, conn: conn})
		s.debugf("recruited %q at (%d, %d), port %d", join.Name, x, y, join.Port)
	}
	return teams, nil
}

// zoneGroups partitions teams by (x, y), preserving sorted order: the
// first occurrence of a coordinate pair defines that zone's position in
// the result.
func zoneGroups(teams []*connectedTeam) [][]*connectedTeam {
	var order []string
	groups := map[string][]*connectedTeam{}
	for _, t := range teams {
		key := fmt.Sprintf("%d,%d", t.X, t.Y)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], t)
	}
	zones := make([][]*connectedTeam, 0, len(order))
	for _, key := range order {
		zones = append(zones, groups[key])
	}
	return zones
}

// dispatchAndBarrier sends battle notices to every zone of size >= 2, then
// runs each zone's pairwise barrier. It reports ended=true the moment any
// pair's barrier observes a disco/EOF pairing, at which point the caller
// must broadcast gameoverman and stop.
func (s *Simulation_t) dispatchAndBarrier(zones [][]*connectedTeam) (ended bool, err error) {
	for _, zone := range zones {
		if len(zone) < 2 {
			continue
		}
		for _, team := range zone {
			var ports []int
			for _, other := range zone {
				if other != team {
					ports = append(ports, other.Port)
				}
			}
			if err := team.rw.WriteBattle(team.X, team.Y, ports); err != nil {
				return false, err
			}
		}
	}

	for _, zone := range zones {
		if len(zone) < 2 {
			continue
		}
		zoneEnded, err := s.barrier(zone)
		if err != nil {
			return false, err
		}
		if zoneEnded {
			return true, nil
		}
	}
	return false, nil
}

type barrierOutcome int

const (
	barrierDone barrierOutcome = iota
	barrierDisco
	barrierEOF
)

// barrier reads a donefighting/disco outcome from each team of every
// i<j pair in the zone. A zone of size n therefore reads from each team
// once per other team sharing its zone (n-1 times): a team in a zone of
// three is read twice, which is the observable behavior this reproduces
// rather than corrects.
func (s *Simulation_t) barrier(zone []*connectedTeam) (ended bool, err error) {
	for i := 0; i < len(zone); i++ {
		for j := i + 1; j < len(zone); j++ {
			a, errA := s.readBarrierMessage(zone[i])
			if errA != nil {
				return false, errA
			}
			b, errB := s.readBarrierMessage(zone[j])
			if errB != nil {
				return false, errB
			}
			switch {
			case a == barrierDone && b == barrierDone:
				// normal: both teams finished their battle
			case a == barrierDisco && b == barrierEOF, b == barrierDisco && a == barrierEOF:
				return true, nil
			default:
				return false, fmt.Errorf("barrier: unexpected outcome pair (%v, %v): %w", a, b, ErrProtocol)
			}
		}
	}
	return false, nil
}

func (s *Simulation_t) readBarrierMessage(team *connectedTeam) (barrierOutcome, error) {
	msg, err := team.rw.ReadMessage()
	if errors.Is(err, protocol.ErrPeerClosed) {
		return barrierEOF, nil
	}
	if err != nil {
		return 0, err
	}
	switch msg.(type) {
	case protocol.DoneFightingMsg:
		return barrierDone, nil
	case protocol.DiscoMsg:
		return barrierDisco, nil
	default:
		return 0, fmt.Errorf("barrier: unexpected message %T: %w", msg, ErrProtocol)
	}
}

// movement sends wherenow? to every team in sorted order and applies the
// travel direction each replies with, wrapping toroidally.
func (s *Simulation_t) movement(teams []*connectedTeam) error {
	for _, team := range teams {
		if err := team.rw.WriteWhereNow(); err != nil {
			return err
		}
		msg, err := team.rw.ReadMessage()
		if err != nil {
			return err
		}
		travel, ok := msg.(protocol.TravelMsg)
		if !ok {
			return fmt.Errorf("expected travel: %w", ErrProtocol)
		}
		team.X, team.Y = step(team.X, team.Y, s.cfg.Width, s.cfg.Height, travel.Direction)
	}
	return nil
}

// step moves one cell in the direction's axis, wrapping negative results
// to dim-1 before taking both axes modulo the dimension.
func step(x, y, width, height int, dir byte) (int, int) {
	switch dir {
	case 'N':
		y--
	case 'S':
		y++
	case 'E':
		x++
	case 'W':
		x--
	}
	return wrap(x, width), wrap(y, height)
}

func wrap(v, dim int) int {
	v %= dim
	if v < 0 {
		v += dim
	}
	return v
}

func (s *Simulation_t) broadcastGameOverMan(teams []*connectedTeam) {
	for _, team := range teams {
		_ = team.rw.WriteGameOverMan()
		_ = team.conn.Close()
	}
}
