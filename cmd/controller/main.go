// Package main implements the sinisterwar controller binary: it hosts one
// or more parallel simulations on a toroidal grid and brokers battles
// between the team processes that connect to it.
package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/spf13/cobra"

	"github.com/haldorsen/sinisterwar/internal/config"
	"github.com/haldorsen/sinisterwar/internal/exitcode"
	"github.com/haldorsen/sinisterwar/internal/netlisten"
	"github.com/haldorsen/sinisterwar/internal/rulebook"
	"github.com/haldorsen/sinisterwar/internal/simulation"
	"github.com/haldorsen/sinisterwar/internal/version"
)

// fail writes the one stderr line a failure kind maps to, then exits with
// its matching code, mirroring the source's exit_game switch.
func fail(message string, code int) {
	fmt.Fprintln(os.Stderr, message)
	os.Exit(code)
}

func main() {
	rawArgs := os.Args[1:]
	var logFile string
	var debug bool
	var positional []string
	for i := 0; i < len(rawArgs); i++ {
		switch rawArgs[i] {
		case "-version", "--version":
			fmt.Println(version.Version.Short())
			return
		case "-build-info", "--build-info":
			fmt.Println(version.Version.String())
			return
		case "--log-file":
			if i+1 < len(rawArgs) {
				logFile = rawArgs[i+1]
				i++
			}
		case "--debug":
			debug = true
		default:
			positional = append(positional, rawArgs[i])
		}
	}

	log.SetFlags(log.Lshortfile | log.Ltime)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail("System error", 20)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := config.Load("sinisterwar.json", debug)
	if err != nil {
		fail("System error", 20)
	}
	if cfg.DebugFlags.Parser || cfg.DebugFlags.Protocol || cfg.DebugFlags.Battle || cfg.DebugFlags.Simulator {
		debug = true
	}

	netlisten.MaskSIGPIPE()

	cmd := &cobra.Command{
		Use:                "controller height width sinisterfile rounds1 port1 teams1 [rounds2 port2 teams2 ...]",
		Short:              "host one or more toroidal-grid combat simulations",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runController(args, debug)
		},
	}
	cmd.SetArgs(positional)

	if err := cmd.Execute(); err != nil {
		// runController only returns errors already reported to stderr via
		// fail(), or terminates the process itself; this branch exists so
		// an unrelated cobra-internal failure still exits non-zero.
		fail("System error", 20)
	}
}

// triple is one (rounds, port, teams) simulation spec from the command
// line.
type triple struct {
	rounds, port, teams int
}

func runController(args []string, debug bool) error {
	if len(args) < 6 || (len(args)-3)%3 != 0 {
		fail("Usage: controller height width sinisterfile rounds1 port1 teams1 [rounds2 port2 teams2 ...]", 1)
	}

	height, err := strconv.Atoi(args[0])
	if err != nil || height < 1 {
		fail("Invalid height", 2)
	}
	width, err := strconv.Atoi(args[1])
	if err != nil || width < 1 {
		fail("Invalid width", 3)
	}
	sinisterPath := args[2]

	data, err := os.ReadFile(sinisterPath)
	if err != nil {
		fail("Unable to access sinister file", 4)
	}
	if _, err := rulebook.Parse(sinisterPath, bytes.NewReader(data), debug); err != nil {
		fail("Error reading sinister file", 5)
	}

	var triples []triple
	for i := 3; i < len(args); i += 3 {
		rounds, err := strconv.Atoi(args[i])
		if err != nil || rounds < 1 {
			fail("Invalid number of rounds", 6)
		}
		port := 0
		if args[i+1] != "-" {
			port, err = strconv.Atoi(args[i+1])
			if err != nil || port < 1 || port > 65535 {
				fail("Invalid port number", 7)
			}
		}
		teams, err := strconv.Atoi(args[i+2])
		if err != nil || teams < 2 {
			fail("Invalid number of teams", 9)
		}
		triples = append(triples, triple{rounds: rounds, port: port, teams: teams})
	}

	var listeners []*netlisten.Listener
	for _, tr := range triples {
		ln, err := netlisten.Listen(tr.port)
		if err != nil {
			fail("Unable to listen on port", 8)
		}
		listeners = append(listeners, ln)
		fmt.Println(ln.Port)
	}

	ctx := context.Background()
	var wg sync.WaitGroup
	errs := make([]error, len(triples))
	for i, tr := range triples {
		cfg := simulation.Config{Width: width, Height: height, Rounds: tr.rounds, NumTeams: tr.teams}
		sim := simulation.New(cfg, data, listeners[i], debug)
		wg.Add(1)
		go func(i int, sim *simulation.Simulation_t) {
			defer wg.Done()
			errs[i] = sim.Run(ctx)
		}(i, sim)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			result := exitcode.ForController(err)
			fail(result.Message, result.Code)
		}
	}
	return nil
}
