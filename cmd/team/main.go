// Package main implements the sinisterwar team binary: joins a
// controller-hosted simulation, or runs a standalone wait/challenge
// one-on-one battle with no controller involved.
package main

import (
	"bytes"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/haldorsen/sinisterwar/internal/config"
	"github.com/haldorsen/sinisterwar/internal/exitcode"
	"github.com/haldorsen/sinisterwar/internal/netlisten"
	"github.com/haldorsen/sinisterwar/internal/roster"
	"github.com/haldorsen/sinisterwar/internal/rulebook"
	"github.com/haldorsen/sinisterwar/internal/teamrt"
	"github.com/haldorsen/sinisterwar/internal/version"
)

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
		Use:                "team controllerport teamfile | team wait teamfile sinisterfile | team challenge teamfile sinisterfile targetport",
		Short:              "join a controller simulation or run a standalone battle",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTeam(args, debug)
		},
	}
	cmd.SetArgs(positional)

	if err := cmd.Execute(); err != nil {
		fail("System error", 20)
	}
}

func runTeam(args []string, debug bool) error {
	if len(args) < 2 {
		fail("Usage: team controllerport teamfile | team wait teamfile sinisterfile | team challenge teamfile sinisterfile targetport", 1)
	}

	switch args[0] {
	case "wait":
		runWait(args[1:], debug)
	case "challenge":
		runChallenge(args[1:], debug)
	default:
		runSimulation(args, debug)
	}
	return nil
}

func runWait(args []string, debug bool) {
	if len(args) != 2 {
		fail("Usage: team wait teamfile sinisterfile", 1)
	}
	teamPath, sinisterPath := args[0], args[1]

	sinisterData, err := os.ReadFile(sinisterPath)
	if err != nil {
		fail("Unable to access sinister file", 2)
	}
	defs, err := rulebook.Parse(sinisterPath, bytes.NewReader(sinisterData), debug)
	if err != nil {
		fail("Error reading sinister file", 3)
	}

	teamFile, err := os.Open(teamPath)
	if err != nil {
		fail("Unable to access team file", 4)
	}
	defer teamFile.Close()
	team, err := roster.Load(teamPath, teamFile, defs, debug)
	if err != nil {
		fail("Error reading team file", 5)
	}

	if err := teamrt.StandaloneWait(defs, team, 0, debug); err != nil {
		result := exitcode.ForTeam(err)
		fail(result.Message, result.Code)
	}
}

func runChallenge(args []string, debug bool) {
	if len(args) != 3 {
		fail("Usage: team challenge teamfile sinisterfile targetport", 1)
	}
	teamPath, sinisterPath, portArg := args[0], args[1], args[2]

	targetPort, err := strconv.Atoi(portArg)
	if err != nil || targetPort < 1 || targetPort > 65535 {
		fail("Invalid port number", 6)
	}

	sinisterData, err := os.ReadFile(sinisterPath)
	if err != nil {
		fail("Unable to access sinister file", 2)
	}
	defs, err := rulebook.Parse(sinisterPath, bytes.NewReader(sinisterData), debug)
	if err != nil {
		fail("Error reading sinister file", 3)
	}

	teamFile, err := os.Open(teamPath)
	if err != nil {
		fail("Unable to access team file", 4)
	}
	defer teamFile.Close()
	team, err := roster.Load(teamPath, teamFile, defs, debug)
	if err != nil {
		fail("Error reading team file", 5)
	}

	if err := teamrt.StandaloneChallenge(defs, team, targetPort, debug); err != nil {
		result := exitcode.ForTeam(err)
		fail(result.Message, result.Code)
	}
}

func runSimulation(args []string, debug bool) {
	if len(args) != 2 {
		fail("Usage: team controllerport teamfile", 1)
	}
	portArg, teamPath := args[0], args[1]

	controllerPort, err := strconv.Atoi(portArg)
	if err != nil || controllerPort < 1 || controllerPort > 65535 {
		fail("Invalid port number", 6)
	}

	conn, err := net.Dial("tcp", fmt.Sprintf("localhost:%d", controllerPort))
	if err != nil {
		fail("Unable to connect to controller", 7)
	}
	defer conn.Close()

	teamFile, err := os.Open(teamPath)
	if err != nil {
		fail("Unable to access team file", 4)
	}
	defer teamFile.Close()

	if err := teamrt.ControllerSimulation(conn, teamFile, teamPath, debug); err != nil {
		result := exitcode.ForTeam(err)
		fail(result.Message, result.Code)
	}
}
