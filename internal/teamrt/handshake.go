package teamrt

import (
	"fmt"

	"github.com/haldorsen/sinisterwar/internal/protocol"
)

// doChallenge sends "fightmeirl <ownName>" and reads back the responder's
// "haveatyou <name>", returning the opponent's name. Used by the
// connection-initiating side of a battle (goFirst=true).
func doChallenge(rw *protocol.ReadWriter, ownName string) (string, error) {
	if err := rw.WriteFightMeIRL(ownName); err != nil {
		return "", err
	}
	msg, err := rw.ReadMessage()
	if err != nil {
		return "", err
	}
	have, ok := msg.(protocol.HaveAtYouMsg)
	if !ok {
		return "", fmt.Errorf("expected haveatyou: %w", ErrProtocol)
	}
	return have.Name, nil
}

// beChallenged reads a "fightmeirl <name>" and replies "haveatyou
// <ownName>", returning the challenger's name. Used by the side that
// accepted the connection (goFirst=false).
func beChallenged(rw *protocol.ReadWriter, ownName string) (string, error) {
	msg, err := rw.ReadMessage()
	if err != nil {
		return "", err
	}
	fm, ok := msg.(protocol.FightMeIRLMsg)
	if !ok {
		return "", fmt.Errorf("expected fightmeirl: %w", ErrProtocol)
	}
	if err := rw.WriteHaveAtYou(ownName); err != nil {
		return "", err
	}
	return fm.Name, nil
}
