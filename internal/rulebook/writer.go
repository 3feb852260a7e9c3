package rulebook

import (
	"bufio"
	"fmt"
	"io"

	"github.com/haldorsen/sinisterwar/internal/definitions"
)

// Write renders a Definitions_t back into the five-section rulebook format.
// Parsing the output of Write always yields an equal Definitions_t: for each
// type Write emits the "+X" and "-X" relations its own line declared ("+"
// tokens first, then "-" tokens) and nothing for the other side of a
// relation. "=X" tokens, which Parse discards, are not emitted.
func Write(w io.Writer, defs *definitions.Definitions_t) error {
	bw := bufio.NewWriter(w)

	for _, t := range defs.Types {
		if _, err := fmt.Fprintf(bw, "%s\n", t.Name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(bw, ".\n"); err != nil {
		return err
	}

	for _, t := range defs.Types {
		if _, err := fmt.Fprintf(bw, "%s %s %s %s\n", t.Name, t.Effectiveness[0], t.Effectiveness[1], t.Effectiveness[2]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(bw, ".\n"); err != nil {
		return err
	}

	for _, t := range defs.Types {
		if len(t.Higher) == 0 && len(t.Lower) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s", t.Name); err != nil {
			return err
		}
		for _, other := range t.Higher {
			if _, err := fmt.Fprintf(bw, " +%s", other.Name); err != nil {
				return err
			}
		}
		for _, other := range t.Lower {
			if _, err := fmt.Fprintf(bw, " -%s", other.Name); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(bw, "\n"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(bw, ".\n"); err != nil {
		return err
	}

	for _, a := range defs.Attacks {
		if _, err := fmt.Fprintf(bw, "%s %s\n", a.Name, a.Type.Name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(bw, ".\n"); err != nil {
		return err
	}

	for _, a := range defs.Agents {
		if _, err := fmt.Fprintf(bw, "%s %s %s %s %s\n", a.Name, a.Type.Name, a.LegalAttacks[0].Name, a.LegalAttacks[1].Name, a.LegalAttacks[2].Name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(bw, ".\n"); err != nil {
		return err
	}

	return bw.Flush()
}
