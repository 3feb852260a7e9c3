package rulebook

import (
	"bufio"
	"fmt"
	"log"
	"strings"

	"io"

	"github.com/haldorsen/sinisterwar/internal/definitions"
)

// maxLineBytes bounds a single rulebook line; the source format has no
// mandated upper bound, but an unbounded scanner buffer is an easy way to
// let a hostile or corrupt file exhaust memory.
const maxLineBytes = 64 * 1024

// Parse reads a rulebook from r and returns the resulting Definitions_t.
// name is used only in debug logging. debug turns on section-by-section
// tracing via log.Printf, in the style of internal/config's Load.
func Parse(name string, r io.Reader, debug bool) (*definitions.Definitions_t, error) {
	debugp := func(format string, args ...any) {
		if debug {
			log.Printf("[rulebook] %s: "+format, append([]any{name}, args...)...)
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 4096), maxLineBytes)

	defs := definitions.New()

	debugp("parsing types section")
	if err := parseTypes(scanner, defs, debugp); err != nil {
		return nil, err
	}
	debugp("parsing effectiveness section")
	if err := parseEffectiveness(scanner, defs, debugp); err != nil {
		return nil, err
	}
	debugp("parsing relations section")
	if err := parseRelations(scanner, defs, debugp); err != nil {
		return nil, err
	}
	debugp("parsing attacks section")
	if err := parseAttacks(scanner, defs, debugp); err != nil {
		return nil, err
	}
	debugp("parsing agents section")
	if err := parseAgents(scanner, defs, debugp); err != nil {
		return nil, err
	}

	for _, t := range defs.Types {
		if !t.HasEffectiveness() {
			return nil, fmt.Errorf("%s: %w", t.Name, ErrMissingEffectiveness)
		}
	}
	if len(defs.Types) == 0 || len(defs.Attacks) == 0 || len(defs.Agents) == 0 {
		return nil, ErrEmptyWorld
	}

	debugp("parsed %d types, %d attacks, %d agents", len(defs.Types), len(defs.Attacks), len(defs.Agents))
	return defs, nil
}

// readSection returns the raw, non-comment lines up to (not including) the
// terminating "." line. A blank line or EOF before the terminator is a
// parse error.
func readSection(scanner *bufio.Scanner) ([]string, error) {
	var lines []string
	for {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			return nil, ErrUnexpectedEOF
		}
		line := scanner.Text()
		if line == "." {
			return lines, nil
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if line == "" {
			return nil, ErrBlankLine
		}
		lines = append(lines, line)
	}
}

// splitStrict tokenises a line on single spaces, rejecting leading,
// trailing, or consecutive spaces (and tabs, which never separate tokens
// in this format).
func splitStrict(line string) ([]string, error) {
	if line == "" {
		return nil, ErrWrongFieldCount
	}
	if strings.HasPrefix(line, " ") || strings.HasSuffix(line, " ") || strings.Contains(line, "  ") || strings.Contains(line, "\t") {
		return nil, ErrBadSpacing
	}
	return strings.Split(line, " "), nil
}

func parseTypes(scanner *bufio.Scanner, defs *definitions.Definitions_t, debugp func(string, ...any)) error {
	lines, err := readSection(scanner)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fields, err := splitStrict(line)
		if err != nil {
			return err
		}
		if len(fields) != 1 {
			return fmt.Errorf("type line %q: %w", line, ErrWrongFieldCount)
		}
		name := fields[0]
		if defs.Type(name) != nil {
			return fmt.Errorf("type %q: %w", name, ErrDuplicateType)
		}
		defs.AddType(name)
		debugp("type %q", name)
	}
	return nil
}

func parseEffectiveness(scanner *bufio.Scanner, defs *definitions.Definitions_t, debugp func(string, ...any)) error {
	lines, err := readSection(scanner)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fields, err := splitStrict(line)
		if err != nil {
			return err
		}
		if len(fields) != 4 {
			return fmt.Errorf("effectiveness line %q: %w", line, ErrWrongFieldCount)
		}
		typ := defs.Type(fields[0])
		if typ == nil {
			return fmt.Errorf("effectiveness %q: %w", fields[0], ErrUnknownType)
		}
		if typ.HasEffectiveness() {
			return fmt.Errorf("effectiveness %q: %w", fields[0], ErrDuplicateEffectiveness)
		}
		typ.Effectiveness = [3]string{fields[1], fields[2], fields[3]}
		debugp("effectiveness %q: low=%q normal=%q high=%q", typ.Name, fields[1], fields[2], fields[3])
	}
	return nil
}

func parseRelations(scanner *bufio.Scanner, defs *definitions.Definitions_t, debugp func(string, ...any)) error {
	lines, err := readSection(scanner)
	if err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, line := range lines {
		fields, err := splitStrict(line)
		if err != nil {
			return err
		}
		if len(fields) < 1 {
			return fmt.Errorf("relation line %q: %w", line, ErrWrongFieldCount)
		}
		typ := defs.Type(fields[0])
		if typ == nil {
			return fmt.Errorf("relation %q: %w", fields[0], ErrUnknownType)
		}
		if seen[fields[0]] {
			return fmt.Errorf("relation %q: %w", fields[0], ErrDuplicateRelation)
		}
		seen[fields[0]] = true
		for _, rel := range fields[1:] {
			if len(rel) < 2 {
				return fmt.Errorf("relation token %q: %w", rel, ErrBadRelationToken)
			}
			op, otherName := rel[0], rel[1:]
			other := defs.Type(otherName)
			if other == nil {
				return fmt.Errorf("relation %q: %w", otherName, ErrUnknownType)
			}
			switch op {
			case '+':
				typ.SetHigherThan(other)
			case '-':
				typ.SetLowerThan(other)
			case '=':
				// parsed and discarded: no-op relation
			default:
				return fmt.Errorf("relation token %q: %w", rel, ErrBadRelationToken)
			}
		}
		debugp("relations %q: %v", typ.Name, fields[1:])
	}
	return nil
}

func parseAttacks(scanner *bufio.Scanner, defs *definitions.Definitions_t, debugp func(string, ...any)) error {
	lines, err := readSection(scanner)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fields, err := splitStrict(line)
		if err != nil {
			return err
		}
		if len(fields) != 2 {
			return fmt.Errorf("attack line %q: %w", line, ErrWrongFieldCount)
		}
		name, typeName := fields[0], fields[1]
		if defs.Attack(name) != nil {
			return fmt.Errorf("attack %q: %w", name, ErrDuplicateAttack)
		}
		typ := defs.Type(typeName)
		if typ == nil {
			return fmt.Errorf("attack %q: %w", typeName, ErrUnknownType)
		}
		defs.AddAttack(name, typ)
		debugp("attack %q: type %q", name, typeName)
	}
	return nil
}

func parseAgents(scanner *bufio.Scanner, defs *definitions.Definitions_t, debugp func(string, ...any)) error {
	lines, err := readSection(scanner)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fields, err := splitStrict(line)
		if err != nil {
			return err
		}
		if len(fields) != 5 {
			return fmt.Errorf("agent line %q: %w", line, ErrWrongFieldCount)
		}
		name, typeName := fields[0], fields[1]
		if defs.Agent(name) != nil {
			return fmt.Errorf("agent %q: %w", name, ErrDuplicateAgent)
		}
		typ := defs.Type(typeName)
		if typ == nil {
			return fmt.Errorf("agent %q: %w", typeName, ErrUnknownType)
		}
		var attacks [3]*definitions.Attack_t
		for i, attackName := range fields[2:] {
			attack := defs.Attack(attackName)
			if attack == nil {
				return fmt.Errorf("agent %q: %w", attackName, ErrUnknownAttack)
			}
			attacks[i] = attack
		}
		defs.AddAgent(name, typ, attacks)
		debugp("agent %q: type %q attacks %v", name, typeName, fields[2:])
	}
	return nil
}
