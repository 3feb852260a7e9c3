package definitions

import "fmt"

// Level_e is the tri-valued effectiveness level derived from a Type's
// higher/lower relations. The numeric value is also the damage dealt by an
// attack at that level.
type Level_e int

const (
	Low    Level_e = 1
	Normal Level_e = 2
	High   Level_e = 3
)

// String implements the fmt.Stringer interface.
func (l Level_e) String() string {
	if str, ok := levelToString[l]; ok {
		return str
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

var levelToString = map[Level_e]string{
	Low:    "Low",
	Normal: "Normal",
	High:   "High",
}

// Type_t is a named element of the rulebook's type graph. Effectiveness
// holds the three narrative strings for this type, indexed by Level_e - 1
// (so Effectiveness[Low-1] is the "low" string, and so on). Lower and
// Higher hold the other types this type is respectively lower than and
// higher than; the graph they form may contain cycles.
type Type_t struct {
	Name          string
	Effectiveness [3]string
	Lower         []*Type_t
	Higher        []*Type_t
}

// HasEffectiveness reports whether the effectiveness section has already
// populated this type, used by the parser to reject duplicates.
func (t *Type_t) HasEffectiveness() bool {
	return t.Effectiveness[0] != ""
}

// EffectivenessString returns the narrative string for the given level.
func (t *Type_t) EffectivenessString(l Level_e) string {
	return t.Effectiveness[l-1]
}

// SetHigherThan records that t is higher than other. The rulebook's "+X"
// relation token calls this; the relation is stored only on t, not
// reciprocally on other, so that canonical serialisation can re-emit
// exactly the tokens a rulebook file declared.
func (t *Type_t) SetHigherThan(other *Type_t) {
	t.Higher = append(t.Higher, other)
}

// SetLowerThan records that t is lower than other. The rulebook's "-X"
// relation token calls this.
func (t *Type_t) SetLowerThan(other *Type_t) {
	t.Lower = append(t.Lower, other)
}

func contains(types []*Type_t, target *Type_t) bool {
	for _, t := range types {
		if t == target {
			return true
		}
	}
	return false
}

// Attack_t is a named action with exactly one type.
type Attack_t struct {
	Name string
	Type *Type_t
}

// Agent_t is a named combatant template with a type and exactly three
// legal attacks (unique by reference; names need not differ).
type Agent_t struct {
	Name         string
	Type         *Type_t
	LegalAttacks [3]*Attack_t
}

// LegalAttack reports whether the named attack may be used by this agent.
func (a *Agent_t) LegalAttack(attack *Attack_t) bool {
	for _, legal := range a.LegalAttacks {
		if legal == attack {
			return true
		}
	}
	return false
}

// Definitions_t is the immutable, parsed rulebook: arenas of Types, Attacks,
// and Agents plus by-name lookup. It is built once by the rulebook parser
// and shared read-only across every goroutine in the process.
type Definitions_t struct {
	Types   []*Type_t
	Attacks []*Attack_t
	Agents  []*Agent_t

	typesByName   map[string]*Type_t
	attacksByName map[string]*Attack_t
	agentsByName  map[string]*Agent_t
}

// New returns an empty Definitions_t ready for the parser to populate.
func New() *Definitions_t {
	return &Definitions_t{
		typesByName:   map[string]*Type_t{},
		attacksByName: map[string]*Attack_t{},
		agentsByName:  map[string]*Agent_t{},
	}
}

// Type returns the type with the given name, or nil if it doesn't exist.
func (d *Definitions_t) Type(name string) *Type_t {
	return d.typesByName[name]
}

// Attack returns the attack with the given name, or nil if it doesn't exist.
func (d *Definitions_t) Attack(name string) *Attack_t {
	return d.attacksByName[name]
}

// Agent returns the agent with the given name, or nil if it doesn't exist.
func (d *Definitions_t) Agent(name string) *Agent_t {
	return d.agentsByName[name]
}

// AddType appends a new, unnamed-duplicate Type_t to the arena. The caller
// must have already verified the name is not in use.
func (d *Definitions_t) AddType(name string) *Type_t {
	t := &Type_t{Name: name}
	d.Types = append(d.Types, t)
	d.typesByName[name] = t
	return t
}

// AddAttack appends a new Attack_t to the arena. The caller must have
// already verified the name is not in use.
func (d *Definitions_t) AddAttack(name string, typ *Type_t) *Attack_t {
	a := &Attack_t{Name: name, Type: typ}
	d.Attacks = append(d.Attacks, a)
	d.attacksByName[name] = a
	return a
}

// AddAgent appends a new Agent_t to the arena. The caller must have already
// verified the name is not in use.
func (d *Definitions_t) AddAgent(name string, typ *Type_t, attacks [3]*Attack_t) *Agent_t {
	a := &Agent_t{Name: name, Type: typ, LegalAttacks: attacks}
	d.Agents = append(d.Agents, a)
	d.agentsByName[name] = a
	return a
}

// Effectiveness returns the level of an attack against a target agent. Only
// the attacking type's own relation lists are consulted: Low if the
// target's type is in the attack's type's lower set, High if it's in the
// attack's type's higher set. The target type's own lists play no part,
// per spec.md's "symmetry of +/- between types is not enforced."
func Effectiveness(attack *Attack_t, target *Agent_t) Level_e {
	at, tt := attack.Type, target.Type
	if contains(at.Lower, tt) {
		return Low
	}
	if contains(at.Higher, tt) {
		return High
	}
	return Normal
}
