package roster

import "github.com/haldorsen/sinisterwar/internal/definitions"

// MaxTeamPlayers is the fixed number of Members every Team carries.
const MaxTeamPlayers = 4

// MaxHealth is the health a Member starts a battle with.
const MaxHealth = 10

// Member is a Team slot: an Agent instance with current health and a
// circular attack ring. A fresh, full-health Member is produced each time
// it is selected to fight; the copy is discarded when the battle ends.
type Member struct {
	Agent   *definitions.Agent_t
	Health  int
	attacks *Ring[*definitions.Attack_t]
}

// NewMember builds a Member at full health with the given attack ring,
// which must be non-empty and a subset of agent's legal attacks.
func NewMember(agent *definitions.Agent_t, attacks []*definitions.Attack_t) *Member {
	return &Member{Agent: agent, Health: MaxHealth, attacks: NewRing(attacks)}
}

// Attacks returns the member's attack ring in file order.
func (m *Member) Attacks() []*definitions.Attack_t {
	return m.attacks.Items()
}

// NextAttack returns the attack under the cursor and advances the cursor.
func (m *Member) NextAttack() *definitions.Attack_t {
	a := m.attacks.Current()
	m.attacks.Advance()
	return a
}

// Eliminated reports whether the member's health has dropped to zero or
// below.
func (m *Member) Eliminated() bool {
	return m.Health <= 0
}

// ApplyDamage subtracts the numeric value of an effectiveness level from
// the member's health.
func (m *Member) ApplyDamage(level definitions.Level_e) {
	m.Health -= int(level)
}

// Clone returns a fresh, full-health copy of the member sharing the same
// attack ring contents but its own cursor, for re-selection in later
// battles.
func (m *Member) Clone() *Member {
	items := make([]*definitions.Attack_t, len(m.attacks.Items()))
	copy(items, m.attacks.Items())
	return NewMember(m.Agent, items)
}

// Team is a loaded team: a name, exactly MaxTeamPlayers Members, a grid
// position, a circular direction ring, and (when listening) the port it's
// bound to.
type Team struct {
	Name       string
	Members    [MaxTeamPlayers]*Member
	X, Y       int
	Directions *Ring[byte]
	Port       int
}
