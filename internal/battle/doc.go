// Package battle implements the two-party turn-based battle state machine:
// member selection, alternating attacks, damage and elimination, and the
// narrative lines each event appends. A Battle_t only ever simulates its
// own side's Members directly; the opposing side is tracked as a small
// shadow model built from the agent names its iselectyou/attack messages
// reveal, resolved against the shared Definitions.
package battle
