// Package definitions holds the in-memory representation of a parsed
// rulebook: the closed world of Types, their effectiveness relationships,
// Attacks, and Agents. A Definitions_t is built once by the rulebook parser
// and is immutable and safe for concurrent read access afterward.
package definitions
