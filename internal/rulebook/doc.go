// Package rulebook parses and serialises the section-based text format that
// describes a closed world of Types, Attacks, and Agents: five sections in
// fixed order (Types, Effectiveness, Relations, Attacks, Agents), each
// terminated by a line containing exactly ".". Parse builds a
// definitions.Definitions_t; Write renders one back out in canonical form
// so that parse -> write -> parse is idempotent.
package rulebook
