package rulebook

import "github.com/haldorsen/sinisterwar/cerrs"

// Errors specific to rulebook syntax. A caller that only cares about the
// exit-code mapping from §6 can treat any of these as "bad rulebook file";
// they're kept distinct here because the vocabulary is useful in tests and
// in -debug output.
const (
	ErrBlankLine            = cerrs.Error("rulebook: blank line inside section")
	ErrUnexpectedEOF         = cerrs.Error("rulebook: unexpected end of file inside section")
	ErrBadSpacing           = cerrs.Error("rulebook: leading, trailing, or consecutive spaces")
	ErrWrongFieldCount      = cerrs.Error("rulebook: wrong number of fields")
	ErrDuplicateType        = cerrs.Error("rulebook: duplicate type name")
	ErrUnknownType          = cerrs.Error("rulebook: unknown type name")
	ErrDuplicateEffectiveness = cerrs.Error("rulebook: type already has effectiveness set")
	ErrDuplicateRelation    = cerrs.Error("rulebook: type already appears in relations section")
	ErrBadRelationToken     = cerrs.Error("rulebook: relation token must start with +, -, or =")
	ErrDuplicateAttack      = cerrs.Error("rulebook: duplicate attack name")
	ErrDuplicateAgent       = cerrs.Error("rulebook: duplicate agent name")
	ErrUnknownAttack        = cerrs.Error("rulebook: unknown attack name")
	ErrMissingEffectiveness = cerrs.Error("rulebook: type declared but never given effectiveness")
	ErrEmptyWorld           = cerrs.Error("rulebook: must declare at least one type, attack, and agent")
	ErrUnknownSection       = cerrs.Error("rulebook: internal: unknown section")
)
