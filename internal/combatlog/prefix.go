package combatlog

import "strings"

// Prefix is the leading classification of a standard event plus any spell
// identity it carries.
type Prefix interface {
	isPrefix()
}

// SwingPrefix marks a melee swing; it consumes no fields.
type SwingPrefix struct{}

// RangePrefix carries the spell info of a ranged attack.
type RangePrefix struct {
	Spell SpellInfo
}

// SpellPrefix carries the spell info of a direct spell event. Spell is nil
// only for the SPELL_ABSORBED melee case, where the line omits the whole
// spell-info block.
type SpellPrefix struct {
	Spell *SpellInfo
}

// SpellPeriodicPrefix carries the spell info of a periodic (tick) event.
type SpellPeriodicPrefix struct {
	Spell SpellInfo
}

// SpellBuildingPrefix carries the spell info of a building-damage event.
type SpellBuildingPrefix struct {
	Spell SpellInfo
}

// EnvironmentalPrefix carries the hazard type of an environmental event.
type EnvironmentalPrefix struct {
	Type EnvironmentalType
}

func (SwingPrefix) isPrefix()         {}
func (RangePrefix) isPrefix()         {}
func (SpellPrefix) isPrefix()         {}
func (SpellPeriodicPrefix) isPrefix() {}
func (SpellBuildingPrefix) isPrefix() {}
func (EnvironmentalPrefix) isPrefix() {}

// prefixRule is one row of the ordered prefix-dispatch table.
type prefixRule struct {
	prefix  string
	consume int
	parse   func(fields []string) (Prefix, error)
}

// prefixRules is evaluated top to bottom with a starts-with match. Order
// matters: SPELL_PERIODIC and SPELL_BUILDING must be tested before the
// generic SPELL rule. A dedicated test pins this ordering.
var prefixRules = []prefixRule{
	{"SWING", 0, func([]string) (Prefix, error) {
		return SwingPrefix{}, nil
	}},
	{"RANGE", 3, func(fields []string) (Prefix, error) {
		info, err := ParseSpellInfo(fields)
		if err != nil {
			return nil, err
		}
		return RangePrefix{Spell: info}, nil
	}},
	{"SPELL_PERIODIC", 3, func(fields []string) (Prefix, error) {
		info, err := ParseSpellInfo(fields)
		if err != nil {
			return nil, err
		}
		return SpellPeriodicPrefix{Spell: info}, nil
	}},
	{"SPELL_BUILDING", 3, func(fields []string) (Prefix, error) {
		info, err := ParseSpellInfo(fields)
		if err != nil {
			return nil, err
		}
		return SpellBuildingPrefix{Spell: info}, nil
	}},
	{"SPELL", 3, func(fields []string) (Prefix, error) {
		// Zero fields happens only when the assembler decided an
		// ABSORBED line has no spell block.
		if len(fields) == 0 {
			return SpellPrefix{}, nil
		}
		info, err := ParseSpellInfo(fields)
		if err != nil {
			return nil, err
		}
		return SpellPrefix{Spell: &info}, nil
	}},
	{"ENVIRONMENTAL", 1, func(fields []string) (Prefix, error) {
		if len(fields) < 1 {
			return nil, &ShortRecordError{What: "environmental prefix", Need: 1, Have: 0}
		}
		envType, err := ParseEnvironmentalType(fields[0])
		if err != nil {
			return nil, err
		}
		return EnvironmentalPrefix{Type: envType}, nil
	}},
}

func lookupPrefixRule(eventType string) (*prefixRule, error) {
	for i := range prefixRules {
		if strings.HasPrefix(eventType, prefixRules[i].prefix) {
			return &prefixRules[i], nil
		}
	}
	return nil, &UnknownPrefixError{EventType: eventType}
}

// PrefixFieldCount reports how many leading fields the event type's prefix
// consumes.
func PrefixFieldCount(eventType string) (int, error) {
	rule, err := lookupPrefixRule(eventType)
	if err != nil {
		return 0, err
	}
	return rule.consume, nil
}

// ParsePrefix decodes the prefix fields for the given event type.
func ParsePrefix(eventType string, fields []string) (Prefix, error) {
	rule, err := lookupPrefixRule(eventType)
	if err != nil {
		return nil, err
	}
	return rule.parse(fields)
}
