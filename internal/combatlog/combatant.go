package combatlog

import (
	"strconv"
	"strings"
)

// CharacterStats is the 21-field combat-rating block of a COMBATANT_INFO
// record, in line order.
type CharacterStats struct {
	Strength               uint64
	Agility                uint64
	Stamina                uint64
	Intelligence           uint64
	Dodge                  uint64
	Parry                  uint64
	Block                  uint64
	CritMelee              uint64
	CritRanged             uint64
	CritSpell              uint64
	Speed                  uint64
	Leech                  uint64
	HasteMelee             uint64
	HasteRanged            uint64
	HasteSpell             uint64
	Avoidance              uint64
	Mastery                uint64
	VersatilityDamageDone  uint64
	VersatilityHealingDone uint64
	VersatilityDamageTaken uint64
	Armor                  uint64
}

// PVPStats is the trailing honor/rating block of a COMBATANT_INFO record.
type PVPStats struct {
	HonorLevel uint64
	Season     uint64
	Rating     uint64
	Tier       uint64
}

// ClassTalent is one selected talent node.
type ClassTalent struct {
	NodeID  uint64
	EntryID uint64
	Rank    uint64
}

// PVPTalents is the fixed 4-slot pvp talent selection.
type PVPTalents [4]uint64

// EquippedItem is one equipment slot. Empty slots carry item id 0. The three
// sub-lists are nil when their parenthesized group is empty.
type EquippedItem struct {
	ItemID     uint64
	ItemLevel  uint64
	EnchantIDs []uint64
	BonusIDs   []uint64
	GemIDs     []uint64
}

// InterestingAura is one active aura worth snapshotting. Caster is nil when
// the log wrote the all-zero GUID.
type InterestingAura struct {
	Caster  GUID
	SpellID uint64
}

// CombatantInfo is the per-player snapshot emitted at encounter start.
type CombatantInfo struct {
	GUID             GUID
	Faction          uint64
	Stats            CharacterStats
	CurrentSpecID    uint64
	ClassTalents     []ClassTalent
	PVPTalents       PVPTalents
	EquippedItems    []EquippedItem
	InterestingAuras []InterestingAura
	PVPStats         PVPStats
}

// combatantSections is the result of one tokenizer pass over the re-joined
// record: the top-level bracketed segments, the top-level parenthesized
// segments, and the scalar fields left between them.
type combatantSections struct {
	brackets []string
	parens   []string
	scalars  []string
}

// splitCombatantSections walks the joined record once, tracking bracket and
// paren depth. Segments are captured without their outer delimiters. The CSV
// split cut the record on every comma, including those nested inside
// brackets and parens, which is why the record must be re-joined and
// re-tokenized instead of read positionally.
func splitCombatantSections(joined string) (*combatantSections, error) {
	var s combatantSections
	var scalar strings.Builder
	depth := 0
	segStart := 0
	var segKind byte

	flushScalars := func() {
		for _, f := range strings.Split(scalar.String(), ",") {
			if f != "" {
				s.scalars = append(s.scalars, f)
			}
		}
		scalar.Reset()
	}

	for i := 0; i < len(joined); i++ {
		c := joined[i]
		switch c {
		case '[', '(':
			if depth == 0 {
				segStart = i + 1
				segKind = c
			}
			depth++
		case ']', ')':
			depth--
			if depth < 0 {
				return nil, &MalformedCombatantInfoError{Reason: "unbalanced brackets"}
			}
			if depth == 0 {
				seg := joined[segStart:i]
				if segKind == '[' {
					s.brackets = append(s.brackets, seg)
				} else {
					s.parens = append(s.parens, seg)
				}
			}
		default:
			if depth == 0 {
				scalar.WriteByte(c)
			}
		}
	}
	if depth != 0 {
		return nil, &MalformedCombatantInfoError{Reason: "unbalanced brackets"}
	}
	flushScalars()
	return &s, nil
}

// splitTopLevel splits s on commas that sit outside any paren nesting.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// parenGroups splits "(a,b),(c,d)" into the group contents.
func parenGroups(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var groups []string
	for _, part := range splitTopLevel(s) {
		if !strings.HasPrefix(part, "(") || !strings.HasSuffix(part, ")") {
			return nil, &MalformedCombatantInfoError{Reason: "expected parenthesized group, got " + part}
		}
		groups = append(groups, part[1:len(part)-1])
	}
	return groups, nil
}

func parseUintList(s string) ([]uint64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]uint64, 0, len(parts))
	for _, p := range parts {
		v, err := parseUint(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseClassTalents(segment string) ([]ClassTalent, error) {
	groups, err := parenGroups(segment)
	if err != nil {
		return nil, err
	}
	talents := make([]ClassTalent, 0, len(groups))
	for _, g := range groups {
		vals, err := parseUintList(g)
		if err != nil {
			return nil, err
		}
		if len(vals) != 3 {
			return nil, &MalformedCombatantInfoError{Reason: "class talent is not a triple: (" + g + ")"}
		}
		talents = append(talents, ClassTalent{NodeID: vals[0], EntryID: vals[1], Rank: vals[2]})
	}
	return talents, nil
}

func parsePVPTalents(segment string) (PVPTalents, error) {
	var t PVPTalents
	vals, err := parseUintList(segment)
	if err != nil {
		return t, err
	}
	if len(vals) != 4 {
		return t, &MalformedCombatantInfoError{Reason: "pvp talents is not a 4-tuple: (" + segment + ")"}
	}
	copy(t[:], vals)
	return t, nil
}

func parseEquippedItems(segment string) ([]EquippedItem, error) {
	groups, err := parenGroups(segment)
	if err != nil {
		return nil, err
	}
	items := make([]EquippedItem, 0, len(groups))
	for _, g := range groups {
		parts := splitTopLevel(g)
		if len(parts) != 5 {
			return nil, &MalformedCombatantInfoError{Reason: "equipped item does not have 5 parts: (" + g + ")"}
		}
		var item EquippedItem
		if item.ItemID, err = parseUint(parts[0]); err != nil {
			return nil, err
		}
		if item.ItemLevel, err = parseUint(parts[1]); err != nil {
			return nil, err
		}
		lists := []*[]uint64{&item.EnchantIDs, &item.BonusIDs, &item.GemIDs}
		for i, part := range parts[2:5] {
			if !strings.HasPrefix(part, "(") || !strings.HasSuffix(part, ")") {
				return nil, &MalformedCombatantInfoError{Reason: "equipped item sub-list is not parenthesized: " + part}
			}
			if *lists[i], err = parseUintList(part[1 : len(part)-1]); err != nil {
				return nil, err
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func parseInterestingAuras(segment string) ([]InterestingAura, error) {
	if segment == "" {
		return nil, nil
	}
	parts := strings.Split(segment, ",")
	if len(parts)%2 != 0 {
		return nil, &MalformedCombatantInfoError{Reason: "aura list has odd field count"}
	}
	auras := make([]InterestingAura, 0, len(parts)/2)
	for i := 0; i < len(parts); i += 2 {
		caster, err := ParseGUID(parts[i])
		if err != nil {
			return nil, err
		}
		spellID, err := parseUint(parts[i+1])
		if err != nil {
			return nil, err
		}
		auras = append(auras, InterestingAura{Caster: caster, SpellID: spellID})
	}
	return auras, nil
}

const combatantScalarCount = 27 // guid, faction, 21 stats, 4 pvp stats

// ParseCombatantInfo decodes a COMBATANT_INFO record. The record must carry
// exactly three top-level bracketed lists (class talents, equipped items,
// interesting auras, in that order) and exactly one top-level parenthesized
// tuple (pvp talents); anything else is malformed.
func ParseCombatantInfo(fields []string) (*CombatantInfo, error) {
	sections, err := splitCombatantSections(strings.Join(fields, ","))
	if err != nil {
		return nil, err
	}
	if n := len(sections.brackets); n != 3 {
		return nil, &MalformedCombatantInfoError{Reason: "expected 3 bracketed lists, found " + strconv.Itoa(n)}
	}
	if n := len(sections.parens); n != 1 {
		return nil, &MalformedCombatantInfoError{Reason: "expected 1 pvp talent tuple, found " + strconv.Itoa(n)}
	}
	scalars := sections.scalars
	if len(scalars) < combatantScalarCount {
		return nil, &MalformedCombatantInfoError{Reason: "expected at least 27 scalar fields, found " + strconv.Itoa(len(scalars))}
	}

	guid, err := ParseGUID(scalars[0])
	if err != nil {
		return nil, err
	}
	if guid == nil {
		return nil, &MalformedCombatantInfoError{Reason: "combatant GUID is absent"}
	}
	faction, err := parseUint(scalars[1])
	if err != nil {
		return nil, err
	}

	statVals := make([]uint64, 21)
	for i, f := range scalars[2:23] {
		if statVals[i], err = parseUint(f); err != nil {
			return nil, err
		}
	}

	info := &CombatantInfo{
		GUID:    guid,
		Faction: faction,
		Stats: CharacterStats{
			Strength:               statVals[0],
			Agility:                statVals[1],
			Stamina:                statVals[2],
			Intelligence:           statVals[3],
			Dodge:                  statVals[4],
			Parry:                  statVals[5],
			Block:                  statVals[6],
			CritMelee:              statVals[7],
			CritRanged:             statVals[8],
			CritSpell:              statVals[9],
			Speed:                  statVals[10],
			Leech:                  statVals[11],
			HasteMelee:             statVals[12],
			HasteRanged:            statVals[13],
			HasteSpell:             statVals[14],
			Avoidance:              statVals[15],
			Mastery:                statVals[16],
			VersatilityDamageDone:  statVals[17],
			VersatilityHealingDone: statVals[18],
			VersatilityDamageTaken: statVals[19],
			Armor:                  statVals[20],
		},
	}

	// Current-format records carry a spec id between the stats and the pvp
	// block; the pvp stats are always the last four scalars either way.
	if len(scalars) > combatantScalarCount {
		if info.CurrentSpecID, err = parseUint(scalars[23]); err != nil {
			return nil, err
		}
	}
	pvp := scalars[len(scalars)-4:]
	pvpVals := make([]uint64, 4)
	for i, f := range pvp {
		if pvpVals[i], err = parseUint(f); err != nil {
			return nil, err
		}
	}
	info.PVPStats = PVPStats{
		HonorLevel: pvpVals[0],
		Season:     pvpVals[1],
		Rating:     pvpVals[2],
		Tier:       pvpVals[3],
	}

	if info.ClassTalents, err = parseClassTalents(sections.brackets[0]); err != nil {
		return nil, err
	}
	if info.PVPTalents, err = parsePVPTalents(sections.parens[0]); err != nil {
		return nil, err
	}
	if info.EquippedItems, err = parseEquippedItems(sections.brackets[1]); err != nil {
		return nil, err
	}
	if info.InterestingAuras, err = parseInterestingAuras(sections.brackets[2]); err != nil {
		return nil, err
	}
	return info, nil
}
