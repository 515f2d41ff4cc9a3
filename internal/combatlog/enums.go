package combatlog

import (
	"strconv"
	"strings"
)

// SpellSchool is a single school bit from the combat-log school bitmask.
// https://warcraft.wiki.gg/wiki/COMBAT_LOG_EVENT#Spell_School
type SpellSchool uint8

const (
	SchoolPhysical SpellSchool = 1
	SchoolHoly     SpellSchool = 2
	SchoolFire     SpellSchool = 4
	SchoolNature   SpellSchool = 8
	SchoolFrost    SpellSchool = 16
	SchoolShadow   SpellSchool = 32
	SchoolArcane   SpellSchool = 64
)

var spellSchools = []SpellSchool{
	SchoolPhysical, SchoolHoly, SchoolFire, SchoolNature,
	SchoolFrost, SchoolShadow, SchoolArcane,
}

var spellSchoolNames = map[SpellSchool]string{
	SchoolPhysical: "Physical",
	SchoolHoly:     "Holy",
	SchoolFire:     "Fire",
	SchoolNature:   "Nature",
	SchoolFrost:    "Frost",
	SchoolShadow:   "Shadow",
	SchoolArcane:   "Arcane",
}

func (s SpellSchool) String() string {
	if n, ok := spellSchoolNames[s]; ok {
		return n
	}
	return "SpellSchool(" + strconv.Itoa(int(s)) + ")"
}

// ParseSpellSchools decodes a school bitmask (decimal or 0x-prefixed hex)
// into the set of schools whose bit is set. "-1" means the field is absent
// and yields a nil slice with no error; a zero mask yields an empty,
// non-nil slice. The two are distinct states.
func ParseSpellSchools(s string) ([]SpellSchool, error) {
	if s == "-1" {
		return nil, nil
	}

	var mask uint64
	var err error
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		mask, err = strconv.ParseUint(s[2:], 16, 8)
	} else {
		mask, err = strconv.ParseUint(s, 10, 8)
	}
	if err != nil {
		return nil, &InvalidNumberError{Field: s, Type: "spell school mask"}
	}

	schools := make([]SpellSchool, 0, 7)
	for _, school := range spellSchools {
		if uint64(school)&mask != 0 {
			schools = append(schools, school)
		}
	}
	return schools, nil
}

// PowerType is the signed resource code attached to energize/drain/leech
// payloads and advanced power cells.
// https://warcraft.wiki.gg/wiki/COMBAT_LOG_EVENT#Power_Type
type PowerType int8

const (
	PowerHealth             PowerType = -2
	PowerMana               PowerType = 0
	PowerRage               PowerType = 1
	PowerFocus              PowerType = 2
	PowerEnergy             PowerType = 3
	PowerComboPoints        PowerType = 4
	PowerRunes              PowerType = 5
	PowerRunicPower         PowerType = 6
	PowerSoulShards         PowerType = 7
	PowerLunarPower         PowerType = 8
	PowerHolyPower          PowerType = 9
	PowerAlternate          PowerType = 10
	PowerMaelstrom          PowerType = 11
	PowerChi                PowerType = 12
	PowerInsanity           PowerType = 13
	PowerObsolete           PowerType = 14
	PowerObsolete2          PowerType = 15
	PowerArcaneCharges      PowerType = 16
	PowerFury               PowerType = 17
	PowerPain               PowerType = 18
	PowerEssence            PowerType = 19
	PowerRuneBlood          PowerType = 20
	PowerRuneFrost          PowerType = 21
	PowerRuneUnholy         PowerType = 22
	PowerAlternateQuest     PowerType = 23
	PowerAlternateEncounter PowerType = 24
	PowerAlternateMount     PowerType = 25
)

var powerTypeNames = map[PowerType]string{
	PowerHealth:             "Health",
	PowerMana:               "Mana",
	PowerRage:               "Rage",
	PowerFocus:              "Focus",
	PowerEnergy:             "Energy",
	PowerComboPoints:        "ComboPoints",
	PowerRunes:              "Runes",
	PowerRunicPower:         "RunicPower",
	PowerSoulShards:         "SoulShards",
	PowerLunarPower:         "LunarPower",
	PowerHolyPower:          "HolyPower",
	PowerAlternate:          "Alternate",
	PowerMaelstrom:          "Maelstrom",
	PowerChi:                "Chi",
	PowerInsanity:           "Insanity",
	PowerObsolete:           "Obsolete",
	PowerObsolete2:          "Obsolete2",
	PowerArcaneCharges:      "ArcaneCharges",
	PowerFury:               "Fury",
	PowerPain:               "Pain",
	PowerEssence:            "Essence",
	PowerRuneBlood:          "RuneBlood",
	PowerRuneFrost:          "RuneFrost",
	PowerRuneUnholy:         "RuneUnholy",
	PowerAlternateQuest:     "AlternateQuest",
	PowerAlternateEncounter: "AlternateEncounter",
	PowerAlternateMount:     "AlternateMount",
}

func (p PowerType) String() string {
	if n, ok := powerTypeNames[p]; ok {
		return n
	}
	return "PowerType(" + strconv.Itoa(int(p)) + ")"
}

// ParsePowerType decodes a signed power code. "-1" means absent and yields
// (nil, nil). Codes outside the enumeration fail.
func ParsePowerType(s string) (*PowerType, error) {
	if s == "-1" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 8)
	if err != nil {
		return nil, &InvalidNumberError{Field: s, Type: "power type"}
	}
	p := PowerType(v)
	if _, ok := powerTypeNames[p]; !ok {
		return nil, &UnknownPowerTypeError{Code: int8(v)}
	}
	return &p, nil
}

// MissType classifies a MISSED suffix.
// https://warcraft.wiki.gg/wiki/COMBAT_LOG_EVENT#Miss_Type
type MissType int

const (
	MissAbsorb MissType = iota
	MissBlock
	MissDeflect
	MissDodge
	MissEvade
	MissImmune
	MissMiss
	MissParry
	MissReflect
	MissResist
)

var missTypes = map[string]MissType{
	"Absorb":  MissAbsorb,
	"Block":   MissBlock,
	"Deflect": MissDeflect,
	"Dodge":   MissDodge,
	"Evade":   MissEvade,
	"Immune":  MissImmune,
	"Miss":    MissMiss,
	"Parry":   MissParry,
	"Reflect": MissReflect,
	"Resist":  MissResist,
}

func (m MissType) String() string {
	for name, v := range missTypes {
		if v == m {
			return name
		}
	}
	return "MissType(" + strconv.Itoa(int(m)) + ")"
}

// ParseMissType decodes the upper-cased game text (e.g. "ABSORB").
func ParseMissType(s string) (MissType, error) {
	m, ok := missTypes[titleCase(s)]
	if !ok {
		return 0, &UnknownEnumValueError{Kind: "MissType", Raw: s}
	}
	return m, nil
}

// AuraType distinguishes buffs from debuffs.
type AuraType int

const (
	AuraBuff AuraType = iota
	AuraDebuff
)

var auraTypes = map[string]AuraType{
	"Buff":   AuraBuff,
	"Debuff": AuraDebuff,
}

func (a AuraType) String() string {
	if a == AuraBuff {
		return "Buff"
	}
	return "Debuff"
}

// ParseAuraType decodes the upper-cased game text ("BUFF"/"DEBUFF").
func ParseAuraType(s string) (AuraType, error) {
	a, ok := auraTypes[titleCase(s)]
	if !ok {
		return 0, &UnknownEnumValueError{Kind: "AuraType", Raw: s}
	}
	return a, nil
}

// EnvironmentalType is the hazard kind carried by ENVIRONMENTAL events.
type EnvironmentalType int

const (
	EnvDrowning EnvironmentalType = iota
	EnvFalling
	EnvFatigue
	EnvFire
	EnvLava
	EnvSlime
)

var environmentalTypes = map[string]EnvironmentalType{
	"Drowning": EnvDrowning,
	"Falling":  EnvFalling,
	"Fatigue":  EnvFatigue,
	"Fire":     EnvFire,
	"Lava":     EnvLava,
	"Slime":    EnvSlime,
}

func (e EnvironmentalType) String() string {
	for name, v := range environmentalTypes {
		if v == e {
			return name
		}
	}
	return "EnvironmentalType(" + strconv.Itoa(int(e)) + ")"
}

// ParseEnvironmentalType decodes the environmental hazard name.
func ParseEnvironmentalType(s string) (EnvironmentalType, error) {
	e, ok := environmentalTypes[titleCase(s)]
	if !ok {
		return 0, &UnknownEnumValueError{Kind: "EnvironmentalType", Raw: s}
	}
	return e, nil
}

// CreatureType is the unit-GUID subtype token.
type CreatureType int

const (
	CreatureCreature CreatureType = iota
	CreaturePet
	CreatureGameObject
	CreatureVehicle
)

var creatureTypes = map[string]CreatureType{
	"Creature":   CreatureCreature,
	"Pet":        CreaturePet,
	"GameObject": CreatureGameObject,
	"Vehicle":    CreatureVehicle,
}

func (c CreatureType) String() string {
	for name, v := range creatureTypes {
		if v == c {
			return name
		}
	}
	return "CreatureType(" + strconv.Itoa(int(c)) + ")"
}

// ParseCreatureType decodes a unit-GUID subtype token. Unlike the other
// string enums the token arrives mixed-case ("GameObject"), so it is
// matched exactly rather than title-cased.
func ParseCreatureType(s string) (CreatureType, error) {
	c, ok := creatureTypes[s]
	if !ok {
		return 0, &UnknownEnumValueError{Kind: "CreatureType", Raw: s}
	}
	return c, nil
}

// titleCase uppercases the first byte and lowercases the rest, turning the
// log's shouting ("ABSORB", "DEBUFF") into enum-name casing.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
