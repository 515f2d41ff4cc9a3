package combatlog

import "strings"

// advancedFieldCount is the fixed width of the advanced actor-state block.
const advancedFieldCount = 17

// PowerInfo is one resource pool of the advanced block. Type is nil when
// the log wrote "-1" for the pool's power code.
type PowerInfo struct {
	Type    *PowerType
	Current uint64
	Max     uint64
	Cost    uint64
}

// Position is the actor's world position and facing.
type Position struct {
	X      float64
	Y      float64
	Facing float64
}

// AdvancedParams is the fixed 17-field actor combat-state block that
// follows the prefix on certain suffix kinds.
type AdvancedParams struct {
	InfoGUID    GUID
	OwnerGUID   GUID
	CurrentHP   uint64
	MaxHP       uint64
	AttackPower uint64
	SpellPower  uint64
	Armor       uint64
	Absorb      uint64
	PowerInfo   []PowerInfo
	Position    Position
	UIMapID     uint64
	LevelOrILvl uint64
}

// parsePowerInfo zips four pipe-joined parallel cells (type, current, max,
// cost) into PowerInfo records. Multiple concurrent power pools collapse
// into one pipe-joined segment per cell; the four cells must split into
// sequences of equal length.
func parsePowerInfo(fields []string) ([]PowerInfo, error) {
	types := strings.Split(fields[0], "|")
	currents := strings.Split(fields[1], "|")
	maxes := strings.Split(fields[2], "|")
	costs := strings.Split(fields[3], "|")

	n := len(types)
	if len(currents) != n || len(maxes) != n || len(costs) != n {
		return nil, &MalformedPowerInfoError{
			Lengths: [4]int{n, len(currents), len(maxes), len(costs)},
		}
	}

	infos := make([]PowerInfo, 0, n)
	for i := 0; i < n; i++ {
		powerType, err := ParsePowerType(types[i])
		if err != nil {
			return nil, err
		}
		current, err := parseUint(currents[i])
		if err != nil {
			return nil, err
		}
		max, err := parseUint(maxes[i])
		if err != nil {
			return nil, err
		}
		cost, err := parseUint(costs[i])
		if err != nil {
			return nil, err
		}
		infos = append(infos, PowerInfo{
			Type:    powerType,
			Current: current,
			Max:     max,
			Cost:    cost,
		})
	}
	return infos, nil
}

// ParseAdvancedParams decodes the 17-field advanced block. The source index
// order is not fully contiguous: position x,y sit at 12-13, the map id at
// 14, facing at 15, and level at 16.
func ParseAdvancedParams(fields []string) (*AdvancedParams, error) {
	if len(fields) < advancedFieldCount {
		return nil, &ShortRecordError{What: "advanced params", Need: advancedFieldCount, Have: len(fields)}
	}

	infoGUID, err := ParseGUID(fields[0])
	if err != nil {
		return nil, err
	}
	ownerGUID, err := ParseGUID(fields[1])
	if err != nil {
		return nil, err
	}

	scalars := make([]uint64, 6)
	for i, f := range fields[2:8] {
		v, err := parseUint(f)
		if err != nil {
			return nil, err
		}
		scalars[i] = v
	}

	powerInfo, err := parsePowerInfo(fields[8:12])
	if err != nil {
		return nil, err
	}

	x, err := parseFloat(fields[12])
	if err != nil {
		return nil, err
	}
	y, err := parseFloat(fields[13])
	if err != nil {
		return nil, err
	}
	uiMapID, err := parseUint(fields[14])
	if err != nil {
		return nil, err
	}
	facing, err := parseFloat(fields[15])
	if err != nil {
		return nil, err
	}
	level, err := parseUint(fields[16])
	if err != nil {
		return nil, err
	}

	return &AdvancedParams{
		InfoGUID:    infoGUID,
		OwnerGUID:   ownerGUID,
		CurrentHP:   scalars[0],
		MaxHP:       scalars[1],
		AttackPower: scalars[2],
		SpellPower:  scalars[3],
		Armor:       scalars[4],
		Absorb:      scalars[5],
		PowerInfo:   powerInfo,
		Position:    Position{X: x, Y: y, Facing: facing},
		UIMapID:     uiMapID,
		LevelOrILvl: level,
	}, nil
}
