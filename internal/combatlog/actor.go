package combatlog

// Actor is a named, flagged participant reference: GUID plus display name
// and combat flags. RaidFlags is nil when the log writes "nil".
type Actor struct {
	GUID      GUID
	Name      string
	Flags     uint64
	RaidFlags *uint64
}

// ParseActor decodes a 4-field actor block. An absent GUID (the all-zero
// sentinel) makes the whole block absent: (nil, nil), not an error.
func ParseActor(fields []string) (*Actor, error) {
	if len(fields) < 4 {
		return nil, &ShortRecordError{What: "actor", Need: 4, Have: len(fields)}
	}

	guid, err := ParseGUID(fields[0])
	if err != nil {
		return nil, err
	}
	if guid == nil {
		return nil, nil
	}

	flags, err := parseHex(fields[2])
	if err != nil {
		return nil, err
	}

	var raidFlags *uint64
	if fields[3] != "nil" {
		v, err := parseHex(fields[3])
		if err != nil {
			return nil, err
		}
		raidFlags = &v
	}

	return &Actor{
		GUID:      guid,
		Name:      fields[1],
		Flags:     flags,
		RaidFlags: raidFlags,
	}, nil
}

// SpellInfo is the 3-field spell identity sub-record shared by many shapes.
// Schools is nil when the school field was "-1" (absent), which is not the
// same as an empty school set.
type SpellInfo struct {
	ID      uint64
	Name    string
	Schools []SpellSchool
}

// ParseSpellInfo decodes a 3-field spell-info block.
func ParseSpellInfo(fields []string) (SpellInfo, error) {
	if len(fields) < 3 {
		return SpellInfo{}, &ShortRecordError{What: "spell info", Need: 3, Have: len(fields)}
	}

	id, err := parseUint(fields[0])
	if err != nil {
		return SpellInfo{}, err
	}
	schools, err := ParseSpellSchools(fields[2])
	if err != nil {
		return SpellInfo{}, err
	}

	return SpellInfo{ID: id, Name: fields[1], Schools: schools}, nil
}
