package combatlog

import "strings"

// Special is an event whose entire record shape is irregular and bypasses
// the prefix/advanced/suffix pipeline.
type Special interface {
	isSpecial()
}

// EnchantApplied records a weapon enchant landing on an item.
type EnchantApplied struct {
	Source    *Actor
	Target    *Actor
	SpellName string
	ItemID    uint64
	ItemName  string
}

// EnchantRemoved records a weapon enchant expiring from an item.
type EnchantRemoved struct {
	Source    *Actor
	Target    *Actor
	SpellName string
	ItemID    uint64
	ItemName  string
}

// PartyKill records a party member landing a killing blow.
type PartyKill struct {
	Source             *Actor
	Target             *Actor
	UnconsciousOnDeath bool
}

// UnitDied records a unit death.
type UnitDied struct {
	Source             *Actor
	Target             *Actor
	UnconsciousOnDeath bool
}

// UnitDestroyed records a summoned unit being destroyed.
type UnitDestroyed struct {
	Source             *Actor
	Target             *Actor
	UnconsciousOnDeath bool
}

// UnitDissipates records a unit dissipating.
type UnitDissipates struct {
	Source             *Actor
	Target             *Actor
	UnconsciousOnDeath bool
}

// CombatLogInfo is the version-announcement record at the top of a log.
type CombatLogInfo struct {
	LogVersion         uint64
	AdvancedLogEnabled bool
	BuildVersion       string
	ProjectID          uint64
}

// ZoneChange records the player moving between zones.
type ZoneChange struct {
	InstanceID uint64
	ZoneName   string
	ID         uint64
}

// MapChange records the player moving between UI maps, with the map's
// world-coordinate bounding box.
type MapChange struct {
	UIMapID   uint64
	UIMapName string
	X0, X1    float64
	Y0, Y1    float64
}

// EncounterStart records a boss encounter beginning.
type EncounterStart struct {
	EncounterID   uint64
	EncounterName string
	DifficultyID  uint64
	GroupSize     uint64
	InstanceID    uint64
}

// EncounterEnd records a boss encounter ending.
type EncounterEnd struct {
	EncounterID   uint64
	EncounterName string
	DifficultyID  uint64
	GroupSize     uint64
	Success       bool
	FightTime     uint64
}

// WorldMarkerPlaced records a raid marker being placed in the world.
type WorldMarkerPlaced struct {
	InstanceID uint64
	Marker     uint64
	X          float64
	Y          float64
}

// WorldMarkerRemoved records a raid marker being cleared.
type WorldMarkerRemoved struct {
	Marker uint64
}

// EmoteStandard is an emote attributed to a single actor block.
type EmoteStandard struct {
	Actor *Actor
	Text  string
}

// EmoteEnvironmental is an emote carrying bare source/target identities
// instead of full actor blocks.
type EmoteEnvironmental struct {
	SourceGUID GUID
	SourceName string
	TargetGUID GUID
	TargetName string
	Text       string
}

// CombatantInfoEvent wraps the combatant snapshot record.
type CombatantInfoEvent struct {
	Info CombatantInfo
}

// ChallengeModeStart records a mythic+ keystone run beginning.
type ChallengeModeStart struct {
	ZoneName        string
	InstanceID      uint64
	ChallengeModeID uint64
	KeystoneLevel   uint64
	AffixIDs        []uint64
}

// ChallengeModeEnd records a mythic+ keystone run ending.
type ChallengeModeEnd struct {
	InstanceID    uint64
	Success       bool
	KeystoneLevel uint64
	TotalTime     uint64
}

func (EnchantApplied) isSpecial()     {}
func (EnchantRemoved) isSpecial()     {}
func (PartyKill) isSpecial()          {}
func (UnitDied) isSpecial()           {}
func (UnitDestroyed) isSpecial()      {}
func (UnitDissipates) isSpecial()     {}
func (CombatLogInfo) isSpecial()      {}
func (ZoneChange) isSpecial()         {}
func (MapChange) isSpecial()          {}
func (EncounterStart) isSpecial()     {}
func (EncounterEnd) isSpecial()       {}
func (WorldMarkerPlaced) isSpecial()  {}
func (WorldMarkerRemoved) isSpecial() {}
func (EmoteStandard) isSpecial()      {}
func (EmoteEnvironmental) isSpecial() {}
func (CombatantInfoEvent) isSpecial() {}
func (ChallengeModeStart) isSpecial() {}
func (ChallengeModeEnd) isSpecial()   {}

// unitLifecycle is the shared source/target/flag layout of the kill and
// death records.
func unitLifecycle(fields []string) (*Actor, *Actor, bool, error) {
	if err := needFields("unit lifecycle record", fields, 9); err != nil {
		return nil, nil, false, err
	}
	source, err := ParseActor(fields[0:4])
	if err != nil {
		return nil, nil, false, err
	}
	target, err := ParseActor(fields[4:8])
	if err != nil {
		return nil, nil, false, err
	}
	unconscious, err := parseBool(fields[8])
	if err != nil {
		return nil, nil, false, err
	}
	return source, target, unconscious, nil
}

func parseEnchant(fields []string) (*Actor, *Actor, string, uint64, string, error) {
	if err := needFields("enchant record", fields, 11); err != nil {
		return nil, nil, "", 0, "", err
	}
	source, err := ParseActor(fields[0:4])
	if err != nil {
		return nil, nil, "", 0, "", err
	}
	target, err := ParseActor(fields[4:8])
	if err != nil {
		return nil, nil, "", 0, "", err
	}
	itemID, err := parseUint(fields[9])
	if err != nil {
		return nil, nil, "", 0, "", err
	}
	return source, target, fields[8], itemID, fields[10], nil
}

// ParseSpecial tries the name-indexed table of irregular records. A name not
// in the table yields (nil, nil): not special, dispatch as standard.
func ParseSpecial(eventType string, fields []string) (Special, error) {
	switch eventType {
	case "ENCHANT_APPLIED":
		source, target, spellName, itemID, itemName, err := parseEnchant(fields)
		if err != nil {
			return nil, err
		}
		return EnchantApplied{
			Source:    source,
			Target:    target,
			SpellName: spellName,
			ItemID:    itemID,
			ItemName:  itemName,
		}, nil

	case "ENCHANT_REMOVED":
		source, target, spellName, itemID, itemName, err := parseEnchant(fields)
		if err != nil {
			return nil, err
		}
		return EnchantRemoved{
			Source:    source,
			Target:    target,
			SpellName: spellName,
			ItemID:    itemID,
			ItemName:  itemName,
		}, nil

	case "PARTY_KILL":
		source, target, unconscious, err := unitLifecycle(fields)
		if err != nil {
			return nil, err
		}
		return PartyKill{Source: source, Target: target, UnconsciousOnDeath: unconscious}, nil

	case "UNIT_DIED":
		source, target, unconscious, err := unitLifecycle(fields)
		if err != nil {
			return nil, err
		}
		return UnitDied{Source: source, Target: target, UnconsciousOnDeath: unconscious}, nil

	case "UNIT_DESTROYED":
		source, target, unconscious, err := unitLifecycle(fields)
		if err != nil {
			return nil, err
		}
		return UnitDestroyed{Source: source, Target: target, UnconsciousOnDeath: unconscious}, nil

	case "UNIT_DISSIPATES":
		source, target, unconscious, err := unitLifecycle(fields)
		if err != nil {
			return nil, err
		}
		return UnitDissipates{Source: source, Target: target, UnconsciousOnDeath: unconscious}, nil

	case "COMBAT_LOG_VERSION":
		// Layout is key/value pairs: version, ADVANCED_LOG_ENABLED,
		// flag, BUILD_VERSION, version string, PROJECT_ID, id.
		if err := needFields("combat log version record", fields, 7); err != nil {
			return nil, err
		}
		logVersion, err := parseUint(fields[0])
		if err != nil {
			return nil, err
		}
		advanced, err := parseBool(fields[2])
		if err != nil {
			return nil, err
		}
		projectID, err := parseUint(fields[6])
		if err != nil {
			return nil, err
		}
		return CombatLogInfo{
			LogVersion:         logVersion,
			AdvancedLogEnabled: advanced,
			BuildVersion:       fields[4],
			ProjectID:          projectID,
		}, nil

	case "ZONE_CHANGE":
		if err := needFields("zone change record", fields, 3); err != nil {
			return nil, err
		}
		instanceID, err := parseUint(fields[0])
		if err != nil {
			return nil, err
		}
		id, err := parseUint(fields[2])
		if err != nil {
			return nil, err
		}
		return ZoneChange{InstanceID: instanceID, ZoneName: fields[1], ID: id}, nil

	case "MAP_CHANGE":
		if err := needFields("map change record", fields, 6); err != nil {
			return nil, err
		}
		uiMapID, err := parseUint(fields[0])
		if err != nil {
			return nil, err
		}
		coords := make([]float64, 4)
		for i, f := range fields[2:6] {
			v, err := parseFloat(f)
			if err != nil {
				return nil, err
			}
			coords[i] = v
		}
		return MapChange{
			UIMapID:   uiMapID,
			UIMapName: fields[1],
			X0:        coords[0],
			X1:        coords[1],
			Y0:        coords[2],
			Y1:        coords[3],
		}, nil

	case "ENCOUNTER_START":
		if err := needFields("encounter start record", fields, 5); err != nil {
			return nil, err
		}
		encounterID, err := parseUint(fields[0])
		if err != nil {
			return nil, err
		}
		difficultyID, err := parseUint(fields[2])
		if err != nil {
			return nil, err
		}
		groupSize, err := parseUint(fields[3])
		if err != nil {
			return nil, err
		}
		instanceID, err := parseUint(fields[4])
		if err != nil {
			return nil, err
		}
		return EncounterStart{
			EncounterID:   encounterID,
			EncounterName: fields[1],
			DifficultyID:  difficultyID,
			GroupSize:     groupSize,
			InstanceID:    instanceID,
		}, nil

	case "ENCOUNTER_END":
		if err := needFields("encounter end record", fields, 6); err != nil {
			return nil, err
		}
		encounterID, err := parseUint(fields[0])
		if err != nil {
			return nil, err
		}
		difficultyID, err := parseUint(fields[2])
		if err != nil {
			return nil, err
		}
		groupSize, err := parseUint(fields[3])
		if err != nil {
			return nil, err
		}
		success, err := parseBool(fields[4])
		if err != nil {
			return nil, err
		}
		fightTime, err := parseUint(fields[5])
		if err != nil {
			return nil, err
		}
		return EncounterEnd{
			EncounterID:   encounterID,
			EncounterName: fields[1],
			DifficultyID:  difficultyID,
			GroupSize:     groupSize,
			Success:       success,
			FightTime:     fightTime,
		}, nil

	case "WORLD_MARKER_PLACED":
		if err := needFields("world marker placed record", fields, 4); err != nil {
			return nil, err
		}
		instanceID, err := parseUint(fields[0])
		if err != nil {
			return nil, err
		}
		marker, err := parseUint(fields[1])
		if err != nil {
			return nil, err
		}
		x, err := parseFloat(fields[2])
		if err != nil {
			return nil, err
		}
		y, err := parseFloat(fields[3])
		if err != nil {
			return nil, err
		}
		return WorldMarkerPlaced{InstanceID: instanceID, Marker: marker, X: x, Y: y}, nil

	case "WORLD_MARKER_REMOVED":
		if err := needFields("world marker removed record", fields, 1); err != nil {
			return nil, err
		}
		marker, err := parseUint(fields[0])
		if err != nil {
			return nil, err
		}
		return WorldMarkerRemoved{Marker: marker}, nil

	case "EMOTE":
		return parseEmote(fields)

	case "COMBATANT_INFO":
		info, err := ParseCombatantInfo(fields)
		if err != nil {
			return nil, err
		}
		return CombatantInfoEvent{Info: *info}, nil

	case "CHALLENGE_MODE_START":
		if err := needFields("challenge mode start record", fields, 5); err != nil {
			return nil, err
		}
		instanceID, err := parseUint(fields[1])
		if err != nil {
			return nil, err
		}
		challengeModeID, err := parseUint(fields[2])
		if err != nil {
			return nil, err
		}
		keystoneLevel, err := parseUint(fields[3])
		if err != nil {
			return nil, err
		}
		affixIDs, err := parseAffixList(fields[4:])
		if err != nil {
			return nil, err
		}
		return ChallengeModeStart{
			ZoneName:        fields[0],
			InstanceID:      instanceID,
			ChallengeModeID: challengeModeID,
			KeystoneLevel:   keystoneLevel,
			AffixIDs:        affixIDs,
		}, nil

	case "CHALLENGE_MODE_END":
		if err := needFields("challenge mode end record", fields, 4); err != nil {
			return nil, err
		}
		instanceID, err := parseUint(fields[0])
		if err != nil {
			return nil, err
		}
		success, err := parseBool(fields[1])
		if err != nil {
			return nil, err
		}
		keystoneLevel, err := parseUint(fields[2])
		if err != nil {
			return nil, err
		}
		totalTime, err := parseUint(fields[3])
		if err != nil {
			return nil, err
		}
		return ChallengeModeEnd{
			InstanceID:    instanceID,
			Success:       success,
			KeystoneLevel: keystoneLevel,
			TotalTime:     totalTime,
		}, nil
	}

	return nil, nil
}

// parseEmote disambiguates the two emote layouts by trying field[2] as a
// GUID. The data carries no tag; try-parse-then-branch is the only signal.
func parseEmote(fields []string) (Special, error) {
	if err := needFields("emote record", fields, 5); err != nil {
		return nil, err
	}

	if targetGUID, err := ParseGUID(fields[2]); err == nil {
		sourceGUID, err := ParseGUID(fields[0])
		if err != nil {
			return nil, err
		}
		return EmoteEnvironmental{
			SourceGUID: sourceGUID,
			SourceName: fields[1],
			TargetGUID: targetGUID,
			TargetName: fields[3],
			Text:       fields[4],
		}, nil
	}

	actor, err := ParseActor(fields[:4])
	if err != nil {
		return nil, err
	}
	return EmoteStandard{Actor: actor, Text: fields[4]}, nil
}

// parseAffixList decodes the trailing bracketed affix-id list. The CSV split
// has already cut the list on its internal commas, so the fields are
// re-joined before the brackets come off.
func parseAffixList(fields []string) ([]uint64, error) {
	joined := strings.Join(fields, ",")
	joined = strings.TrimPrefix(joined, "[")
	joined = strings.TrimSuffix(joined, "]")
	if joined == "" {
		return nil, nil
	}

	parts := strings.Split(joined, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		id, err := parseUint(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
