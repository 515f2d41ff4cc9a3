package combatlog

import "strings"

// noneGUID is the literal the log writes for "no identity".
const noneGUID = "0000000000000000"

// GUID is a composite, dash-delimited identity for a game entity. A nil GUID
// means the log carried the all-zero sentinel. Only the Player and
// creature-like variants ever appear in real lines today; the remaining
// kinds are modeled for completeness but have no decode path.
type GUID interface {
	isGUID()
}

// PlayerGUID identifies a player character.
type PlayerGUID struct {
	ServerID  uint64
	PlayerUID string
}

// UnitGUID identifies a creature, pet, game object, or vehicle.
type UnitGUID struct {
	UnitType   CreatureType
	ServerID   uint64
	InstanceID uint64
	ZoneUID    uint64
	ID         uint64
	SpawnUID   string
}

// BattlePetGUID identifies a caged battle pet.
type BattlePetGUID struct {
	ID uint64
}

// BNetAccountGUID identifies a Battle.net account.
type BNetAccountGUID struct {
	AccountID uint64
}

// CastGUID identifies a single cast instance.
type CastGUID struct {
	CastType   uint64
	ServerID   uint64
	InstanceID uint64
	ZoneUID    uint64
	SpellID    uint64
	CastUID    uint64
}

// ClientActorGUID identifies a client-side actor.
type ClientActorGUID struct {
	X, Y, Z uint64
}

// FollowerGUID identifies a garrison follower.
type FollowerGUID struct {
	ID uint64
}

// ItemGUID identifies an item instance.
type ItemGUID struct {
	ServerID uint64
	SpawnUID uint64
}

// VignetteGUID identifies a vignette.
type VignetteGUID struct {
	ServerID   uint64
	InstanceID uint64
	ZoneUID    uint64
	SpawnUID   uint64
}

func (PlayerGUID) isGUID()      {}
func (UnitGUID) isGUID()        {}
func (BattlePetGUID) isGUID()   {}
func (BNetAccountGUID) isGUID() {}
func (CastGUID) isGUID()        {}
func (ClientActorGUID) isGUID() {}
func (FollowerGUID) isGUID()    {}
func (ItemGUID) isGUID()        {}
func (VignetteGUID) isGUID()    {}

// ParseGUID decodes a dash-delimited GUID. The all-zero sentinel decodes to
// (nil, nil): absence of identity, not an error.
func ParseGUID(s string) (GUID, error) {
	if s == noneGUID {
		return nil, nil
	}

	parts := strings.Split(s, "-")
	switch parts[0] {
	case "Player":
		if len(parts) < 3 {
			return nil, &ShortRecordError{What: "Player GUID", Need: 3, Have: len(parts)}
		}
		serverID, err := parseUint(parts[1])
		if err != nil {
			return nil, err
		}
		return PlayerGUID{ServerID: serverID, PlayerUID: parts[2]}, nil

	case "Pet", "Creature", "GameObject", "Vehicle":
		if len(parts) < 7 {
			return nil, &ShortRecordError{What: "unit GUID", Need: 7, Have: len(parts)}
		}
		unitType, err := ParseCreatureType(parts[0])
		if err != nil {
			return nil, err
		}
		serverID, err := parseUint(parts[2])
		if err != nil {
			return nil, err
		}
		instanceID, err := parseUint(parts[3])
		if err != nil {
			return nil, err
		}
		zoneUID, err := parseUint(parts[4])
		if err != nil {
			return nil, err
		}
		id, err := parseUint(parts[5])
		if err != nil {
			return nil, err
		}
		return UnitGUID{
			UnitType:   unitType,
			ServerID:   serverID,
			InstanceID: instanceID,
			ZoneUID:    zoneUID,
			ID:         id,
			SpawnUID:   parts[6],
		}, nil

	default:
		return nil, &UnknownGUIDKindError{Token: parts[0]}
	}
}
