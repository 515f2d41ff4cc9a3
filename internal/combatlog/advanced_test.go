package combatlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdvancedParams(t *testing.T) {
	params, err := ParseAdvancedParams([]string{
		"Creature-0-1469-2549-12530-210177-000011428F", "0000000000000000",
		"5927873", "7468728", "0", "0", "5043", "0",
		"1", "0", "0", "0",
		"3295.44", "13209.11", "2232", "3.4506", "72",
	})
	require.NoError(t, err)

	assert.IsType(t, UnitGUID{}, params.InfoGUID)
	assert.Nil(t, params.OwnerGUID)
	assert.Equal(t, uint64(5927873), params.CurrentHP)
	assert.Equal(t, uint64(7468728), params.MaxHP)
	assert.Equal(t, uint64(5043), params.Armor)

	require.Len(t, params.PowerInfo, 1)
	require.NotNil(t, params.PowerInfo[0].Type)
	assert.Equal(t, PowerRage, *params.PowerInfo[0].Type)

	assert.Equal(t, 3295.44, params.Position.X)
	assert.Equal(t, 13209.11, params.Position.Y)
	assert.Equal(t, 3.4506, params.Position.Facing)
	assert.Equal(t, uint64(2232), params.UIMapID)
	assert.Equal(t, uint64(72), params.LevelOrILvl)
}

func TestParsePowerInfoMultiplePools(t *testing.T) {
	infos, err := parsePowerInfo([]string{"5|3", "0|100", "6|120", "0|40"})
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, PowerRunes, *infos[0].Type)
	assert.Equal(t, uint64(6), infos[0].Max)
	assert.Equal(t, PowerEnergy, *infos[1].Type)
	assert.Equal(t, uint64(100), infos[1].Current)
	assert.Equal(t, uint64(40), infos[1].Cost)
}

func TestParsePowerInfoUnequalArity(t *testing.T) {
	_, err := parsePowerInfo([]string{"5|3", "0", "6|120", "0|40"})
	var powerErr *MalformedPowerInfoError
	require.ErrorAs(t, err, &powerErr)
	assert.Equal(t, [4]int{2, 1, 2, 2}, powerErr.Lengths)
}

func TestParseAdvancedParamsShortRecord(t *testing.T) {
	_, err := ParseAdvancedParams([]string{"0000000000000000", "0000000000000000", "1"})
	var shortErr *ShortRecordError
	require.ErrorAs(t, err, &shortErr)
}

func TestParseActor(t *testing.T) {
	actor, err := ParseActor([]string{"Player-1393-077C088C", "Mubaku-BronzeDragonflight", "0x514", "0x0"})
	require.NoError(t, err)
	require.NotNil(t, actor)
	assert.Equal(t, "Mubaku-BronzeDragonflight", actor.Name)
	assert.Equal(t, uint64(0x514), actor.Flags)
	require.NotNil(t, actor.RaidFlags)
	assert.Zero(t, *actor.RaidFlags)

	// A sentinel GUID absents the whole block.
	actor, err = ParseActor([]string{"0000000000000000", "nil", "0x80000000", "0x80000000"})
	require.NoError(t, err)
	assert.Nil(t, actor)

	actor, err = ParseActor([]string{"Player-1393-077C088C", "Mubaku", "0x514", "nil"})
	require.NoError(t, err)
	assert.Nil(t, actor.RaidFlags)
}

func TestParseSpellInfo(t *testing.T) {
	info, err := ParseSpellInfo([]string{"8936", "Regrowth", "0x8"})
	require.NoError(t, err)
	assert.Equal(t, SpellInfo{ID: 8936, Name: "Regrowth", Schools: []SpellSchool{SchoolNature}}, info)

	info, err = ParseSpellInfo([]string{"1", "Unknown", "-1"})
	require.NoError(t, err)
	assert.Nil(t, info.Schools)
}
