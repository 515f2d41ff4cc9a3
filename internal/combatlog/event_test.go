package combatlog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureParser() *Parser {
	return NewParser(WithYear(2024))
}

func TestParsePeriodicHealLine(t *testing.T) {
	event, err := fixtureParser().Parse([]string{
		"4/6 14:09:44.867  SPELL_PERIODIC_HEAL",
		"Player-1393-077C088C", "Mubaku-BronzeDragonflight", "0x514", "0x0",
		"Creature-0-1469-2549-12530-210177-000011428F", "Tormented Ancient", "0xa18", "0x0",
		"8936", "Regrowth", "0x8",
		"Creature-0-1469-2549-12530-210177-000011428F", "0000000000000000",
		"5927873", "7468728", "0", "0", "5043", "0",
		"1", "0", "0", "0",
		"3295.44", "13209.11", "2232", "3.4506", "72",
		"2557", "2557", "0", "0", "nil",
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.April, 6, 14, 9, 44, 867_000_000, time.UTC), event.Timestamp)

	payload, ok := event.Payload.(StandardPayload)
	require.True(t, ok, "got %T", event.Payload)
	assert.Equal(t, "SPELL_PERIODIC_HEAL", payload.Name)
	require.NotNil(t, payload.Source)
	assert.Equal(t, "Mubaku-BronzeDragonflight", payload.Source.Name)
	require.NotNil(t, payload.Target)
	assert.Equal(t, "Tormented Ancient", payload.Target.Name)

	prefix, ok := payload.Prefix.(SpellPeriodicPrefix)
	require.True(t, ok, "got %T", payload.Prefix)
	assert.Equal(t, "Regrowth", prefix.Spell.Name)

	require.NotNil(t, payload.Advanced)
	assert.Equal(t, uint64(5927873), payload.Advanced.CurrentHP)
	assert.Equal(t, uint64(72), payload.Advanced.LevelOrILvl)

	heal, ok := payload.Suffix.(HealSuffix)
	require.True(t, ok, "got %T", payload.Suffix)
	assert.Equal(t, uint64(2557), heal.Amount)
}

func TestParseCastSuccessLine(t *testing.T) {
	event, err := fixtureParser().Parse([]string{
		"4/6 14:02:04.124  SPELL_CAST_SUCCESS",
		"Player-1329-09AF0ACF", "Adamthebash-Ravencrest", "0x511", "0x0",
		"0000000000000000", "nil", "0x80000000", "0x80000000",
		"1850", "Dash", "0x1",
		"Player-1329-09AF0ACF", "0000000000000000",
		"846460", "846460", "16429", "15797", "5313", "94077",
		"3", "100", "100", "0",
		"3110.69", "13146.01", "2232", "0.7478", "486",
	})
	require.NoError(t, err)

	payload := event.Payload.(StandardPayload)
	assert.Nil(t, payload.Target)
	require.NotNil(t, payload.Advanced)
	require.Len(t, payload.Advanced.PowerInfo, 1)
	assert.Equal(t, PowerEnergy, *payload.Advanced.PowerInfo[0].Type)
	assert.Equal(t, CastSuccessSuffix{}, payload.Suffix)
}

func TestParseAuraRemovedLine(t *testing.T) {
	event, err := fixtureParser().Parse([]string{
		"4/6 14:04:21.001  SPELL_AURA_REMOVED",
		"Player-1084-0934CD1D", "Neversman-TarrenMill", "0x514", "0x0",
		"Player-1379-0814BAB7", "Kuro-Zul'jin", "0x40512", "0x4",
		"6673", "Battle Shout", "0x1", "BUFF",
	})
	require.NoError(t, err)

	payload := event.Payload.(StandardPayload)
	assert.Nil(t, payload.Advanced)
	removed, ok := payload.Suffix.(AuraRemovedSuffix)
	require.True(t, ok, "got %T", payload.Suffix)
	assert.Equal(t, AuraBuff, removed.AuraType)
	assert.Nil(t, removed.Amount)
}

func TestParseSwingMissedLine(t *testing.T) {
	event, err := fixtureParser().Parse([]string{
		"4/6 14:02:07.362  SWING_MISSED",
		"Player-1335-0A264B4C", "Sønike-Ysondre", "0x514", "0x0",
		"Creature-0-1469-2549-12530-209333-000011428A", "Gnarlroot", "0x10a48", "0x0",
		"MISS", "1",
	})
	require.NoError(t, err)

	payload := event.Payload.(StandardPayload)
	assert.Equal(t, SwingPrefix{}, payload.Prefix)
	assert.Nil(t, payload.Advanced)
	missed := payload.Suffix.(MissedSuffix)
	assert.Equal(t, MissMiss, missed.MissType)
	assert.True(t, missed.Offhand)
}

func TestParseVersionLine(t *testing.T) {
	fields := []string{
		"COMBAT_LOG_VERSION", "20", "ADVANCED_LOG_ENABLED", "1",
		"BUILD_VERSION", "10.2.6", "PROJECT_ID", "1",
	}
	event, err := fixtureParser().Parse(fields)
	require.NoError(t, err)

	// The bare sentinel row gets the fixed placeholder timestamp.
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), event.Timestamp)
	payload, ok := event.Payload.(SpecialPayload)
	require.True(t, ok, "got %T", event.Payload)
	assert.Equal(t, "COMBAT_LOG_VERSION", payload.Name)
	assert.Equal(t, uint64(20), payload.Detail.(CombatLogInfo).LogVersion)

	// The same record with a timestamp prefix parses normally.
	fields[0] = "4/6 14:09:44.867  COMBAT_LOG_VERSION"
	event, err = fixtureParser().Parse(fields)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.April, 6, 14, 9, 44, 867_000_000, time.UTC), event.Timestamp)
}

func TestParseEnvironmentalDamageLine(t *testing.T) {
	event, err := fixtureParser().Parse([]string{
		"4/11 22:42:01.100  ENVIRONMENTAL_DAMAGE",
		"0000000000000000", "nil", "0x80000000", "0x80000000",
		"Player-1329-070EBCFC", "Naladrem-Ravencrest", "0x518", "0x0",
		"Player-1329-070EBCFC", "0000000000000000",
		"815216", "866544", "14879", "1421", "5217", "0",
		"17", "109", "120", "0",
		"-931.46", "2546.12", "2133", "4.8479", "484",
		"Falling",
		"51328", "51328", "0", "1", "0", "0", "0", "nil", "nil", "nil",
	})
	require.NoError(t, err)

	// The advanced block precedes the 1-field prefix on this event.
	payload := event.Payload.(StandardPayload)
	assert.Equal(t, EnvironmentalPrefix{Type: EnvFalling}, payload.Prefix)
	require.NotNil(t, payload.Advanced)
	assert.Equal(t, uint64(815216), payload.Advanced.CurrentHP)
	assert.Equal(t, uint64(484), payload.Advanced.LevelOrILvl)

	damage := payload.Suffix.(DamageSuffix)
	assert.Equal(t, uint64(51328), damage.Amount)
	assert.Equal(t, []SpellSchool{SchoolPhysical}, damage.Schools)
}

func TestParseAbsorbedWithSpellPrefix(t *testing.T) {
	event, err := fixtureParser().Parse([]string{
		"4/6 14:03:50.954  SPELL_ABSORBED",
		"Creature-0-4233-2549-14868-200927-00004E8C97", "Smolderon", "0x10a48", "0x0",
		"Player-1329-0A0800FA", "Foxgates-Ravencrest", "0x512", "0x0",
		"421971", "Searing Aftermath", "0x4",
		"Player-1329-0A0800FA", "Foxgates-Ravencrest", "0x512", "0x0",
		"386124", "Fel Armor", "0x20", "-2900", "48673", "nil",
	})
	require.NoError(t, err)

	payload := event.Payload.(StandardPayload)
	prefix, ok := payload.Prefix.(SpellPrefix)
	require.True(t, ok, "got %T", payload.Prefix)
	require.NotNil(t, prefix.Spell)
	assert.Equal(t, uint64(421971), prefix.Spell.ID)

	absorbed := payload.Suffix.(AbsorbedSuffix)
	assert.Equal(t, uint64(386124), absorbed.Spell.ID)
	assert.Equal(t, int64(-2900), absorbed.AbsorbedAmount)
}

func TestParseAbsorbedWithoutSpellPrefix(t *testing.T) {
	// A melee absorb omits the spell-info block entirely; the only signal
	// is the non-numeric field at the spell-id position.
	event, err := fixtureParser().Parse([]string{
		"4/6 14:03:50.954  SPELL_ABSORBED",
		"Creature-0-4233-2549-14868-200927-00004E8C97", "Smolderon", "0x10a48", "0x0",
		"Player-1587-0F81497D", "Huisarts-Arathor", "0x514", "0x0",
		"Player-1587-0F81497D", "Huisarts-Arathor", "0x514", "0x0",
		"47753", "Divine Aegis", "0x2", "983", "56699", "nil",
	})
	require.NoError(t, err)

	payload := event.Payload.(StandardPayload)
	prefix, ok := payload.Prefix.(SpellPrefix)
	require.True(t, ok, "got %T", payload.Prefix)
	assert.Nil(t, prefix.Spell)

	absorbed := payload.Suffix.(AbsorbedSuffix)
	assert.Equal(t, "Huisarts-Arathor", absorbed.Caster.Name)
	assert.Equal(t, int64(983), absorbed.AbsorbedAmount)
}

func TestParseRenamedEvents(t *testing.T) {
	fields := []string{
		"4/6 14:02:30.001  DAMAGE_SHIELD",
		"Player-1329-09AF0ACF", "Adamthebash-Ravencrest", "0x511", "0x0",
		"Creature-0-1469-2549-12530-209333-000011428A", "Gnarlroot", "0x10a48", "0x0",
		"203796", "Demon Spikes", "0x1",
		"Player-1329-09AF0ACF", "0000000000000000",
		"732698", "846460", "16347", "15718", "5632", "0",
		"17", "109", "120", "0",
		"66.53", "3330.43", "2133", "4.7368", "486",
		"2584", "2584", "-1", "1", "0", "0", "0", "nil", "nil", "nil",
	}

	event, err := fixtureParser().Parse(fields)
	require.NoError(t, err)

	// Dispatch borrows SPELL_DAMAGE's shape; the emitted name is the
	// original.
	payload := event.Payload.(StandardPayload)
	assert.Equal(t, "DAMAGE_SHIELD", payload.Name)
	assert.IsType(t, SpellPrefix{}, payload.Prefix)
	require.NotNil(t, payload.Advanced)
	assert.Equal(t, uint64(2584), payload.Suffix.(DamageSuffix).Amount)

	fields[0] = "4/6 14:02:30.001  DAMAGE_SPLIT"
	event, err = fixtureParser().Parse(fields)
	require.NoError(t, err)
	assert.Equal(t, "DAMAGE_SPLIT", event.Payload.(StandardPayload).Name)
}

func TestParseSupportEvent(t *testing.T) {
	// The trailing supporter GUID stays unconsumed; the base shape drives
	// dispatch.
	event, err := fixtureParser().Parse([]string{
		"4/6 14:02:31.500  SWING_DAMAGE_LANDED_SUPPORT",
		"Player-1329-09AF0ACF", "Adamthebash-Ravencrest", "0x511", "0x0",
		"Creature-0-1469-2549-12530-209333-000011428A", "Gnarlroot", "0x10a48", "0x0",
		"391055", "Infernal Brand", "0x4",
		"Player-1329-09AF0ACF", "0000000000000000",
		"732698", "846460", "16347", "15718", "5632", "0",
		"17", "109", "120", "0",
		"66.53", "3330.43", "2133", "4.7368", "486",
		"1290", "1290", "-1", "4", "0", "0", "0", "nil", "nil", "nil",
		"Player-1403-0A5506C6",
	})
	require.NoError(t, err)

	payload := event.Payload.(StandardPayload)
	assert.Equal(t, "SWING_DAMAGE_LANDED_SUPPORT", payload.Name)
	assert.Equal(t, uint64(1290), payload.Suffix.(DamageSuffix).Amount)
}

func TestParseCombatantInfoLine(t *testing.T) {
	fields := append([]string{"4/6 14:02:02.856  COMBATANT_INFO"},
		strings.Split(combatantFixture, ",")...)
	event, err := fixtureParser().Parse(fields)
	require.NoError(t, err)

	payload, ok := event.Payload.(SpecialPayload)
	require.True(t, ok, "got %T", event.Payload)
	info := payload.Detail.(CombatantInfoEvent).Info
	assert.Equal(t, uint64(256), info.CurrentSpecID)
	assert.Len(t, info.EquippedItems, 3)
}

func TestParseLineErrors(t *testing.T) {
	parser := fixtureParser()

	var lineErr *LineError
	var splitErr *FieldSplitError
	_, err := parser.Parse([]string{"NOT_A_TIMESTAMP_LINE", "1"})
	require.ErrorAs(t, err, &lineErr)
	require.ErrorAs(t, err, &splitErr)

	var dateErr *DateParseError
	_, err = parser.Parse([]string{"13/45 99:99:99.999  SPELL_DAMAGE", "x"})
	require.ErrorAs(t, err, &dateErr)

	var prefixErr *UnknownPrefixError
	_, err = parser.Parse([]string{
		"4/6 14:02:07.362  TOTALLY_UNKNOWN",
		"0000000000000000", "nil", "0x80000000", "0x80000000",
		"0000000000000000", "nil", "0x80000000", "0x80000000",
	})
	require.ErrorAs(t, err, &prefixErr)

	_, err = parser.Parse(nil)
	require.ErrorAs(t, err, &lineErr)
}

func TestParseIdempotent(t *testing.T) {
	parser := fixtureParser()
	fields := []string{
		"4/6 14:02:07.362  SWING_MISSED",
		"Player-1335-0A264B4C", "Sønike-Ysondre", "0x514", "0x0",
		"Creature-0-1469-2549-12530-209333-000011428A", "Gnarlroot", "0x10a48", "0x0",
		"MISS", "1",
	}
	first, err := parser.Parse(fields)
	require.NoError(t, err)
	second, err := parser.Parse(fields)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
