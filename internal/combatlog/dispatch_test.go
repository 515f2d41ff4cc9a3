package combatlog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The prefix table is order-sensitive: the generic SPELL rule must sit below
// its more specific forms.
func TestPrefixRuleOrder(t *testing.T) {
	spellIdx := -1
	for i, rule := range prefixRules {
		switch rule.prefix {
		case "SPELL":
			spellIdx = i
		case "SPELL_PERIODIC", "SPELL_BUILDING":
			assert.Equal(t, -1, spellIdx, "%s must be checked before SPELL", rule.prefix)
		}
	}
	require.NotEqual(t, -1, spellIdx)
}

func TestPrefixDispatch(t *testing.T) {
	cases := []struct {
		eventType string
		consume   int
		want      Prefix
	}{
		{"SWING_DAMAGE", 0, SwingPrefix{}},
		{"RANGE_DAMAGE", 3, RangePrefix{}},
		{"SPELL_PERIODIC_HEAL", 3, SpellPeriodicPrefix{}},
		{"SPELL_BUILDING_DAMAGE", 3, SpellBuildingPrefix{}},
		{"SPELL_DAMAGE", 3, SpellPrefix{}},
		{"ENVIRONMENTAL_DAMAGE", 1, EnvironmentalPrefix{}},
	}
	for _, tc := range cases {
		consume, err := PrefixFieldCount(tc.eventType)
		require.NoError(t, err, tc.eventType)
		assert.Equal(t, tc.consume, consume, tc.eventType)
	}

	prefix, err := ParsePrefix("SPELL_PERIODIC_HEAL", []string{"8936", "Regrowth", "0x8"})
	require.NoError(t, err)
	periodic, ok := prefix.(SpellPeriodicPrefix)
	require.True(t, ok, "got %T", prefix)
	assert.Equal(t, uint64(8936), periodic.Spell.ID)

	_, err = PrefixFieldCount("PARTY_KILL")
	var prefixErr *UnknownPrefixError
	require.ErrorAs(t, err, &prefixErr)
}

// The suffix table is order-sensitive: every suffix that is a textual
// substring of another must sit below the longer form.
func TestSuffixRuleOrder(t *testing.T) {
	seen := make(map[string]int, len(suffixRules))
	for i, rule := range suffixRules {
		seen[rule.suffix] = i
	}
	for longer, idx := range seen {
		for shorter, shorterIdx := range seen {
			if longer == shorter || !strings.HasSuffix(longer, shorter) {
				continue
			}
			assert.Less(t, idx, shorterIdx,
				"%s must be checked before %s", longer, shorter)
		}
	}
}

func TestSuffixDispatchSubstrings(t *testing.T) {
	rule, err := lookupSuffixRule("SPELL_DURABILITY_DAMAGE")
	require.NoError(t, err)
	assert.Equal(t, "DURABILITY_DAMAGE", rule.suffix)

	rule, err = lookupSuffixRule("SWING_DAMAGE_LANDED")
	require.NoError(t, err)
	assert.Equal(t, "DAMAGE_LANDED", rule.suffix)

	rule, err = lookupSuffixRule("SPELL_DISPEL_FAILED")
	require.NoError(t, err)
	assert.Equal(t, "DISPEL_FAILED", rule.suffix)

	rule, err = lookupSuffixRule("SPELL_AURA_APPLIED_DOSE")
	require.NoError(t, err)
	assert.Equal(t, "AURA_APPLIED_DOSE", rule.suffix)

	rule, err = lookupSuffixRule("SPELL_AURA_BROKEN_SPELL")
	require.NoError(t, err)
	assert.Equal(t, "AURA_BROKEN_SPELL", rule.suffix)
}

func TestHasAdvancedParams(t *testing.T) {
	advanced := []string{
		"SWING_DAMAGE", "SWING_DAMAGE_LANDED", "SPELL_HEAL", "SPELL_CAST_SUCCESS",
		"SPELL_PERIODIC_ENERGIZE", "SPELL_DRAIN", "SPELL_LEECH", "SPELL_STOLEN",
		"SPELL_DAMAGE_SUPPORT",
	}
	for _, eventType := range advanced {
		has, err := HasAdvancedParams(eventType)
		require.NoError(t, err, eventType)
		assert.True(t, has, eventType)
	}

	plain := []string{
		"SWING_MISSED", "SPELL_HEAL_ABSORBED", "SPELL_ABSORBED", "SPELL_CAST_START",
		"SPELL_AURA_APPLIED", "SPELL_DISPEL", "SPELL_DURABILITY_DAMAGE",
		"SPELL_EMPOWER_END", "SPELL_RESURRECT",
	}
	for _, eventType := range plain {
		has, err := HasAdvancedParams(eventType)
		require.NoError(t, err, eventType)
		assert.False(t, has, eventType)
	}

	_, err := HasAdvancedParams("SPELL_TELEPORT")
	var suffixErr *UnknownSuffixError
	require.ErrorAs(t, err, &suffixErr)
}
