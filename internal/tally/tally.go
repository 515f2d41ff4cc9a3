// Package tally provides in-memory damage accumulation derived from parsed
// combat events. It tracks per-source damage totals for the current
// encounter.
package tally

import (
	"sort"
	"sync"
	"time"

	"github.com/emeraldwake/wowlog/internal/combatlog"
)

// environmentActor labels damage with no source actor, such as falling or
// standing in fire.
const environmentActor = "Environment"

// Entry holds the accumulated damage for one source actor.
type Entry struct {
	Name     string
	Damage   uint64
	Overkill uint64
	Hits     uint64
	Crits    uint64
}

// Delta reports one damage contribution applied by Update.
type Delta struct {
	Source   string
	Amount   uint64
	Critical bool
	// Total is the source's running damage after this contribution.
	Total uint64
}

// Encounter identifies the boss fight the totals belong to.
type Encounter struct {
	EncounterID uint64
	Name        string
	StartedAt   time.Time
}

// State accumulates damage totals from events.
// It is safe for concurrent use.
type State struct {
	mu        sync.RWMutex
	encounter *Encounter
	totals    map[string]*Entry
}

// New creates an empty State.
func New() *State {
	return &State{
		totals: make(map[string]*Entry),
	}
}

// Update processes an event and returns the damage contribution it caused.
// Returns nil for events that carry no primary damage.
// Safe for concurrent use.
func (s *State) Update(ev *combatlog.Event) *Delta {
	if ev == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch payload := ev.Payload.(type) {
	case combatlog.SpecialPayload:
		if start, ok := payload.Detail.(combatlog.EncounterStart); ok {
			s.beginEncounter(start, ev.Timestamp)
		}
		return nil
	case combatlog.StandardPayload:
		return s.accumulate(payload)
	default:
		return nil
	}
}

// beginEncounter starts a fresh tally at an encounter boundary. Totals from
// the previous encounter are discarded; callers wanting a final report read
// Totals before the next ENCOUNTER_START arrives.
func (s *State) beginEncounter(start combatlog.EncounterStart, at time.Time) {
	s.encounter = &Encounter{
		EncounterID: start.EncounterID,
		Name:        start.EncounterName,
		StartedAt:   at,
	}
	s.totals = make(map[string]*Entry)
}

func (s *State) accumulate(payload combatlog.StandardPayload) *Delta {
	// Only the primary damage suffix counts. DAMAGE_LANDED duplicates the
	// matching DAMAGE line, and _SUPPORT lines re-attribute amounts already
	// carried by a primary line.
	damage, ok := payload.Suffix.(combatlog.DamageSuffix)
	if !ok || isSupport(payload.Name) {
		return nil
	}

	name := environmentActor
	if payload.Source != nil {
		name = payload.Source.Name
	}

	entry, exists := s.totals[name]
	if !exists {
		entry = &Entry{Name: name}
		s.totals[name] = entry
	}

	entry.Damage += damage.Amount
	entry.Hits++
	if damage.Critical {
		entry.Crits++
	}
	if damage.Overkill != nil {
		entry.Overkill += *damage.Overkill
	}

	return &Delta{
		Source:   name,
		Amount:   damage.Amount,
		Critical: damage.Critical,
		Total:    entry.Damage,
	}
}

func isSupport(name string) bool {
	const suffix = "_SUPPORT"
	return len(name) >= len(suffix) && name[len(name)-len(suffix):] == suffix
}

// CurrentEncounter returns a copy of the active encounter, or nil when no
// ENCOUNTER_START has been seen yet.
// Safe for concurrent use.
func (s *State) CurrentEncounter() *Encounter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.encounter == nil {
		return nil
	}
	cpy := *s.encounter
	return &cpy
}

// Totals returns a copy of the accumulated entries, highest damage first.
// Ties break on name so the order is stable.
// Safe for concurrent use.
func (s *State) Totals() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Entry, 0, len(s.totals))
	for _, entry := range s.totals {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Damage != result[j].Damage {
			return result[i].Damage > result[j].Damage
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// SourceCount returns the number of distinct damage sources seen.
// Safe for concurrent use.
func (s *State) SourceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.totals)
}
