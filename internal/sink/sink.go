// Package sink provides the output consumers fed by the ingestion loop:
// console and file writers, a damage tally, and a SQLite archive.
package sink

import (
	"fmt"
	"strings"
	"time"

	"github.com/emeraldwake/wowlog/internal/combatlog"
)

// summarize renders one parsed event as a single display line.
func summarize(ev *combatlog.Event) string {
	var sb strings.Builder
	sb.WriteString(ev.Timestamp.UTC().Format(time.RFC3339Nano))
	sb.WriteByte(' ')

	switch payload := ev.Payload.(type) {
	case combatlog.SpecialPayload:
		sb.WriteString(payload.Name)
		fmt.Fprintf(&sb, " %+v", payload.Detail)
	case combatlog.StandardPayload:
		sb.WriteString(payload.Name)
		sb.WriteByte(' ')
		sb.WriteString(actorName(payload.Source))
		sb.WriteString(" -> ")
		sb.WriteString(actorName(payload.Target))
		if spell := spellName(payload.Prefix); spell != "" {
			sb.WriteByte(' ')
			sb.WriteString(spell)
		}
		fmt.Fprintf(&sb, " %+v", payload.Suffix)
	default:
		fmt.Fprintf(&sb, "%+v", ev.Payload)
	}
	return sb.String()
}

func actorName(a *combatlog.Actor) string {
	if a == nil {
		return "-"
	}
	return a.Name
}

func spellName(prefix combatlog.Prefix) string {
	switch p := prefix.(type) {
	case combatlog.RangePrefix:
		return p.Spell.Name
	case combatlog.SpellPrefix:
		if p.Spell == nil {
			return ""
		}
		return p.Spell.Name
	case combatlog.SpellPeriodicPrefix:
		return p.Spell.Name
	case combatlog.SpellBuildingPrefix:
		return p.Spell.Name
	default:
		return ""
	}
}
