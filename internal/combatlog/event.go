package combatlog

import (
	"strconv"
	"strings"
	"time"
)

// timestampLayout parses the log's month/day clock after the year has been
// prepended; the format itself carries no year.
const timestampLayout = "2006/1/2 15:04:05.000"

// actorBlockWidth is the two 4-field actor blocks every standard event
// opens with.
const actorBlockWidth = 8

// eventRenames maps event names that reuse another event's suffix shape to
// the name that drives dispatch. The original name is kept on the emitted
// event.
var eventRenames = map[string]string{
	"DAMAGE_SPLIT":                "SPELL_DAMAGE",
	"DAMAGE_SHIELD":               "SPELL_DAMAGE",
	"DAMAGE_SHIELD_MISSED":        "SPELL_MISSED",
	"SWING_DAMAGE_LANDED_SUPPORT": "SPELL_DAMAGE_SUPPORT",
}

// Payload is the event-kind tag: either a special record or a standard
// prefix/advanced/suffix record.
type Payload interface {
	isPayload()
}

// SpecialPayload is an event decoded by the irregular-record table.
type SpecialPayload struct {
	Name   string
	Detail Special
}

// StandardPayload is an event decoded by the prefix/advanced/suffix
// pipeline. Source and Target are nil when their GUID was the all-zero
// sentinel. Advanced is nil for suffix kinds that carry no advanced block.
type StandardPayload struct {
	Name     string
	Source   *Actor
	Target   *Actor
	Prefix   Prefix
	Advanced *AdvancedParams
	Suffix   Suffix
}

func (SpecialPayload) isPayload()  {}
func (StandardPayload) isPayload() {}

// Event is one decoded log line.
type Event struct {
	Timestamp time.Time
	Payload   Payload
}

// Parser decodes tokenized combat-log lines. Parsing is pure per line; a
// single Parser is safe for concurrent use.
type Parser struct {
	year int
}

// Option configures a Parser.
type Option func(*Parser)

// WithYear sets the year assumed for every timestamp. The log format does
// not carry one.
func WithYear(year int) Option {
	return func(p *Parser) {
		p.year = year
	}
}

// NewParser returns a Parser. Without WithYear, timestamps are pinned to the
// current year at construction time.
func NewParser(opts ...Option) *Parser {
	p := &Parser{year: time.Now().Year()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes one tokenized line into an Event. Failures are wrapped with
// the raw fields; the underlying cause stays reachable through errors.As.
func (p *Parser) Parse(fields []string) (*Event, error) {
	event, err := p.parse(fields)
	if err != nil {
		return nil, &LineError{Fields: fields, Err: err}
	}
	return event, nil
}

func (p *Parser) parse(fields []string) (*Event, error) {
	if len(fields) == 0 {
		return nil, &ShortRecordError{What: "line", Need: 1, Have: 0}
	}

	// The version-announcement row is the one line with no timestamp
	// prefix; it gets a fixed placeholder.
	var timestamp time.Time
	var eventType string
	if fields[0] == "COMBAT_LOG_VERSION" {
		timestamp = time.Date(p.year, time.January, 1, 0, 0, 0, 0, time.UTC)
		eventType = fields[0]
	} else {
		date, name, found := strings.Cut(fields[0], "  ")
		if !found {
			return nil, &FieldSplitError{Field: fields[0]}
		}
		t, err := time.Parse(timestampLayout, strconv.Itoa(p.year)+"/"+date)
		if err != nil {
			return nil, &DateParseError{Raw: date, Err: err}
		}
		timestamp = t
		eventType = name
	}

	payload, err := parsePayload(eventType, fields[1:])
	if err != nil {
		return nil, err
	}
	return &Event{Timestamp: timestamp, Payload: payload}, nil
}

func parsePayload(eventType string, fields []string) (Payload, error) {
	special, err := ParseSpecial(eventType, fields)
	if err != nil {
		return nil, err
	}
	if special != nil {
		return SpecialPayload{Name: eventType, Detail: special}, nil
	}

	dispatch := eventType
	if renamed, ok := eventRenames[eventType]; ok {
		dispatch = renamed
	}

	if err := needFields("standard event", fields, actorBlockWidth); err != nil {
		return nil, err
	}
	source, err := ParseActor(fields[0:4])
	if err != nil {
		return nil, err
	}
	target, err := ParseActor(fields[4:8])
	if err != nil {
		return nil, err
	}

	cursor := actorBlockWidth
	var prefix Prefix
	var advanced *AdvancedParams

	if dispatch == "ENVIRONMENTAL_DAMAGE" {
		// The one event whose advanced block precedes its prefix.
		advanced, err = ParseAdvancedParams(fields[cursor:])
		if err != nil {
			return nil, err
		}
		cursor += advancedFieldCount

		if err := needFields("environmental event", fields, cursor+1); err != nil {
			return nil, err
		}
		prefix, err = ParsePrefix(dispatch, fields[cursor:cursor+1])
		if err != nil {
			return nil, err
		}
		cursor++
	} else {
		consume, err := PrefixFieldCount(dispatch)
		if err != nil {
			return nil, err
		}
		if absorbedOmitsSpell(dispatch, fields) {
			consume = 0
		}
		if err := needFields("event prefix", fields, cursor+consume); err != nil {
			return nil, err
		}
		prefix, err = ParsePrefix(dispatch, fields[cursor:cursor+consume])
		if err != nil {
			return nil, err
		}
		cursor += consume

		hasAdvanced, err := HasAdvancedParams(dispatch)
		if err != nil {
			return nil, err
		}
		if hasAdvanced {
			advanced, err = ParseAdvancedParams(fields[cursor:])
			if err != nil {
				return nil, err
			}
			cursor += advancedFieldCount
		}
	}

	suffix, err := ParseSuffix(dispatch, fields[cursor:])
	if err != nil {
		return nil, err
	}

	return StandardPayload{
		Name:     eventType,
		Source:   source,
		Target:   target,
		Prefix:   prefix,
		Advanced: advanced,
		Suffix:   suffix,
	}, nil
}

// absorbedOmitsSpell reports whether an ABSORBED line carries no spell-info
// prefix. The format gives no structural marker; the only signal is the
// field at the spell-id position failing a numeric parse.
func absorbedOmitsSpell(dispatch string, fields []string) bool {
	if dispatch != "SPELL_ABSORBED" && dispatch != "SPELL_ABSORBED_SUPPORT" {
		return false
	}
	if len(fields) <= actorBlockWidth {
		return true
	}
	_, err := strconv.ParseUint(fields[actorBlockWidth], 10, 64)
	return err != nil
}
