package combatlog

import (
	"fmt"
	"strings"
)

// InvalidNumberError reports a field that could not be parsed as a number.
type InvalidNumberError struct {
	Field string
	Type  string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Type, e.Field)
}

// InvalidBoolError reports a field outside the nil/0/1 boolean vocabulary.
type InvalidBoolError struct {
	Field string
}

func (e *InvalidBoolError) Error() string {
	return fmt.Sprintf("invalid bool: %q", e.Field)
}

// InvalidHexError reports a field that could not be parsed as a hex bitmask.
type InvalidHexError struct {
	Field string
}

func (e *InvalidHexError) Error() string {
	return fmt.Sprintf("invalid hex: %q", e.Field)
}

// UnknownGUIDKindError reports an unrecognized leading GUID token.
type UnknownGUIDKindError struct {
	Token string
}

func (e *UnknownGUIDKindError) Error() string {
	return fmt.Sprintf("unknown GUID kind: %q", e.Token)
}

// UnknownPowerTypeError reports a power-type code outside the known enumeration.
type UnknownPowerTypeError struct {
	Code int8
}

func (e *UnknownPowerTypeError) Error() string {
	return fmt.Sprintf("unknown power type: %d", e.Code)
}

// UnknownEnumValueError reports a string that matched no value of a named enum.
type UnknownEnumValueError struct {
	Kind string
	Raw  string
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Kind, e.Raw)
}

// UnknownPrefixError reports an event type matching no prefix rule.
type UnknownPrefixError struct {
	EventType string
}

func (e *UnknownPrefixError) Error() string {
	return fmt.Sprintf("unknown prefix: %s", e.EventType)
}

// UnknownSuffixError reports an event type matching no suffix rule.
type UnknownSuffixError struct {
	EventType string
}

func (e *UnknownSuffixError) Error() string {
	return fmt.Sprintf("unknown suffix: %s", e.EventType)
}

// MalformedPowerInfoError reports pipe-joined power cells of unequal arity.
type MalformedPowerInfoError struct {
	Lengths [4]int
}

func (e *MalformedPowerInfoError) Error() string {
	return fmt.Sprintf("malformed power info: cell arities %v", e.Lengths)
}

// MalformedCombatantInfoError reports a COMBATANT_INFO record whose bracketed
// sections did not match the expected cardinality.
type MalformedCombatantInfoError struct {
	Reason string
}

func (e *MalformedCombatantInfoError) Error() string {
	return "malformed COMBATANT_INFO: " + e.Reason
}

// DateParseError reports an unparseable timestamp prefix.
type DateParseError struct {
	Raw string
	Err error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("parse date %q: %v", e.Raw, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// FieldSplitError reports a first field with no double-space separator
// between timestamp and event type.
type FieldSplitError struct {
	Field string
}

func (e *FieldSplitError) Error() string {
	return fmt.Sprintf("no timestamp/event-type separator in %q", e.Field)
}

// ShortRecordError reports a record with fewer fields than the dispatched
// shape requires. Raw slice indexing would panic; decoders check first.
type ShortRecordError struct {
	What string
	Need int
	Have int
}

func (e *ShortRecordError) Error() string {
	return fmt.Sprintf("%s: need %d fields, have %d", e.What, e.Need, e.Have)
}

// LineError wraps a decode failure with the raw fields of the line that
// produced it. The underlying cause stays reachable through errors.As.
type LineError struct {
	Fields []string
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("parse line %q: %v", strings.Join(e.Fields, ","), e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
