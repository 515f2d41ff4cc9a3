// Package combatlog decodes the comma-separated World of Warcraft combat-log
// format into a typed event model. One call to Parser.Parse consumes one
// tokenized line; all failures are typed, per-line, and non-fatal.
package combatlog

import "strconv"

func parseUint(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &InvalidNumberError{Field: s, Type: "uint"}
	}
	return v, nil
}

func parseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &InvalidNumberError{Field: s, Type: "int"}
	}
	return v, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &InvalidNumberError{Field: s, Type: "float"}
	}
	return v, nil
}

// parseBool accepts the log's three boolean spellings: "nil" and "0" are
// false, "1" is true. Anything else is an error.
func parseBool(s string) (bool, error) {
	switch s {
	case "nil", "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, &InvalidBoolError{Field: s}
	}
}

// parseHex decodes a base-16 bitmask with an optional 0x prefix.
func parseHex(s string) (uint64, error) {
	t := s
	if len(t) >= 2 && (t[:2] == "0x" || t[:2] == "0X") {
		t = t[2:]
	}
	v, err := strconv.ParseUint(t, 16, 64)
	if err != nil {
		return 0, &InvalidHexError{Field: s}
	}
	return v, nil
}
