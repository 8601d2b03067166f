// Package indentid generates and parses human-readable requisition
// identifiers of the form SSRFM/<LOCATION>/<R|I>-<YYMMDD>/<SEQ>, where the
// location code is derived from a Roman-numeral unit name ("Unit II" ->
// "UNIT2"). Parsing also recovers the location from the legacy id formats
// still present in stored data (REQ-* and SSRFM/UNIT<roman>/...).
package indentid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind distinguishes request ids from issue ids.
type Kind string

const (
	KindRequest Kind = "R"
	KindIssue   Kind = "I"
)

const prefix = "SSRFM"

var (
	// ErrInvalidUnit is returned when the unit name carries no recognizable
	// unit number (Roman I-X or a plain numeral).
	ErrInvalidUnit = errors.New("unrecognized unit name")

	// ErrInvalidID is returned when an id matches none of the supported
	// formats or carries no location.
	ErrInvalidID = errors.New("unrecognized requisition id")
)

// Roman-numeral mapping is fixed to I-X for round-trip compatibility with
// stored ids.
var romanToNumber = map[string]int{
	"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5,
	"VI": 6, "VII": 7, "VIII": 8, "IX": 9, "X": 10,
}

var numberToRoman = map[int]string{
	1: "I", 2: "II", 3: "III", 4: "IV", 5: "V",
	6: "VI", 7: "VII", 8: "VIII", 9: "IX", 10: "X",
}

// Generate builds a requisition id for the given unit, kind, date and
// per-location sequence number.
//
// Generate("Unit II", KindRequest, 2024-01-05, 3) = "SSRFM/UNIT2/R-240105/03".
func Generate(unitName string, kind Kind, date time.Time, seq int) (string, error) {
	location, err := LocationCode(unitName)
	if err != nil {
		return "", err
	}
	if seq <= 0 {
		return "", fmt.Errorf("%w: sequence must be positive, got %d", ErrInvalidID, seq)
	}

	return fmt.Sprintf("%s/%s/%s-%s/%02d", prefix, location, kind, date.Format("060102"), seq), nil
}

// LocationCode converts a unit name such as "Unit II" or "Unit 2" into the
// compact id segment "UNIT2".
func LocationCode(unitName string) (string, error) {
	n, err := unitNumber(unitName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("UNIT%d", n), nil
}

// ParseLocation recovers the unit name from a stored requisition id. It
// accepts the current format (SSRFM/UNIT2/...), the legacy Roman form
// (SSRFM/UNITII/...) and legacy REQ ids (REQ-UNIT2-...). The returned name
// uses the Roman display form, e.g. "Unit II".
func ParseLocation(id string) (string, error) {
	switch {
	case strings.HasPrefix(id, prefix+"/"):
		parts := strings.Split(id, "/")
		if len(parts) < 2 {
			return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
		return unitNameFromCode(parts[1])

	case strings.HasPrefix(id, "REQ-"):
		parts := strings.Split(id, "-")
		if len(parts) < 2 {
			return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
		return unitNameFromCode(parts[1])
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
}

// unitNameFromCode converts "UNIT2" or legacy "UNITII" into "Unit II".
func unitNameFromCode(code string) (string, error) {
	rest, ok := strings.CutPrefix(strings.ToUpper(code), "UNIT")
	if !ok || rest == "" {
		return "", fmt.Errorf("%w: location %q", ErrInvalidID, code)
	}

	if n, err := strconv.Atoi(rest); err == nil {
		roman, ok := numberToRoman[n]
		if !ok {
			return "", fmt.Errorf("%w: unit number %d out of range", ErrInvalidID, n)
		}
		return "Unit " + roman, nil
	}

	if _, ok := romanToNumber[rest]; ok {
		return "Unit " + rest, nil
	}

	return "", fmt.Errorf("%w: location %q", ErrInvalidID, code)
}

// unitNumber extracts the numeric unit from a display name. The last token
// may be a Roman numeral (I-X) or a plain number.
func unitNumber(unitName string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(unitName))
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, unitName)
	}

	last := strings.ToUpper(fields[len(fields)-1])
	if n, ok := romanToNumber[last]; ok {
		return n, nil
	}
	if n, err := strconv.Atoi(last); err == nil && n >= 1 && n <= 10 {
		return n, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, unitName)
}
