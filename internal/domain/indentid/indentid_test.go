package indentid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		unit     string
		kind     Kind
		seq      int
		expected string
	}{
		{"roman unit request", "Unit II", KindRequest, 3, "SSRFM/UNIT2/R-240105/03"},
		{"roman unit issue", "Unit II", KindIssue, 7, "SSRFM/UNIT2/I-240105/07"},
		{"numeric unit", "Unit 4", KindRequest, 12, "SSRFM/UNIT4/R-240105/12"},
		{"highest roman unit", "Unit X", KindRequest, 1, "SSRFM/UNIT10/R-240105/01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.unit, tt.kind, date, tt.seq)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGenerate_Invalid(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	_, err := Generate("Warehouse", KindRequest, date, 1)
	assert.ErrorIs(t, err, ErrInvalidUnit)

	_, err = Generate("Unit XI", KindRequest, date, 1)
	assert.ErrorIs(t, err, ErrInvalidUnit, "roman mapping stops at X")

	_, err = Generate("Unit II", KindRequest, date, 0)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected string
	}{
		{"current format", "SSRFM/UNIT2/R-240105/03", "Unit II"},
		{"current format issue id", "SSRFM/UNIT5/I-240110/01", "Unit V"},
		{"legacy roman format", "SSRFM/UNITII/R-230812/04", "Unit II"},
		{"legacy roman format unit eight", "SSRFM/UNITVIII/R-230812/04", "Unit VIII"},
		{"legacy REQ format", "REQ-UNIT2-0041", "Unit II"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocation(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseLocation_Invalid(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty id", ""},
		{"unknown prefix", "PO/UNIT2/R-240105/03"},
		{"missing location", "SSRFM/"},
		{"non-unit location", "SSRFM/STORE/R-240105/03"},
		{"unit out of range", "SSRFM/UNIT11/R-240105/03"},
		{"REQ id without location", "REQ-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLocation(tt.id)
			assert.ErrorIs(t, err, ErrInvalidID)
		})
	}
}

// Generated ids parse back to the unit they were generated for.
func TestGenerateParseRoundTrip(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	units := []string{"Unit I", "Unit II", "Unit III", "Unit IV", "Unit V",
		"Unit VI", "Unit VII", "Unit VIII", "Unit IX", "Unit X"}

	for _, unit := range units {
		id, err := Generate(unit, KindRequest, date, 1)
		require.NoError(t, err)

		parsed, err := ParseLocation(id)
		require.NoError(t, err)
		assert.Equal(t, unit, parsed)
	}
}
