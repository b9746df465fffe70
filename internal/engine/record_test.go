package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRecordFromRow_KeyVariants verifies that the one-time lowercasing at
// ingestion absorbs the casing variants seen in real tables.
func TestRecordFromRow_KeyVariants(t *testing.T) {
	tests := []struct {
		name     string
		row      map[string]any
		wantName string
		wantDate string
	}{
		{
			name:     "lowercase keys",
			row:      map[string]any{"id": "1", "nombre": "Ana", "cumple": "1990-03-10"},
			wantName: "Ana",
			wantDate: "1990-03-10",
		},
		{
			name:     "capitalized keys",
			row:      map[string]any{"id": "2", "Nombre": "Berto", "Cumple": "1985-11-02"},
			wantName: "Berto",
			wantDate: "1985-11-02",
		},
		{
			name:     "alternate field names",
			row:      map[string]any{"id": "3", "Name": "Clara", "Birthday": "2001-07-04"},
			wantName: "Clara",
			wantDate: "2001-07-04",
		},
		{
			name:     "fecha variant",
			row:      map[string]any{"id": "4", "nombre": "Dani", "Fecha": "12/08/1993"},
			wantName: "Dani",
			wantDate: "12/08/1993",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := RecordFromRow(tt.row)
			assert.Equal(t, tt.wantName, rec.Name)
			assert.Equal(t, tt.wantDate, rec.RawDate)
		})
	}
}

func TestRecordFromRow_NameFallsBackToID(t *testing.T) {
	rec := RecordFromRow(map[string]any{"id": "42", "cumple": "1990-01-01"})
	assert.Equal(t, "42", rec.Name)
}

func TestRecordFromRow_NumericID(t *testing.T) {
	// JSON decoding renders numbers as float64.
	rec := RecordFromRow(map[string]any{"id": float64(7), "nombre": "Eva"})
	assert.Equal(t, "7", rec.ID)
}

// TestRecordFromRow_DateLikeFallback covers the last-resort scan for any
// digit-bearing string value when no known date key is present.
func TestRecordFromRow_DateLikeFallback(t *testing.T) {
	rec := RecordFromRow(map[string]any{
		"id":     "9",
		"nombre": "Fede",
		"nacido": "1999-05-05",
	})
	assert.Equal(t, "1999-05-05", rec.RawDate)
}

func TestRecordFromRow_NoDateAnywhere(t *testing.T) {
	rec := RecordFromRow(map[string]any{"id": "10", "nombre": "Gia"})
	assert.Empty(t, rec.RawDate)
}
