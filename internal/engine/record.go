package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tartampluch/go-cumplebot/internal/config"
)

// PersonRecord is an immutable snapshot of one row from the birthday store.
// There is no write path; records are rebuilt on every fetch.
type PersonRecord struct {
	// ID is an opaque, stable identifier.
	ID string

	// Name is the display name; falls back to ID when the row has none.
	Name string

	// RawDate is the unparsed birthdate string; empty when the row has no
	// recognizable date field.
	RawDate string
}

// RecordFromRow builds a PersonRecord from a raw row map. All keys are
// lowercased once here, so the field-name variants seen in the wild
// (Cumple/cumple, Nombre/nombre, ...) collapse into a single probe list
// instead of repeated multi-key lookups downstream.
func RecordFromRow(row map[string]any) PersonRecord {
	lowered := make(map[string]string, len(row))
	for k, v := range row {
		lk := strings.ToLower(k)
		s := stringify(v)
		// Keep the first non-empty value if casing variants collide.
		if existing, ok := lowered[lk]; !ok || existing == "" {
			lowered[lk] = s
		}
	}

	rec := PersonRecord{ID: lowered[config.RecordIDKey]}

	for _, key := range config.NameFieldKeys {
		if v := lowered[key]; v != "" {
			rec.Name = v
			break
		}
	}
	if rec.Name == "" {
		rec.Name = rec.ID
	}

	for _, key := range config.DateFieldKeys {
		if v := lowered[key]; v != "" {
			rec.RawDate = v
			break
		}
	}
	if rec.RawDate == "" {
		rec.RawDate = scanDateLike(row)
	}

	return rec
}

// RecordsFromRows converts a fetched result set wholesale.
func RecordsFromRows(rows []map[string]any) []PersonRecord {
	records := make([]PersonRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, RecordFromRow(row))
	}
	return records
}

// scanDateLike is the last-resort probe for a date-bearing value among
// arbitrary fields: any string value containing a digit. Keys are visited
// in sorted order so the pick is at least deterministic for a given row.
// This is a known fragility for real-world data, not a contract.
func scanDateLike(row map[string]any) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.EqualFold(k, config.RecordIDKey) {
			continue
		}
		s, ok := row[k].(string)
		if !ok {
			continue
		}
		if strings.ContainsAny(s, "0123456789") {
			return s
		}
	}
	return ""
}

// stringify renders a JSON-decoded scalar as a string. Numeric IDs come
// back from the store as float64; render them without a fraction.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
