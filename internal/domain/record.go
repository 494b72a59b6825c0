package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/gowebpki/jcs"
)

// Record is a flat mapping from field name to a scalar value.
// Records are data driven: field sets are validated at the boundary, never typed per category.
type Record map[string]any

// Clone returns a shallow copy of the record
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the field value rendered as a string, or "" when the field is missing or null
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// Has reports whether the field is present with a non-empty value
func (r Record) Has(field string) bool {
	return r.String(field) != ""
}

// Fields returns the record's field names in sorted order
func (r Record) Fields() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Without returns a copy of the record with the given fields removed
func (r Record) Without(fields ...string) Record {
	out := r.Clone()
	for _, f := range fields {
		delete(out, f)
	}
	return out
}

// Fingerprint returns a stable digest of the full field set.
// Two records have the same fingerprint iff they carry the same keys with the same values,
// independent of key order and of how the backing store encoded numbers.
func (r Record) Fingerprint() string {
	raw, err := json.Marshal(r)
	if err != nil {
		// Unmarshalable values only come from programming errors; fall back to the printed form
		raw = []byte(fmt.Sprintf("%v", map[string]any(r)))
	} else if canonical, err := jcs.Transform(raw); err == nil {
		raw = canonical
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// IsFlat reports whether every value is a scalar (no nested objects or arrays)
func (r Record) IsFlat() bool {
	for _, v := range r {
		switch v.(type) {
		case map[string]any, Record, []any:
			return false
		}
	}
	return true
}
