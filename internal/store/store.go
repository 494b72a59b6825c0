package store

import (
	"context"
	"sort"

	"github.com/feral-file/ff-crm-sync/internal/domain"
)

// Store is the record store adapter: collection scoped insert, filtered find, delete
// and a two-collection join-and-flatten. It carries no business logic.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// Insert appends records to a collection. An empty batch is a no-op.
	Insert(ctx context.Context, collection domain.Collection, records []domain.Record) error
	// Find returns the records of a collection matching the filter, in insertion order.
	// Internal identifiers are never part of a returned record.
	Find(ctx context.Context, collection domain.Collection, filter Filter) ([]domain.Record, error)
	// Delete removes the records matching the filter and returns how many were removed
	Delete(ctx context.Context, collection domain.Collection, filter Filter) (int64, error)
	// JoinFlatten inner-joins primary rows with detail rows and copies projected detail fields onto the primary row
	JoinFlatten(ctx context.Context, query JoinQuery) ([]domain.Record, error)
	// Ping checks the store is reachable
	Ping(ctx context.Context) error
}

// Filter selects records by field predicates. All predicates are AND-ed; an empty filter matches everything.
type Filter struct {
	// Regex maps a field to a pattern its value must match
	Regex map[string]string
	// Equal maps a field to the exact value it must hold
	Equal map[string]string
	// NotEqual maps a field to a value it must not hold. A missing field is not equal.
	NotEqual map[string]string
	// After maps a field to an exclusive lower bound, compared byte-wise as strings
	After map[string]string
	// Before maps a field to an exclusive upper bound, compared byte-wise as strings
	Before map[string]string
}

// MatchAll is the empty filter
func MatchAll() Filter {
	return Filter{}
}

// RegionFilter matches records whose field matches the region pattern
func RegionFilter(field string, region domain.Region) Filter {
	return Filter{Regex: map[string]string{field: region.Pattern}}
}

// WithRegex returns a copy of the filter with a regex predicate added
func (f Filter) WithRegex(field, pattern string) Filter {
	f.Regex = with(f.Regex, field, pattern)
	return f
}

// WithEqual returns a copy of the filter with an equality predicate added
func (f Filter) WithEqual(field, value string) Filter {
	f.Equal = with(f.Equal, field, value)
	return f
}

// WithNotEqual returns a copy of the filter with an inequality predicate added
func (f Filter) WithNotEqual(field, value string) Filter {
	f.NotEqual = with(f.NotEqual, field, value)
	return f
}

// WithAfter returns a copy of the filter with an exclusive lower bound added
func (f Filter) WithAfter(field, value string) Filter {
	f.After = with(f.After, field, value)
	return f
}

// WithBefore returns a copy of the filter with an exclusive upper bound added
func (f Filter) WithBefore(field, value string) Filter {
	f.Before = with(f.Before, field, value)
	return f
}

// IsEmpty reports whether the filter has no predicates
func (f Filter) IsEmpty() bool {
	return len(f.Regex) == 0 && len(f.Equal) == 0 && len(f.NotEqual) == 0 && len(f.After) == 0 && len(f.Before) == 0
}

func with(m map[string]string, k, v string) map[string]string {
	out := make(map[string]string, len(m)+1)
	for mk, mv := range m {
		out[mk] = mv
	}
	out[k] = v
	return out
}

// sortedKeys keeps generated queries deterministic
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// JoinQuery describes an inner join of a primary collection with a detail collection
type JoinQuery struct {
	Primary domain.Collection
	Detail  domain.Collection
	// LocalKey on the primary row equals ForeignKey on the detail row
	LocalKey   string
	ForeignKey string
	// PrimaryFilter is applied to primary rows before joining
	PrimaryFilter Filter
	// Project maps detail field names to their names on the flattened row
	Project map[string]string
}

// flatten copies the projected detail fields onto a copy of the primary row.
// Detail fields missing on the detail row are not copied.
func flatten(primary, detail domain.Record, project map[string]string) domain.Record {
	out := primary.Clone()
	if out == nil {
		out = domain.Record{}
	}
	for from, to := range project {
		if v, ok := detail[from]; ok {
			out[to] = v
		}
	}
	return out
}
