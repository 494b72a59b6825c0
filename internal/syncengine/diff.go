package syncengine

import "github.com/feral-file/ff-crm-sync/internal/domain"

// FilterNew returns the records of current that have no exact full-field match in past,
// in current's order. With an empty past every current record is new.
func FilterNew(current, past []domain.Record) []domain.Record {
	out := make([]domain.Record, 0, len(current))
	if len(past) == 0 {
		return append(out, current...)
	}

	seen := make(map[string]struct{}, len(past))
	for _, r := range past {
		seen[r.Fingerprint()] = struct{}{}
	}

	for _, r := range current {
		if _, ok := seen[r.Fingerprint()]; !ok {
			out = append(out, r)
		}
	}
	return out
}

// Dedupe drops records equal to an earlier record, keeping first occurrences in order
func Dedupe(records []domain.Record) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		fp := r.Fingerprint()
		if _, ok := seen[fp]; ok {
			continue
		}
		seen[fp] = struct{}{}
		out = append(out, r)
	}
	return out
}
