package syncengine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	"github.com/feral-file/ff-crm-sync/internal/store"
)

// JoinSpec describes a join of a category's working rows with its link rows
type JoinSpec struct {
	Primary     domain.Collection
	Detail      domain.Collection
	LocalKey    string
	ForeignKey  string
	RegionField string
	Project     map[string]string
	// Staging is the joined view; empty disables staging
	Staging domain.Collection
}

// JoinSpecFor builds the join of a category from its registered spec
func JoinSpecFor(category domain.Category) (JoinSpec, error) {
	spec, err := category.Spec()
	if err != nil {
		return JoinSpec{}, err
	}
	if spec.Join == nil {
		return JoinSpec{}, fmt.Errorf("category %s has no join", category)
	}
	return JoinSpec{
		Primary:     spec.Working,
		Detail:      spec.Join.Detail,
		LocalKey:    spec.Join.LocalKey,
		ForeignKey:  spec.Join.ForeignKey,
		RegionField: spec.RegionField,
		Project:     spec.Join.Project,
		Staging:     spec.Join.Staging,
	}, nil
}

// Joiner builds the joined view of a region
//
//go:generate mockgen -source=join.go -destination=../mocks/joiner.go -package=mocks -mock_names=Joiner=MockJoiner
type Joiner interface {
	// Join inner-joins the region's primary rows with their detail rows, flattens the projected
	// detail fields and removes duplicate rows. No match yields an empty result, not an error.
	Join(ctx context.Context, spec JoinSpec, region domain.Region) ([]domain.Record, error)
}

type joiner struct {
	store   store.Store
	staging bool
}

// NewJoiner creates a join engine. With staging enabled, flattened rows are materialized
// into the joined view and read back before deduplication.
func NewJoiner(st store.Store, staging bool) Joiner {
	return &joiner{store: st, staging: staging}
}

func (j *joiner) Join(ctx context.Context, spec JoinSpec, region domain.Region) ([]domain.Record, error) {
	regionFilter := store.RegionFilter(spec.RegionField, region)

	rows, err := j.store.JoinFlatten(ctx, store.JoinQuery{
		Primary:       spec.Primary,
		Detail:        spec.Detail,
		LocalKey:      spec.LocalKey,
		ForeignKey:    spec.ForeignKey,
		PrimaryFilter: regionFilter,
		Project:       spec.Project,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join %s: %w", spec.Primary, err)
	}

	if j.staging && spec.Staging != "" {
		rows, err = j.stage(ctx, spec.Staging, regionFilter, rows)
		if err != nil {
			return nil, err
		}
	}

	out := Dedupe(rows)

	logger.DebugCtx(ctx, "Joined view built",
		zap.String("primary", spec.Primary.String()),
		zap.String("region", region.String()),
		zap.Int("rows", len(rows)),
		zap.Int("unique", len(out)))

	return out, nil
}

// stage replaces the region's slice of the joined view with rows and reads it back
func (j *joiner) stage(ctx context.Context, staging domain.Collection, regionFilter store.Filter, rows []domain.Record) ([]domain.Record, error) {
	if _, err := j.store.Delete(ctx, staging, regionFilter); err != nil {
		return nil, fmt.Errorf("failed to reset %s: %w", staging, err)
	}
	if len(rows) == 0 {
		return rows, nil
	}
	if err := j.store.Insert(ctx, staging, rows); err != nil {
		return nil, fmt.Errorf("failed to stage %s: %w", staging, err)
	}

	staged, err := j.store.Find(ctx, staging, regionFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", staging, err)
	}
	return staged, nil
}
