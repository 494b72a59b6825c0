package rotation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	"github.com/feral-file/ff-crm-sync/internal/metrics"
	"github.com/feral-file/ff-crm-sync/internal/store"
)

// JoinedViewScope selects how much of a joined view a rotation clears
type JoinedViewScope string

const (
	// JoinedViewGlobal clears the whole joined view of the category
	JoinedViewGlobal JoinedViewScope = "global"
	// JoinedViewRegion clears only the rotated region's slice of the joined view
	JoinedViewRegion JoinedViewScope = "region"
)

// Result counts the rows touched by a rotation
type Result struct {
	ArchiveCleared int64
	Archived       int
	WorkingCleared int64
	LinkCleared    int64
	JoinedCleared  int64
}

// Manager promotes a region's filtered-new rows into the archive and clears its working data
//
//go:generate mockgen -source=manager.go -destination=../mocks/rotation.go -package=mocks -mock_names=Manager=MockRotationManager
type Manager interface {
	// Rotate replaces the region's archive with filteredNew, then clears the region's working rows,
	// the dependent link rows and the joined view. Working rows are left untouched when the archive
	// write fails.
	Rotate(ctx context.Context, category domain.Category, region domain.Region, filteredNew []domain.Record) (Result, error)
}

type manager struct {
	store  store.Store
	locker Locker
	scope  JoinedViewScope
}

// NewManager creates a rotation manager
func NewManager(st store.Store, locker Locker, scope JoinedViewScope) Manager {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if scope == "" {
		scope = JoinedViewGlobal
	}
	return &manager{store: st, locker: locker, scope: scope}
}

func (m *manager) Rotate(ctx context.Context, category domain.Category, region domain.Region, filteredNew []domain.Record) (result Result, err error) {
	spec, err := category.Spec()
	if err != nil {
		return Result{}, err
	}
	if !spec.Archived() {
		return Result{}, fmt.Errorf("%w: %s has no archive", domain.ErrUnknownCategory, category)
	}

	start := time.Now()
	defer func() {
		metrics.RotationsTotal.WithLabelValues(category.String(), metrics.Outcome(err)).Inc()
	}()

	lock, err := m.locker.Acquire(ctx, LockKey(category, region))
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if relErr := lock.Release(ctx); relErr != nil {
			logger.WarnCtx(ctx, "Failed to release rotation lock", zap.Error(relErr))
		}
	}()

	regionFilter := store.RegionFilter(spec.RegionField, region)

	// Clear-Archive
	result.ArchiveCleared, err = m.store.Delete(ctx, spec.Archive, regionFilter)
	if err != nil {
		return result, fmt.Errorf("failed to clear %s: %w", spec.Archive, err)
	}

	// Write-Archive
	if len(filteredNew) > 0 {
		if err = m.store.Insert(ctx, spec.Archive, filteredNew); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", spec.Archive, err)
		}
		result.Archived = len(filteredNew)
	}

	// Clear-Working
	result.WorkingCleared, err = m.store.Delete(ctx, spec.Working, regionFilter)
	if err != nil {
		return result, fmt.Errorf("failed to clear %s: %w", spec.Working, err)
	}

	if spec.Link != "" {
		result.LinkCleared, err = m.store.Delete(ctx, spec.Link, store.RegionFilter(spec.LinkRegionField, region))
		if err != nil {
			return result, fmt.Errorf("failed to clear %s: %w", spec.Link, err)
		}
	}

	if spec.Join != nil && spec.Join.Staging != "" {
		joinedFilter := store.MatchAll()
		if m.scope == JoinedViewRegion {
			joinedFilter = regionFilter
		}
		result.JoinedCleared, err = m.store.Delete(ctx, spec.Join.Staging, joinedFilter)
		if err != nil {
			return result, fmt.Errorf("failed to clear %s: %w", spec.Join.Staging, err)
		}
	}

	logger.InfoCtx(ctx, "Rotated archive",
		zap.String("category", category.String()),
		zap.String("region", region.String()),
		zap.Int64("archive_cleared", result.ArchiveCleared),
		zap.Int("archived", result.Archived),
		zap.Int64("working_cleared", result.WorkingCleared),
		zap.Int64("link_cleared", result.LinkCleared),
		zap.Int64("joined_cleared", result.JoinedCleared),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}
