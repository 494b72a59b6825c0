package orchestrator

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/store"
	"github.com/feral-file/ff-crm-sync/internal/syncengine"
)

func (o *orchestrator) SyncOutboundUnit(ctx context.Context, region domain.Region, category domain.Category) domain.UnitResult {
	u := o.startUnit(domain.DirectionOutbound, domain.UnitResult{Region: region.Key(), Category: category})
	return o.done(ctx, u, o.syncOutbound(ctx, u, region, category))
}

// syncOutbound uploads the rows not present in yesterday's archive, then rotates the pair.
// A failed upload leaves working rows and the archive untouched for the next cycle.
func (o *orchestrator) syncOutbound(ctx context.Context, u *unit, region domain.Region, category domain.Category) error {
	spec, err := category.Spec()
	if err != nil {
		return err
	}
	if !spec.Archived() {
		return fmt.Errorf("%w: %s is not pushed outbound", domain.ErrUnknownCategory, category)
	}

	current, err := o.current(ctx, spec, region)
	if err != nil {
		return err
	}
	u.result.Fetched = len(current)
	u.records("fetched", len(current))

	past, err := o.store.Find(ctx, spec.Archive, store.RegionFilter(spec.RegionField, region))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", spec.Archive, err)
	}

	filtered := syncengine.FilterNew(current, past)
	u.result.New = len(filtered)
	u.records("new", len(filtered))

	if len(filtered) > 0 {
		if err := o.upload(ctx, category, filtered); err != nil {
			return err
		}
		u.result.Uploaded = true
		u.records("uploaded", len(filtered))
	}

	if _, err := o.rotator.Rotate(ctx, category, region, filtered); err != nil {
		return fmt.Errorf("failed to rotate: %w", err)
	}
	u.result.Rotated = true
	return nil
}

// current returns the region's distinct working rows, joined with their link rows when the category has a join
func (o *orchestrator) current(ctx context.Context, spec domain.CategorySpec, region domain.Region) ([]domain.Record, error) {
	if spec.Join == nil {
		rows, err := o.store.Find(ctx, spec.Working, store.RegionFilter(spec.RegionField, region))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", spec.Working, err)
		}
		return syncengine.Dedupe(rows), nil
	}

	join, err := syncengine.JoinSpecFor(spec.Category)
	if err != nil {
		return nil, err
	}
	return o.joiner.Join(ctx, join, region)
}

func (o *orchestrator) upload(ctx context.Context, category domain.Category, records []domain.Record) error {
	if category == domain.CategoryContact {
		return o.platform.ImportContacts(ctx, records)
	}
	return o.platform.ImportCustomObjects(ctx, category, records)
}
