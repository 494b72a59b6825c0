package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	"github.com/feral-file/ff-crm-sync/internal/providers/eloqua"
	"github.com/feral-file/ff-crm-sync/internal/store"
	"github.com/feral-file/ff-crm-sync/internal/syncengine"
)

func (o *orchestrator) SyncActivities(ctx context.Context) domain.UnitResult {
	u := o.startUnit(domain.DirectionInbound, domain.UnitResult{
		Category: domain.CategoryAllActivities,
		Stream:   domain.StreamActivities,
	})
	return o.done(ctx, u, o.syncActivities(ctx, u))
}

func (o *orchestrator) syncActivities(ctx context.Context, u *unit) error {
	var exported []domain.Record
	for _, activityType := range o.cfg.ActivityTypes {
		rows, err := o.platform.ExportActivities(ctx, activityType)
		if err != nil {
			return err
		}
		logger.DebugCtx(ctx, "Exported activities", zap.String("type", activityType), zap.Int("rows", len(rows)))
		exported = append(exported, rows...)
	}

	stored, err := o.store.Find(ctx, domain.CollectionAllActivities,
		store.MatchAll().WithNotEqual(domain.FieldActivityType, domain.ActivityTypePageView))
	if err != nil {
		return fmt.Errorf("failed to read stored activities: %w", err)
	}

	return o.storeNew(ctx, u, exported, stored)
}

func (o *orchestrator) SyncPageViews(ctx context.Context, firstRun bool) domain.UnitResult {
	u := o.startUnit(domain.DirectionInbound, domain.UnitResult{
		Category: domain.CategoryAllActivities,
		Stream:   domain.StreamPageViews,
	})
	return o.done(ctx, u, o.syncPageViews(ctx, u, firstRun))
}

func (o *orchestrator) syncPageViews(ctx context.Context, u *unit, firstRun bool) error {
	window, full, err := o.pageViewWindow(ctx, firstRun)
	if err != nil {
		return err
	}

	var contactWindow *eloqua.Window
	if !full {
		contactWindow = &window
	}
	contacts, err := o.platform.ExportContactsWithCRMID(ctx, contactWindow)
	if err != nil {
		return err
	}

	byContact, err := o.exportContactPageViews(ctx, contacts)
	if err != nil {
		return err
	}

	byDay, err := o.platform.ExportPageViews(ctx, window)
	if err != nil {
		return err
	}

	exported := byContact
	for _, row := range byDay {
		if row.String(domain.FieldContactCRMID) != "" {
			exported = append(exported, row)
		}
	}

	stored, err := o.store.Find(ctx, domain.CollectionAllActivities,
		store.MatchAll().WithEqual(domain.FieldActivityType, domain.ActivityTypePageView))
	if err != nil {
		return fmt.Errorf("failed to read stored page views: %w", err)
	}

	logger.DebugCtx(ctx, "Exported page views",
		zap.Int("contacts", len(contacts)),
		zap.Int("byContact", len(byContact)),
		zap.Int("byDay", len(byDay)),
		zap.String("from", window.From),
		zap.String("to", window.To))

	return o.storeNew(ctx, u, exported, stored)
}

// pageViewWindow spans from yesterday, or from the last successful run when that is earlier, to today.
// full is set when contacts must be exported regardless of their modification date.
func (o *orchestrator) pageViewWindow(ctx context.Context, firstRun bool) (eloqua.Window, bool, error) {
	today := o.clock.Now().UTC().Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, -1)

	last, err := o.cursors.GetSyncCursor(ctx, CursorStream)
	if err != nil {
		return eloqua.Window{}, false, fmt.Errorf("failed to read inbound cursor: %w", err)
	}
	if !last.IsZero() {
		if day := last.UTC().Truncate(24 * time.Hour); day.Before(from) {
			from = day
		}
	}

	window := eloqua.Window{From: from.Format(eloqua.DateLayout), To: today.Format(eloqua.DateLayout)}
	return window, firstRun || last.IsZero(), nil
}

// exportContactPageViews fans the per-contact exports out over a bounded pool
func (o *orchestrator) exportContactPageViews(ctx context.Context, contacts []domain.Record) ([]domain.Record, error) {
	pool := pond.NewResultPool[[]domain.Record](o.cfg.PageViewWorkers)
	defer pool.StopAndWait()

	group := pool.NewGroupContext(ctx)
	for _, contact := range contacts {
		contactID := contact.String("id")
		if contactID == "" {
			continue
		}
		group.SubmitErr(func() ([]domain.Record, error) {
			return o.platform.ExportContactPageViews(ctx, contactID)
		})
	}

	results, err := group.Wait()
	if err != nil {
		return nil, err
	}

	var out []domain.Record
	for _, rows := range results {
		out = append(out, rows...)
	}
	return out, nil
}

// storeNew inserts the exported rows that are neither duplicated nor already stored
func (o *orchestrator) storeNew(ctx context.Context, u *unit, exported, stored []domain.Record) error {
	u.result.Fetched = len(exported)
	u.records("fetched", len(exported))

	fresh := syncengine.FilterNew(syncengine.Dedupe(exported), stored)
	u.result.New = len(fresh)
	u.records("new", len(fresh))

	if len(fresh) == 0 {
		return nil
	}
	if err := o.store.Insert(ctx, domain.CollectionAllActivities, fresh); err != nil {
		return fmt.Errorf("failed to store activities: %w", err)
	}
	u.result.Stored = len(fresh)
	u.records("stored", len(fresh))
	return nil
}
