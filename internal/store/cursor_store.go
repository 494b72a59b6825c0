package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-crm-sync/internal/store/schema"
)

// CursorStore keeps the time of the last successful run per sync stream
//
//go:generate mockgen -source=cursor_store.go -destination=../mocks/cursor_store.go -package=mocks -mock_names=CursorStore=MockCursorStore
type CursorStore interface {
	// GetSyncCursor returns the last successful run time of a stream, or the zero time if none
	GetSyncCursor(ctx context.Context, stream string) (time.Time, error)
	// SetSyncCursor stores the last successful run time of a stream
	SetSyncCursor(ctx context.Context, stream string, at time.Time) error
}

type cursorStore struct {
	db *gorm.DB
}

// NewCursorStore creates a cursor store over the sync_cursors table
func NewCursorStore(db *gorm.DB) CursorStore {
	return &cursorStore{db: db}
}

func (s *cursorStore) GetSyncCursor(ctx context.Context, stream string) (time.Time, error) {
	var cursor schema.SyncCursor
	err := s.db.WithContext(ctx).Where("stream = ?", stream).First(&cursor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to get sync cursor: %w", err)
	}

	return cursor.LastSuccessAt.UTC(), nil
}

func (s *cursorStore) SetSyncCursor(ctx context.Context, stream string, at time.Time) error {
	cursor := schema.SyncCursor{
		Stream:        stream,
		LastSuccessAt: at.UTC(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stream"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_success_at", "updated_at"}),
	}).Create(&cursor).Error
	if err != nil {
		return fmt.Errorf("failed to set sync cursor: %w", err)
	}

	return nil
}
