package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	"github.com/feral-file/ff-crm-sync/internal/store/schema"
)

// recordFieldsPerRow is the number of bound parameters per inserted crm_records row
const recordFieldsPerRow = 2

type pgStore struct {
	db *gorm.DB
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewPGStore creates a PostgreSQL record store. Every collection lives in the crm_records table
// as a jsonb document keyed by collection name.
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool applies the pool settings to the database handle, using
// NormalizeConnectionPoolSettings for zero values.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings fills zero settings with defaults
// (20 open, 5 idle, 5m lifetime, 10m idle time) and keeps idle at or below open.
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// calculateSafeBatchSize keeps a bulk insert under PostgreSQL's 65535 bind parameter limit,
// reserving 1000 parameters for statement overhead.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000

	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// reader returns the handle used to read a collection.
// Join staging is written and read back within one unit, so it is pinned to the primary.
func (s *pgStore) reader(ctx context.Context, collection domain.Collection) *gorm.DB {
	db := s.db.WithContext(ctx)
	if collection.IsStaging() && hasDBResolver(s.db) {
		db = db.Clauses(dbresolver.Write)
	}
	return db
}

// Insert appends records to a collection
func (s *pgStore) Insert(ctx context.Context, collection domain.Collection, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]schema.Record, len(records))
	for i, r := range records {
		rows[i] = schema.Record{
			Collection: collection.String(),
			Data:       datatypes.JSONMap(r.Clone()),
		}
	}

	batchSize := calculateSafeBatchSize(len(rows), recordFieldsPerRow)
	if err := s.db.WithContext(ctx).CreateInBatches(rows, batchSize).Error; err != nil {
		return fmt.Errorf("failed to insert into %s: %w: %w", collection, domain.ErrStoreWrite, err)
	}

	logger.DebugCtx(ctx, "Inserted records",
		zap.String("collection", collection.String()),
		zap.Int("count", len(rows)))

	return nil
}

// Find returns the records of a collection matching the filter, in insertion order
func (s *pgStore) Find(ctx context.Context, collection domain.Collection, filter Filter) ([]domain.Record, error) {
	var rows []schema.Record
	q := s.reader(ctx, collection).
		Model(&schema.Record{}).
		Where("collection = ?", collection.String())
	q = applyFilter(q, "data", filter)

	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find in %s: %w", collection, err)
	}

	records := make([]domain.Record, len(rows))
	for i, row := range rows {
		records[i] = domain.Record(row.Data)
	}
	return records, nil
}

// Delete removes the records matching the filter
func (s *pgStore) Delete(ctx context.Context, collection domain.Collection, filter Filter) (int64, error) {
	q := s.db.WithContext(ctx).Where("collection = ?", collection.String())
	q = applyFilter(q, "data", filter)

	result := q.Delete(&schema.Record{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w: %w", collection, domain.ErrStoreWrite, result.Error)
	}

	logger.DebugCtx(ctx, "Deleted records",
		zap.String("collection", collection.String()),
		zap.Int64("count", result.RowsAffected))

	return result.RowsAffected, nil
}

type joinedRow struct {
	PrimaryData datatypes.JSONMap `gorm:"column:primary_data"`
	DetailData  datatypes.JSONMap `gorm:"column:detail_data"`
}

// JoinFlatten inner-joins primary and detail rows on LocalKey = ForeignKey
func (s *pgStore) JoinFlatten(ctx context.Context, query JoinQuery) ([]domain.Record, error) {
	var rows []joinedRow
	q := s.db.WithContext(ctx).
		Table(schema.Record{}.TableName()+" AS p").
		Select("p.data AS primary_data, d.data AS detail_data").
		Joins("JOIN "+schema.Record{}.TableName()+" AS d ON d.collection = ? AND d.data -> ?::text = p.data -> ?::text",
			query.Detail.String(), query.ForeignKey, query.LocalKey).
		Where("p.collection = ?", query.Primary.String())
	q = applyFilter(q, "p.data", query.PrimaryFilter)

	if err := q.Order("p.id, d.id").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to join %s with %s: %w", query.Primary, query.Detail, err)
	}

	records := make([]domain.Record, len(rows))
	for i, row := range rows {
		records[i] = flatten(domain.Record(row.PrimaryData), domain.Record(row.DetailData), query.Project)
	}
	return records, nil
}

// Ping checks the database connection
func (s *pgStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// applyFilter adds the filter predicates against the jsonb column.
// Regexes use PostgreSQL's POSIX matching; bounds compare in the C collation so ordering is byte-wise.
func applyFilter(q *gorm.DB, column string, f Filter) *gorm.DB {
	for _, field := range sortedKeys(f.Regex) {
		q = q.Where(column+" ->> ?::text ~ ?", field, f.Regex[field])
	}
	for _, field := range sortedKeys(f.Equal) {
		q = q.Where(column+" ->> ?::text = ?", field, f.Equal[field])
	}
	for _, field := range sortedKeys(f.NotEqual) {
		q = q.Where("("+column+" ->> ?::text) IS DISTINCT FROM ?", field, f.NotEqual[field])
	}
	for _, field := range sortedKeys(f.After) {
		q = q.Where("("+column+" ->> ?::text) COLLATE \"C\" > ?", field, f.After[field])
	}
	for _, field := range sortedKeys(f.Before) {
		q = q.Where("("+column+" ->> ?::text) COLLATE \"C\" < ?", field, f.Before[field])
	}
	return q
}
