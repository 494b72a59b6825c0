package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-crm-sync/internal/domain"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func buildActivity(meetingID, owner string) domain.Record {
	return domain.Record{"Meeting_ID": meetingID, "Owner": owner}
}

func buildPersonActivity(meetingID, contactID, rowID string) domain.Record {
	return domain.Record{"IM_CRM_Meeting_ID": meetingID, "IM_CRM_Contact_ID": contactID, "IM_CRM_Row_ID": rowID}
}

func buildInboundActivity(activityType, date, crmID string) domain.Record {
	return domain.Record{
		domain.FieldActivityType: activityType,
		domain.FieldActivityDate: date,
		domain.FieldContactCRMID: crmID,
	}
}

var activityJoin = JoinQuery{
	Primary:    domain.CollectionActivity,
	Detail:     domain.CollectionPersonActivity,
	LocalKey:   "Meeting_ID",
	ForeignKey: "IM_CRM_Meeting_ID",
	Project: map[string]string{
		"IM_CRM_Contact_ID": "IM_CRM_Contact_ID",
		"IM_CRM_Row_ID":     "IM_CRM_Row_ID",
	},
}

// =============================================================================
// Record Store Tests
// =============================================================================

func testInsertAndFind(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("find returns inserted records in insertion order without internal ids", func(t *testing.T) {
		records := []domain.Record{
			buildActivity("ES-2", "ana"),
			buildActivity("ES-1", "luis"),
			buildActivity("UK-1", "tom"),
		}
		require.NoError(t, store.Insert(ctx, domain.CollectionActivity, records))

		found, err := store.Find(ctx, domain.CollectionActivity, MatchAll())
		require.NoError(t, err)
		require.Len(t, found, 3)
		assert.Equal(t, records, found)
		for _, r := range found {
			assert.NotContains(t, r, "_id")
		}
	})

	t.Run("empty insert is a no-op", func(t *testing.T) {
		require.NoError(t, store.Insert(ctx, domain.CollectionContact, nil))

		found, err := store.Find(ctx, domain.CollectionContact, MatchAll())
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("collections are isolated", func(t *testing.T) {
		require.NoError(t, store.Insert(ctx, domain.CollectionActivityPast, []domain.Record{buildActivity("DE-1", "max")}))

		past, err := store.Find(ctx, domain.CollectionActivityPast, MatchAll())
		require.NoError(t, err)
		require.Len(t, past, 1)
		assert.Equal(t, "DE-1", past[0]["Meeting_ID"])
	})
}

func testFindFilters(t *testing.T, store Store) {
	ctx := context.Background()
	rows := []domain.Record{
		buildInboundActivity("EmailOpen", "2024-01-01 10:00:00", "UK-1"),
		buildInboundActivity("PageView", "2024-01-02 10:00:00", "UK-2"),
		buildInboundActivity("EmailSend", "2024-01-03 10:00:00", "DE-1"),
		{domain.FieldActivityDate: "2024-01-04 10:00:00", domain.FieldContactCRMID: "UK-3"},
	}
	require.NoError(t, store.Insert(ctx, domain.CollectionAllActivities, rows))

	tests := []struct {
		name   string
		filter Filter
		want   []domain.Record
	}{
		{
			name:   "regex",
			filter: MatchAll().WithRegex(domain.FieldContactCRMID, "UK"),
			want:   []domain.Record{rows[0], rows[1], rows[3]},
		},
		{
			name:   "equal",
			filter: MatchAll().WithEqual(domain.FieldActivityType, "PageView"),
			want:   []domain.Record{rows[1]},
		},
		{
			name:   "not equal includes rows missing the field",
			filter: MatchAll().WithNotEqual(domain.FieldActivityType, "PageView"),
			want:   []domain.Record{rows[0], rows[2], rows[3]},
		},
		{
			name:   "exclusive bounds",
			filter: MatchAll().WithAfter(domain.FieldActivityDate, "2024-01-01 10:00:00").WithBefore(domain.FieldActivityDate, "2024-01-04"),
			want:   []domain.Record{rows[1], rows[2]},
		},
		{
			name: "combined predicates",
			filter: MatchAll().
				WithRegex(domain.FieldContactCRMID, "UK").
				WithAfter(domain.FieldActivityDate, "2024-01-01"),
			want: []domain.Record{rows[0], rows[1], rows[3]},
		},
		{
			name:   "region filter",
			filter: RegionFilter(domain.FieldContactCRMID, domain.Region{Label: "DE", Pattern: "DE"}),
			want:   []domain.Record{rows[2]},
		},
		{
			name:   "no match is empty, not an error",
			filter: MatchAll().WithRegex(domain.FieldContactCRMID, "PT"),
			want:   []domain.Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := store.Find(ctx, domain.CollectionAllActivities, tt.filter)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, found)
		})
	}
}

func testDelete(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("delete by region only removes matching rows", func(t *testing.T) {
		require.NoError(t, store.Insert(ctx, domain.CollectionActivity, []domain.Record{
			buildActivity("ES-1", "ana"),
			buildActivity("UK-1", "tom"),
			buildActivity("ES-2", "luis"),
		}))

		n, err := store.Delete(ctx, domain.CollectionActivity, RegionFilter("Meeting_ID", domain.Region{Label: "ES", Pattern: "ES"}))
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		left, err := store.Find(ctx, domain.CollectionActivity, MatchAll())
		require.NoError(t, err)
		require.Len(t, left, 1)
		assert.Equal(t, "UK-1", left[0]["Meeting_ID"])
	})

	t.Run("delete all", func(t *testing.T) {
		require.NoError(t, store.Insert(ctx, domain.CollectionJoinedActivity, []domain.Record{buildActivity("DE-1", "max")}))

		_, err := store.Delete(ctx, domain.CollectionJoinedActivity, MatchAll())
		require.NoError(t, err)

		left, err := store.Find(ctx, domain.CollectionJoinedActivity, MatchAll())
		require.NoError(t, err)
		assert.Empty(t, left)
	})

	t.Run("delete with no match", func(t *testing.T) {
		n, err := store.Delete(ctx, domain.CollectionInstitution, MatchAll().WithEqual("IM_CRM_Institution_ID", "none"))
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func testJoinFlatten(t *testing.T, store Store) {
	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, domain.CollectionActivity, []domain.Record{
		{"Meeting_ID": "M1"},
		{"Meeting_ID": "M2"},
		{"Meeting_ID": "UK-M3"},
	}))
	require.NoError(t, store.Insert(ctx, domain.CollectionPersonActivity, []domain.Record{
		buildPersonActivity("M1", "C1", "R1"),
		buildPersonActivity("M1", "C1", "R1"),
		buildPersonActivity("UK-M3", "C3", "R3"),
	}))

	t.Run("flattens projected detail fields and drops unmatched primary rows", func(t *testing.T) {
		rows, err := store.JoinFlatten(ctx, activityJoin)
		require.NoError(t, err)

		require.Len(t, rows, 3, "duplicate detail rows are kept by the store")
		assert.Equal(t, domain.Record{"Meeting_ID": "M1", "IM_CRM_Contact_ID": "C1", "IM_CRM_Row_ID": "R1"}, rows[0])
		for _, r := range rows {
			assert.NotEqual(t, "M2", r["Meeting_ID"])
			assert.NotContains(t, r, "IM_CRM_Meeting_ID")
			assert.NotContains(t, r, "_id")
		}
	})

	t.Run("primary filter is applied before the join", func(t *testing.T) {
		q := activityJoin
		q.PrimaryFilter = RegionFilter("Meeting_ID", domain.Region{Label: "UK", Pattern: "UK"})

		rows, err := store.JoinFlatten(ctx, q)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, domain.Record{"Meeting_ID": "UK-M3", "IM_CRM_Contact_ID": "C3", "IM_CRM_Row_ID": "R3"}, rows[0])
	})

	t.Run("no partners is empty", func(t *testing.T) {
		q := activityJoin
		q.PrimaryFilter = RegionFilter("Meeting_ID", domain.Region{Label: "DE", Pattern: "DE"})

		rows, err := store.JoinFlatten(ctx, q)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func testPing(t *testing.T, store Store) {
	assert.NoError(t, store.Ping(context.Background()))
}

// RunStoreTests runs the record store tests against a Store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"InsertAndFind", testInsertAndFind},
		{"FindFilters", testFindFilters},
		{"Delete", testDelete},
		{"JoinFlatten", testJoinFlatten},
		{"Ping", testPing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}

// RunCursorStoreTests runs the sync cursor tests against a CursorStore implementation
func RunCursorStoreTests(t *testing.T, initDB func(t *testing.T) CursorStore) {
	ctx := context.Background()

	t.Run("missing cursor is the zero time", func(t *testing.T) {
		cs := initDB(t)

		at, err := cs.GetSyncCursor(ctx, "inbound")
		require.NoError(t, err)
		assert.True(t, at.IsZero())
	})

	t.Run("set then get, last write wins", func(t *testing.T) {
		cs := initDB(t)
		first := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
		second := first.Add(24 * time.Hour)

		require.NoError(t, cs.SetSyncCursor(ctx, "inbound", first))
		require.NoError(t, cs.SetSyncCursor(ctx, "inbound", second))
		require.NoError(t, cs.SetSyncCursor(ctx, "other", first))

		at, err := cs.GetSyncCursor(ctx, "inbound")
		require.NoError(t, err)
		assert.True(t, second.Equal(at))
	})
}

func TestFlatten(t *testing.T) {
	primary := domain.Record{"Meeting_ID": "M1"}
	detail := domain.Record{"IM_CRM_Contact_ID": "C1", "Other": "x"}

	out := flatten(primary, detail, map[string]string{"IM_CRM_Contact_ID": "Contact", "IM_CRM_Row_ID": "Row"})

	assert.Equal(t, domain.Record{"Meeting_ID": "M1", "Contact": "C1"}, out)
	assert.Equal(t, domain.Record{"Meeting_ID": "M1"}, primary)
}

func TestCalculateSafeBatchSize(t *testing.T) {
	assert.Equal(t, 10, calculateSafeBatchSize(10, recordFieldsPerRow))
	assert.Equal(t, 32267, calculateSafeBatchSize(100000, recordFieldsPerRow))
	assert.Equal(t, 1, calculateSafeBatchSize(5, 100000))
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, life, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 20, open)
	assert.Equal(t, 5, idle)
	assert.Equal(t, 5*time.Minute, life)
	assert.Equal(t, 10*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(4, 10, time.Minute, time.Minute)
	assert.Equal(t, 4, open)
	assert.Equal(t, 4, idle)
}
