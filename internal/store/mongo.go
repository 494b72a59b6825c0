package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
)

const (
	mongoIDField        = "_id"
	mongoDetailField    = "detail"
	mongoSyncStateColl  = "syncState"
	mongoSyncStateValue = "value"
)

type mongoStore struct {
	db *mongo.Database
}

// ConnectMongo connects to MongoDB and checks the deployment is reachable
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(uri)
	if timeout > 0 {
		opts.SetConnectTimeout(timeout).SetServerSelectionTimeout(timeout)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client, nil
}

// NewMongoStore creates a record store with one MongoDB collection per logical collection
func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{db: db}
}

// EnsureMongoIndexes creates the indexes the sync queries rely on
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[domain.Collection][]string{}
	for _, c := range domain.AllCategories {
		spec, err := c.Spec()
		if err != nil {
			return err
		}
		indexes[spec.Working] = append(indexes[spec.Working], spec.RegionField)
		if spec.Archived() {
			indexes[spec.Archive] = append(indexes[spec.Archive], spec.RegionField)
		}
		if spec.Join != nil {
			indexes[spec.Join.Detail] = append(indexes[spec.Join.Detail], spec.Join.ForeignKey)
			indexes[spec.Join.Staging] = append(indexes[spec.Join.Staging], spec.RegionField)
		}
	}
	indexes[domain.CollectionAllActivities] = append(indexes[domain.CollectionAllActivities],
		domain.FieldActivityDate, domain.FieldContactDateModified, domain.FieldActivityType)

	for coll, fields := range indexes {
		models := make([]mongo.IndexModel, 0, len(fields))
		seen := map[string]bool{}
		for _, f := range fields {
			if seen[f] {
				continue
			}
			seen[f] = true
			models = append(models, mongo.IndexModel{Keys: bson.D{{Key: f, Value: 1}}})
		}
		if _, err := db.Collection(coll.String()).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func (s *mongoStore) coll(c domain.Collection) *mongo.Collection {
	return s.db.Collection(c.String())
}

// Insert appends records to a collection
func (s *mongoStore) Insert(ctx context.Context, collection domain.Collection, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}

	docs := make([]any, len(records))
	for i, r := range records {
		docs[i] = bson.M(r.Without(mongoIDField))
	}

	if _, err := s.coll(collection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert into %s: %w: %w", collection, domain.ErrStoreWrite, err)
	}

	logger.DebugCtx(ctx, "Inserted records",
		zap.String("collection", collection.String()),
		zap.Int("count", len(docs)))

	return nil
}

// Find returns the records of a collection matching the filter, in insertion order
func (s *mongoStore) Find(ctx context.Context, collection domain.Collection, filter Filter) ([]domain.Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: mongoIDField, Value: 1}}).
		SetProjection(bson.D{{Key: mongoIDField, Value: 0}})

	cursor, err := s.coll(collection).Find(ctx, mongoFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find in %s: %w", collection, err)
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", collection, err)
	}

	records := make([]domain.Record, len(docs))
	for i, doc := range docs {
		records[i] = toRecord(doc)
	}
	return records, nil
}

// Delete removes the records matching the filter
func (s *mongoStore) Delete(ctx context.Context, collection domain.Collection, filter Filter) (int64, error) {
	res, err := s.coll(collection).DeleteMany(ctx, mongoFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w: %w", collection, domain.ErrStoreWrite, err)
	}

	logger.DebugCtx(ctx, "Deleted records",
		zap.String("collection", collection.String()),
		zap.Int64("count", res.DeletedCount))

	return res.DeletedCount, nil
}

// JoinFlatten runs $match, $lookup and $unwind; $unwind drops primary rows without detail rows
func (s *mongoStore) JoinFlatten(ctx context.Context, query JoinQuery) ([]domain.Record, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: mongoFilter(query.PrimaryFilter)}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: query.Detail.String()},
			{Key: "localField", Value: query.LocalKey},
			{Key: "foreignField", Value: query.ForeignKey},
			{Key: "as", Value: mongoDetailField},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + mongoDetailField},
			{Key: "preserveNullAndEmptyArrays", Value: false},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: mongoIDField, Value: 1},
			{Key: mongoDetailField + "." + mongoIDField, Value: 1},
		}}},
	}

	cursor, err := s.coll(query.Primary).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to join %s with %s: %w", query.Primary, query.Detail, err)
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode join of %s: %w", query.Primary, err)
	}

	records := make([]domain.Record, 0, len(docs))
	for _, doc := range docs {
		detail := toRecord(asDocument(doc[mongoDetailField]))
		delete(doc, mongoDetailField)
		records = append(records, flatten(toRecord(doc), detail, query.Project))
	}
	return records, nil
}

// Ping checks the deployment is reachable
func (s *mongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

func mongoFilter(f Filter) bson.D {
	conds := bson.A{}
	for _, field := range sortedKeys(f.Regex) {
		conds = append(conds, bson.M{field: bson.M{"$regex": f.Regex[field]}})
	}
	for _, field := range sortedKeys(f.Equal) {
		conds = append(conds, bson.M{field: f.Equal[field]})
	}
	for _, field := range sortedKeys(f.NotEqual) {
		conds = append(conds, bson.M{field: bson.M{"$ne": f.NotEqual[field]}})
	}
	for _, field := range sortedKeys(f.After) {
		conds = append(conds, bson.M{field: bson.M{"$gt": f.After[field]}})
	}
	for _, field := range sortedKeys(f.Before) {
		conds = append(conds, bson.M{field: bson.M{"$lt": f.Before[field]}})
	}
	if len(conds) == 0 {
		return bson.D{}
	}
	return bson.D{{Key: "$and", Value: conds}}
}

// asDocument accepts both embedded document decodings
func asDocument(v any) bson.M {
	switch t := v.(type) {
	case bson.M:
		return t
	case bson.D:
		m := make(bson.M, len(t))
		for _, e := range t {
			m[e.Key] = e.Value
		}
		return m
	case map[string]any:
		return bson.M(t)
	}
	return bson.M{}
}

// toRecord drops the document id and converts BSON specific scalars to plain values
func toRecord(doc bson.M) domain.Record {
	r := make(domain.Record, len(doc))
	for k, v := range doc {
		if k == mongoIDField {
			continue
		}
		switch t := v.(type) {
		case bson.ObjectID:
			r[k] = t.Hex()
		case bson.DateTime:
			r[k] = t.Time().UTC().Format(time.RFC3339Nano)
		case int32:
			r[k] = int64(t)
		default:
			r[k] = v
		}
	}
	return r
}

// syncCursorKey is the _id of a stream's cursor document
func syncCursorKey(stream string) string {
	return "sync_cursor:" + stream
}

type mongoCursorStore struct {
	coll *mongo.Collection
}

// NewMongoCursorStore creates a cursor store over the syncState collection
func NewMongoCursorStore(db *mongo.Database) CursorStore {
	return &mongoCursorStore{coll: db.Collection(mongoSyncStateColl)}
}

func (s *mongoCursorStore) GetSyncCursor(ctx context.Context, stream string) (time.Time, error) {
	var doc bson.M
	err := s.coll.FindOne(ctx, bson.M{mongoIDField: syncCursorKey(stream)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to get sync cursor: %w", err)
	}

	raw, _ := doc[mongoSyncStateValue].(string)
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse sync cursor: %w", err)
	}
	return at, nil
}

func (s *mongoCursorStore) SetSyncCursor(ctx context.Context, stream string, at time.Time) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{mongoIDField: syncCursorKey(stream)},
		bson.M{"$set": bson.M{mongoSyncStateValue: at.UTC().Format(time.RFC3339Nano), "updated_at": time.Now().UTC()}},
		options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set sync cursor: %w", err)
	}
	return nil
}
