package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/venntower/pkg/errors"
)

// DefaultDatabase is the database used when none is configured.
const DefaultDatabase = "venntower"

const runsCollection = "runs"

// MongoStore keeps runs in a MongoDB collection. Expired documents are
// removed by a TTL index on expires_at.
type MongoStore struct {
	client *mongo.Client
	runs   *mongo.Collection
}

// NewMongoStore connects to uri, verifies the connection and ensures the
// collection indexes exist.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "ping mongo")
	}

	s := &MongoStore{
		client: client,
		runs:   client.Database(database).Collection(runsCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.runs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "hash", Value: 1}},
		},
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeBackend, err, "create run indexes")
	}
	return nil
}

// Get finds the run with id. A run past its expiry that the TTL monitor
// has not removed yet is reported as missing.
func (s *MongoStore) Get(ctx context.Context, id string) (*Run, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	var run Run
	err := s.runs.FindOne(ctx, bson.M{"_id": id}).Decode(&run)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, notFound(id)
		}
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "find run %s", id)
	}
	// The TTL monitor runs about once a minute.
	if run.IsExpired() {
		return nil, notFound(id)
	}
	return &run, nil
}

// Put upserts run by ID.
func (s *MongoStore) Put(ctx context.Context, run *Run) error {
	if err := ValidateID(run.ID); err != nil {
		return err
	}
	_, err := s.runs.ReplaceOne(ctx, bson.M{"_id": run.ID}, run, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeBackend, err, "store run %s", run.ID)
	}
	return nil
}

// Delete removes the run with id.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.runs.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeBackend, err, "delete run %s", id)
	}
	return nil
}

// List returns up to limit live runs, newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	filter := bson.M{"expires_at": bson.M{"$gt": time.Now().UTC()}}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := s.runs.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "list runs")
	}
	var runs []*Run
	if err := cur.All(ctx, &runs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "decode runs")
	}
	return runs, nil
}

// Cleanup deletes expired runs without waiting for the TTL monitor.
func (s *MongoStore) Cleanup(ctx context.Context) (int, error) {
	res, err := s.runs.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now().UTC()}})
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeBackend, err, "remove expired runs")
	}
	return int(res.DeletedCount), nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
