package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names owned by this service.
const (
	CollectionRatings    = "rating_submissions"
	CollectionAggregates = "reputation_aggregates"
	CollectionUsers      = "users"
)

// ErrDuplicateKey is returned when a write violates a uniqueness constraint.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database

// Store wraps the Mongo database behind the generic record-store contract
// used by the service layer.
type Store struct {
	db *mongo.Database
}

// extractDBName parses the database name from the URI, defaulting to "tutorhub"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "tutorhub"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "tutorhub"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
// and ensures the uniqueness index backing duplicate-submission detection.
func ConnectMongoDB(uri string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	store := &Store{db: MongoDatabase}
	if err := store.ensureIndexes(ctx); err != nil {
		log.Printf("Warning: failed to ensure indexes: %v", err)
	}
	return store, nil
}

// ensureIndexes creates the compound unique index on rating submissions.
// Submissions may arrive from multiple processes, so this index, not an
// in-process lock, is the idempotency enforcement point.
func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(CollectionRatings).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "subjectId", Value: 1},
			{Key: "raterId", Value: 1},
			{Key: "sessionId", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CreateRecord inserts a document and returns its hex id.
func (s *Store) CreateRecord(ctx context.Context, collection string, data interface{}) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, data)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateKey
		}
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

// GetRecord fetches a single document by hex id into out.
func (s *Store) GetRecord(ctx context.Context, collection, id string, out interface{}) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid record id %q: %w", id, err)
	}

	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch from %s: %w", collection, err)
	}
	return nil
}

// QueryByField decodes all documents matching field == value into out,
// sorted ascending by creation time.
func (s *Store) QueryByField(ctx context.Context, collection, field string, value interface{}, out interface{}) error {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{field: value}, findOptions)
	if err != nil {
		return fmt.Errorf("failed to query %s by %s: %w", collection, field, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s query results: %w", collection, err)
	}
	return nil
}

// UpsertByField replaces-or-creates the single document keyed by field == value.
func (s *Store) UpsertByField(ctx context.Context, collection, field string, value, data interface{}) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{field: value}, data, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert into %s: %w", collection, err)
	}
	return nil
}

// UpdateRecord applies a $set/$inc style patch to the document matching
// field == value.
func (s *Store) UpdateRecord(ctx context.Context, collection, field string, value interface{}, patch interface{}) error {
	_, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{field: value}, patch)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", collection, err)
	}
	return nil
}

// FindOneByFields fetches the first document matching all field/value pairs.
func (s *Store) FindOneByFields(ctx context.Context, collection string, filter map[string]interface{}, out interface{}) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.M(filter)).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch from %s: %w", collection, err)
	}
	return nil
}
