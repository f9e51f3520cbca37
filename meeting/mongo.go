package meeting

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "github.com/skillsenselab/minutes/errors"
	"github.com/skillsenselab/minutes/logger"
)

// MongoStore implements Store on a MongoDB collection. Partial updates are
// single $set documents, which Mongo applies atomically per call.
type MongoStore struct {
	coll *mongo.Collection
	log  *logger.Logger
}

// NewMongoStore creates a record store on the given collection.
func NewMongoStore(coll *mongo.Collection, log *logger.Logger) *MongoStore {
	return &MongoStore{
		coll: coll,
		log:  log.WithComponent("record-store"),
	}
}

var _ Store = (*MongoStore)(nil)

// Insert creates a new record.
func (s *MongoStore) Insert(ctx context.Context, rec *Record) error {
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return apperrors.Infrastructure("record store", err)
	}
	return nil
}

// Get returns the record with the given id.
func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("meeting", id)
	}
	if err != nil {
		return nil, apperrors.Infrastructure("record store", err)
	}
	return &rec, nil
}

// Update applies the given fields to the record atomically.
func (s *MongoStore) Update(ctx context.Context, id string, fields map[string]any) error {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	res, err := s.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return apperrors.Infrastructure("record store", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("meeting", id)
	}
	return nil
}

// Delete removes the record and returns it.
func (s *MongoStore) Delete(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("meeting", id)
	}
	if err != nil {
		return nil, apperrors.Infrastructure("record store", err)
	}
	s.log.Info("record deleted", logger.Fields(logger.FieldMeetingID, id))
	return &rec, nil
}

// EnsureIndexes creates the indexes the query surface relies on.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "uploadDate", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create meeting indexes: %w", err)
	}
	return nil
}
