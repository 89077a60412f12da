package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/waitlist-site/backend/internal/common/constants"
	"github.com/waitlist-site/backend/internal/common/mongostore"
	"github.com/waitlist-site/backend/internal/visit/domain"
)

type counterDocument struct {
	ID    string `bson:"_id"`
	Count int64  `bson:"count"`
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(mongostore.VisitsCollection)}
}

func (r *MongoRepository) Increment(ctx context.Context) (int64, error) {
	start := time.Now()

	filter := bson.M{"_id": constants.VisitCounterID}
	update := bson.M{"$inc": bson.M{"count": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	// Two upserts racing to create the document: the loser sees a duplicate
	// key and the document now exists, so the retry is a plain increment.
	if mongo.IsDuplicateKeyError(err) {
		err = r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	}
	if err := mongostore.HandleExecError(err, "increment visit counter", mongostore.VisitsCollection, start); err != nil {
		return 0, err
	}
	return doc.Count, nil
}

func (r *MongoRepository) Get(ctx context.Context) (domain.Counter, error) {
	start := time.Now()

	var doc counterDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": constants.VisitCounterID}).Decode(&doc)
	if err := mongostore.HandleQueryError(err, ErrCounterNotFound, "get visit counter", mongostore.VisitsCollection, start); err != nil {
		return domain.Counter{}, err
	}
	return domain.Counter{ID: doc.ID, Count: doc.Count}, nil
}
