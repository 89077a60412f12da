// Package mongostore holds the MongoDB handle shared by the document
// repositories.
package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/waitlist-site/backend/internal/common/constants"
	"github.com/waitlist-site/backend/internal/common/logger"
)

const (
	UsersCollection  = "users"
	VisitsCollection = "visits"
	NewsCollection   = "news"
)

// NewestFirst orders documents by createdAt, breaking ties on the
// time-ordered _id.
var NewestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect builds the client and pings once. An unreachable server is logged
// and tolerated; the driver reconnects on the next operation.
func Connect(ctx context.Context, log *logger.Logger, uri, database string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetAppName("waitlist-site").
		SetConnectTimeout(constants.MongoConnectTimeout).
		SetServerSelectionTimeout(constants.MongoConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, constants.MongoPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		log.Errorf("mongo connection error: %v", err)
	} else {
		log.Infof("mongo connected: database=%s", database)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Database() *mongo.Database {
	return s.db
}

func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	newestFirst := mongo.IndexModel{Keys: NewestFirst}

	for _, name := range []string{UsersCollection, NewsCollection} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, newestFirst); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", name, err)
		}
	}
	return nil
}
