package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/waitlist-site/backend/internal/common/mongostore"
	"github.com/waitlist-site/backend/internal/user/domain"
)

type userDocument struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	CreatedAt time.Time `bson:"createdAt"`
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(mongostore.UsersCollection)}
}

func (r *MongoRepository) Create(ctx context.Context, user domain.User) error {
	start := time.Now()
	_, err := r.coll.InsertOne(ctx, userDocument{
		ID:        string(user.ID),
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
	return mongostore.HandleExecError(err, "create user", mongostore.UsersCollection, start)
}

func (r *MongoRepository) ListNewestFirst(ctx context.Context) ([]domain.User, error) {
	start := time.Now()
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(mongostore.NewestFirst))
	if err != nil {
		return nil, mongostore.HandleExecError(err, "list users", mongostore.UsersCollection, start)
	}
	defer cursor.Close(ctx)

	users := make([]domain.User, 0)
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, domain.User{
			ID:        domain.ID(doc.ID),
			Email:     doc.Email,
			CreatedAt: doc.CreatedAt.UTC(),
		})
	}

	return users, mongostore.HandleExecError(cursor.Err(), "list users", mongostore.UsersCollection, start)
}
