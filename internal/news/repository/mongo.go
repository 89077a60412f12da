package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/waitlist-site/backend/internal/common/mongostore"
	"github.com/waitlist-site/backend/internal/news/domain"
)

type postDocument struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"createdAt"`
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(mongostore.NewsCollection)}
}

func (r *MongoRepository) Create(ctx context.Context, post domain.Post) error {
	start := time.Now()
	_, err := r.coll.InsertOne(ctx, postDocument{
		ID:        string(post.ID),
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	})
	return mongostore.HandleExecError(err, "create news post", mongostore.NewsCollection, start)
}

func (r *MongoRepository) ListNewestFirst(ctx context.Context) ([]domain.Post, error) {
	start := time.Now()
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(mongostore.NewestFirst))
	if err != nil {
		return nil, mongostore.HandleExecError(err, "list news posts", mongostore.NewsCollection, start)
	}
	defer cursor.Close(ctx)

	posts := make([]domain.Post, 0)
	for cursor.Next(ctx) {
		var doc postDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode news post: %w", err)
		}
		posts = append(posts, domain.Post{
			ID:        domain.ID(doc.ID),
			Title:     doc.Title,
			Content:   doc.Content,
			CreatedAt: doc.CreatedAt.UTC(),
		})
	}

	return posts, mongostore.HandleExecError(cursor.Err(), "list news posts", mongostore.NewsCollection, start)
}
