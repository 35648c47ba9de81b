package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clubhouse/board/internal/core/domain"
	"github.com/clubhouse/board/internal/core/ports"
)

const collectionMessages = "messages"

// MessageRepository implements ports.MessageStore using MongoDB.
type MessageRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

var _ ports.MessageStore = (*MessageRepository)(nil)

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{db: db, col: db.Collection(collectionMessages)}
}

type mongoMessage struct {
	ID        int64     `bson:"_id"`
	Title     string    `bson:"title"`
	Text      string    `bson:"text"`
	Timestamp time.Time `bson:"timestamp"`
	AuthorID  int64     `bson:"author_id"`
}

// authoredDoc is the shape produced by the author $lookup.
type authoredDoc struct {
	ID        int64      `bson:"_id"`
	Title     string     `bson:"title"`
	Text      string     `bson:"text"`
	Timestamp time.Time  `bson:"timestamp"`
	AuthorID  int64      `bson:"author_id"`
	Author    *mongoUser `bson:"author,omitempty"`
}

func (d *authoredDoc) toDomain() *domain.AuthoredMessage {
	am := &domain.AuthoredMessage{
		Message: domain.Message{
			ID:        d.ID,
			Title:     d.Title,
			Text:      d.Text,
			Timestamp: d.Timestamp.UTC(),
			AuthorID:  d.AuthorID,
		},
	}
	if d.Author != nil {
		am.AuthorFirstName = d.Author.FirstName
		am.AuthorLastName = d.Author.LastName
		am.AuthorUsername = d.Author.Username
	}
	return am
}

// Create inserts a new message document.
func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionMessages)
	if err != nil {
		return nil, err
	}

	doc := mongoMessage{
		ID:        id,
		Title:     msg.Title,
		Text:      msg.Text,
		Timestamp: msg.Timestamp.UTC(),
		AuthorID:  msg.AuthorID,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	out := *msg
	out.ID = id
	return &out, nil
}

// GetByID returns one message joined with its author.
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.AuthoredMessage, error) {
	docs, err := r.aggregate(ctx, bson.D{{Key: "$match", Value: bson.M{"_id": id}}})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrMessageNotFound
	}
	return docs[0], nil
}

// List returns all messages newest first, joined with their authors.
func (r *MessageRepository) List(ctx context.Context) ([]*domain.AuthoredMessage, error) {
	return r.aggregate(ctx, bson.D{{Key: "$sort", Value: bson.D{
		{Key: "timestamp", Value: -1},
		{Key: "_id", Value: -1},
	}}})
}

func (r *MessageRepository) aggregate(ctx context.Context, first bson.D) ([]*domain.AuthoredMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		first,
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "author_id",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$author",
			"preserveNullAndEmptyArrays": true,
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate messages: %w", err)
	}

	var docs []authoredDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("aggregate messages: decode: %w", err)
	}

	out := make([]*domain.AuthoredMessage, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

// Delete removes a message by id.
func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}

// EnsureIndexes creates the listing and author indexes on the messages collection.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
