package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aiready/internal/model"
)

// HistoryRepo handles MongoDB operations for the append-only assessment
// history ledger. Entries are never updated or deleted.
type HistoryRepo interface {
	Insert(ctx context.Context, entry *model.HistoryEntry) error
	GetLatestByUser(ctx context.Context, userID string) (*model.HistoryEntry, error)
	GetByUser(ctx context.Context, userID string, limit int) ([]*model.HistoryEntry, error)
}

type historyRepo struct {
	collection *mongo.Collection
}

// NewHistoryRepo creates a new history repository
func NewHistoryRepo(db *mongo.Database) HistoryRepo {
	return &historyRepo{
		collection: db.Collection("assessment_history"),
	}
}

func (r *historyRepo) Insert(ctx context.Context, entry *model.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = primitive.NewObjectID().Hex()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *historyRepo) GetLatestByUser(ctx context.Context, userID string) (*model.HistoryEntry, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var entry model.HistoryEntry
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *historyRepo) GetByUser(ctx context.Context, userID string, limit int) ([]*model.HistoryEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.HistoryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
