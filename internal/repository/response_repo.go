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

// ResponseRepo handles MongoDB operations for per-question responses.
// (sessionId, questionId) is the logical key; concurrent submissions for
// the same pair race at the storage layer and the last write wins.
type ResponseRepo interface {
	Upsert(ctx context.Context, response *model.Response) error
	GetBySessionID(ctx context.Context, sessionID string) ([]*model.Response, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("assessment_responses"),
	}
}

func (r *responseRepo) Upsert(ctx context.Context, response *model.Response) error {
	if response.AnsweredAt.IsZero() {
		response.AnsweredAt = time.Now()
	}

	filter := bson.M{
		"sessionId":  response.SessionID,
		"questionId": response.QuestionID,
	}
	update := bson.M{
		"$set": bson.M{
			"userAnswer":   response.UserAnswer,
			"pointsEarned": response.PointsEarned,
			"timeSpentSec": response.TimeSpentSec,
			"answeredAt":   response.AnsweredAt,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID().Hex(),
			"sessionId":  response.SessionID,
			"questionId": response.QuestionID,
		},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *responseRepo) GetBySessionID(ctx context.Context, sessionID string) ([]*model.Response, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) DeleteBySessionID(ctx context.Context, sessionID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"sessionId": sessionID})
	return err
}
