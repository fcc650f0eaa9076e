package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"aiready/internal/model"
)

// SessionRepo handles MongoDB operations for assessment sessions
type SessionRepo interface {
	Create(ctx context.Context, session *model.Session) (string, error)
	GetByID(ctx context.Context, id string) (*model.Session, error)
	MarkCompleted(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id string) error
}

type sessionRepo struct {
	collection *mongo.Collection
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *mongo.Database) SessionRepo {
	return &sessionRepo{
		collection: db.Collection("assessment_sessions"),
	}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) (string, error) {
	if session.ID == "" {
		session.ID = primitive.NewObjectID().Hex()
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, session); err != nil {
		return "", err
	}
	return session.ID, nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// MarkCompleted writes the completion fields only; _id is never touched.
func (r *sessionRepo) MarkCompleted(ctx context.Context, session *model.Session) error {
	update := bson.M{"$set": bson.M{
		"status":           session.Status,
		"completedAt":      session.CompletedAt,
		"totalScore":       session.TotalScore,
		"maxPossibleScore": session.MaxPossibleScore,
		"percentageScore":  session.PercentageScore,
		"tier":             session.Tier,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": session.ID}, update)
	return err
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
