package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"aiready/internal/model"
)

// QuestionRepo handles MongoDB operations for the question catalog
type QuestionRepo interface {
	GetByID(ctx context.Context, id string) (*model.Question, error)
	GetActiveByCategory(ctx context.Context, categoryID string) ([]*model.Question, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
}

type questionRepo struct {
	questions  *mongo.Collection
	categories *mongo.Collection
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		questions:  db.Collection("questions"),
		categories: db.Collection("categories"),
	}
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	err := r.questions.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepo) GetActiveByCategory(ctx context.Context, categoryID string) ([]*model.Question, error) {
	cursor, err := r.questions.Find(ctx, bson.M{"categoryId": categoryID, "active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) ListCategories(ctx context.Context) ([]*model.Category, error) {
	cursor, err := r.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []*model.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *questionRepo) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	err := r.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}
