package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aiready/internal/cache"
	"aiready/internal/model"
)

// Seeds the assessment catalog: weighted categories plus their question
// banks. Question texts must match data/scoring_map.json exactly, since
// text is the scoring-map key.
func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DATABASE")
	if dbName == "" {
		dbName = "aiready"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	categoryColl := db.Collection("categories")
	questionColl := db.Collection("questions")

	// Idempotent reseed: wipe catalog collections first
	if _, err := categoryColl.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear categories: %v", err)
	}
	if _, err := questionColl.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear questions: %v", err)
	}

	for _, cat := range catalog {
		if _, err := categoryColl.InsertOne(ctx, cat.category); err != nil {
			log.Fatalf("Failed to insert category %s: %v", cat.category.Name, err)
		}
		for _, q := range cat.questions {
			q.ID = primitive.NewObjectID().Hex()
			q.CategoryID = cat.category.ID
			q.Active = true
			if _, err := questionColl.InsertOne(ctx, q); err != nil {
				log.Fatalf("Failed to insert question %q: %v", q.Text, err)
			}
		}
		log.Printf("Seeded category %q with %d questions", cat.category.Name, len(cat.questions))
	}

	// The API caches the catalog in Redis; drop the stale copy so the
	// next request reads the fresh seed. Non-fatal if Redis is down.
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: strings.TrimPrefix(redisAddr, "redis://")})
	defer rdb.Close()
	if err := cache.NewCatalogCache(rdb).Invalidate(ctx); err != nil {
		log.Printf("Warning: failed to invalidate catalog cache: %v", err)
	}

	log.Println("Catalog seeded")
}

type seedCategory struct {
	category  model.Category
	questions []model.Question
}

// Category weights sum to 1.0 across the active catalog.
var catalog = []seedCategory{
	{
		category: model.Category{ID: "cat_usage", Name: "AI Tool Usage", Weight: 0.25},
		questions: []model.Question{
			{
				Text:    "How often do you use AI assistants in your daily work?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"Never", "A few times a month", "Weekly", "Daily"},
			},
			{
				Text:    "Have you used AI to draft or edit a work document?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"Never", "Once or twice", "Regularly", "It is part of my standard workflow"},
			},
			{
				Text:    "How comfortable are you writing prompts to get useful output?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"Not at all", "Somewhat", "Comfortable", "Very comfortable"},
			},
			{
				Text:    "Which best describes your use of AI coding or analysis tools?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"I haven't tried them", "I've experimented briefly", "I use them for some tasks", "I rely on them for suitable tasks"},
			},
		},
	},
	{
		category: model.Category{ID: "cat_data", Name: "Data Literacy", Weight: 0.20},
		questions: []model.Question{
			{
				Text:    "How confident are you reading a chart or dashboard?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"Not confident", "Somewhat confident", "Confident", "Very confident"},
			},
			{
				Text:    "Can you explain the difference between correlation and causation?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"No", "Roughly", "Yes", "Yes, and I apply it at work"},
			},
			{
				Text:    "How often do you base decisions on data rather than intuition alone?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"Rarely", "Sometimes", "Often", "Almost always"},
			},
			{
				Text:    "Have you cleaned or prepared a dataset for analysis?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"Never", "Once or twice", "Several times", "Regularly"},
			},
		},
	},
	{
		category: model.Category{ID: "cat_automation", Name: "Automation Mindset", Weight: 0.20},
		questions: []model.Question{
			{
				Text:    "When you notice a repetitive task, what do you usually do?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"Keep doing it manually", "Mention it and move on", "Look for a faster way", "Build or request an automation"},
			},
			{
				Text:    "Have you automated any part of your own workflow?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"Never", "Tried once", "A few tasks", "I automate continuously"},
			},
			{
				Text:    "How do you decide whether a task is worth automating?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"I don't think about it", "Gut feeling", "Rough time estimate", "I weigh effort saved against build cost"},
			},
			{
				Text:    "A weekly report takes a colleague hours to build by hand. What is your first thought?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"That's just how reports are", "Sympathy", "There must be a shortcut", "Which steps could a script or AI take over?"},
			},
		},
	},
	{
		category: model.Category{ID: "cat_learning", Name: "Learning & Adaptability", Weight: 0.20},
		questions: []model.Question{
			{
				Text:    "How do you react when a new tool replaces one you know well?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"I resist the change", "I wait until I have to switch", "I learn it when rollout starts", "I try the beta early"},
			},
			{
				Text:    "When did you last learn a new work skill on your own initiative?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"Can't recall", "Over a year ago", "Within the year", "Within the last month"},
			},
			{
				Text:    "How do you keep up with developments in AI?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"I don't", "Occasional headlines", "Newsletters or courses", "Hands-on experimentation plus reading"},
			},
			{
				Text:    "How comfortable are you being a beginner in front of colleagues?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"Very uncomfortable", "Somewhat uncomfortable", "Comfortable", "I enjoy it"},
			},
		},
	},
	{
		category: model.Category{ID: "cat_ethics", Name: "AI Ethics & Safety", Weight: 0.15},
		questions: []model.Question{
			{
				Text:    "Before pasting text into an AI tool, do you consider data sensitivity?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"Never thought about it", "Sometimes", "Usually", "Always, and I know the policy"},
			},
			{
				Text:    "How would you handle an AI output you suspect is wrong?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"Use it anyway", "Ask a colleague", "Verify against a trusted source", "Verify and note the failure mode"},
			},
			{
				Text:    "Do you know which AI tools are approved for company data?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"No", "Vaguely", "Mostly", "Yes, exactly"},
			},
			{
				Text:    "When should AI-generated content be labeled as such?",
				Type:    model.QuestionTypeMultipleChoice,
				Options: []string{"Never", "Only if asked", "In external material", "Whenever the reader could be misled"},
			},
			{
				Text:     "On a scale of 1 to 10, how much do you trust AI output today?",
				Type:     model.QuestionTypeScale,
				ScaleMin: 1,
				ScaleMax: 10,
			},
		},
	},
}
