package service

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"aiready/internal/cache"
	"aiready/internal/model"
	"aiready/internal/repository"
)

// SamplerService selects a randomized, category-balanced question set
// for a new assessment session.
type SamplerService struct {
	questionRepo repository.QuestionRepo
	catalogCache cache.CatalogCache

	// rng is shared across requests and rand.Rand is not safe for
	// concurrent use; mu guards every draw.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSamplerService creates a new sampler service
func NewSamplerService(questionRepo repository.QuestionRepo, catalogCache cache.CatalogCache) *SamplerService {
	return &SamplerService{
		questionRepo: questionRepo,
		catalogCache: catalogCache,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SelectQuestions returns up to limit question projections, drawn evenly
// across categories and shuffled. limit <= 0 picks a random size in
// [15, 20]. Scoring data never appears in the projections.
func (s *SamplerService) SelectQuestions(ctx context.Context, limit int) ([]model.QuestionProjection, error) {
	if limit <= 0 {
		s.mu.Lock()
		limit = 15 + s.rng.Intn(6)
		s.mu.Unlock()
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if len(catalog.Categories) == 0 {
		return []model.QuestionProjection{}, nil
	}

	perCategory := (limit + len(catalog.Categories) - 1) / len(catalog.Categories)

	var picked []model.QuestionProjection
	s.mu.Lock()
	for _, cc := range catalog.Categories {
		take := perCategory
		if take > len(cc.Questions) {
			take = len(cc.Questions)
		}
		for _, idx := range s.rng.Perm(len(cc.Questions))[:take] {
			picked = append(picked, projectQuestion(cc.Questions[idx], cc.Category))
		}
	}
	s.rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	s.mu.Unlock()

	if len(picked) > limit {
		picked = picked[:limit]
	}
	return picked, nil
}

// loadCatalog reads the active catalog through the Redis cache, falling
// back to Mongo on miss or cache error.
func (s *SamplerService) loadCatalog(ctx context.Context) (*cache.Catalog, error) {
	if s.catalogCache != nil {
		catalog, err := s.catalogCache.Get(ctx)
		if err != nil {
			log.Printf("catalog cache read failed, falling back to store: %v", err)
		} else if catalog != nil {
			return catalog, nil
		}
	}

	categories, err := s.questionRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	catalog := &cache.Catalog{}
	for _, category := range categories {
		questions, err := s.questionRepo.GetActiveByCategory(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		if len(questions) == 0 {
			continue
		}
		cc := cache.CatalogCategory{Category: *category}
		for _, q := range questions {
			cc.Questions = append(cc.Questions, *q)
		}
		catalog.Categories = append(catalog.Categories, cc)
	}

	if s.catalogCache != nil {
		if err := s.catalogCache.Set(ctx, catalog); err != nil {
			log.Printf("catalog cache write failed: %v", err)
		}
	}
	return catalog, nil
}

func projectQuestion(q model.Question, category model.Category) model.QuestionProjection {
	return model.QuestionProjection{
		ID:             q.ID,
		CategoryID:     category.ID,
		CategoryName:   category.Name,
		CategoryWeight: category.Weight,
		Prompt:         q.Text,
		Type:           q.Type,
		Options:        q.Options,
		ScaleMin:       q.ScaleMin,
		ScaleMax:       q.ScaleMax,
		Difficulty:     q.Difficulty,
	}
}
