package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"aiready/internal/model"
)

// CatalogCategory pairs a category with its active questions.
type CatalogCategory struct {
	Category  model.Category   `json:"category"`
	Questions []model.Question `json:"questions"`
}

// Catalog is the cached snapshot of the active question catalog.
type Catalog struct {
	Categories []CatalogCategory `json:"categories"`
}

// CatalogCache caches the active question catalog so sampling does not
// hit Mongo on every request. The catalog is reference data; a short TTL
// bounds staleness after reseeding.
type CatalogCache interface {
	Get(ctx context.Context) (*Catalog, error)
	Set(ctx context.Context, catalog *Catalog) error
	Invalidate(ctx context.Context) error
}

type catalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a new catalog cache
func NewCatalogCache(client *redis.Client) CatalogCache {
	return &catalogCache{
		client: client,
		ttl:    10 * time.Minute,
	}
}

const catalogKey = "assessment:catalog"

func (c *catalogCache) Get(ctx context.Context) (*Catalog, error) {
	data, err := c.client.Get(ctx, catalogKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var catalog Catalog
	if err := json.Unmarshal([]byte(data), &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (c *catalogCache) Set(ctx context.Context, catalog *Catalog) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey, data, c.ttl).Err()
}

func (c *catalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
