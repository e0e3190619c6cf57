package repository

import (
	"context"
	"fmt"
	"time"

	"gametale-ranker/internal/entity"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

const priorityPublishersCacheKey = "priority_publishers"

// PriorityPublisherRepository defines the interface for the publisher
// priority reference table.
type PriorityPublisherRepository interface {
	GetAll(ctx context.Context) ([]entity.PriorityPublisher, error)
}

// NewPriorityPublisherRepository creates a new PriorityPublisherRepository.
// The table changes rarely, so full-table reads are memoized in an
// in-process TTL cache.
func NewPriorityPublisherRepository(db *gorm.DB, ttl time.Duration) PriorityPublisherRepository {
	return &priorityPublisherRepository{
		db:            db,
		inmemoryCache: cache.New(ttl, 2*ttl),
	}
}

type priorityPublisherRepository struct {
	db            *gorm.DB
	inmemoryCache *cache.Cache
}

// GetAll returns all priority publishers ordered by priority score
// descending.
func (r *priorityPublisherRepository) GetAll(ctx context.Context) ([]entity.PriorityPublisher, error) {
	if cached, found := r.inmemoryCache.Get(priorityPublishersCacheKey); found {
		return cached.([]entity.PriorityPublisher), nil
	}

	var publishers []entity.PriorityPublisher
	if err := r.db.WithContext(ctx).Order("priority_score DESC").Find(&publishers).Error; err != nil {
		return nil, fmt.Errorf("get priority publishers: %w", err)
	}

	r.inmemoryCache.Set(priorityPublishersCacheKey, publishers, cache.DefaultExpiration)
	return publishers, nil
}
