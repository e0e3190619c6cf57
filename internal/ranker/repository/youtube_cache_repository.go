package repository

import (
	"context"
	"errors"
	"fmt"

	"gametale-ranker/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// YouTubeCacheRepository defines the interface for the persisted video
// signal cache.
type YouTubeCacheRepository interface {
	Get(ctx context.Context, gameID int64) (*entity.YouTubeTrendingCache, error)
	GetMany(ctx context.Context, gameIDs []int64) (map[int64]entity.YouTubeTrendingCache, error)
	Upsert(ctx context.Context, cache *entity.YouTubeTrendingCache) error
}

// NewYouTubeCacheRepository creates a new instance of YouTubeCacheRepository.
func NewYouTubeCacheRepository(db *gorm.DB) YouTubeCacheRepository {
	return &youtubeCacheRepository{
		db: db,
	}
}

type youtubeCacheRepository struct {
	db *gorm.DB
}

func (r *youtubeCacheRepository) Get(ctx context.Context, gameID int64) (*entity.YouTubeTrendingCache, error) {
	var cache entity.YouTubeTrendingCache
	err := r.db.WithContext(ctx).Where("game_id = ?", gameID).First(&cache).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get youtube trending cache: %w", err)
	}
	return &cache, nil
}

func (r *youtubeCacheRepository) GetMany(ctx context.Context, gameIDs []int64) (map[int64]entity.YouTubeTrendingCache, error) {
	result := make(map[int64]entity.YouTubeTrendingCache, len(gameIDs))
	if len(gameIDs) == 0 {
		return result, nil
	}

	var caches []entity.YouTubeTrendingCache
	if err := r.db.WithContext(ctx).Where("game_id IN ?", gameIDs).Find(&caches).Error; err != nil {
		return nil, fmt.Errorf("get youtube trending caches: %w", err)
	}

	for _, cache := range caches {
		result[cache.GameID] = cache
	}
	return result, nil
}

func (r *youtubeCacheRepository) Upsert(ctx context.Context, cache *entity.YouTubeTrendingCache) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"game_name", "total_views", "video_count", "avg_views_per_video",
			"trending_score", "has_gameplay_videos", "videos", "last_updated",
		}),
	}).Create(cache).Error
}
