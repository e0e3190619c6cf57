package repository

import (
	"context"
	"errors"
	"fmt"

	"gametale-ranker/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GameOverrideRepository defines the interface for the release/trending
// override store.
type GameOverrideRepository interface {
	Get(ctx context.Context, gameID int64) (*entity.GameOverride, error)
	GetMany(ctx context.Context, gameIDs []int64) (map[int64]entity.GameOverride, error)
	Upsert(ctx context.Context, override *entity.GameOverride) error
}

// NewGameOverrideRepository creates a new instance of GameOverrideRepository.
func NewGameOverrideRepository(db *gorm.DB) GameOverrideRepository {
	return &gameOverrideRepository{
		db: db,
	}
}

type gameOverrideRepository struct {
	db *gorm.DB
}

// Get returns the override for a single game, or nil when none exists.
func (r *gameOverrideRepository) Get(ctx context.Context, gameID int64) (*entity.GameOverride, error) {
	var override entity.GameOverride
	err := r.db.WithContext(ctx).Where("game_id = ?", gameID).First(&override).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get game override: %w", err)
	}
	return &override, nil
}

// GetMany returns the overrides for a batch of games keyed by game ID.
// Games without an override are simply absent from the map.
func (r *gameOverrideRepository) GetMany(ctx context.Context, gameIDs []int64) (map[int64]entity.GameOverride, error) {
	result := make(map[int64]entity.GameOverride, len(gameIDs))
	if len(gameIDs) == 0 {
		return result, nil
	}

	var overrides []entity.GameOverride
	if err := r.db.WithContext(ctx).Where("game_id IN ?", gameIDs).Find(&overrides).Error; err != nil {
		return nil, fmt.Errorf("get game overrides: %w", err)
	}

	for _, override := range overrides {
		result[override.GameID] = override
	}
	return result, nil
}

// Upsert writes an override keyed by game ID. Last write wins; the override
// is idempotently re-derivable from the heuristic, so no locking is needed.
func (r *gameOverrideRepository) Upsert(ctx context.Context, override *entity.GameOverride) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"game_name", "is_released", "release_date", "is_trending",
			"trending_score", "detected_via", "notes", "updated_at",
		}),
	}).Create(override).Error
}
