package entity

import (
	"time"

	"gorm.io/datatypes"
)

// YouTubeTrendingCache is the persisted best-effort signal cache written by
// the video signal miner. Absence of a row means the signal contributes zero
// to scoring, never an error.
type YouTubeTrendingCache struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	GameID            int64          `gorm:"uniqueIndex;not null" json:"game_id"`
	GameName          string         `gorm:"not null" json:"game_name"`
	TotalViews        int64          `json:"total_views"`
	VideoCount        int            `json:"video_count"`
	AvgViewsPerVideo  int64          `json:"avg_views_per_video"`
	TrendingScore     int            `json:"trending_score"`
	HasGameplayVideos bool           `json:"has_gameplay_videos"`
	Videos            datatypes.JSON `gorm:"type:jsonb" json:"videos"`
	LastUpdated       time.Time      `json:"last_updated"`
}

func (YouTubeTrendingCache) TableName() string {
	return "youtube_trending_cache"
}
