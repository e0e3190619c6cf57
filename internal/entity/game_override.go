package entity

import (
	"time"
)

// ReleaseStatus is the tri-state release override. An unset override defers
// to catalog data; an explicit value always wins over it.
type ReleaseStatus int

const (
	ReleaseStatusUnset ReleaseStatus = iota
	ReleaseStatusReleased
	ReleaseStatusNotReleased
)

// Detection sources recorded in GameOverride.DetectedVia.
const (
	DetectedViaYouTubeGameplay = "youtube_gameplay"
	DetectedViaManual          = "manual"
)

// GameOverride is a manual or heuristic correction to catalog-derived
// release/trending status, keyed by the catalog game ID.
type GameOverride struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	GameID        int64      `gorm:"uniqueIndex;not null" json:"game_id"`
	GameName      string     `gorm:"not null" json:"game_name"`
	IsReleased    *bool      `json:"is_released"`
	ReleaseDate   *time.Time `gorm:"type:date" json:"release_date"`
	IsTrending    bool       `json:"is_trending"`
	TrendingScore int        `json:"trending_score"`
	DetectedVia   *string    `json:"detected_via"`
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (GameOverride) TableName() string {
	return "game_overrides"
}

// ReleaseStatus maps the nullable column to the explicit tri-state so the
// precedence decision can be exhaustive.
func (o *GameOverride) ReleaseStatus() ReleaseStatus {
	if o == nil || o.IsReleased == nil {
		return ReleaseStatusUnset
	}
	if *o.IsReleased {
		return ReleaseStatusReleased
	}
	return ReleaseStatusNotReleased
}
