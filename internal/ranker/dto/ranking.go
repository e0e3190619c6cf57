package dto

// GamesQuery is the shape of a catalog list request.
type GamesQuery struct {
	Search     string
	Ordering   string
	Dates      string // "YYYY-MM-DD,YYYY-MM-DD"
	Genres     string
	Tags       string
	Metacritic string
	Page       int
	PageSize   int
}

// ScoreComponents breaks a fused score into its per-signal parts, kept for
// diagnostics.
type ScoreComponents struct {
	Recency        int `json:"recency"`
	Momentum       int `json:"momentum"`
	PublisherBoost int `json:"publisher_boost"`
	VideoTrending  int `json:"video_trending"`
	OverrideBoost  int `json:"override_boost"`
}

// ScoredGame pairs a game with its fused score. Ephemeral, computed per
// request.
type ScoredGame struct {
	Game       Game            `json:"game"`
	Components ScoreComponents `json:"components"`
	TotalScore int             `json:"total_score"`
}

// Top10Theme is one entry of the daily rotation table.
type Top10Theme struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Emoji       string `json:"emoji"`
	Genre       string `json:"genre,omitempty"`
	Tag         string `json:"tag,omitempty"`
	Year        int    `json:"year,omitempty"`
	Ordering    string `json:"ordering,omitempty"`
	Description string `json:"description"`
}

// Top10Response is the daily top-10 payload: the theme plus its games.
type Top10Response struct {
	Theme       Top10Theme `json:"theme"`
	Games       []Game     `json:"games"`
	LastUpdated string     `json:"last_updated"`
}

// RankingCategory is one curated ranking list.
type RankingCategory struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Icon        string `json:"icon"`
	Games       []Game `json:"games"`
	LastUpdated string `json:"lastUpdated"`
}

// RefreshSummary reports one trending cache refresh run.
type RefreshSummary struct {
	Checked int                  `json:"checked"`
	Updated int                  `json:"updated"`
	Games   []RefreshSummaryGame `json:"games"`
}

// RefreshSummaryGame is one refreshed row in a RefreshSummary.
type RefreshSummaryGame struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	HasGameplay bool   `json:"hasGameplay"`
}
