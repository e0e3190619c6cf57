package dto

import "time"

// Raw YouTube Data API shapes.

// YouTubeSearchItem is one result of the search endpoint.
type YouTubeSearchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet YouTubeSnippet `json:"snippet"`
}

// YouTubeSnippet carries the metadata shared by search and videos responses.
type YouTubeSnippet struct {
	Title        string    `json:"title"`
	PublishedAt  time.Time `json:"publishedAt"`
	ChannelTitle string    `json:"channelTitle"`
}

// YouTubeSearchResponse is the search endpoint envelope.
type YouTubeSearchResponse struct {
	Items []YouTubeSearchItem `json:"items"`
}

// YouTubeVideoItem is one result of the videos (statistics) endpoint.
type YouTubeVideoItem struct {
	ID         string         `json:"id"`
	Snippet    YouTubeSnippet `json:"snippet"`
	Statistics struct {
		ViewCount string `json:"viewCount"`
	} `json:"statistics"`
}

// YouTubeVideosResponse is the videos endpoint envelope.
type YouTubeVideosResponse struct {
	Items []YouTubeVideoItem `json:"items"`
}

// Derived signal shapes.

// VideoStats is a normalized video record with resolved view counts.
type VideoStats struct {
	VideoID      string    `json:"videoId"`
	Title        string    `json:"title"`
	ViewCount    int64     `json:"viewCount"`
	PublishedAt  time.Time `json:"publishedAt"`
	ChannelTitle string    `json:"channelTitle"`
}

// Confidence levels for the gameplay verdict.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// GameplayCheckResult is the verdict of the gameplay detection heuristic.
type GameplayCheckResult struct {
	HasGameplay bool   `json:"hasGameplay"`
	VideoCount  int    `json:"videoCount"`
	RecentViews int64  `json:"recentViews"`
	Confidence  string `json:"confidence"`
}

// TrendingResult aggregates recent video activity for one game. A nil
// TrendingResult means no videos were found at all, as opposed to a zero
// score.
type TrendingResult struct {
	GameName          string       `json:"gameName"`
	TotalViews        int64        `json:"totalViews"`
	VideoCount        int          `json:"videoCount"`
	RecentVideoCount  int          `json:"recentVideoCount"`
	AvgViewsPerVideo  int64        `json:"avgViewsPerVideo"`
	TrendingScore     int          `json:"trendingScore"`
	HasGameplayVideos bool         `json:"hasGameplayVideos"`
	Videos            []VideoStats `json:"videos"`
}
