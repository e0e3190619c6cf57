package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gametale-ranker/internal/ranker/config"
	"gametale-ranker/internal/ranker/dto"
	"gametale-ranker/pkg/logger"

	"golang.org/x/time/rate"
)

// YouTubeRepository defines the interface for the video platform's search
// and statistics endpoints.
type YouTubeRepository interface {
	Search(ctx context.Context, query string, maxResults int, order string, publishedAfter time.Time) ([]dto.YouTubeSearchItem, error)
	GetVideoStats(ctx context.Context, videoIDs []string) ([]dto.VideoStats, error)
}

type youtubeRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewYouTubeRepository creates a new YouTube Data API client.
func NewYouTubeRepository(cfg *config.Config, log *logger.Logger) YouTubeRepository {
	secondsPerRequest := time.Minute / time.Duration(max(1, cfg.YouTube.MaxRequestPerMinute))
	return &youtubeRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (r *youtubeRepository) Search(ctx context.Context, query string, maxResults int, order string, publishedAfter time.Time) ([]dto.YouTubeSearchItem, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults))
	if order != "" {
		params.Set("order", order)
	}
	if !publishedAfter.IsZero() {
		params.Set("publishedAfter", publishedAfter.UTC().Format(time.RFC3339))
	}
	params.Set("key", r.cfg.YouTube.APIKey)

	body, err := r.get(ctx, "/search", params)
	if err != nil {
		return nil, err
	}

	var response dto.YouTubeSearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decode youtube search: %w", err)
	}

	return response.Items, nil
}

func (r *youtubeRepository) GetVideoStats(ctx context.Context, videoIDs []string) ([]dto.VideoStats, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("part", "statistics,snippet")
	params.Set("id", strings.Join(videoIDs, ","))
	params.Set("key", r.cfg.YouTube.APIKey)

	body, err := r.get(ctx, "/videos", params)
	if err != nil {
		return nil, err
	}

	var response dto.YouTubeVideosResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decode youtube videos: %w", err)
	}

	stats := make([]dto.VideoStats, 0, len(response.Items))
	for _, item := range response.Items {
		// Missing viewCount parses to 0, never an error.
		viewCount, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
		stats = append(stats, dto.VideoStats{
			VideoID:      item.ID,
			Title:        item.Snippet.Title,
			ViewCount:    viewCount,
			PublishedAt:  item.Snippet.PublishedAt,
			ChannelTitle: item.Snippet.ChannelTitle,
		})
	}

	return stats, nil
}

func (r *youtubeRepository) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("youtube rate limiter: %w", err)
	}

	reqURL := r.cfg.YouTube.BaseURL + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create youtube request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch youtube %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.DebugContext(ctx, "YouTube API returned non-OK status",
			logger.StringField("endpoint", endpoint),
			logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("youtube %s status %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read youtube response: %w", err)
	}

	return body, nil
}
