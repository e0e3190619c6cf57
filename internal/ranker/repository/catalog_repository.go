package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gametale-ranker/internal/ranker/config"
	"gametale-ranker/internal/ranker/dto"
	"gametale-ranker/pkg/logger"
	redisPkg "gametale-ranker/pkg/redis"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// CatalogRepository defines the interface for the upstream game catalog API.
type CatalogRepository interface {
	GetGames(ctx context.Context, query dto.GamesQuery) (dto.GamesResponse, error)
	GetGameDetails(ctx context.Context, id int64) (*dto.Game, error)
	GetGameScreenshots(ctx context.Context, id int64) (dto.ScreenshotsResponse, error)
	GetGameTrailers(ctx context.Context, id int64) (dto.TrailersResponse, error)
	GetGenres(ctx context.Context) (dto.GenresResponse, error)
	GetPlatforms(ctx context.Context) (dto.PlatformsResponse, error)
}

type catalogRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	redisClient    *redisPkg.Client
	cacheTTL       time.Duration
}

// NewCatalogRepository creates a new catalog API client. Responses are
// cached in Redis for the configured revalidate window so repeated list
// requests within the window do not consume upstream quota. A nil Redis
// client disables caching.
func NewCatalogRepository(cfg *config.Config, log *logger.Logger, redisClient *redisPkg.Client) CatalogRepository {
	secondsPerRequest := time.Minute / time.Duration(max(1, cfg.Catalog.MaxRequestPerMinute))
	cacheTTL := time.Hour
	if ttl, err := time.ParseDuration(cfg.Catalog.CacheTTL); err == nil && ttl > 0 {
		cacheTTL = ttl
	}
	return &catalogRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		redisClient:    redisClient,
		cacheTTL:       cacheTTL,
	}
}

func (r *catalogRepository) GetGames(ctx context.Context, query dto.GamesQuery) (dto.GamesResponse, error) {
	params := url.Values{}
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	if query.Ordering != "" {
		params.Set("ordering", query.Ordering)
	}
	if query.Dates != "" {
		params.Set("dates", query.Dates)
	}
	if query.Genres != "" {
		params.Set("genres", query.Genres)
	}
	if query.Tags != "" {
		params.Set("tags", query.Tags)
	}
	if query.Metacritic != "" {
		params.Set("metacritic", query.Metacritic)
	}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(query.PageSize))
	}

	var response dto.GamesResponse
	if err := r.fetch(ctx, "/games", params, &response); err != nil {
		return dto.EmptyGamesResponse(), err
	}
	return response, nil
}

func (r *catalogRepository) GetGameDetails(ctx context.Context, id int64) (*dto.Game, error) {
	var game dto.Game
	if err := r.fetch(ctx, fmt.Sprintf("/games/%d", id), url.Values{}, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *catalogRepository) GetGameScreenshots(ctx context.Context, id int64) (dto.ScreenshotsResponse, error) {
	var response dto.ScreenshotsResponse
	err := r.fetch(ctx, fmt.Sprintf("/games/%d/screenshots", id), url.Values{}, &response)
	return response, err
}

func (r *catalogRepository) GetGameTrailers(ctx context.Context, id int64) (dto.TrailersResponse, error) {
	var response dto.TrailersResponse
	err := r.fetch(ctx, fmt.Sprintf("/games/%d/movies", id), url.Values{}, &response)
	return response, err
}

func (r *catalogRepository) GetGenres(ctx context.Context) (dto.GenresResponse, error) {
	var response dto.GenresResponse
	err := r.fetch(ctx, "/genres", url.Values{}, &response)
	return response, err
}

func (r *catalogRepository) GetPlatforms(ctx context.Context) (dto.PlatformsResponse, error) {
	var response dto.PlatformsResponse
	err := r.fetch(ctx, "/platforms", url.Values{}, &response)
	return response, err
}

// fetch performs a GET against the catalog API, going through the Redis
// response cache first. The API key is appended after the cache key is
// computed so keys do not embed credentials.
func (r *catalogRepository) fetch(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	cacheKey := "catalog:" + endpoint + "?" + params.Encode()

	if r.redisClient != nil {
		cached, err := r.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			if err := json.Unmarshal([]byte(cached), out); err == nil {
				return nil
			}
		} else if err != redis.Nil {
			r.log.DebugContext(ctx, "Catalog cache read failed", logger.ErrorField(err))
		}
	}

	params.Set("key", r.cfg.Catalog.APIKey)
	reqURL := r.cfg.Catalog.BaseURL + endpoint + "?" + params.Encode()

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("catalog rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create catalog request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch catalog %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog %s status %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read catalog response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Set(ctx, cacheKey, body, r.cacheTTL).Err(); err != nil {
			r.log.DebugContext(ctx, "Catalog cache write failed", logger.ErrorField(err))
		}
	}

	return nil
}
