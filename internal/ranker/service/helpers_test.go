package service

import (
	"context"
	"testing"
	"time"

	"gametale-ranker/internal/entity"
	"gametale-ranker/internal/ranker/config"
	"gametale-ranker/internal/ranker/dto"
	"gametale-ranker/pkg/logger"

	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func newTestConfig() *config.Config {
	return &config.Config{
		Scoring: config.Scoring{MomentumScale: 10},
		Refresher: config.Refresher{
			BatchSize:  2,
			BatchPause: "1ms",
		},
	}
}

// fixedNow is the reference instant used across service tests: a Monday in
// September, mid-day UTC.
var fixedNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

// stubYouTubeRepo fakes the video platform API. searchFn may inspect the
// query to vary its results; statsFn resolves stats for requested IDs.
type stubYouTubeRepo struct {
	searchFn func(query string, maxResults int, order string, publishedAfter time.Time) ([]dto.YouTubeSearchItem, error)
	statsFn  func(videoIDs []string) ([]dto.VideoStats, error)
}

func (s *stubYouTubeRepo) Search(_ context.Context, query string, maxResults int, order string, publishedAfter time.Time) ([]dto.YouTubeSearchItem, error) {
	return s.searchFn(query, maxResults, order, publishedAfter)
}

func (s *stubYouTubeRepo) GetVideoStats(_ context.Context, videoIDs []string) ([]dto.VideoStats, error) {
	return s.statsFn(videoIDs)
}

func searchItem(videoID, title, channel string, publishedAt time.Time) dto.YouTubeSearchItem {
	var item dto.YouTubeSearchItem
	item.ID.VideoID = videoID
	item.Snippet.Title = title
	item.Snippet.ChannelTitle = channel
	item.Snippet.PublishedAt = publishedAt
	return item
}

// videoCatalog builds paired search items and stats so the stub's two
// endpoints stay consistent.
type videoCatalog struct {
	items []dto.YouTubeSearchItem
	stats map[string]dto.VideoStats
}

func newVideoCatalog() *videoCatalog {
	return &videoCatalog{stats: make(map[string]dto.VideoStats)}
}

func (v *videoCatalog) add(videoID, title, channel string, views int64, publishedAt time.Time) *videoCatalog {
	v.items = append(v.items, searchItem(videoID, title, channel, publishedAt))
	v.stats[videoID] = dto.VideoStats{
		VideoID:      videoID,
		Title:        title,
		ViewCount:    views,
		PublishedAt:  publishedAt,
		ChannelTitle: channel,
	}
	return v
}

func (v *videoCatalog) repo() *stubYouTubeRepo {
	return &stubYouTubeRepo{
		searchFn: func(string, int, string, time.Time) ([]dto.YouTubeSearchItem, error) {
			return v.items, nil
		},
		statsFn: func(videoIDs []string) ([]dto.VideoStats, error) {
			var out []dto.VideoStats
			for _, id := range videoIDs {
				if s, ok := v.stats[id]; ok {
					out = append(out, s)
				}
			}
			return out, nil
		},
	}
}

func newTestSignalService(repo *stubYouTubeRepo) *youtubeSignalService {
	svc := NewYouTubeSignalService(newTestConfig(), mustLogger(), repo).(*youtubeSignalService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func mustLogger() *logger.Logger {
	log, err := logger.New("error", "console")
	if err != nil {
		panic(err)
	}
	return log
}

// stubOverrideRepo is an in-memory GameOverrideRepository.
type stubOverrideRepo struct {
	overrides map[int64]entity.GameOverride
	upserts   []entity.GameOverride
	getErr    error
	upsertErr error
}

func newStubOverrideRepo(overrides ...entity.GameOverride) *stubOverrideRepo {
	m := make(map[int64]entity.GameOverride, len(overrides))
	for _, o := range overrides {
		m[o.GameID] = o
	}
	return &stubOverrideRepo{overrides: m}
}

func (s *stubOverrideRepo) Get(_ context.Context, gameID int64) (*entity.GameOverride, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if o, ok := s.overrides[gameID]; ok {
		return &o, nil
	}
	return nil, nil
}

func (s *stubOverrideRepo) GetMany(_ context.Context, gameIDs []int64) (map[int64]entity.GameOverride, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	result := make(map[int64]entity.GameOverride)
	for _, id := range gameIDs {
		if o, ok := s.overrides[id]; ok {
			result[id] = o
		}
	}
	return result, nil
}

func (s *stubOverrideRepo) Upsert(_ context.Context, override *entity.GameOverride) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserts = append(s.upserts, *override)
	s.overrides[override.GameID] = *override
	return nil
}

// stubCacheRepo is an in-memory YouTubeCacheRepository.
type stubCacheRepo struct {
	caches    map[int64]entity.YouTubeTrendingCache
	upserts   []entity.YouTubeTrendingCache
	upsertErr error
}

func newStubCacheRepo(caches ...entity.YouTubeTrendingCache) *stubCacheRepo {
	m := make(map[int64]entity.YouTubeTrendingCache, len(caches))
	for _, c := range caches {
		m[c.GameID] = c
	}
	return &stubCacheRepo{caches: m}
}

func (s *stubCacheRepo) Get(_ context.Context, gameID int64) (*entity.YouTubeTrendingCache, error) {
	if c, ok := s.caches[gameID]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *stubCacheRepo) GetMany(_ context.Context, gameIDs []int64) (map[int64]entity.YouTubeTrendingCache, error) {
	result := make(map[int64]entity.YouTubeTrendingCache)
	for _, id := range gameIDs {
		if c, ok := s.caches[id]; ok {
			result[id] = c
		}
	}
	return result, nil
}

func (s *stubCacheRepo) Upsert(_ context.Context, cache *entity.YouTubeTrendingCache) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserts = append(s.upserts, *cache)
	s.caches[cache.GameID] = *cache
	return nil
}

// stubPublisherRepo is an in-memory PriorityPublisherRepository.
type stubPublisherRepo struct {
	publishers []entity.PriorityPublisher
}

func (s *stubPublisherRepo) GetAll(context.Context) ([]entity.PriorityPublisher, error) {
	return s.publishers, nil
}

// stubSignalService is a canned YouTubeSignalService for callers that only
// need fixed verdicts.
type stubSignalService struct {
	gameplayResult  dto.GameplayCheckResult
	trendingResults map[string]*dto.TrendingResult
	checkedNames    []string
	minedNames      []string
}

func (s *stubSignalService) CheckGameplayVideos(_ context.Context, gameName string) dto.GameplayCheckResult {
	s.checkedNames = append(s.checkedNames, gameName)
	return s.gameplayResult
}

func (s *stubSignalService) GetTrendingScore(_ context.Context, gameName string) *dto.TrendingResult {
	s.minedNames = append(s.minedNames, gameName)
	return s.trendingResults[gameName]
}

func (s *stubSignalService) BatchTrendingScores(_ context.Context, games []GameRef) map[int64]*dto.TrendingResult {
	results := make(map[int64]*dto.TrendingResult)
	for _, game := range games {
		s.minedNames = append(s.minedNames, game.Name)
		if r, ok := s.trendingResults[game.Name]; ok && r != nil {
			results[game.ID] = r
		}
	}
	return results
}

func (s *stubSignalService) FindGameVideo(context.Context, string) (string, string) {
	return "", ""
}

// stubCatalogRepo serves canned catalog responses keyed by call order or by
// a match function.
type stubCatalogRepo struct {
	responses []dto.GamesResponse
	queries   []dto.GamesQuery
	err       error
}

func (s *stubCatalogRepo) GetGames(_ context.Context, query dto.GamesQuery) (dto.GamesResponse, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return dto.EmptyGamesResponse(), s.err
	}
	idx := len(s.queries) - 1
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	if idx < 0 {
		return dto.EmptyGamesResponse(), nil
	}
	return s.responses[idx], nil
}

func (s *stubCatalogRepo) GetGameDetails(context.Context, int64) (*dto.Game, error) {
	return nil, nil
}

func (s *stubCatalogRepo) GetGameScreenshots(context.Context, int64) (dto.ScreenshotsResponse, error) {
	return dto.ScreenshotsResponse{}, nil
}

func (s *stubCatalogRepo) GetGameTrailers(context.Context, int64) (dto.TrailersResponse, error) {
	return dto.TrailersResponse{}, nil
}

func (s *stubCatalogRepo) GetGenres(context.Context) (dto.GenresResponse, error) {
	return dto.GenresResponse{}, nil
}

func (s *stubCatalogRepo) GetPlatforms(context.Context) (dto.PlatformsResponse, error) {
	return dto.PlatformsResponse{}, nil
}
