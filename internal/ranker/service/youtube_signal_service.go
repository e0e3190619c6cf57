package service

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"
	"time"

	"gametale-ranker/internal/ranker/config"
	"gametale-ranker/internal/ranker/dto"
	"gametale-ranker/internal/ranker/repository"
	"gametale-ranker/pkg/logger"
)

const (
	trailerMatchThreshold = 0.5
	// Gameplay titles are noisier than trailer titles, so the gameplay
	// aggregation accepts a looser match.
	gameplayMatchThreshold = 0.4

	gameplaySearchWindowDays = 30
	gameplaySurvivalDays     = 14
	veryRecentDays           = 7
)

// preReleaseMarkers disqualify a video from counting as evidence of an
// actual release. The list encodes tuned empirical behavior; do not trim it.
var preReleaseMarkers = []string{
	"preview", "demo", "beta", "alpha", "early access", "hands-on",
	"first look", "sneak peek", "announcement", "reveal", "leaked",
	"before release", "upcoming",
}

// confirmedReleaseMarkers indicate footage that only exists for a shipped
// game.
var confirmedReleaseMarkers = []string{"part 1", "full", "complete", "100%", "ending"}

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)

// GameRef identifies a game for batch mining.
type GameRef struct {
	ID   int64
	Name string
}

// YouTubeSignalService mines aggregate signals (view totals, video counts,
// gameplay verdicts, trending scores) from the video platform's search API.
// It never returns an error to its callers: upstream failures degrade to
// empty or low-confidence signals.
type YouTubeSignalService interface {
	CheckGameplayVideos(ctx context.Context, gameName string) dto.GameplayCheckResult
	GetTrendingScore(ctx context.Context, gameName string) *dto.TrendingResult
	BatchTrendingScores(ctx context.Context, games []GameRef) map[int64]*dto.TrendingResult
	FindGameVideo(ctx context.Context, gameName string) (videoID, videoType string)
}

type youtubeSignalService struct {
	cfg         *config.Config
	log         *logger.Logger
	youtubeRepo repository.YouTubeRepository
	batchSize   int
	batchPause  time.Duration
	now         func() time.Time
}

// NewYouTubeSignalService creates a new video signal miner.
func NewYouTubeSignalService(cfg *config.Config, log *logger.Logger, youtubeRepo repository.YouTubeRepository) YouTubeSignalService {
	batchPause := 300 * time.Millisecond
	if pause, err := time.ParseDuration(cfg.Refresher.BatchPause); err == nil && pause > 0 {
		batchPause = pause
	}
	batchSize := cfg.Refresher.BatchSize
	if batchSize <= 0 {
		batchSize = 3
	}
	return &youtubeSignalService{
		cfg:         cfg,
		log:         log,
		youtubeRepo: youtubeRepo,
		batchSize:   batchSize,
		batchPause:  batchPause,
		now:         time.Now,
	}
}

// normalizeGameName lowercases the name, strips punctuation, and keeps
// tokens longer than two characters.
func normalizeGameName(gameName string) []string {
	normalized := nonAlnum.ReplaceAllString(strings.ToLower(gameName), "")
	var words []string
	for _, word := range strings.Fields(normalized) {
		if len(word) > 2 {
			words = append(words, word)
		}
	}
	return words
}

// isRelevantTitle reports whether enough of the game name's tokens appear in
// the video title.
func isRelevantTitle(title string, gameNameWords []string, threshold float64) bool {
	if len(gameNameWords) == 0 {
		return false
	}
	titleNormalized := nonAlnum.ReplaceAllString(strings.ToLower(title), "")
	matching := 0
	for _, word := range gameNameWords {
		if strings.Contains(titleNormalized, word) {
			matching++
		}
	}
	return float64(matching)/float64(len(gameNameWords)) >= threshold
}

// searchWithStats runs one search query, keeps only relevant results, and
// resolves their view counts. Any failure degrades to an empty slice so a
// single bad query never poisons the aggregate.
func (s *youtubeSignalService) searchWithStats(ctx context.Context, query, gameName string, maxResults int) []dto.VideoStats {
	publishedAfter := s.now().AddDate(0, 0, -gameplaySearchWindowDays)

	items, err := s.youtubeRepo.Search(ctx, query, maxResults, "viewCount", publishedAfter)
	if err != nil {
		s.log.DebugContext(ctx, "YouTube search failed", logger.StringField("query", query), logger.ErrorField(err))
		return nil
	}

	gameNameWords := normalizeGameName(gameName)
	var videoIDs []string
	for _, item := range items {
		if item.ID.VideoID == "" {
			continue
		}
		if isRelevantTitle(item.Snippet.Title, gameNameWords, gameplayMatchThreshold) {
			videoIDs = append(videoIDs, item.ID.VideoID)
		}
	}
	if len(videoIDs) == 0 {
		return nil
	}

	stats, err := s.youtubeRepo.GetVideoStats(ctx, videoIDs)
	if err != nil {
		s.log.DebugContext(ctx, "YouTube stats lookup failed", logger.StringField("query", query), logger.ErrorField(err))
		return nil
	}
	return stats
}

// CheckGameplayVideos decides whether gameplay footage on the platform
// indicates the game has actually shipped.
func (s *youtubeSignalService) CheckGameplayVideos(ctx context.Context, gameName string) dto.GameplayCheckResult {
	gameplayQueries := []string{
		fmt.Sprintf("%s full gameplay", gameName),
		fmt.Sprintf("%s let's play part 1", gameName),
		fmt.Sprintf("%s walkthrough part 1", gameName),
		fmt.Sprintf("%s review gameplay", gameName),
	}

	var (
		totalVideoCount        int
		totalViews             int64
		confirmedReleaseVideos int
		seenIDs                = make(map[string]struct{})
		uniqueChannels         = make(map[string]struct{})
	)

	fourteenDaysAgo := s.now().AddDate(0, 0, -gameplaySurvivalDays)

	for _, query := range gameplayQueries {
		videos := s.searchWithStats(ctx, query, gameName, 8)
		for _, video := range videos {
			if _, seen := seenIDs[video.VideoID]; seen {
				continue
			}
			seenIDs[video.VideoID] = struct{}{}

			titleLower := strings.ToLower(video.Title)
			if containsAny(titleLower, preReleaseMarkers) {
				continue
			}

			if video.PublishedAt.Before(fourteenDaysAgo) {
				continue
			}

			totalVideoCount++
			totalViews += video.ViewCount
			uniqueChannels[video.ChannelTitle] = struct{}{}

			if containsAny(titleLower, confirmedReleaseMarkers) {
				confirmedReleaseVideos++
			}
		}
	}

	hasGameplay := (totalVideoCount >= 5 && len(uniqueChannels) >= 3 && totalViews >= 50000) ||
		(confirmedReleaseVideos >= 2 && totalViews >= 20000)

	confidence := dto.ConfidenceLow
	if hasGameplay && confirmedReleaseVideos >= 3 && len(uniqueChannels) >= 5 {
		confidence = dto.ConfidenceHigh
	} else if hasGameplay {
		confidence = dto.ConfidenceMedium
	}

	return dto.GameplayCheckResult{
		HasGameplay: hasGameplay,
		VideoCount:  totalVideoCount,
		RecentViews: totalViews,
		Confidence:  confidence,
	}
}

// GetTrendingScore aggregates recent video activity into a single trending
// score. Returns nil when no videos were found at all, which callers must
// distinguish from a zero score.
func (s *youtubeSignalService) GetTrendingScore(ctx context.Context, gameName string) *dto.TrendingResult {
	searchQueries := []string{
		fmt.Sprintf("%s gameplay %d", gameName, s.now().Year()),
		fmt.Sprintf("%s review", gameName),
		fmt.Sprintf("%s trailer", gameName),
	}

	var allVideos []dto.VideoStats
	seenIDs := make(map[string]struct{})

	for _, query := range searchQueries {
		videos := s.searchWithStats(ctx, query, gameName, 10)
		for _, video := range videos {
			if _, seen := seenIDs[video.VideoID]; seen {
				continue
			}
			seenIDs[video.VideoID] = struct{}{}
			allVideos = append(allVideos, video)
		}
	}

	if len(allVideos) == 0 {
		return nil
	}

	fourteenDaysAgo := s.now().AddDate(0, 0, -gameplaySurvivalDays)
	sevenDaysAgo := s.now().AddDate(0, 0, -veryRecentDays)

	var recentVideos, veryRecentVideos []dto.VideoStats
	for _, video := range allVideos {
		if !video.PublishedAt.Before(fourteenDaysAgo) {
			recentVideos = append(recentVideos, video)
			if !video.PublishedAt.Before(sevenDaysAgo) {
				veryRecentVideos = append(veryRecentVideos, video)
			}
		}
	}

	gameplayCheck := s.CheckGameplayVideos(ctx, gameName)

	var totalViews int64
	for _, video := range recentVideos {
		totalViews += video.ViewCount
	}
	var avgViews int64
	if len(recentVideos) > 0 {
		avgViews = totalViews / int64(len(recentVideos))
	}

	viewScore := 0.0
	if totalViews > 0 {
		viewScore = math.Log10(float64(totalViews)) * 100
	}
	volumeScore := math.Min(float64(len(recentVideos)*20), 200)
	recencyBonus := float64(len(veryRecentVideos) * 50)
	trendingScore := int(math.Floor(viewScore + volumeScore + recencyBonus))

	sample := recentVideos
	if len(sample) > 5 {
		sample = sample[:5]
	}

	return &dto.TrendingResult{
		GameName:          gameName,
		TotalViews:        totalViews,
		VideoCount:        len(recentVideos),
		RecentVideoCount:  len(veryRecentVideos),
		AvgViewsPerVideo:  avgViews,
		TrendingScore:     trendingScore,
		HasGameplayVideos: gameplayCheck.HasGameplay,
		Videos:            sample,
	}
}

// BatchTrendingScores mines trending scores for a set of games in small
// concurrent batches with a fixed pause in between, to bound upstream quota
// consumption. Games with no signal are absent from the result.
func (s *youtubeSignalService) BatchTrendingScores(ctx context.Context, games []GameRef) map[int64]*dto.TrendingResult {
	results := make(map[int64]*dto.TrendingResult)
	var mu sync.Mutex

	for i := 0; i < len(games); i += s.batchSize {
		batch := games[i:min(i+s.batchSize, len(games))]

		var wg sync.WaitGroup
		for _, game := range batch {
			wg.Add(1)
			go func(game GameRef) {
				defer wg.Done()
				if result := s.GetTrendingScore(ctx, game.Name); result != nil {
					mu.Lock()
					results[game.ID] = result
					mu.Unlock()
				}
			}(game)
		}
		wg.Wait()

		if i+s.batchSize < len(games) {
			select {
			case <-ctx.Done():
				return results
			case <-time.After(s.batchPause):
			}
		}
	}

	return results
}

// FindGameVideo searches for a trailer first and falls back to gameplay
// footage. Returns empty strings when nothing relevant is found.
func (s *youtubeSignalService) FindGameVideo(ctx context.Context, gameName string) (string, string) {
	if videoID := s.searchTrailer(ctx, gameName); videoID != "" {
		return videoID, "trailer"
	}

	gameplayQueries := []string{
		fmt.Sprintf("%s gameplay", gameName),
		fmt.Sprintf("%s gameplay %d", gameName, s.now().Year()),
	}
	gameNameWords := normalizeGameName(gameName)

	for _, query := range gameplayQueries {
		items, err := s.youtubeRepo.Search(ctx, query, 5, "", time.Time{})
		if err != nil {
			continue
		}
		for _, item := range items {
			if item.ID.VideoID == "" {
				continue
			}
			if isRelevantTitle(item.Snippet.Title, gameNameWords, trailerMatchThreshold) {
				return item.ID.VideoID, "gameplay"
			}
		}
	}

	return "", ""
}

func (s *youtubeSignalService) searchTrailer(ctx context.Context, gameName string) string {
	searchQueries := []string{
		fmt.Sprintf("%s official trailer", gameName),
		fmt.Sprintf("%s gameplay trailer", gameName),
		fmt.Sprintf("%s game trailer", gameName),
		fmt.Sprintf("%s trailer", gameName),
	}
	gameNameWords := normalizeGameName(gameName)

	for _, query := range searchQueries {
		items, err := s.youtubeRepo.Search(ctx, query, 5, "", time.Time{})
		if err != nil {
			continue
		}
		for _, item := range items {
			if item.ID.VideoID == "" {
				continue
			}
			if isRelevantTitle(item.Snippet.Title, gameNameWords, trailerMatchThreshold) {
				return item.ID.VideoID
			}
		}
	}

	return ""
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
