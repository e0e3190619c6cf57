package service

import (
	"context"
	"encoding/json"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"gametale-ranker/internal/entity"
	"gametale-ranker/internal/ranker/config"
	"gametale-ranker/internal/ranker/dto"
	"gametale-ranker/internal/ranker/repository"
	"gametale-ranker/pkg/logger"
	"gametale-ranker/pkg/utils"

	"gorm.io/datatypes"
)

// Score fusion weights. Recency buckets step down with release age; the
// trending boost is what a manual is_trending override is worth.
const (
	recencyScore30Days      = 400
	recencyScore60Days      = 250
	recencyScore90Days      = 100
	recencyScoreCurrentYear = 50
	momentumScoreCap        = 300
	trendingBoost           = 500
)

// pinnedShareOfPage is the fraction of a trending page held by raw score
// order; the rest rotates weekly via seeded shuffle.
const pinnedShareOfPage = 0.4

// RankingService fuses catalog recency, ratings momentum, cached video
// trending, publisher priority, and manual overrides into the ranked
// surfaces. Methods degrade to neutral values instead of failing: an empty
// list or a nil pick, never an error to the caller.
type RankingService interface {
	GetTrendingGames(ctx context.Context, page, pageSize int) dto.GamesResponse
	GetUpcomingGames(ctx context.Context, page, pageSize int) dto.GamesResponse
	GetTodaysPick(ctx context.Context) *dto.Game
	GetAllTimeGreats(ctx context.Context) dto.GamesResponse
}

type rankingService struct {
	cfg            *config.Config
	log            *logger.Logger
	catalogRepo    repository.CatalogRepository
	overrideRepo   repository.GameOverrideRepository
	cacheRepo      repository.YouTubeCacheRepository
	publisherRepo  repository.PriorityPublisherRepository
	signalService  YouTubeSignalService
	releaseService ReleaseService
	now            func() time.Time
}

// NewRankingService creates a new score fusion service.
func NewRankingService(
	cfg *config.Config,
	log *logger.Logger,
	catalogRepo repository.CatalogRepository,
	overrideRepo repository.GameOverrideRepository,
	cacheRepo repository.YouTubeCacheRepository,
	publisherRepo repository.PriorityPublisherRepository,
	signalService YouTubeSignalService,
	releaseService ReleaseService,
) RankingService {
	return &rankingService{
		cfg:            cfg,
		log:            log,
		catalogRepo:    catalogRepo,
		overrideRepo:   overrideRepo,
		cacheRepo:      cacheRepo,
		publisherRepo:  publisherRepo,
		signalService:  signalService,
		releaseService: releaseService,
		now:            time.Now,
	}
}

// overrideBoost maps an override row to its score contribution: a manual
// is_trending flag dominates, otherwise the row's own trending_score.
func overrideBoost(override *entity.GameOverride) int {
	if override == nil {
		return 0
	}
	if override.IsTrending {
		return trendingBoost
	}
	return override.TrendingScore
}

// filterReleasedForScoring is the release gate used inside scoring paths.
// Unlike ReleaseService.FilterReleasedGames it applies no ratings floor:
// the momentum component already de-weights empty entries, and the caller
// has the overrides map in hand for the boost computation anyway.
func filterReleasedForScoring(games []dto.Game, overrides map[int64]entity.GameOverride, todayStr string) []dto.Game {
	results := make([]dto.Game, 0, len(games))
	for _, game := range games {
		var override *entity.GameOverride
		if o, ok := overrides[game.ID]; ok {
			override = &o
		}

		switch override.ReleaseStatus() {
		case entity.ReleaseStatusReleased:
			results = append(results, game)
			continue
		case entity.ReleaseStatusNotReleased:
			continue
		}
		if override != nil && override.ReleaseDate != nil && utils.DateString(*override.ReleaseDate) <= todayStr {
			results = append(results, game)
			continue
		}

		if game.TBA || game.Released == "" || game.Released > todayStr {
			continue
		}
		results = append(results, game)
	}
	return results
}

// GetTrendingGames returns one page of the trending surface. The top 40 %
// of the page is pinned to raw score order; the next pageSize×2 candidates
// rotate with a week-stable seeded shuffle so the page changes weekly, not
// per request.
func (s *rankingService) GetTrendingGames(ctx context.Context, page, pageSize int) dto.GamesResponse {
	nowUTC := s.now().UTC()
	todayStr := utils.DateString(nowUTC)
	currentYear := nowUTC.Year()
	istDate := utils.ISTDateAt(s.now())

	sixMonthsAgo := nowUTC.AddDate(0, -6, 0)
	response, err := s.catalogRepo.GetGames(ctx, dto.GamesQuery{
		Ordering: "-added,-rating",
		Dates:    utils.DateString(sixMonthsAgo) + "," + todayStr,
		Page:     page,
		PageSize: pageSize * 5,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Trending catalog fetch failed", logger.ErrorField(err))
		return dto.EmptyGamesResponse()
	}

	gameIDs := make([]int64, 0, len(response.Results))
	for _, game := range response.Results {
		gameIDs = append(gameIDs, game.ID)
	}
	overrides, err := s.overrideRepo.GetMany(ctx, gameIDs)
	if err != nil {
		s.log.ErrorContext(ctx, "Trending override lookup failed", logger.ErrorField(err))
		overrides = map[int64]entity.GameOverride{}
	}

	releasedGames := filterReleasedForScoring(response.Results, overrides, todayStr)

	releasedIDs := make([]int64, 0, len(releasedGames))
	for _, game := range releasedGames {
		releasedIDs = append(releasedIDs, game.ID)
	}
	caches, err := s.cacheRepo.GetMany(ctx, releasedIDs)
	if err != nil {
		s.log.ErrorContext(ctx, "Trending cache lookup failed", logger.ErrorField(err))
		caches = map[int64]entity.YouTubeTrendingCache{}
	}

	thirtyDaysAgo := nowUTC.AddDate(0, 0, -30)
	sixtyDaysAgo := nowUTC.AddDate(0, 0, -60)
	ninetyDaysAgo := nowUTC.AddDate(0, 0, -90)

	scored := make([]dto.ScoredGame, 0, len(releasedGames))
	for _, game := range releasedGames {
		components := dto.ScoreComponents{
			VideoTrending: caches[game.ID].TrendingScore,
		}
		if o, ok := overrides[game.ID]; ok {
			components.OverrideBoost = overrideBoost(&o)
		}

		if releaseDate, perr := time.Parse("2006-01-02", game.Released); perr == nil {
			switch {
			case !releaseDate.Before(thirtyDaysAgo):
				components.Recency = recencyScore30Days
			case !releaseDate.Before(sixtyDaysAgo):
				components.Recency = recencyScore60Days
			case !releaseDate.Before(ninetyDaysAgo):
				components.Recency = recencyScore90Days
			case releaseDate.Year() == currentYear:
				components.Recency = recencyScoreCurrentYear
			}

			daysSinceRelease := int(nowUTC.Sub(releaseDate).Hours() / 24)
			if daysSinceRelease < 1 {
				daysSinceRelease = 1
			}
			ratingsPerDay := float64(game.RatingsCount) / float64(daysSinceRelease)
			momentum := int(math.Floor(ratingsPerDay * s.cfg.Scoring.MomentumScale))
			if momentum > momentumScoreCap {
				momentum = momentumScoreCap
			}
			components.Momentum = momentum
		}

		scored = append(scored, dto.ScoredGame{
			Game:       game,
			Components: components,
			TotalScore: components.Recency + components.Momentum + components.VideoTrending + components.OverrideBoost,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})

	pinned := int(math.Ceil(float64(pageSize) * pinnedShareOfPage))
	if pinned > len(scored) {
		pinned = len(scored)
	}
	rotationEnd := pageSize * 2
	if rotationEnd > len(scored) {
		rotationEnd = len(scored)
	}

	topTier := make([]dto.Game, 0, pinned)
	for _, sg := range scored[:pinned] {
		topTier = append(topTier, sg.Game)
	}
	midCandidates := make([]dto.Game, 0, rotationEnd-pinned)
	for _, sg := range scored[pinned:rotationEnd] {
		midCandidates = append(midCandidates, sg.Game)
	}

	seed := int64(currentYear*100 + istDate.WeekNumber)
	combined := append(topTier, utils.SeededShuffle(midCandidates, seed)...)
	if len(combined) > pageSize {
		combined = combined[:pageSize]
	}

	response.Results = combined
	return response
}

// GetUpcomingGames returns future-dated current-year games, coming-soon
// entries first, rotated every three days via seeded shuffle.
func (s *rankingService) GetUpcomingGames(ctx context.Context, page, pageSize int) dto.GamesResponse {
	nowUTC := s.now().UTC()
	todayStr := utils.DateString(nowUTC)
	currentYear := nowUTC.Year()
	istDate := utils.ISTDateAt(s.now())
	threeDayPeriod := istDate.DaysSinceEpoch / 3

	tomorrow := nowUTC.AddDate(0, 0, 1)
	yearEnd := strconv.Itoa(currentYear) + "-12-31"
	response, err := s.catalogRepo.GetGames(ctx, dto.GamesQuery{
		Ordering: "-added",
		Dates:    utils.DateString(tomorrow) + "," + yearEnd,
		Page:     page,
		PageSize: 40,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Upcoming catalog fetch failed", logger.ErrorField(err))
		return dto.EmptyGamesResponse()
	}

	yearPrefix := strconv.Itoa(currentYear)
	seen := make(map[int64]bool)
	hyped := make([]dto.Game, 0, len(response.Results))
	for _, game := range response.Results {
		if game.Released == "" || !strings.HasPrefix(game.Released, yearPrefix) {
			continue
		}
		if game.TBA || game.Released <= todayStr || game.BackgroundImage == "" {
			continue
		}
		if seen[game.ID] {
			continue
		}
		seen[game.ID] = true
		hyped = append(hyped, game)
	}

	thirtyDaysStr := utils.DateString(nowUTC.AddDate(0, 0, 30))
	sort.SliceStable(hyped, func(i, j int) bool {
		a, b := hyped[i], hyped[j]
		aComingSoon := a.Released <= thirtyDaysStr
		bComingSoon := b.Released <= thirtyDaysStr
		if aComingSoon != bComingSoon {
			return aComingSoon
		}
		if aComingSoon {
			return a.Released < b.Released
		}
		return a.RatingsCount > b.RatingsCount
	})

	if len(hyped) > 12 {
		hyped = hyped[:12]
	}
	seed := int64(currentYear*1000 + threeDayPeriod)
	shuffled := utils.SeededShuffle(hyped, seed)
	if len(shuffled) > pageSize {
		shuffled = shuffled[:pageSize]
	}

	response.Results = shuffled
	return response
}

// GetTodaysPick selects one featured game per IST day. Candidates come from
// the last 30 days (falling back to the whole year when that window is
// empty), ranked by publisher priority + cached video trending + override
// boost; the pick is a date-hash selection from the top five so it stays
// stable all day and flips at midnight IST.
func (s *rankingService) GetTodaysPick(ctx context.Context) *dto.Game {
	nowUTC := s.now().UTC()
	todayStr := utils.DateString(nowUTC)
	istDate := utils.ISTDateAt(s.now())
	currentYear := istDate.Now.Year()

	publisherScores := s.publisherScores(ctx)

	response, err := s.catalogRepo.GetGames(ctx, dto.GamesQuery{
		Ordering: "-added,-rating",
		Dates:    utils.DateString(nowUTC.AddDate(0, 0, -30)) + "," + todayStr,
		PageSize: 50,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Todays pick catalog fetch failed", logger.ErrorField(err))
		return nil
	}

	gameIDs := make([]int64, 0, len(response.Results))
	for _, game := range response.Results {
		gameIDs = append(gameIDs, game.ID)
	}
	overrides, err := s.overrideRepo.GetMany(ctx, gameIDs)
	if err != nil {
		s.log.ErrorContext(ctx, "Todays pick override lookup failed", logger.ErrorField(err))
		overrides = map[int64]entity.GameOverride{}
	}

	validGames := filterReleasedForScoring(response.Results, overrides, todayStr)

	if len(validGames) == 0 {
		yearResponse, yerr := s.catalogRepo.GetGames(ctx, dto.GamesQuery{
			Ordering: "-rating,-ratings_count",
			Dates:    strconv.Itoa(currentYear) + "-01-01," + todayStr,
			Page:     1,
			PageSize: 50,
		})
		if yerr != nil {
			s.log.ErrorContext(ctx, "Todays pick fallback fetch failed", logger.ErrorField(yerr))
			return nil
		}
		for _, game := range yearResponse.Results {
			if game.TBA || game.Released == "" || game.Released > todayStr {
				continue
			}
			if game.RatingsCount < ratingsFloor {
				continue
			}
			validGames = append(validGames, game)
		}
	}

	if len(validGames) == 0 {
		return nil
	}

	validIDs := make([]int64, 0, len(validGames))
	for _, game := range validGames {
		validIDs = append(validIDs, game.ID)
	}
	caches, err := s.cacheRepo.GetMany(ctx, validIDs)
	if err != nil {
		s.log.ErrorContext(ctx, "Todays pick cache lookup failed", logger.ErrorField(err))
		caches = map[int64]entity.YouTubeTrendingCache{}
	}

	// Mine signals for leading candidates missing a cache row so a fresh
	// release can still win on its first day, then re-read the cache.
	topCandidates := validGames
	if len(topCandidates) > 10 {
		topCandidates = topCandidates[:10]
	}
	mined := false
	for _, game := range topCandidates {
		if _, ok := caches[game.ID]; ok {
			continue
		}
		result := s.signalService.GetTrendingScore(ctx, game.Name)
		if result == nil {
			continue
		}
		if err := s.upsertTrendingCache(ctx, game.ID, game.Name, result); err != nil {
			s.log.ErrorContext(ctx, "Todays pick cache upsert failed",
				logger.Field("game_id", game.ID), logger.ErrorField(err))
			continue
		}
		mined = true
	}
	if mined {
		if updated, uerr := s.cacheRepo.GetMany(ctx, validIDs); uerr == nil {
			caches = updated
		}
	}

	scored := make([]dto.ScoredGame, 0, len(validGames))
	for _, game := range validGames {
		components := dto.ScoreComponents{
			VideoTrending: caches[game.ID].TrendingScore,
		}
		for _, pub := range game.Publishers {
			if score := publisherScores[strings.ToLower(pub.Name)]; score > components.PublisherBoost {
				components.PublisherBoost = score
			}
		}
		if o, ok := overrides[game.ID]; ok {
			components.OverrideBoost = overrideBoost(&o)
		}
		scored = append(scored, dto.ScoredGame{
			Game:       game,
			Components: components,
			TotalScore: components.PublisherBoost + components.VideoTrending + components.OverrideBoost,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})
	if len(scored) > 5 {
		scored = scored[:5]
	}

	index := utils.DateSeed(istDate.Date) % int64(len(scored))
	pick := scored[index].Game
	return &pick
}

// GetAllTimeGreats returns one featured legendary game (metacritic 95+)
// plus an elite grid (90-94). Selection within each tier is intentionally
// random per request; only released games qualify.
func (s *rankingService) GetAllTimeGreats(ctx context.Context) dto.GamesResponse {
	legendary, err := s.catalogRepo.GetGames(ctx, dto.GamesQuery{
		Ordering:   "-metacritic",
		Metacritic: "95,100",
		PageSize:   30,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Legendary catalog fetch failed", logger.ErrorField(err))
		return dto.EmptyGamesResponse()
	}
	elite, err := s.catalogRepo.GetGames(ctx, dto.GamesQuery{
		Ordering:   "-metacritic",
		Metacritic: "90,94",
		PageSize:   50,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Elite catalog fetch failed", logger.ErrorField(err))
		return dto.EmptyGamesResponse()
	}

	legendaryGames := s.releaseService.FilterReleasedGames(ctx, legendary.Results)
	eliteGames := s.releaseService.FilterReleasedGames(ctx, elite.Results)

	rand.Shuffle(len(legendaryGames), func(i, j int) {
		legendaryGames[i], legendaryGames[j] = legendaryGames[j], legendaryGames[i]
	})
	rand.Shuffle(len(eliteGames), func(i, j int) {
		eliteGames[i], eliteGames[j] = eliteGames[j], eliteGames[i]
	})

	var results []dto.Game
	if len(legendaryGames) > 0 {
		results = append(results, legendaryGames[0])
		if len(eliteGames) > 5 {
			eliteGames = eliteGames[:5]
		}
		results = append(results, eliteGames...)
	} else {
		if len(eliteGames) > 6 {
			eliteGames = eliteGames[:6]
		}
		results = eliteGames
	}
	if results == nil {
		results = []dto.Game{}
	}

	return dto.GamesResponse{
		Count:   len(results),
		Results: results,
	}
}

func (s *rankingService) publisherScores(ctx context.Context) map[string]int {
	publishers, err := s.publisherRepo.GetAll(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Priority publisher lookup failed", logger.ErrorField(err))
		return map[string]int{}
	}
	scores := make(map[string]int, len(publishers))
	for _, p := range publishers {
		scores[strings.ToLower(p.PublisherName)] = p.PriorityScore
	}
	return scores
}

func (s *rankingService) upsertTrendingCache(ctx context.Context, gameID int64, gameName string, result *dto.TrendingResult) error {
	return s.cacheRepo.Upsert(ctx, trendingCacheFromResult(gameID, gameName, result, s.now()))
}

// trendingCacheFromResult maps a mined signal onto its persisted row. The
// video sample is stored as jsonb for inspection; a marshal failure falls
// back to an empty array rather than losing the row.
func trendingCacheFromResult(gameID int64, gameName string, result *dto.TrendingResult, at time.Time) *entity.YouTubeTrendingCache {
	if gameName == "" {
		gameName = result.GameName
	}
	videos, err := json.Marshal(result.Videos)
	if err != nil {
		videos = []byte("[]")
	}
	return &entity.YouTubeTrendingCache{
		GameID:            gameID,
		GameName:          gameName,
		TotalViews:        result.TotalViews,
		VideoCount:        result.VideoCount,
		AvgViewsPerVideo:  result.AvgViewsPerVideo,
		TrendingScore:     result.TrendingScore,
		HasGameplayVideos: result.HasGameplayVideos,
		Videos:            datatypes.JSON(videos),
		LastUpdated:       at,
	}
}
