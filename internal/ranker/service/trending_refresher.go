package service

import (
	"context"
	"sort"
	"time"

	"gametale-ranker/internal/ranker/config"
	"gametale-ranker/internal/ranker/dto"
	"gametale-ranker/internal/ranker/repository"
	"gametale-ranker/pkg/logger"
	redisPkg "gametale-ranker/pkg/redis"
	"gametale-ranker/pkg/telegram"
)

const (
	refreshLockKey = "ranker:trending_refresh:lock"
	refreshLockTTL = 30 * time.Minute
)

// TrendingRefresher periodically re-mines video signals for the games
// currently on the trending and upcoming surfaces and persists them to the
// trending cache, so request-path scoring never has to wait on the video
// platform.
type TrendingRefresher interface {
	Refresh(ctx context.Context) dto.RefreshSummary
}

type trendingRefresher struct {
	cfg            *config.Config
	log            *logger.Logger
	redisClient    *redisPkg.Client
	cacheRepo      repository.YouTubeCacheRepository
	rankingService RankingService
	signalService  YouTubeSignalService
	notifier       telegram.Notifier
	now            func() time.Time
}

// NewTrendingRefresher creates a new refresh worker. notifier may be nil to
// disable the Telegram summary; redisClient may be nil to disable the
// overlap lock (single-instance deployments).
func NewTrendingRefresher(
	cfg *config.Config,
	log *logger.Logger,
	redisClient *redisPkg.Client,
	cacheRepo repository.YouTubeCacheRepository,
	rankingService RankingService,
	signalService YouTubeSignalService,
	notifier telegram.Notifier,
) TrendingRefresher {
	return &trendingRefresher{
		cfg:            cfg,
		log:            log,
		redisClient:    redisClient,
		cacheRepo:      cacheRepo,
		rankingService: rankingService,
		signalService:  signalService,
		notifier:       notifier,
		now:            time.Now,
	}
}

// Refresh runs one full refresh cycle. When another instance holds the lock
// the run is skipped and an empty summary is returned; a partial run still
// reports whatever it managed to persist.
func (r *trendingRefresher) Refresh(ctx context.Context) dto.RefreshSummary {
	summary := dto.RefreshSummary{Games: []dto.RefreshSummaryGame{}}

	if !r.acquireLock(ctx) {
		r.log.InfoContext(ctx, "Trending refresh skipped, another run holds the lock")
		return summary
	}
	defer r.releaseLock(ctx)

	started := r.now()
	r.log.InfoContext(ctx, "Trending refresh started")

	trendingPages := r.cfg.Refresher.TrendingPages
	if trendingPages < 1 {
		trendingPages = 1
	}

	seen := make(map[int64]bool)
	var candidates []GameRef
	for page := 1; page <= trendingPages; page++ {
		for _, game := range r.rankingService.GetTrendingGames(ctx, page, 20).Results {
			if !seen[game.ID] {
				seen[game.ID] = true
				candidates = append(candidates, GameRef{ID: game.ID, Name: game.Name})
			}
		}
	}
	for _, game := range r.rankingService.GetUpcomingGames(ctx, 1, 10).Results {
		if !seen[game.ID] {
			seen[game.ID] = true
			candidates = append(candidates, GameRef{ID: game.ID, Name: game.Name})
		}
	}

	summary.Checked = len(candidates)
	r.log.InfoContext(ctx, "Trending refresh mining signals", logger.IntField("candidates", len(candidates)))

	results := r.signalService.BatchTrendingScores(ctx, candidates)

	nameByID := make(map[int64]string, len(candidates))
	for _, c := range candidates {
		nameByID[c.ID] = c.Name
	}

	for gameID, result := range results {
		if result == nil {
			continue
		}
		cache := trendingCacheFromResult(gameID, nameByID[gameID], result, r.now())
		if err := r.cacheRepo.Upsert(ctx, cache); err != nil {
			r.log.ErrorContext(ctx, "Trending cache upsert failed",
				logger.Field("game_id", gameID), logger.ErrorField(err))
			continue
		}
		summary.Updated++
		summary.Games = append(summary.Games, dto.RefreshSummaryGame{
			ID:          gameID,
			Name:        result.GameName,
			Score:       result.TrendingScore,
			HasGameplay: result.HasGameplayVideos,
		})
	}

	// Map iteration order is random; report strongest signals first.
	sort.Slice(summary.Games, func(i, j int) bool {
		return summary.Games[i].Score > summary.Games[j].Score
	})

	r.log.InfoContext(ctx, "Trending refresh finished",
		logger.IntField("checked", summary.Checked),
		logger.IntField("updated", summary.Updated),
		logger.Field("duration", r.now().Sub(started).String()))

	r.notify(summary)
	return summary
}

func (r *trendingRefresher) acquireLock(ctx context.Context) bool {
	if r.redisClient == nil {
		return true
	}
	ok, err := r.redisClient.SetNX(ctx, refreshLockKey, r.now().Format(time.RFC3339), refreshLockTTL).Result()
	if err != nil {
		r.log.ErrorContext(ctx, "Refresh lock acquire failed", logger.ErrorField(err))
		return true
	}
	return ok
}

func (r *trendingRefresher) releaseLock(ctx context.Context) {
	if r.redisClient == nil {
		return
	}
	if err := r.redisClient.Del(ctx, refreshLockKey).Err(); err != nil {
		r.log.ErrorContext(ctx, "Refresh lock release failed", logger.ErrorField(err))
	}
}

func (r *trendingRefresher) notify(summary dto.RefreshSummary) {
	if r.notifier == nil {
		return
	}
	games := make([]telegram.RefreshedGame, 0, len(summary.Games))
	for _, g := range summary.Games {
		games = append(games, telegram.RefreshedGame{
			Name:          g.Name,
			TrendingScore: g.Score,
			HasGameplay:   g.HasGameplay,
		})
	}
	msg := telegram.FormatTrendingRefreshSummary(summary.Checked, summary.Updated, games, r.now())
	if err := r.notifier.SendMessage(msg); err != nil {
		r.log.Error("Refresh summary notification failed", logger.ErrorField(err))
	}
}
