package service

import (
	"context"
	"time"

	"gametale-ranker/internal/entity"
	"gametale-ranker/internal/ranker/dto"
	"gametale-ranker/internal/ranker/repository"
	"gametale-ranker/pkg/logger"
	"gametale-ranker/pkg/utils"
)

// ratingsFloor excludes placeholder/ghost catalog entries in batch
// filtering. Deliberately NOT applied on the single-game path; both
// behaviors are load-bearing, see the regression tests before unifying.
const ratingsFloor = 10

// ReleaseService resolves whether a game is actually released, combining
// the override store, the catalog's own release date, and (single-game path
// only) the gameplay video heuristic.
type ReleaseService interface {
	IsGameReleased(ctx context.Context, game dto.Game) bool
	FilterReleasedGames(ctx context.Context, games []dto.Game) []dto.Game
}

type releaseService struct {
	log           *logger.Logger
	overrideRepo  repository.GameOverrideRepository
	signalService YouTubeSignalService
	now           func() time.Time
}

// NewReleaseService creates a new release status resolver.
func NewReleaseService(log *logger.Logger, overrideRepo repository.GameOverrideRepository, signalService YouTubeSignalService) ReleaseService {
	return &releaseService{
		log:           log,
		overrideRepo:  overrideRepo,
		signalService: signalService,
		now:           time.Now,
	}
}

// IsGameReleased resolves a single game, used on the detail page. When the
// catalog is ambiguous (TBA or no date) it falls back to the gameplay
// heuristic and memoizes a positive detection as an override so future
// calls short-circuit.
func (s *releaseService) IsGameReleased(ctx context.Context, game dto.Game) bool {
	todayStr := utils.DateString(s.now().UTC())

	override, err := s.overrideRepo.Get(ctx, game.ID)
	if err != nil {
		s.log.DebugContext(ctx, "Override lookup failed", logger.Field("game_id", game.ID), logger.ErrorField(err))
	}
	switch override.ReleaseStatus() {
	case entity.ReleaseStatusReleased:
		return true
	case entity.ReleaseStatusNotReleased:
		return false
	}

	if game.Released != "" && game.Released <= todayStr {
		return true
	}

	if game.TBA || game.Released == "" {
		check := s.signalService.CheckGameplayVideos(ctx, game.Name)
		if check.HasGameplay {
			s.persistDetection(ctx, game)
			return true
		}
	}

	return false
}

// persistDetection records a positive heuristic detection. Write failures
// are swallowed: the heuristic re-runs on the next request and the override
// is idempotently re-derivable.
func (s *releaseService) persistDetection(ctx context.Context, game dto.Game) {
	override := &entity.GameOverride{
		GameID:      game.ID,
		GameName:    game.Name,
		IsReleased:  utils.ToPointer(true),
		DetectedVia: utils.ToPointer(entity.DetectedViaYouTubeGameplay),
	}
	if err := s.overrideRepo.Upsert(ctx, override); err != nil {
		s.log.ErrorContext(ctx, "Failed to persist release detection",
			logger.Field("game_id", game.ID), logger.ErrorField(err))
	}
}

// FilterReleasedGames resolves a whole list with one batched override
// lookup. The gameplay heuristic is not consulted here to bound upstream
// cost; games that do not resolve to released are dropped.
func (s *releaseService) FilterReleasedGames(ctx context.Context, games []dto.Game) []dto.Game {
	todayStr := utils.DateString(s.now().UTC())

	gameIDs := make([]int64, 0, len(games))
	for _, game := range games {
		gameIDs = append(gameIDs, game.ID)
	}

	overrides, err := s.overrideRepo.GetMany(ctx, gameIDs)
	if err != nil {
		s.log.ErrorContext(ctx, "Batch override lookup failed", logger.ErrorField(err))
		overrides = map[int64]entity.GameOverride{}
	}

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

		if game.TBA {
			continue
		}
		if game.Released == "" {
			continue
		}
		if game.Released <= todayStr && game.RatingsCount >= ratingsFloor {
			results = append(results, game)
		}
	}

	return results
}
