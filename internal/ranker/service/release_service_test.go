package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gametale-ranker/internal/entity"
	"gametale-ranker/internal/ranker/dto"
	"gametale-ranker/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReleaseService(overrideRepo *stubOverrideRepo, signal *stubSignalService) *releaseService {
	svc := NewReleaseService(mustLogger(), overrideRepo, signal).(*releaseService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestIsGameReleasedPrecedence(t *testing.T) {
	pastDate := fixedNow.AddDate(0, 0, -10)

	tests := []struct {
		name     string
		game     dto.Game
		override *entity.GameOverride
		want     bool
	}{
		{
			name:     "override released wins over future date",
			game:     dto.Game{ID: 1, Name: "Future Game", Released: "2030-01-01"},
			override: &entity.GameOverride{GameID: 1, IsReleased: utils.ToPointer(true)},
			want:     true,
		},
		{
			name:     "override not released wins over past date",
			game:     dto.Game{ID: 2, Name: "Past Game", Released: "2020-01-01"},
			override: &entity.GameOverride{GameID: 2, IsReleased: utils.ToPointer(false)},
			want:     false,
		},
		{
			name: "past catalog date released",
			game: dto.Game{ID: 3, Name: "Shipped Game", Released: "2025-08-01"},
			want: true,
		},
		{
			name: "same day counts as released",
			game: dto.Game{ID: 4, Name: "Launch Day", Released: "2025-09-01"},
			want: true,
		},
		{
			name: "future date not released",
			game: dto.Game{ID: 5, Name: "Future Game", Released: "2025-12-01"},
			want: false,
		},
		{
			name:     "trending-only override defers to catalog date",
			game:     dto.Game{ID: 6, Name: "Boosted Game", Released: "2025-08-01"},
			override: &entity.GameOverride{GameID: 6, IsTrending: true, ReleaseDate: &pastDate},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubOverrideRepo()
			if tt.override != nil {
				repo.overrides[tt.override.GameID] = *tt.override
			}
			svc := newTestReleaseService(repo, &stubSignalService{})

			assert.Equal(t, tt.want, svc.IsGameReleased(context.Background(), tt.game))
		})
	}
}

func TestIsGameReleasedHeuristicFallback(t *testing.T) {
	repo := newStubOverrideRepo()
	signal := &stubSignalService{
		gameplayResult: dto.GameplayCheckResult{HasGameplay: true, VideoCount: 6, Confidence: dto.ConfidenceMedium},
	}
	svc := newTestReleaseService(repo, signal)

	game := dto.Game{ID: 10, Name: "Shadow Drop", TBA: true}
	assert.True(t, svc.IsGameReleased(context.Background(), game))

	// A positive detection is memoized as an override.
	require.Len(t, repo.upserts, 1)
	persisted := repo.upserts[0]
	assert.Equal(t, int64(10), persisted.GameID)
	assert.Equal(t, "Shadow Drop", persisted.GameName)
	require.NotNil(t, persisted.IsReleased)
	assert.True(t, *persisted.IsReleased)
	require.NotNil(t, persisted.DetectedVia)
	assert.Equal(t, entity.DetectedViaYouTubeGameplay, *persisted.DetectedVia)
}

func TestIsGameReleasedHeuristicNegative(t *testing.T) {
	repo := newStubOverrideRepo()
	signal := &stubSignalService{gameplayResult: dto.GameplayCheckResult{HasGameplay: false}}
	svc := newTestReleaseService(repo, signal)

	assert.False(t, svc.IsGameReleased(context.Background(), dto.Game{ID: 11, Name: "Vapor Title", TBA: true}))
	assert.Empty(t, repo.upserts)
}

func TestIsGameReleasedHeuristicSkippedForDatedGames(t *testing.T) {
	repo := newStubOverrideRepo()
	signal := &stubSignalService{gameplayResult: dto.GameplayCheckResult{HasGameplay: true}}
	svc := newTestReleaseService(repo, signal)

	// A concrete future date is trusted; the heuristic never runs.
	assert.False(t, svc.IsGameReleased(context.Background(), dto.Game{ID: 12, Name: "Dated Game", Released: "2025-12-01"}))
	assert.Empty(t, signal.checkedNames)
}

func TestIsGameReleasedPersistFailureSwallowed(t *testing.T) {
	repo := newStubOverrideRepo()
	repo.upsertErr = errors.New("db down")
	signal := &stubSignalService{gameplayResult: dto.GameplayCheckResult{HasGameplay: true}}
	svc := newTestReleaseService(repo, signal)

	// The detection still counts even when it cannot be memoized.
	assert.True(t, svc.IsGameReleased(context.Background(), dto.Game{ID: 13, Name: "Shadow Drop", TBA: true}))
}

func TestIsGameReleasedOverrideLookupFailure(t *testing.T) {
	repo := newStubOverrideRepo()
	repo.getErr = errors.New("db down")
	svc := newTestReleaseService(repo, &stubSignalService{})

	// Lookup failure degrades to catalog data.
	assert.True(t, svc.IsGameReleased(context.Background(), dto.Game{ID: 14, Name: "Shipped", Released: "2025-08-01"}))
}

func TestFilterReleasedGames(t *testing.T) {
	pastDate := fixedNow.AddDate(0, 0, -5)
	repo := newStubOverrideRepo(
		entity.GameOverride{GameID: 1, IsReleased: utils.ToPointer(true)},
		entity.GameOverride{GameID: 2, IsReleased: utils.ToPointer(false)},
		entity.GameOverride{GameID: 3, ReleaseDate: &pastDate},
	)
	svc := newTestReleaseService(repo, &stubSignalService{})

	games := []dto.Game{
		{ID: 1, Name: "Override Released", Released: "2030-01-01"},
		{ID: 2, Name: "Override Hidden", Released: "2020-01-01", RatingsCount: 500},
		{ID: 3, Name: "Override Dated", TBA: true},
		{ID: 4, Name: "TBA", TBA: true},
		{ID: 5, Name: "No Date"},
		{ID: 6, Name: "Released Popular", Released: "2025-08-01", RatingsCount: 50},
		{ID: 7, Name: "Released Ghost", Released: "2025-08-01", RatingsCount: 3},
		{ID: 8, Name: "Future", Released: "2025-12-01", RatingsCount: 100},
	}

	filtered := svc.FilterReleasedGames(context.Background(), games)

	var ids []int64
	for _, g := range filtered {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []int64{1, 3, 6}, ids)
}

func TestReleaseFloorAsymmetry(t *testing.T) {
	// A released game with almost no ratings passes the single-game check
	// but is dropped from batch filtering.
	game := dto.Game{ID: 20, Name: "Tiny Indie", Released: "2025-08-15", RatingsCount: 2}

	svc := newTestReleaseService(newStubOverrideRepo(), &stubSignalService{})

	assert.True(t, svc.IsGameReleased(context.Background(), game))
	assert.Empty(t, svc.FilterReleasedGames(context.Background(), []dto.Game{game}))
}
