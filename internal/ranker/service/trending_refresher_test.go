package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gametale-ranker/internal/ranker/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRankingService serves fixed surface pages to the refresher.
type stubRankingService struct {
	trendingPages map[int][]dto.Game
	upcoming      []dto.Game
}

func (s *stubRankingService) GetTrendingGames(_ context.Context, page, _ int) dto.GamesResponse {
	games := s.trendingPages[page]
	return dto.GamesResponse{Count: len(games), Results: games}
}

func (s *stubRankingService) GetUpcomingGames(context.Context, int, int) dto.GamesResponse {
	return dto.GamesResponse{Count: len(s.upcoming), Results: s.upcoming}
}

func (s *stubRankingService) GetTodaysPick(context.Context) *dto.Game {
	return nil
}

func (s *stubRankingService) GetAllTimeGreats(context.Context) dto.GamesResponse {
	return dto.EmptyGamesResponse()
}

// stubNotifier records sent messages.
type stubNotifier struct {
	messages []string
	err      error
}

func (s *stubNotifier) SendMessage(text string) error {
	s.messages = append(s.messages, text)
	return s.err
}

func newTestRefresher(ranking RankingService, signal YouTubeSignalService, cacheRepo *stubCacheRepo, notifier *stubNotifier) *trendingRefresher {
	r := NewTrendingRefresher(newTestConfig(), mustLogger(), nil, cacheRepo, ranking, signal, nil).(*trendingRefresher)
	if notifier != nil {
		r.notifier = notifier
	}
	r.now = func() time.Time { return fixedNow }
	return r
}

func TestRefreshMinesAndPersists(t *testing.T) {
	ranking := &stubRankingService{
		trendingPages: map[int][]dto.Game{
			1: {
				{ID: 1, Name: "Star Fall"},
				{ID: 2, Name: "Moon Rise"},
			},
		},
		// Overlaps with trending; must not be checked twice.
		upcoming: []dto.Game{
			{ID: 2, Name: "Moon Rise"},
			{ID: 3, Name: "Dust Bowl"},
		},
	}
	signal := &stubSignalService{
		trendingResults: map[string]*dto.TrendingResult{
			"Star Fall": {GameName: "Star Fall", TrendingScore: 420, HasGameplayVideos: true, VideoCount: 5},
			"Moon Rise": {GameName: "Moon Rise", TrendingScore: 710, VideoCount: 8},
			// Dust Bowl has no signal at all.
		},
	}
	cacheRepo := newStubCacheRepo()
	notifier := &stubNotifier{}
	refresher := newTestRefresher(ranking, signal, cacheRepo, notifier)

	summary := refresher.Refresh(context.Background())

	assert.Equal(t, 3, summary.Checked)
	assert.Equal(t, 2, summary.Updated)
	assert.Equal(t, []string{"Star Fall", "Moon Rise", "Dust Bowl"}, signal.minedNames)

	// Summary is sorted by score, strongest first.
	require.Len(t, summary.Games, 2)
	assert.Equal(t, "Moon Rise", summary.Games[0].Name)
	assert.Equal(t, 710, summary.Games[0].Score)
	assert.Equal(t, "Star Fall", summary.Games[1].Name)

	// Persisted rows carry the mined signal.
	require.Len(t, cacheRepo.upserts, 2)
	persisted := cacheRepo.caches[1]
	assert.Equal(t, "Star Fall", persisted.GameName)
	assert.Equal(t, 420, persisted.TrendingScore)
	assert.True(t, persisted.HasGameplayVideos)
	assert.Equal(t, fixedNow, persisted.LastUpdated)

	// One Telegram summary goes out.
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "Checked: 3 | Updated: 2")
}

func TestRefreshMultipleTrendingPages(t *testing.T) {
	ranking := &stubRankingService{
		trendingPages: map[int][]dto.Game{
			1: {{ID: 1, Name: "Page One"}},
			2: {{ID: 2, Name: "Page Two"}},
		},
	}
	signal := &stubSignalService{}
	refresher := newTestRefresher(ranking, signal, newStubCacheRepo(), nil)
	refresher.cfg.Refresher.TrendingPages = 2

	summary := refresher.Refresh(context.Background())

	assert.Equal(t, 2, summary.Checked)
	assert.Equal(t, []string{"Page One", "Page Two"}, signal.minedNames)
}

func TestRefreshUpsertFailureNotCounted(t *testing.T) {
	ranking := &stubRankingService{
		trendingPages: map[int][]dto.Game{1: {{ID: 1, Name: "Star Fall"}}},
	}
	signal := &stubSignalService{
		trendingResults: map[string]*dto.TrendingResult{
			"Star Fall": {GameName: "Star Fall", TrendingScore: 420},
		},
	}
	cacheRepo := newStubCacheRepo()
	cacheRepo.upsertErr = errors.New("db down")
	refresher := newTestRefresher(ranking, signal, cacheRepo, nil)

	summary := refresher.Refresh(context.Background())

	assert.Equal(t, 1, summary.Checked)
	assert.Zero(t, summary.Updated)
	assert.Empty(t, summary.Games)
}

func TestRefreshEmptySurfaces(t *testing.T) {
	notifier := &stubNotifier{}
	refresher := newTestRefresher(&stubRankingService{}, &stubSignalService{}, newStubCacheRepo(), notifier)

	summary := refresher.Refresh(context.Background())

	assert.Zero(t, summary.Checked)
	assert.Zero(t, summary.Updated)
	assert.NotNil(t, summary.Games)
	require.Len(t, notifier.messages, 1)
}

func TestRefreshWithoutNotifier(t *testing.T) {
	ranking := &stubRankingService{
		trendingPages: map[int][]dto.Game{1: {{ID: 1, Name: "Star Fall"}}},
	}
	refresher := newTestRefresher(ranking, &stubSignalService{}, newStubCacheRepo(), nil)

	// Must not panic with a nil notifier and nil redis client.
	summary := refresher.Refresh(context.Background())
	assert.Equal(t, 1, summary.Checked)
}
