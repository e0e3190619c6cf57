package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gametale-ranker/internal/entity"
	"gametale-ranker/internal/ranker/dto"
	"gametale-ranker/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rankingFixture struct {
	svc           *rankingService
	catalogRepo   *stubCatalogRepo
	overrideRepo  *stubOverrideRepo
	cacheRepo     *stubCacheRepo
	publisherRepo *stubPublisherRepo
	signal        *stubSignalService
}

func newRankingFixture() *rankingFixture {
	f := &rankingFixture{
		catalogRepo:   &stubCatalogRepo{},
		overrideRepo:  newStubOverrideRepo(),
		cacheRepo:     newStubCacheRepo(),
		publisherRepo: &stubPublisherRepo{},
		signal:        &stubSignalService{},
	}
	release := newTestReleaseService(f.overrideRepo, f.signal)
	f.svc = &rankingService{
		cfg:            newTestConfig(),
		log:            mustLogger(),
		catalogRepo:    f.catalogRepo,
		overrideRepo:   f.overrideRepo,
		cacheRepo:      f.cacheRepo,
		publisherRepo:  f.publisherRepo,
		signalService:  f.signal,
		releaseService: release,
		now:            func() time.Time { return fixedNow },
	}
	return f
}

func gameIDsOf(games []dto.Game) []int64 {
	ids := make([]int64, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.ID)
	}
	return ids
}

func TestGetTrendingGamesScoreOrder(t *testing.T) {
	f := newRankingFixture()
	f.overrideRepo.overrides[101] = entity.GameOverride{GameID: 101, IsTrending: true}
	f.cacheRepo.caches[102] = entity.YouTubeTrendingCache{GameID: 102, TrendingScore: 200}
	f.catalogRepo.responses = []dto.GamesResponse{{
		Count: 8,
		Results: []dto.Game{
			// 400 recency + 100 momentum = 500
			{ID: 100, Name: "Alpha", Released: "2025-08-25", RatingsCount: 70},
			// 50 recency + 500 override boost = 550
			{ID: 101, Name: "Boosted", Released: "2025-06-01"},
			// 250 recency + 200 cached video trending = 450
			{ID: 102, Name: "Cached", Released: "2025-08-01"},
			{ID: 103, Name: "Older A", Released: "2025-05-01"},
			{ID: 104, Name: "Older B", Released: "2025-05-01"},
			{ID: 105, Name: "Hidden", Released: "2025-01-01"},
			{ID: 106, Name: "Unannounced", TBA: true},
			{ID: 107, Name: "Future", Released: "2025-10-01"},
		},
	}}
	f.overrideRepo.overrides[105] = entity.GameOverride{GameID: 105, IsReleased: utils.ToPointer(false)}

	response := f.svc.GetTrendingGames(context.Background(), 1, 6)

	// Pinned head of the page is raw score order.
	ids := gameIDsOf(response.Results)
	require.GreaterOrEqual(t, len(ids), 3)
	assert.Equal(t, []int64{101, 100, 102}, ids[:3])

	// Non-released games never reach the page.
	assert.NotContains(t, ids, int64(105))
	assert.NotContains(t, ids, int64(106))
	assert.NotContains(t, ids, int64(107))
}

func TestGetTrendingGamesDeterministicWithinWeek(t *testing.T) {
	f := newRankingFixture()
	games := make([]dto.Game, 0, 14)
	for i := int64(1); i <= 14; i++ {
		games = append(games, dto.Game{
			ID:           i,
			Name:         "Game",
			Released:     "2025-07-01",
			RatingsCount: int(i) * 3,
		})
	}
	f.catalogRepo.responses = []dto.GamesResponse{{Count: 14, Results: games}}

	first := f.svc.GetTrendingGames(context.Background(), 1, 6)
	second := f.svc.GetTrendingGames(context.Background(), 1, 6)

	assert.Equal(t, gameIDsOf(first.Results), gameIDsOf(second.Results))
	assert.Len(t, first.Results, 6)
}

func TestGetTrendingGamesMomentumCapped(t *testing.T) {
	f := newRankingFixture()
	f.catalogRepo.responses = []dto.GamesResponse{{
		Count: 3,
		Results: []dto.Game{
			// Both above the cap: equal scores, input order preserved.
			{ID: 1, Name: "Viral", Released: "2025-08-25", RatingsCount: 1000000},
			{ID: 2, Name: "Also Viral", Released: "2025-08-25", RatingsCount: 300},
			// Below the cap: 400 + 142 loses to 400 + 300.
			{ID: 3, Name: "Steady", Released: "2025-08-25", RatingsCount: 100},
		},
	}}

	response := f.svc.GetTrendingGames(context.Background(), 1, 6)

	assert.Equal(t, []int64{1, 2, 3}, gameIDsOf(response.Results))
}

func TestGetTrendingGamesCatalogFailure(t *testing.T) {
	f := newRankingFixture()
	f.catalogRepo.err = errors.New("upstream 502")

	response := f.svc.GetTrendingGames(context.Background(), 1, 20)

	assert.Zero(t, response.Count)
	assert.Empty(t, response.Results)
}

func TestGetUpcomingGamesFiltering(t *testing.T) {
	f := newRankingFixture()
	img := "https://img.example/bg.jpg"
	f.catalogRepo.responses = []dto.GamesResponse{{
		Count: 8,
		Results: []dto.Game{
			{ID: 200, Name: "Soon", Released: "2025-09-10", BackgroundImage: img, RatingsCount: 10},
			{ID: 201, Name: "Holiday", Released: "2025-11-20", BackgroundImage: img, RatingsCount: 500},
			{ID: 202, Name: "Sooner", Released: "2025-09-05", BackgroundImage: img},
			{ID: 203, Name: "Next Year", Released: "2026-01-10", BackgroundImage: img},
			{ID: 204, Name: "Unannounced", TBA: true, BackgroundImage: img},
			{ID: 205, Name: "No Art", Released: "2025-09-15"},
			{ID: 206, Name: "Already Out", Released: "2025-08-20", BackgroundImage: img},
			{ID: 200, Name: "Soon", Released: "2025-09-10", BackgroundImage: img, RatingsCount: 10},
		},
	}}

	response := f.svc.GetUpcomingGames(context.Background(), 1, 10)

	assert.ElementsMatch(t, []int64{200, 201, 202}, gameIDsOf(response.Results))
}

func TestGetUpcomingGamesStableAcrossRequests(t *testing.T) {
	f := newRankingFixture()
	img := "https://img.example/bg.jpg"
	games := make([]dto.Game, 0, 16)
	for i := int64(1); i <= 16; i++ {
		games = append(games, dto.Game{
			ID:              300 + i,
			Name:            "Upcoming",
			Released:        fmt.Sprintf("2025-10-%d0", i%3+1),
			BackgroundImage: img,
			RatingsCount:    int(i),
		})
	}
	f.catalogRepo.responses = []dto.GamesResponse{{Count: 16, Results: games}}

	first := f.svc.GetUpcomingGames(context.Background(), 1, 10)
	second := f.svc.GetUpcomingGames(context.Background(), 1, 10)

	assert.Equal(t, gameIDsOf(first.Results), gameIDsOf(second.Results))
	assert.LessOrEqual(t, len(first.Results), 10)
}

func TestGetTodaysPickSelection(t *testing.T) {
	f := newRankingFixture()
	f.publisherRepo.publishers = []entity.PriorityPublisher{
		{PublisherName: "Nova Interactive", PriorityScore: 800},
	}
	f.cacheRepo.caches[301] = entity.YouTubeTrendingCache{GameID: 301, TrendingScore: 710}
	f.signal.trendingResults = map[string]*dto.TrendingResult{
		"Mined Game": {GameName: "Mined Game", TrendingScore: 650, VideoCount: 4, TotalViews: 90000},
	}
	f.catalogRepo.responses = []dto.GamesResponse{{
		Count: 4,
		Results: []dto.Game{
			{ID: 300, Name: "Star Fall", Released: "2025-08-20", Publishers: []dto.Publisher{{Name: "NOVA Interactive"}}},
			{ID: 301, Name: "Moon Rise", Released: "2025-08-18"},
			{ID: 302, Name: "Dust Bowl", Released: "2025-08-10"},
			{ID: 303, Name: "Mined Game", Released: "2025-08-28"},
		},
	}}

	pick := f.svc.GetTodaysPick(context.Background())

	// Scores: Star Fall 800, Moon Rise 710, Mined Game 650, Dust Bowl 0.
	// The date hash for 2025-09-01 lands on index 1 of the top five.
	require.NotNil(t, pick)
	assert.Equal(t, int64(301), pick.ID)

	// Candidates without a cache row get mined and persisted on the way.
	assert.Contains(t, f.signal.minedNames, "Mined Game")
	require.NotEmpty(t, f.cacheRepo.upserts)
	assert.Equal(t, int64(303), f.cacheRepo.upserts[0].GameID)
	assert.Equal(t, 650, f.cacheRepo.upserts[0].TrendingScore)

	// Same day, same pick.
	again := f.svc.GetTodaysPick(context.Background())
	require.NotNil(t, again)
	assert.Equal(t, pick.ID, again.ID)
}

func TestGetTodaysPickYearFallback(t *testing.T) {
	f := newRankingFixture()
	f.catalogRepo.responses = []dto.GamesResponse{
		{Count: 0, Results: []dto.Game{}},
		{
			Count: 3,
			Results: []dto.Game{
				{ID: 310, Name: "Spring Hit", Released: "2025-03-10", RatingsCount: 50},
				{ID: 311, Name: "Obscure", Released: "2025-03-11", RatingsCount: 3},
				{ID: 312, Name: "Winter Release", Released: "2025-12-20", RatingsCount: 400},
			},
		},
	}

	pick := f.svc.GetTodaysPick(context.Background())

	require.NotNil(t, pick)
	assert.Equal(t, int64(310), pick.ID)

	require.Len(t, f.catalogRepo.queries, 2)
	assert.Equal(t, "-rating,-ratings_count", f.catalogRepo.queries[1].Ordering)
	assert.Equal(t, "2025-01-01,2025-09-01", f.catalogRepo.queries[1].Dates)
}

func TestGetTodaysPickNoCandidates(t *testing.T) {
	f := newRankingFixture()
	f.catalogRepo.responses = []dto.GamesResponse{
		{Count: 0, Results: []dto.Game{}},
		{Count: 0, Results: []dto.Game{}},
	}

	assert.Nil(t, f.svc.GetTodaysPick(context.Background()))
}

func TestGetAllTimeGreatsComposition(t *testing.T) {
	f := newRankingFixture()
	legendaryIDs := []int64{400, 401}
	eliteIDs := []int64{410, 411, 412, 413, 414, 415, 416, 417}

	legendary := make([]dto.Game, 0, len(legendaryIDs))
	for _, id := range legendaryIDs {
		legendary = append(legendary, dto.Game{ID: id, Name: "Legend", Released: "2018-05-01", RatingsCount: 5000})
	}
	elite := make([]dto.Game, 0, len(eliteIDs))
	for _, id := range eliteIDs {
		elite = append(elite, dto.Game{ID: id, Name: "Elite", Released: "2019-05-01", RatingsCount: 3000})
	}
	f.catalogRepo.responses = []dto.GamesResponse{
		{Count: len(legendary), Results: legendary},
		{Count: len(elite), Results: elite},
	}

	response := f.svc.GetAllTimeGreats(context.Background())

	require.Len(t, response.Results, 6)
	assert.Equal(t, 6, response.Count)
	assert.Contains(t, legendaryIDs, response.Results[0].ID)
	for _, game := range response.Results[1:] {
		assert.Contains(t, eliteIDs, game.ID)
	}
}

func TestGetAllTimeGreatsWithoutLegendary(t *testing.T) {
	f := newRankingFixture()
	elite := make([]dto.Game, 0, 8)
	for i := int64(410); i < 418; i++ {
		elite = append(elite, dto.Game{ID: i, Name: "Elite", Released: "2019-05-01", RatingsCount: 3000})
	}
	f.catalogRepo.responses = []dto.GamesResponse{
		// Legendary tier entirely unreleased.
		{Count: 1, Results: []dto.Game{{ID: 400, Name: "Vapor Legend", Released: "2030-01-01", RatingsCount: 5000}}},
		{Count: len(elite), Results: elite},
	}

	response := f.svc.GetAllTimeGreats(context.Background())

	require.Len(t, response.Results, 6)
	for _, game := range response.Results {
		assert.GreaterOrEqual(t, game.ID, int64(410))
	}
}
