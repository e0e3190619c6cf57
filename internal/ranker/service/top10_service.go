package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"gametale-ranker/internal/ranker/config"
	"gametale-ranker/internal/ranker/dto"
	"gametale-ranker/internal/ranker/repository"
	"gametale-ranker/pkg/logger"
	"gametale-ranker/pkg/utils"
)

// Top10Service drives the daily theme rotation and the curated ranking
// lists. Everything here flips at midnight IST: the theme index walks the
// table by day of year, and the per-list shuffles reseed from the IST date
// string.
type Top10Service interface {
	GetTodaysTheme() dto.Top10Theme
	GetTodaysTop10(ctx context.Context) dto.Top10Response
	GetTop10ForTheme(ctx context.Context, theme dto.Top10Theme) []dto.Game
	GetAllRankings(ctx context.Context) []dto.RankingCategory
	ShouldRefresh(lastUpdated string) bool
	ThemeFromSlug(slug string) *dto.Top10Theme
	SlugFromTheme(theme dto.Top10Theme) string
	RankingReason(game dto.Game, rank int, theme dto.Top10Theme) string
}

type top10Service struct {
	cfg         *config.Config
	log         *logger.Logger
	catalogRepo repository.CatalogRepository
	now         func() time.Time
}

// NewTop10Service creates a new daily rotation service.
func NewTop10Service(cfg *config.Config, log *logger.Logger, catalogRepo repository.CatalogRepository) Top10Service {
	return &top10Service{
		cfg:         cfg,
		log:         log,
		catalogRepo: catalogRepo,
		now:         time.Now,
	}
}

// GetTodaysTheme returns the theme for the current IST day of year.
func (s *top10Service) GetTodaysTheme() dto.Top10Theme {
	istDate := utils.ISTDateAt(s.now())
	return top10Themes[istDate.DayOfYear%len(top10Themes)]
}

// BuildThemeQuery translates a theme into its catalog list query. The
// metacritic floor keeps out unreviewed shovelware.
func BuildThemeQuery(theme dto.Top10Theme, pageSize int) dto.GamesQuery {
	query := dto.GamesQuery{
		PageSize:   pageSize,
		Ordering:   theme.Ordering,
		Genres:     theme.Genre,
		Tags:       theme.Tag,
		Metacritic: "1,100",
	}
	if query.Ordering == "" {
		query.Ordering = "-rating"
	}
	if theme.Year > 0 {
		year := strconv.Itoa(theme.Year)
		query.Dates = year + "-01-01," + year + "-12-31"
	}
	return query
}

// GetTodaysTop10 returns today's theme with its ten games. Candidates are
// over-fetched, filtered to entries worth displaying, then date-seed
// shuffled so consecutive days with the same theme query still vary.
func (s *top10Service) GetTodaysTop10(ctx context.Context) dto.Top10Response {
	istDate := utils.ISTDateAt(s.now())
	theme := top10Themes[istDate.DayOfYear%len(top10Themes)]

	return dto.Top10Response{
		Theme:       theme,
		Games:       s.GetTop10ForTheme(ctx, theme),
		LastUpdated: istDate.Date,
	}
}

// GetTop10ForTheme returns the ten games for any theme, today's or a
// slug-addressed one.
func (s *top10Service) GetTop10ForTheme(ctx context.Context, theme dto.Top10Theme) []dto.Game {
	istDate := utils.ISTDateAt(s.now())

	response, err := s.catalogRepo.GetGames(ctx, BuildThemeQuery(theme, 20))
	if err != nil {
		s.log.ErrorContext(ctx, "Theme catalog fetch failed",
			logger.StringField("theme", theme.ID), logger.ErrorField(err))
		return []dto.Game{}
	}

	valid := make([]dto.Game, 0, len(response.Results))
	for _, game := range response.Results {
		if game.BackgroundImage == "" || game.Metacritic == nil || game.TBA {
			continue
		}
		valid = append(valid, game)
	}

	shuffled := utils.SeededShuffle(valid, utils.DateSeed(istDate.Date))
	if len(shuffled) > 10 {
		shuffled = shuffled[:10]
	}
	return shuffled
}

// GetAllRankings returns the three curated ranking lists. Each list degrades
// to empty on upstream failure instead of failing the whole set.
func (s *top10Service) GetAllRankings(ctx context.Context) []dto.RankingCategory {
	istDate := utils.ISTDateAt(s.now())
	currentYear := istDate.Now.Year()

	return []dto.RankingCategory{
		{
			ID:          "todays-top-10",
			Title:       "Today's Top 10",
			Subtitle:    "Most popular games right now",
			Icon:        "🔥",
			Games:       s.todaysTop10Games(ctx, istDate),
			LastUpdated: istDate.Date,
		},
		{
			ID:          "top-" + strconv.Itoa(currentYear),
			Title:       "Best of " + strconv.Itoa(currentYear),
			Subtitle:    "Top rated games of " + strconv.Itoa(currentYear),
			Icon:        "🏆",
			Games:       s.bestOfYearGames(ctx, istDate, currentYear),
			LastUpdated: istDate.Date,
		},
		{
			ID:          "horror-2025",
			Title:       "Horror Gems 2025",
			Subtitle:    "Best horror games of 2025",
			Icon:        "👻",
			Games:       s.horrorGames(ctx, istDate),
			LastUpdated: istDate.Date,
		},
	}
}

// todaysTop10Games is the 30-day popularity list: well-rated recent games,
// date-seed shuffled for daily variety.
func (s *top10Service) todaysTop10Games(ctx context.Context, istDate utils.ISTDate) []dto.Game {
	nowUTC := s.now().UTC()
	response, err := s.catalogRepo.GetGames(ctx, dto.GamesQuery{
		Ordering:   "-rating,-ratings_count",
		Dates:      utils.DateString(nowUTC.AddDate(0, 0, -30)) + "," + utils.DateString(nowUTC),
		PageSize:   50,
		Metacritic: "70,100",
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Todays top 10 fetch failed", logger.ErrorField(err))
		return []dto.Game{}
	}

	valid := make([]dto.Game, 0, len(response.Results))
	for _, game := range response.Results {
		if game.BackgroundImage == "" || game.Rating < 3.5 || game.RatingsCount < ratingsFloor || game.TBA {
			continue
		}
		valid = append(valid, game)
	}
	if len(valid) > 30 {
		valid = valid[:30]
	}

	shuffled := utils.SeededShuffle(valid, utils.DateSeed(istDate.Date))
	if len(shuffled) > 10 {
		shuffled = shuffled[:10]
	}
	return shuffled
}

// bestOfYearGames is the metacritic list for the current year.
func (s *top10Service) bestOfYearGames(ctx context.Context, istDate utils.ISTDate, year int) []dto.Game {
	todayStr := utils.DateString(s.now().UTC())
	yearStr := strconv.Itoa(year)
	response, err := s.catalogRepo.GetGames(ctx, dto.GamesQuery{
		Ordering:   "-metacritic,-rating",
		Dates:      yearStr + "-01-01," + yearStr + "-12-31",
		PageSize:   50,
		Metacritic: "80,100",
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Best of year fetch failed", logger.ErrorField(err))
		return []dto.Game{}
	}

	valid := make([]dto.Game, 0, len(response.Results))
	for _, game := range response.Results {
		if game.BackgroundImage == "" || game.Metacritic == nil || *game.Metacritic < 80 || game.TBA {
			continue
		}
		if game.Released == "" || game.Released > todayStr {
			continue
		}
		valid = append(valid, game)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return *valid[i].Metacritic > *valid[j].Metacritic
	})
	if len(valid) > 20 {
		valid = valid[:20]
	}

	shuffled := utils.SeededShuffle(valid, utils.DateSeed(istDate.Date))
	if len(shuffled) > 10 {
		shuffled = shuffled[:10]
	}
	return shuffled
}

// horrorGames is the fixed 2025 horror list.
func (s *top10Service) horrorGames(ctx context.Context, istDate utils.ISTDate) []dto.Game {
	response, err := s.catalogRepo.GetGames(ctx, dto.GamesQuery{
		Ordering: "-metacritic,-rating",
		Dates:    "2025-01-01,2025-12-31",
		Tags:     "horror",
		PageSize: 50,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Horror list fetch failed", logger.ErrorField(err))
		return []dto.Game{}
	}

	valid := make([]dto.Game, 0, len(response.Results))
	for _, game := range response.Results {
		if game.BackgroundImage == "" || game.Rating < 3.0 || game.TBA {
			continue
		}
		valid = append(valid, game)
	}
	if len(valid) > 20 {
		valid = valid[:20]
	}

	shuffled := utils.SeededShuffle(valid, utils.DateSeed(istDate.Date))
	if len(shuffled) > 10 {
		shuffled = shuffled[:10]
	}
	return shuffled
}

// ShouldRefresh reports whether a cached list from lastUpdated (YYYY-MM-DD)
// is stale, i.e. midnight IST has passed since it was built.
func (s *top10Service) ShouldRefresh(lastUpdated string) bool {
	return lastUpdated != utils.ISTDateAt(s.now()).Date
}

// ThemeFromSlug resolves a URL slug (or raw theme ID) to its theme.
func (s *top10Service) ThemeFromSlug(slug string) *dto.Top10Theme {
	for i := range top10Themes {
		if top10Themes[i].ID == slug {
			return &top10Themes[i]
		}
	}
	for i := range top10Themes {
		if s.SlugFromTheme(top10Themes[i]) == slug {
			return &top10Themes[i]
		}
	}
	return nil
}

// SlugFromTheme returns the SEO slug for a theme.
func (s *top10Service) SlugFromTheme(theme dto.Top10Theme) string {
	if slug, ok := themeSlugs[theme.ID]; ok {
		return slug
	}
	return theme.ID
}

// RankingReason produces the deterministic blurb shown next to a ranked
// game. Reasons are collected in priority order; the top three ranks get a
// fixed suffix, lower ranks walk the collected list.
func (s *top10Service) RankingReason(game dto.Game, rank int, theme dto.Top10Theme) string {
	var reasons []string

	if game.Metacritic != nil {
		switch {
		case *game.Metacritic >= 95:
			reasons = append(reasons, "Universal critical acclaim")
		case *game.Metacritic >= 90:
			reasons = append(reasons, "Outstanding reviews across the board")
		case *game.Metacritic >= 85:
			reasons = append(reasons, "Highly praised by critics")
		case *game.Metacritic >= 80:
			reasons = append(reasons, "Strong critical reception")
		}
	}

	if game.Rating >= 4.5 {
		reasons = append(reasons, "Beloved by the community")
	} else if game.Rating >= 4.0 {
		reasons = append(reasons, "Fan favorite")
	}

	switch {
	case game.Playtime >= 100:
		reasons = append(reasons, "Incredible depth and replayability")
	case game.Playtime >= 50:
		reasons = append(reasons, "Substantial content and lasting appeal")
	case game.Playtime >= 20:
		reasons = append(reasons, "Well-paced and engaging")
	case game.Playtime > 0 && game.Playtime <= 10:
		reasons = append(reasons, "Tight, focused experience")
	}

	if theme.Genre == "horror" || theme.Tag == "horror" {
		reasons = append(reasons, "Masterful tension and atmosphere")
	}
	if theme.Tag == "story-rich" || theme.ID == "story" {
		reasons = append(reasons, "Unforgettable narrative")
	}
	if theme.Tag == "souls-like" || theme.ID == "soulslike" {
		reasons = append(reasons, "Rewarding challenge and tight combat")
	}
	if theme.Tag == "open-world" || theme.ID == "openworld" {
		reasons = append(reasons, "Vast world to explore")
	}
	if theme.Genre == "indie" || theme.ID == "indie" {
		reasons = append(reasons, "Creative vision and unique design")
	}

	switch rank {
	case 1:
		if len(reasons) > 0 {
			return reasons[0] + ". The definitive experience."
		}
		return "The undisputed champion of the genre."
	case 2:
		if len(reasons) > 0 {
			return reasons[0] + ". A close second."
		}
		return "Nearly perfect in every way."
	case 3:
		if len(reasons) > 0 {
			return reasons[0] + ". A true classic."
		}
		return "A must-play for any fan."
	}

	if len(reasons) > 0 {
		idx := rank - 1
		if idx > len(reasons)-1 {
			idx = len(reasons) - 1
		}
		return reasons[idx%len(reasons)]
	}
	return "A standout title that earned its place."
}
