package http

import (
	"net/http"
	"strconv"

	"gametale-ranker/internal/ranker/dto"
	"gametale-ranker/internal/ranker/service"
	"gametale-ranker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RankingHandler handles HTTP requests for the ranked surfaces.
type RankingHandler struct {
	rankingService service.RankingService
	top10Service   service.Top10Service
	logger         *logger.Logger
}

// NewRankingHandler creates a new RankingHandler.
func NewRankingHandler(rankingService service.RankingService, top10Service service.Top10Service, logger *logger.Logger) *RankingHandler {
	return &RankingHandler{rankingService: rankingService, top10Service: top10Service, logger: logger}
}

// RegisterRoutes registers the ranking routes to the Echo group.
func (h *RankingHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/trending", h.GetTrending)
	g.GET("/upcoming", h.GetUpcoming)
	g.GET("/todays-pick", h.GetTodaysPick)
	g.GET("/goats", h.GetAllTimeGreats)
	g.GET("/top10", h.GetTodaysTop10)
	g.GET("/top10/:slug", h.GetTop10BySlug)
	g.GET("/categories", h.GetCategories)
}

// GetTrending godoc
// @Summary Get trending games
// @Description Get one page of the trending surface, scored and rotated weekly
// @Tags rankings
// @Produce  json
// @Param   page       query   int false   "Page number"
// @Param   page_size  query   int false   "Page size"
// @Success 200 {object} dto.GamesResponse
// @Router /rankings/trending [get]
func (h *RankingHandler) GetTrending(c echo.Context) error {
	page := intQueryParam(c, "page", 1)
	pageSize := intQueryParam(c, "page_size", 12)
	return c.JSON(http.StatusOK, h.rankingService.GetTrendingGames(c.Request().Context(), page, pageSize))
}

// GetUpcoming godoc
// @Summary Get upcoming games
// @Description Get future-dated current-year games, rotated every three days
// @Tags rankings
// @Produce  json
// @Param   page       query   int false   "Page number"
// @Param   page_size  query   int false   "Page size"
// @Success 200 {object} dto.GamesResponse
// @Router /rankings/upcoming [get]
func (h *RankingHandler) GetUpcoming(c echo.Context) error {
	page := intQueryParam(c, "page", 1)
	pageSize := intQueryParam(c, "page_size", 4)
	return c.JSON(http.StatusOK, h.rankingService.GetUpcomingGames(c.Request().Context(), page, pageSize))
}

// GetTodaysPick godoc
// @Summary Get today's pick
// @Description Get the featured game for the current IST day
// @Tags rankings
// @Produce  json
// @Success 200 {object} dto.Game
// @Failure 404 {object} map[string]string
// @Router /rankings/todays-pick [get]
func (h *RankingHandler) GetTodaysPick(c echo.Context) error {
	pick := h.rankingService.GetTodaysPick(c.Request().Context())
	if pick == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No pick available today"})
	}
	return c.JSON(http.StatusOK, pick)
}

// GetAllTimeGreats godoc
// @Summary Get all-time greats
// @Description Get one featured legendary game plus an elite grid
// @Tags rankings
// @Produce  json
// @Success 200 {object} dto.GamesResponse
// @Router /rankings/goats [get]
func (h *RankingHandler) GetAllTimeGreats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.rankingService.GetAllTimeGreats(c.Request().Context()))
}

// GetTodaysTop10 godoc
// @Summary Get today's top 10
// @Description Get the daily rotating theme with its ten games
// @Tags rankings
// @Produce  json
// @Success 200 {object} dto.Top10Response
// @Router /rankings/top10 [get]
func (h *RankingHandler) GetTodaysTop10(c echo.Context) error {
	return c.JSON(http.StatusOK, h.top10Service.GetTodaysTop10(c.Request().Context()))
}

// GetTop10BySlug godoc
// @Summary Get a top 10 list by theme slug
// @Description Get the ten games for a specific theme addressed by its SEO slug
// @Tags rankings
// @Produce  json
// @Param   slug  path    string  true    "Theme slug"
// @Success 200 {object} dto.Top10Response
// @Failure 404 {object} map[string]string
// @Router /rankings/top10/{slug} [get]
func (h *RankingHandler) GetTop10BySlug(c echo.Context) error {
	theme := h.top10Service.ThemeFromSlug(c.Param("slug"))
	if theme == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Unknown theme"})
	}
	games := h.top10Service.GetTop10ForTheme(c.Request().Context(), *theme)
	return c.JSON(http.StatusOK, dto.Top10Response{
		Theme: *theme,
		Games: games,
	})
}

// GetCategories godoc
// @Summary Get curated ranking categories
// @Description Get the curated ranking lists, reseeded daily at midnight IST
// @Tags rankings
// @Produce  json
// @Success 200 {array} dto.RankingCategory
// @Router /rankings/categories [get]
func (h *RankingHandler) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.top10Service.GetAllRankings(c.Request().Context()))
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
