package http

import (
	"net/http"
	"strconv"

	"gametale-ranker/internal/ranker/dto"
	"gametale-ranker/internal/ranker/repository"
	"gametale-ranker/internal/ranker/service"
	"gametale-ranker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// GameHandler handles HTTP requests for catalog passthrough endpoints.
type GameHandler struct {
	catalogRepo    repository.CatalogRepository
	releaseService service.ReleaseService
	logger         *logger.Logger
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(catalogRepo repository.CatalogRepository, releaseService service.ReleaseService, logger *logger.Logger) *GameHandler {
	return &GameHandler{catalogRepo: catalogRepo, releaseService: releaseService, logger: logger}
}

// RegisterRoutes registers the game routes to the Echo group.
func (h *GameHandler) RegisterRoutes(games, meta *echo.Group) {
	games.GET("/search", h.SearchGames)
	games.GET("/genre/:slug", h.GetGamesByGenre)
	games.GET("/:id", h.GetGameDetails)
	games.GET("/:id/screenshots", h.GetGameScreenshots)
	games.GET("/:id/trailers", h.GetGameTrailers)
	meta.GET("/genres", h.GetGenres)
	meta.GET("/platforms", h.GetPlatforms)
}

// SearchGames godoc
// @Summary Search games
// @Description Search the catalog by name
// @Tags games
// @Produce  json
// @Param   query      query   string  true    "Search query"
// @Param   page       query   int     false   "Page number"
// @Param   page_size  query   int     false   "Page size"
// @Success 200 {object} dto.GamesResponse
// @Failure 400 {object} map[string]string
// @Router /games/search [get]
func (h *GameHandler) SearchGames(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "query is required"})
	}

	response, err := h.catalogRepo.GetGames(c.Request().Context(), dto.GamesQuery{
		Search:   query,
		Page:     intQueryParam(c, "page", 1),
		PageSize: intQueryParam(c, "page_size", 20),
	})
	if err != nil {
		h.logger.Error("Game search failed", logger.ErrorField(err))
		return c.JSON(http.StatusOK, dto.EmptyGamesResponse())
	}
	return c.JSON(http.StatusOK, response)
}

// GetGamesByGenre godoc
// @Summary Get games by genre
// @Description Get a filtered catalog page for one genre
// @Tags games
// @Produce  json
// @Param   slug        path    string  true    "Genre slug"
// @Param   ordering    query   string  false   "Catalog ordering"
// @Param   metacritic  query   string  false   "Metacritic range, e.g. 80,100"
// @Param   year        query   string  false   "Release year"
// @Param   page        query   int     false   "Page number"
// @Param   page_size   query   int     false   "Page size"
// @Success 200 {object} dto.GamesResponse
// @Router /games/genre/{slug} [get]
func (h *GameHandler) GetGamesByGenre(c echo.Context) error {
	query := dto.GamesQuery{
		Genres:     c.Param("slug"),
		Ordering:   c.QueryParam("ordering"),
		Metacritic: c.QueryParam("metacritic"),
		Page:       intQueryParam(c, "page", 1),
		PageSize:   intQueryParam(c, "page_size", 20),
	}
	if query.Ordering == "" {
		query.Ordering = "-rating"
	}
	if year := c.QueryParam("year"); year != "" {
		query.Dates = year + "-01-01," + year + "-12-31"
	}

	response, err := h.catalogRepo.GetGames(c.Request().Context(), query)
	if err != nil {
		h.logger.Error("Genre listing failed", logger.ErrorField(err))
		return c.JSON(http.StatusOK, dto.EmptyGamesResponse())
	}
	return c.JSON(http.StatusOK, response)
}

// GetGameDetails godoc
// @Summary Get game details
// @Description Get one game's full catalog record plus its resolved release status
// @Tags games
// @Produce  json
// @Param   id  path    int true    "Game ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /games/{id} [get]
func (h *GameHandler) GetGameDetails(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid game ID"})
	}

	game, err := h.catalogRepo.GetGameDetails(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("Game details fetch failed", logger.Field("game_id", id), logger.ErrorField(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Game not found"})
	}

	released := h.releaseService.IsGameReleased(c.Request().Context(), *game)
	return c.JSON(http.StatusOK, echo.Map{
		"game":        game,
		"is_released": released,
	})
}

// GetGameScreenshots godoc
// @Summary Get game screenshots
// @Tags games
// @Produce  json
// @Param   id  path    int true    "Game ID"
// @Success 200 {object} dto.ScreenshotsResponse
// @Router /games/{id}/screenshots [get]
func (h *GameHandler) GetGameScreenshots(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid game ID"})
	}

	response, err := h.catalogRepo.GetGameScreenshots(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("Screenshots fetch failed", logger.Field("game_id", id), logger.ErrorField(err))
	}
	if response.Results == nil {
		response.Results = []dto.Screenshot{}
	}
	return c.JSON(http.StatusOK, response)
}

// GetGameTrailers godoc
// @Summary Get game trailers
// @Tags games
// @Produce  json
// @Param   id  path    int true    "Game ID"
// @Success 200 {object} dto.TrailersResponse
// @Router /games/{id}/trailers [get]
func (h *GameHandler) GetGameTrailers(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid game ID"})
	}

	response, err := h.catalogRepo.GetGameTrailers(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("Trailers fetch failed", logger.Field("game_id", id), logger.ErrorField(err))
	}
	if response.Results == nil {
		response.Results = []dto.GameTrailer{}
	}
	return c.JSON(http.StatusOK, response)
}

// GetGenres godoc
// @Summary List genres
// @Tags games
// @Produce  json
// @Success 200 {object} dto.GenresResponse
// @Router /genres [get]
func (h *GameHandler) GetGenres(c echo.Context) error {
	response, err := h.catalogRepo.GetGenres(c.Request().Context())
	if err != nil {
		h.logger.Error("Genres fetch failed", logger.ErrorField(err))
	}
	if response.Results == nil {
		response.Results = []dto.Genre{}
	}
	return c.JSON(http.StatusOK, response)
}

// GetPlatforms godoc
// @Summary List platforms
// @Tags games
// @Produce  json
// @Success 200 {object} dto.PlatformsResponse
// @Router /platforms [get]
func (h *GameHandler) GetPlatforms(c echo.Context) error {
	response, err := h.catalogRepo.GetPlatforms(c.Request().Context())
	if err != nil {
		h.logger.Error("Platforms fetch failed", logger.ErrorField(err))
	}
	if response.Results == nil {
		response.Results = []dto.Platform{}
	}
	return c.JSON(http.StatusOK, response)
}
