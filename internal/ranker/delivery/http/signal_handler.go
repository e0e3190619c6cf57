package http

import (
	"net/http"

	"gametale-ranker/internal/ranker/config"
	"gametale-ranker/internal/ranker/service"
	"gametale-ranker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SignalHandler handles HTTP requests for the video signal miner.
type SignalHandler struct {
	cfg           *config.Config
	signalService service.YouTubeSignalService
	refresher     service.TrendingRefresher
	logger        *logger.Logger
}

// NewSignalHandler creates a new SignalHandler. refresher may be nil when
// the serving process does not embed the refresh worker.
func NewSignalHandler(cfg *config.Config, signalService service.YouTubeSignalService, refresher service.TrendingRefresher, logger *logger.Logger) *SignalHandler {
	return &SignalHandler{cfg: cfg, signalService: signalService, refresher: refresher, logger: logger}
}

// RegisterRoutes registers the signal routes to the Echo group.
func (h *SignalHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/gameplay-check", h.CheckGameplay)
	g.GET("/trending", h.GetTrendingScore)
	g.GET("/game-video", h.GetGameVideo)
	g.POST("/refresh", h.Refresh)
}

// CheckGameplay godoc
// @Summary Check gameplay videos
// @Description Run the gameplay detection heuristic for a game name
// @Tags signals
// @Produce  json
// @Param   game_name  query   string  true    "Game name"
// @Success 200 {object} dto.GameplayCheckResult
// @Failure 400 {object} map[string]string
// @Router /signals/gameplay-check [get]
func (h *SignalHandler) CheckGameplay(c echo.Context) error {
	gameName := c.QueryParam("game_name")
	if gameName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "game_name is required"})
	}
	return c.JSON(http.StatusOK, h.signalService.CheckGameplayVideos(c.Request().Context(), gameName))
}

// GetTrendingScore godoc
// @Summary Get trending score
// @Description Mine the current video trending signal for a game name
// @Tags signals
// @Produce  json
// @Param   game_name  query   string  true    "Game name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /signals/trending [get]
func (h *SignalHandler) GetTrendingScore(c echo.Context) error {
	gameName := c.QueryParam("game_name")
	if gameName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "game_name is required"})
	}

	result := h.signalService.GetTrendingScore(c.Request().Context(), gameName)
	if result == nil {
		return c.JSON(http.StatusOK, echo.Map{"game_name": gameName, "found": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"game_name": gameName, "found": true, "result": result})
}

// GetGameVideo godoc
// @Summary Find a video for a game
// @Description Find an embeddable video for a game, preferring an official trailer over gameplay footage
// @Tags signals
// @Produce  json
// @Param   game_name  query   string  true    "Game name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /signals/game-video [get]
func (h *SignalHandler) GetGameVideo(c echo.Context) error {
	gameName := c.QueryParam("game_name")
	if gameName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "game_name is required"})
	}

	videoID, videoType := h.signalService.FindGameVideo(c.Request().Context(), gameName)
	if videoID == "" {
		return c.JSON(http.StatusOK, echo.Map{"game_name": gameName, "found": false})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"game_name":  gameName,
		"found":      true,
		"video_id":   videoID,
		"video_type": videoType,
	})
}

// Refresh godoc
// @Summary Refresh the trending cache
// @Description Run one trending cache refresh cycle, guarded by the shared token
// @Tags signals
// @Produce  json
// @Param   token  query   string  false   "Shared refresh token"
// @Success 200 {object} dto.RefreshSummary
// @Failure 401 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /signals/refresh [post]
func (h *SignalHandler) Refresh(c echo.Context) error {
	expected := h.cfg.Refresher.SecretToken
	if expected != "" {
		token := c.QueryParam("token")
		if token == "" {
			token = c.Request().Header.Get("X-Refresh-Token")
		}
		if token != expected {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
		}
	}

	if h.refresher == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Refresher not enabled"})
	}

	return c.JSON(http.StatusOK, h.refresher.Refresh(c.Request().Context()))
}
