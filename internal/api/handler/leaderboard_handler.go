package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gigforge/marketplace/internal/core/domain"
	"github.com/gigforge/marketplace/internal/core/ports"
)

type leaderboardResponse struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
}

type LeaderboardHandler struct {
	service ports.LeaderboardService
}

func NewLeaderboardHandler(service ports.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// Top returns users ranked by XP.
//
// @Summary      XP leaderboard
// @Tags         leaderboard
// @Produce      json
// @Param        limit  query     int  false  "Number of ranks (default 10)"
// @Success      200    {object}  leaderboardResponse
// @Failure      400    {object}  errorResponse
// @Router       /leaderboard [get]
func (h *LeaderboardHandler) Top(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	entries, err := h.service.Top(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	return c.JSON(http.StatusOK, leaderboardResponse{Entries: entries})
}
