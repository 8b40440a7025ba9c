package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nitintomar713/sacmtb-surya/internal/usecase"
)

type GameHandler struct {
	gameUC *usecase.GameUseCase
}

func NewGameHandler(gameUC *usecase.GameUseCase) *GameHandler {
	return &GameHandler{gameUC: gameUC}
}

func (h *GameHandler) SubmitScore(c echo.Context) error {
	req := struct {
		GameName string `json:"gameName"`
		Level    int    `json:"level"`
		Score    int    `json:"score"`
		PlayTime int    `json:"playTime"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}

	score, err := h.gameUC.UpdateScore(c.Request().Context(), currentUser(c), req.GameName, req.Level, req.Score, req.PlayTime)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, score)
}

func (h *GameHandler) Leaderboard(c echo.Context) error {
	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid limit"})
		}
		limit = parsed
	}

	entries, err := h.gameUC.TopScores(c.Request().Context(), c.Param("gameName"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *GameHandler) MyScores(c echo.Context) error {
	scores, err := h.gameUC.UserScores(c.Request().Context(), currentUser(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, scores)
}
