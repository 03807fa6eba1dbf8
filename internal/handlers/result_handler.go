package handlers

import (
	"net/http"
	"strconv"
	"time"

	"mocktest-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	Service *service.ResultService
}

func NewResultHandler(s *service.ResultService) *ResultHandler {
	return &ResultHandler{Service: s}
}

func (h *ResultHandler) MyResult(c *gin.Context) {
	view, err := h.Service.MyResult(c.Request.Context(), c.Param("id"), userID(c), time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ResultHandler) Leaderboard(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	board, err := h.Service.Leaderboard(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *ResultHandler) ExportLeaderboard(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="leaderboard.csv"`)
	if err := h.Service.ExportLeaderboard(c.Request.Context(), c.Param("id"), c.Writer); err != nil {
		respondError(c, err)
	}
}
