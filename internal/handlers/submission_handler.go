package handlers

import (
	"net/http"
	"time"

	"mocktest-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	Service *service.SubmissionService
}

func NewSubmissionHandler(s *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{Service: s}
}

type submitRequest struct {
	Answers map[string]string `json:"answers"`
}

func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub, err := h.Service.Submit(c.Request.Context(), c.Param("id"), userID(c), userName(c), req.Answers, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
