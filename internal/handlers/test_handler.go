package handlers

import (
	"net/http"
	"time"

	"mocktest-service/internal/models"
	"mocktest-service/internal/service"

	"github.com/gin-gonic/gin"
)

type TestHandler struct {
	Service *service.TestService
}

func NewTestHandler(s *service.TestService) *TestHandler {
	return &TestHandler{Service: s}
}

func (h *TestHandler) CreateTest(c *gin.Context) {
	var test models.Test
	if err := c.ShouldBindJSON(&test); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.CreateTest(c.Request.Context(), &test, userID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, test.View(time.Now().UTC(), userID(c)))
}

func (h *TestHandler) GetTestByLink(c *gin.Context) {
	test, err := h.Service.GetByLink(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, test.View(time.Now().UTC(), userID(c)))
}

func (h *TestHandler) UpdateTest(c *gin.Context) {
	var in service.UpdateTestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	now := time.Now().UTC()
	test, err := h.Service.UpdateTest(c.Request.Context(), c.Param("id"), userID(c), in, now)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, test.View(now, userID(c)))
}

func (h *TestHandler) DeleteTest(c *gin.Context) {
	if err := h.Service.DeleteTest(c.Request.Context(), c.Param("id"), userID(c), time.Now().UTC()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *TestHandler) Register(c *gin.Context) {
	count, err := h.Service.Register(c.Request.Context(), c.Param("token"), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registration_count": count})
}

func (h *TestHandler) Unregister(c *gin.Context) {
	count, err := h.Service.Unregister(c.Request.Context(), c.Param("token"), userID(c), time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registration_count": count})
}

func (h *TestHandler) MyTests(c *gin.Context) {
	tests, err := h.Service.TestsByCreator(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shapeTests(tests, userID(c)))
}

func (h *TestHandler) RegisteredTests(c *gin.Context) {
	tests, err := h.Service.TestsByRegisteredUser(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shapeTests(tests, userID(c)))
}

func shapeTests(tests []models.Test, viewerID string) []models.TestView {
	now := time.Now().UTC()
	views := make([]models.TestView, 0, len(tests))
	for i := range tests {
		views = append(views, tests[i].View(now, viewerID))
	}
	return views
}
