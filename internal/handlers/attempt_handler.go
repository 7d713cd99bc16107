package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quiz-backend/internal/middleware"
	"quiz-backend/internal/models"
	"quiz-backend/internal/service"
)

type AttemptHandler struct {
	Service *service.AttemptService
}

func NewAttemptHandler(s *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{Service: s}
}

func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	sub, err := h.Service.StartAttempt(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

type submitRequest struct {
	Answers []service.AnswerInput `json:"answers" binding:"required"`
}

func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := h.Service.SubmitAttempt(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AttemptHandler) GetRetryStatus(c *gin.Context) {
	status, err := h.Service.GetRetryStatus(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *AttemptHandler) GetHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	status := models.SubmissionStatus(c.Query("status"))

	submissions, total, err := h.Service.GetHistory(c.Request.Context(), middleware.UserID(c), status, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	if submissions == nil {
		submissions = []models.Submission{}
	}
	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
	})
}

func (h *AttemptHandler) GetPerformanceSummary(c *gin.Context) {
	summary, err := h.Service.GetPerformanceSummary(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
