package handlers

import (
	"net/http"
	"time"

	"github.com/engagehq/engage-backend/internal/models"
	"github.com/engagehq/engage-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// QuestionHandler handles admin question management
type QuestionHandler struct {
	questionService *services.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

type questionRequest struct {
	Text     string `json:"text" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=rating text"`
	Points   int    `json:"points" binding:"required,min=1"`
	IsActive *bool  `json:"isActive"`
}

// ListAll handles GET /admin/questions
func (h *QuestionHandler) ListAll(c *gin.Context) {
	questions, err := h.questionService.GetAll(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// Create handles POST /admin/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	question := &models.Question{
		Text:      req.Text,
		Type:      models.QuestionType(req.Type),
		Points:    req.Points,
		IsActive:  active,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.questionService.Create(c.Request.Context(), question); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// Update handles PUT /admin/questions/:id
func (h *QuestionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	question.Text = req.Text
	question.Type = models.QuestionType(req.Type)
	question.Points = req.Points
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}
	question.UpdatedAt = time.Now()

	if err := h.questionService.Update(c.Request.Context(), question); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// Delete handles DELETE /admin/questions/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "question deleted"})
}
