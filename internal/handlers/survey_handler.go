package handlers

import (
	"net/http"

	"github.com/engagehq/engage-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurveyHandler handles survey question listing and answer submission
type SurveyHandler struct {
	surveyService *services.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveyService *services.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

// ListQuestions handles GET /questions
func (h *SurveyHandler) ListQuestions(c *gin.Context) {
	questions, err := h.surveyService.ActiveQuestions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

type submitAnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
	Rating     int    `json:"rating"`
}

// SubmitAnswer handles POST /surveys/responses
func (h *SurveyHandler) SubmitAnswer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questionID, err := primitive.ObjectIDFromHex(req.QuestionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question ID"})
		return
	}

	response, err := h.surveyService.SubmitAnswer(c.Request.Context(), userID, questionID, req.Answer, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// MyResponses handles GET /surveys/responses
func (h *SurveyHandler) MyResponses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	responses, err := h.surveyService.ResponsesByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}
