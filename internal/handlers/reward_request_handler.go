package handlers

import (
	"net/http"

	"github.com/engagehq/engage-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RewardRequestHandler handles redemption requests and their admin review
type RewardRequestHandler struct {
	requestService *services.RewardRequestService
}

// NewRewardRequestHandler creates a new reward request handler
func NewRewardRequestHandler(requestService *services.RewardRequestService) *RewardRequestHandler {
	return &RewardRequestHandler{requestService: requestService}
}

type createRequestBody struct {
	RewardID string `json:"rewardId" binding:"required"`
}

// Create handles POST /reward-requests
func (h *RewardRequestHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rewardID, err := primitive.ObjectIDFromHex(body.RewardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reward ID"})
		return
	}

	request, err := h.requestService.Create(c.Request.Context(), userID, rewardID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// Mine handles GET /reward-requests
func (h *RewardRequestHandler) Mine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// Pending handles GET /admin/reward-requests/pending
func (h *RewardRequestHandler) Pending(c *gin.Context) {
	requests, err := h.requestService.Pending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// Processed handles GET /admin/reward-requests/processed
func (h *RewardRequestHandler) Processed(c *gin.Context) {
	requests, err := h.requestService.Processed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// Approve handles POST /admin/reward-requests/:id/approve
func (h *RewardRequestHandler) Approve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	request, err := h.requestService.Approve(c.Request.Context(), id, adminID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// Reject handles POST /admin/reward-requests/:id/reject
func (h *RewardRequestHandler) Reject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	request, err := h.requestService.Reject(c.Request.Context(), id, adminID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}
