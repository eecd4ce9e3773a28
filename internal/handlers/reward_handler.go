package handlers

import (
	"net/http"
	"time"

	"github.com/engagehq/engage-backend/internal/models"
	"github.com/engagehq/engage-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// RewardHandler handles the rewards shop listing and admin reward management
type RewardHandler struct {
	rewardService *services.RewardService
}

// NewRewardHandler creates a new reward handler
func NewRewardHandler(rewardService *services.RewardService) *RewardHandler {
	return &RewardHandler{rewardService: rewardService}
}

// ListActive handles GET /rewards
func (h *RewardHandler) ListActive(c *gin.Context) {
	rewards, err := h.rewardService.GetAll(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rewards)
}

// ListAll handles GET /admin/rewards
func (h *RewardHandler) ListAll(c *gin.Context) {
	rewards, err := h.rewardService.GetAll(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rewards)
}

type rewardRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Points      int    `json:"points" binding:"required,min=1"`
	Category    string `json:"category"`
	IsActive    *bool  `json:"isActive"`
}

// Create handles POST /admin/rewards
func (h *RewardHandler) Create(c *gin.Context) {
	var req rewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	reward := &models.Reward{
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		Category:    req.Category,
		IsActive:    active,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := h.rewardService.Create(c.Request.Context(), reward); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reward)
}

// Update handles PUT /admin/rewards/:id
func (h *RewardHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req rewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reward, err := h.rewardService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	reward.Title = req.Title
	reward.Description = req.Description
	reward.Points = req.Points
	reward.Category = req.Category
	if req.IsActive != nil {
		reward.IsActive = *req.IsActive
	}
	reward.UpdatedAt = time.Now()

	if err := h.rewardService.Update(c.Request.Context(), reward); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reward)
}

// Delete handles DELETE /admin/rewards/:id
func (h *RewardHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.rewardService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reward deleted"})
}
