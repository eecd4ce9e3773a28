package handlers

import (
	"net/http"

	"github.com/engagehq/engage-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// ReferralHandler handles colleague nominations and their completion
type ReferralHandler struct {
	referralService *services.ReferralService
}

// NewReferralHandler creates a new referral handler
func NewReferralHandler(referralService *services.ReferralService) *ReferralHandler {
	return &ReferralHandler{referralService: referralService}
}

type createReferralRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Position string `json:"position"`
	Message  string `json:"message"`
}

// Create handles POST /referrals
func (h *ReferralHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	referral, err := h.referralService.Create(c.Request.Context(), userID, req.Name, req.Email, req.Position, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, referral)
}

// Mine handles GET /referrals
func (h *ReferralHandler) Mine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	referrals, err := h.referralService.ByReferrer(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, referrals)
}

// All handles GET /admin/referrals
func (h *ReferralHandler) All(c *gin.Context) {
	var (
		referrals interface{}
		err       error
	)
	if c.Query("status") == "pending" {
		referrals, err = h.referralService.PendingReferrals(c.Request.Context())
	} else {
		referrals, err = h.referralService.All(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, referrals)
}

// Complete handles POST /admin/referrals/:id/complete
func (h *ReferralHandler) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	referral, err := h.referralService.Complete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, referral)
}
