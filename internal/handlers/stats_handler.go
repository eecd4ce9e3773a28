package handlers

import (
	"net/http"

	"github.com/engagehq/engage-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// StatsHandler serves the admin dashboard counters
type StatsHandler struct {
	userService     *services.UserService
	questionService *services.QuestionService
	rewardService   *services.RewardService
	requestService  *services.RewardRequestService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(
	userService *services.UserService,
	questionService *services.QuestionService,
	rewardService *services.RewardService,
	requestService *services.RewardRequestService,
) *StatsHandler {
	return &StatsHandler{
		userService:     userService,
		questionService: questionService,
		rewardService:   rewardService,
		requestService:  requestService,
	}
}

// Get handles GET /admin/stats
func (h *StatsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.userService.Count(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	questions, err := h.questionService.Count(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	rewards, err := h.rewardService.Count(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	pending, err := h.requestService.CountPending(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":            users,
		"totalQuestions":        questions,
		"totalRewards":          rewards,
		"pendingRewardRequests": pending,
	})
}
