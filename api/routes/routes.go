package routes

import (
	"github.com/engagehq/engage-backend/internal/config"
	"github.com/engagehq/engage-backend/internal/handlers"
	"github.com/engagehq/engage-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies bundles the handlers the router wires up.
type HandlerDependencies struct {
	Auth          *handlers.AuthHandler
	User          *handlers.UserHandler
	Survey        *handlers.SurveyHandler
	Question      *handlers.QuestionHandler
	Referral      *handlers.ReferralHandler
	Reward        *handlers.RewardHandler
	RewardRequest *handlers.RewardRequestHandler
	Material      *handlers.MaterialHandler
	Stats         *handlers.StatsHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Uploaded material files
	router.Static(cfg.Storage.BaseURL, cfg.Storage.UploadDir)

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.Auth.Register)
			auth.POST("/login", deps.Auth.Login)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		// Profile routes
		protected.GET("/users/me", deps.User.GetMe)
		protected.GET("/users/me/transactions", deps.User.GetMyTransactions)

		// Survey routes
		protected.GET("/questions", deps.Survey.ListQuestions)
		surveys := protected.Group("/surveys")
		{
			surveys.POST("/responses", deps.Survey.SubmitAnswer)
			surveys.GET("/responses", deps.Survey.MyResponses)
		}

		// Referral routes
		referrals := protected.Group("/referrals")
		{
			referrals.POST("", deps.Referral.Create)
			referrals.GET("", deps.Referral.Mine)
		}

		// Reward routes
		protected.GET("/rewards", deps.Reward.ListActive)
		requests := protected.Group("/reward-requests")
		{
			requests.POST("", deps.RewardRequest.Create)
			requests.GET("", deps.RewardRequest.Mine)
		}

		// Material routes
		materials := protected.Group("/materials")
		{
			materials.GET("", deps.Material.List)
			materials.GET("/:id", deps.Material.Get)
		}
	}

	// Admin routes
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg))
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/stats", deps.Stats.Get)

		// User management
		users := admin.Group("/users")
		{
			users.GET("", deps.User.GetAllUsers)
			users.GET("/:id", deps.User.GetUserByID)
			users.PUT("/:id", deps.User.UpdateUser)
			users.POST("/:id/deactivate", deps.User.DeactivateUser)
			users.DELETE("/:id", deps.User.DeleteUser)
		}

		// Question management
		questions := admin.Group("/questions")
		{
			questions.GET("", deps.Question.ListAll)
			questions.POST("", deps.Question.Create)
			questions.PUT("/:id", deps.Question.Update)
			questions.DELETE("/:id", deps.Question.Delete)
		}

		// Referral review
		referrals := admin.Group("/referrals")
		{
			referrals.GET("", deps.Referral.All)
			referrals.POST("/:id/complete", deps.Referral.Complete)
		}

		// Reward management
		rewards := admin.Group("/rewards")
		{
			rewards.GET("", deps.Reward.ListAll)
			rewards.POST("", deps.Reward.Create)
			rewards.PUT("/:id", deps.Reward.Update)
			rewards.DELETE("/:id", deps.Reward.Delete)
		}

		// Reward request review
		requests := admin.Group("/reward-requests")
		{
			requests.GET("/pending", deps.RewardRequest.Pending)
			requests.GET("/processed", deps.RewardRequest.Processed)
			requests.POST("/:id/approve", deps.RewardRequest.Approve)
			requests.POST("/:id/reject", deps.RewardRequest.Reject)
		}

		// Material management
		materials := admin.Group("/materials")
		{
			materials.GET("", deps.Material.ListAll)
			materials.POST("", deps.Material.Create)
			materials.POST("/upload", deps.Material.Upload)
			materials.PUT("/:id", deps.Material.Update)
			materials.DELETE("/:id", deps.Material.Delete)
		}
	}

	return router
}
