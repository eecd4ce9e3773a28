package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/engagehq/engage-backend/api/routes"
	"github.com/engagehq/engage-backend/internal/config"
	"github.com/engagehq/engage-backend/internal/handlers"
	"github.com/engagehq/engage-backend/internal/repositories"
	mongorepo "github.com/engagehq/engage-backend/internal/repositories/mongodb"
	"github.com/engagehq/engage-backend/internal/services"
	"github.com/engagehq/engage-backend/pkg/filestore"
	"github.com/engagehq/engage-backend/pkg/logger"
	"github.com/engagehq/engage-backend/pkg/mongodb"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load configuration: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
	cancel()
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Errorf("error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	files, err := filestore.NewLocalStore(cfg.Storage.UploadDir, cfg.Storage.BaseURL)
	if err != nil {
		logger.Fatalf("failed to initialize file storage: %v", err)
	}

	// Repositories
	var (
		userRepo        repositories.UserRepository             = mongorepo.NewUserRepository(db)
		questionRepo    repositories.QuestionRepository         = mongorepo.NewQuestionRepository(db)
		responseRepo    repositories.SurveyResponseRepository   = mongorepo.NewSurveyResponseRepository(db)
		referralRepo    repositories.ReferralRepository         = mongorepo.NewReferralRepository(db)
		rewardRepo      repositories.RewardRepository           = mongorepo.NewRewardRepository(db)
		requestRepo     repositories.RewardRequestRepository    = mongorepo.NewRewardRequestRepository(db)
		transactionRepo repositories.PointTransactionRepository = mongorepo.NewPointTransactionRepository(db)
		materialRepo    repositories.MaterialRepository         = mongorepo.NewMaterialRepository(db)
	)

	// Services
	ledgerService := services.NewLedgerService(userRepo, transactionRepo)
	authService := services.NewAuthService(userRepo, &cfg.JWT)
	userService := services.NewUserService(userRepo, ledgerService)
	surveyService := services.NewSurveyService(questionRepo, responseRepo, userRepo, ledgerService)
	referralService := services.NewReferralService(referralRepo, userRepo, ledgerService, cfg.Points.ReferralBonus)
	questionService := services.NewQuestionService(questionRepo)
	rewardService := services.NewRewardService(rewardRepo)
	requestService := services.NewRewardRequestService(requestRepo, rewardRepo, ledgerService)
	materialService := services.NewMaterialService(materialRepo)

	// Handlers
	deps := routes.HandlerDependencies{
		Auth:          handlers.NewAuthHandler(authService),
		User:          handlers.NewUserHandler(userService, ledgerService),
		Survey:        handlers.NewSurveyHandler(surveyService),
		Question:      handlers.NewQuestionHandler(questionService),
		Referral:      handlers.NewReferralHandler(referralService),
		Reward:        handlers.NewRewardHandler(rewardService),
		RewardRequest: handlers.NewRewardRequestHandler(requestService),
		Material:      handlers.NewMaterialHandler(materialService, files),
		Stats:         handlers.NewStatsHandler(userService, questionService, rewardService, requestService),
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("forced shutdown: %v", err)
	}

	logger.Info("server stopped")
}
