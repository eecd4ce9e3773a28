package services

import (
	"context"

	"github.com/engagehq/engage-backend/internal/models"
	"github.com/engagehq/engage-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionService is the admin CRUD surface over survey questions
type QuestionService struct {
	questionRepo repositories.QuestionRepository
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(questionRepo repositories.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

func (s *QuestionService) Create(ctx context.Context, question *models.Question) error {
	return s.questionRepo.Create(ctx, question)
}

func (s *QuestionService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	return s.questionRepo.FindByID(ctx, id)
}

func (s *QuestionService) GetAll(ctx context.Context, activeOnly bool) ([]*models.Question, error) {
	return s.questionRepo.FindAll(ctx, activeOnly)
}

func (s *QuestionService) Update(ctx context.Context, question *models.Question) error {
	return s.questionRepo.Update(ctx, question)
}

func (s *QuestionService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.questionRepo.Delete(ctx, id)
}

func (s *QuestionService) Count(ctx context.Context) (int64, error) {
	return s.questionRepo.Count(ctx)
}

// RewardService is the admin CRUD surface over the rewards catalog
type RewardService struct {
	rewardRepo repositories.RewardRepository
}

// NewRewardService creates a new RewardService
func NewRewardService(rewardRepo repositories.RewardRepository) *RewardService {
	return &RewardService{rewardRepo: rewardRepo}
}

func (s *RewardService) Create(ctx context.Context, reward *models.Reward) error {
	return s.rewardRepo.Create(ctx, reward)
}

func (s *RewardService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Reward, error) {
	return s.rewardRepo.FindByID(ctx, id)
}

func (s *RewardService) GetAll(ctx context.Context, activeOnly bool) ([]*models.Reward, error) {
	return s.rewardRepo.FindAll(ctx, activeOnly)
}

func (s *RewardService) Update(ctx context.Context, reward *models.Reward) error {
	return s.rewardRepo.Update(ctx, reward)
}

func (s *RewardService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.rewardRepo.Delete(ctx, id)
}

func (s *RewardService) Count(ctx context.Context) (int64, error) {
	return s.rewardRepo.Count(ctx)
}

// MaterialService is the CRUD surface over published materials
type MaterialService struct {
	materialRepo repositories.MaterialRepository
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(materialRepo repositories.MaterialRepository) *MaterialService {
	return &MaterialService{materialRepo: materialRepo}
}

func (s *MaterialService) Create(ctx context.Context, material *models.Material) error {
	return s.materialRepo.Create(ctx, material)
}

func (s *MaterialService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Material, error) {
	return s.materialRepo.FindByID(ctx, id)
}

func (s *MaterialService) GetAll(ctx context.Context, activeOnly bool) ([]*models.Material, error) {
	return s.materialRepo.FindAll(ctx, activeOnly)
}

func (s *MaterialService) Update(ctx context.Context, material *models.Material) error {
	return s.materialRepo.Update(ctx, material)
}

func (s *MaterialService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.materialRepo.Delete(ctx, id)
}
