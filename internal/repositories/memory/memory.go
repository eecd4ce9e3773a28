// Package memory provides in-memory implementations of the repository
// interfaces. They back the service tests and let the server run without a
// mongod for local experiments. Each store guards its map with a mutex and
// hands out copies, so callers never share document memory.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/engagehq/engage-backend/internal/apperrors"
	"github.com/engagehq/engage-backend/internal/models"
	"github.com/engagehq/engage-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ repositories.UserRepository             = (*UserRepository)(nil)
	_ repositories.QuestionRepository         = (*QuestionRepository)(nil)
	_ repositories.SurveyResponseRepository   = (*SurveyResponseRepository)(nil)
	_ repositories.ReferralRepository         = (*ReferralRepository)(nil)
	_ repositories.RewardRepository           = (*RewardRepository)(nil)
	_ repositories.RewardRequestRepository    = (*RewardRequestRepository)(nil)
	_ repositories.PointTransactionRepository = (*PointTransactionRepository)(nil)
	_ repositories.MaterialRepository         = (*MaterialRepository)(nil)
)

// UserRepository is an in-memory UserRepository
type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

// NewUserRepository creates an empty in-memory user store
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[primitive.ObjectID]models.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *UserRepository) FindAll(ctx context.Context, page, limit int) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		u := user
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	start := (page - 1) * limit
	if start >= len(users) {
		return []*models.User{}, nil
	}
	end := start + limit
	if end > len(users) {
		end = len(users)
	}
	return users[start:end], nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepository) IncrementPoints(ctx context.Context, id primitive.ObjectID, delta int) error {
	return r.adjust(id, func(u *models.User) { u.Points += delta })
}

func (r *UserRepository) IncrementSurveysCompleted(ctx context.Context, id primitive.ObjectID) error {
	return r.adjust(id, func(u *models.User) { u.SurveysCompleted++ })
}

func (r *UserRepository) IncrementReferralsCount(ctx context.Context, id primitive.ObjectID) error {
	return r.adjust(id, func(u *models.User) { u.ReferralsCount++ })
}

func (r *UserRepository) adjust(id primitive.ObjectID, fn func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	fn(&user)
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// QuestionRepository is an in-memory QuestionRepository
type QuestionRepository struct {
	mu        sync.RWMutex
	questions map[primitive.ObjectID]models.Question
	order     []primitive.ObjectID
}

// NewQuestionRepository creates an empty in-memory question store
func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{questions: make(map[primitive.ObjectID]models.Question)}
}

func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	question.ID = primitive.NewObjectID()
	question.CreatedAt = time.Now()
	question.UpdatedAt = time.Now()
	r.questions[question.ID] = *question
	r.order = append(r.order, question.ID)
	return nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	question, ok := r.questions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &question, nil
}

func (r *QuestionRepository) FindAll(ctx context.Context, activeOnly bool) ([]*models.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	questions := make([]*models.Question, 0, len(r.order))
	for _, id := range r.order {
		question, ok := r.questions[id]
		if !ok {
			continue
		}
		if activeOnly && !question.IsActive {
			continue
		}
		q := question
		questions = append(questions, &q)
	}
	return questions, nil
}

func (r *QuestionRepository) Update(ctx context.Context, question *models.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[question.ID]; !ok {
		return apperrors.ErrNotFound
	}
	question.UpdatedAt = time.Now()
	r.questions[question.ID] = *question
	return nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.questions, id)
	return nil
}

func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.questions)), nil
}

// SurveyResponseRepository is an in-memory SurveyResponseRepository
type SurveyResponseRepository struct {
	mu        sync.RWMutex
	responses []models.SurveyResponse
}

// NewSurveyResponseRepository creates an empty in-memory response store
func NewSurveyResponseRepository() *SurveyResponseRepository {
	return &SurveyResponseRepository{}
}

func (r *SurveyResponseRepository) Create(ctx context.Context, response *models.SurveyResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.responses {
		if existing.UserID == response.UserID && existing.QuestionID == response.QuestionID {
			return apperrors.ErrDuplicateResponse
		}
	}
	response.ID = primitive.NewObjectID()
	response.CreatedAt = time.Now()
	r.responses = append(r.responses, *response)
	return nil
}

func (r *SurveyResponseRepository) FindByUserAndQuestion(ctx context.Context, userID, questionID primitive.ObjectID) (*models.SurveyResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, response := range r.responses {
		if response.UserID == userID && response.QuestionID == questionID {
			resp := response
			return &resp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *SurveyResponseRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.SurveyResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	responses := []*models.SurveyResponse{}
	for i := len(r.responses) - 1; i >= 0; i-- {
		if r.responses[i].UserID == userID {
			resp := r.responses[i]
			responses = append(responses, &resp)
		}
	}
	return responses, nil
}

// ReferralRepository is an in-memory ReferralRepository
type ReferralRepository struct {
	mu        sync.RWMutex
	referrals map[primitive.ObjectID]models.Referral
	order     []primitive.ObjectID
}

// NewReferralRepository creates an empty in-memory referral store
func NewReferralRepository() *ReferralRepository {
	return &ReferralRepository{referrals: make(map[primitive.ObjectID]models.Referral)}
}

func (r *ReferralRepository) Create(ctx context.Context, referral *models.Referral) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	referral.ID = primitive.NewObjectID()
	referral.CreatedAt = time.Now()
	r.referrals[referral.ID] = *referral
	r.order = append(r.order, referral.ID)
	return nil
}

func (r *ReferralRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Referral, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	referral, ok := r.referrals[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &referral, nil
}

func (r *ReferralRepository) FindByReferrerID(ctx context.Context, referrerID primitive.ObjectID) ([]*models.Referral, error) {
	return r.filter(func(ref models.Referral) bool { return ref.ReferrerID == referrerID })
}

func (r *ReferralRepository) FindByStatus(ctx context.Context, status models.ReferralStatus) ([]*models.Referral, error) {
	return r.filter(func(ref models.Referral) bool { return ref.Status == status })
}

func (r *ReferralRepository) FindAll(ctx context.Context) ([]*models.Referral, error) {
	return r.filter(func(models.Referral) bool { return true })
}

func (r *ReferralRepository) filter(keep func(models.Referral) bool) ([]*models.Referral, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	referrals := []*models.Referral{}
	for i := len(r.order) - 1; i >= 0; i-- {
		referral, ok := r.referrals[r.order[i]]
		if !ok || !keep(referral) {
			continue
		}
		ref := referral
		referrals = append(referrals, &ref)
	}
	return referrals, nil
}

func (r *ReferralRepository) Update(ctx context.Context, referral *models.Referral) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.referrals[referral.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.referrals[referral.ID] = *referral
	return nil
}

// RewardRepository is an in-memory RewardRepository
type RewardRepository struct {
	mu      sync.RWMutex
	rewards map[primitive.ObjectID]models.Reward
}

// NewRewardRepository creates an empty in-memory reward store
func NewRewardRepository() *RewardRepository {
	return &RewardRepository{rewards: make(map[primitive.ObjectID]models.Reward)}
}

func (r *RewardRepository) Create(ctx context.Context, reward *models.Reward) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reward.ID = primitive.NewObjectID()
	reward.CreatedAt = time.Now()
	reward.UpdatedAt = time.Now()
	r.rewards[reward.ID] = *reward
	return nil
}

func (r *RewardRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Reward, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reward, ok := r.rewards[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &reward, nil
}

func (r *RewardRepository) FindAll(ctx context.Context, activeOnly bool) ([]*models.Reward, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rewards := []*models.Reward{}
	for _, reward := range r.rewards {
		if activeOnly && !reward.IsActive {
			continue
		}
		rw := reward
		rewards = append(rewards, &rw)
	}
	sort.Slice(rewards, func(i, j int) bool { return rewards[i].Points < rewards[j].Points })
	return rewards, nil
}

func (r *RewardRepository) Update(ctx context.Context, reward *models.Reward) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rewards[reward.ID]; !ok {
		return apperrors.ErrNotFound
	}
	reward.UpdatedAt = time.Now()
	r.rewards[reward.ID] = *reward
	return nil
}

func (r *RewardRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rewards[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.rewards, id)
	return nil
}

func (r *RewardRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.rewards)), nil
}

// RewardRequestRepository is an in-memory RewardRequestRepository
type RewardRequestRepository struct {
	mu       sync.RWMutex
	requests map[primitive.ObjectID]models.RewardRequest
}

// NewRewardRequestRepository creates an empty in-memory request store
func NewRewardRequestRepository() *RewardRequestRepository {
	return &RewardRequestRepository{requests: make(map[primitive.ObjectID]models.RewardRequest)}
}

func (r *RewardRequestRepository) Create(ctx context.Context, request *models.RewardRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request.ID = primitive.NewObjectID()
	if request.RequestedAt.IsZero() {
		request.RequestedAt = time.Now()
	}
	r.requests[request.ID] = *request
	return nil
}

func (r *RewardRequestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RewardRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	request, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &request, nil
}

func (r *RewardRequestRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.RewardRequest, error) {
	requests := r.filter(func(req models.RewardRequest) bool { return req.UserID == userID })
	sort.Slice(requests, func(i, j int) bool { return requests[i].RequestedAt.After(requests[j].RequestedAt) })
	return requests, nil
}

func (r *RewardRequestRepository) FindPending(ctx context.Context) ([]*models.RewardRequest, error) {
	requests := r.filter(func(req models.RewardRequest) bool { return req.Status == models.RequestStatusPending })
	sort.Slice(requests, func(i, j int) bool { return requests[i].RequestedAt.Before(requests[j].RequestedAt) })
	return requests, nil
}

func (r *RewardRequestRepository) FindProcessed(ctx context.Context) ([]*models.RewardRequest, error) {
	requests := r.filter(func(req models.RewardRequest) bool { return req.Status != models.RequestStatusPending })
	sort.Slice(requests, func(i, j int) bool {
		ti, tj := requests[i].ProcessedAt, requests[j].ProcessedAt
		if ti == nil || tj == nil {
			return tj == nil
		}
		return ti.After(*tj)
	})
	return requests, nil
}

func (r *RewardRequestRepository) filter(keep func(models.RewardRequest) bool) []*models.RewardRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	requests := []*models.RewardRequest{}
	for _, request := range r.requests {
		if !keep(request) {
			continue
		}
		req := request
		requests = append(requests, &req)
	}
	return requests
}

func (r *RewardRequestRepository) Update(ctx context.Context, request *models.RewardRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[request.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.requests[request.ID] = *request
	return nil
}

func (r *RewardRequestRepository) CountPending(ctx context.Context) (int64, error) {
	return int64(len(r.filter(func(req models.RewardRequest) bool {
		return req.Status == models.RequestStatusPending
	}))), nil
}

// PointTransactionRepository is an in-memory append-only ledger
type PointTransactionRepository struct {
	mu           sync.RWMutex
	transactions []models.PointTransaction
}

// NewPointTransactionRepository creates an empty in-memory ledger
func NewPointTransactionRepository() *PointTransactionRepository {
	return &PointTransactionRepository{}
}

func (r *PointTransactionRepository) Create(ctx context.Context, transaction *models.PointTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction.ID = primitive.NewObjectID()
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now()
	}
	r.transactions = append(r.transactions, *transaction)
	return nil
}

func (r *PointTransactionRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.PointTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	transactions := []*models.PointTransaction{}
	for i := len(r.transactions) - 1; i >= 0; i-- {
		if r.transactions[i].UserID == userID {
			tx := r.transactions[i]
			transactions = append(transactions, &tx)
		}
	}
	return transactions, nil
}

func (r *PointTransactionRepository) SumByUserID(ctx context.Context, userID primitive.ObjectID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, tx := range r.transactions {
		if tx.UserID == userID {
			total += tx.Points
		}
	}
	return total, nil
}

// MaterialRepository is an in-memory MaterialRepository
type MaterialRepository struct {
	mu        sync.RWMutex
	materials map[primitive.ObjectID]models.Material
	order     []primitive.ObjectID
}

// NewMaterialRepository creates an empty in-memory material store
func NewMaterialRepository() *MaterialRepository {
	return &MaterialRepository{materials: make(map[primitive.ObjectID]models.Material)}
}

func (r *MaterialRepository) Create(ctx context.Context, material *models.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	material.ID = primitive.NewObjectID()
	material.CreatedAt = time.Now()
	material.UpdatedAt = time.Now()
	r.materials[material.ID] = *material
	r.order = append(r.order, material.ID)
	return nil
}

func (r *MaterialRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	material, ok := r.materials[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &material, nil
}

func (r *MaterialRepository) FindAll(ctx context.Context, activeOnly bool) ([]*models.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	materials := []*models.Material{}
	for i := len(r.order) - 1; i >= 0; i-- {
		material, ok := r.materials[r.order[i]]
		if !ok {
			continue
		}
		if activeOnly && !material.IsActive {
			continue
		}
		m := material
		materials = append(materials, &m)
	}
	return materials, nil
}

func (r *MaterialRepository) Update(ctx context.Context, material *models.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.materials[material.ID]; !ok {
		return apperrors.ErrNotFound
	}
	material.UpdatedAt = time.Now()
	r.materials[material.ID] = *material
	return nil
}

func (r *MaterialRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.materials[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.materials, id)
	return nil
}
