package postgres

import (
	"context"

	"carebridge-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type connectionRequestRepo struct {
	db *gorm.DB
}

func NewConnectionRequestRepository(db *gorm.DB) domain.ConnectionRequestRepository {
	return &connectionRequestRepo{db: db}
}

func (r *connectionRequestRepo) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Recruiter.User", userSummaryColumns).
		Preload("Worker.User", userSummaryColumns)
}

func (r *connectionRequestRepo) Create(ctx context.Context, request *domain.ConnectionRequest) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(request).Error)
}

func (r *connectionRequestRepo) GetByID(ctx context.Context, id uint) (*domain.ConnectionRequest, error) {
	var request domain.ConnectionRequest
	if err := r.withRelations(ctx).First(&request, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &request, nil
}

func (r *connectionRequestRepo) ExistsOpen(ctx context.Context, recruiterID, workerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ConnectionRequest{}).
		Where("recruiter_id = ? AND worker_id = ? AND status <> ?", recruiterID, workerID, domain.ConnectionCancelled).
		Count(&count).Error
	return count > 0, translateError(err)
}

func (r *connectionRequestRepo) List(ctx context.Context, filter domain.ConnectionRequestFilter) ([]domain.ConnectionRequest, error) {
	query := r.withRelations(ctx)
	if filter.RecruiterID != nil {
		query = query.Where("recruiter_id = ?", *filter.RecruiterID)
	}
	if filter.WorkerID != nil {
		query = query.Where("worker_id = ?", *filter.WorkerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var requests []domain.ConnectionRequest
	err := query.Order("created_at DESC").Find(&requests).Error
	return requests, translateError(err)
}

func (r *connectionRequestRepo) Update(ctx context.Context, request *domain.ConnectionRequest) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(request).Error)
}
