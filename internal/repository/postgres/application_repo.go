package postgres

import (
	"context"

	"carebridge-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Job.Category").
		Preload("Job.Recruiter", userSummaryColumns).
		Preload("Worker.User", userSummaryColumns)
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(app).Error)
}

func (r *applicationRepo) GetByID(ctx context.Context, id uint) (*domain.Application, error) {
	var app domain.Application
	if err := r.withRelations(ctx).First(&app, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &app, nil
}

func (r *applicationRepo) Exists(ctx context.Context, jobID, workerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("job_id = ? AND worker_id = ?", jobID, workerID).
		Count(&count).Error
	return count > 0, translateError(err)
}

func (r *applicationRepo) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	query := r.withRelations(ctx)
	if filter.JobID != nil {
		query = query.Where("job_id = ?", *filter.JobID)
	}
	if filter.WorkerID != nil {
		query = query.Where("worker_id = ?", *filter.WorkerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var apps []domain.Application
	err := query.Order("applied_at DESC").Find(&apps).Error
	return apps, translateError(err)
}

func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(app).Error)
}

func (r *applicationRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Application{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
