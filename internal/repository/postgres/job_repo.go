package postgres

import (
	"context"

	"carebridge-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Category").
		Preload("Recruiter", userSummaryColumns)
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(job).Error)
}

func (r *jobRepo) GetByID(ctx context.Context, id uint) (*domain.Job, error) {
	var job domain.Job
	if err := r.withRelations(ctx).First(&job, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &job, nil
}

func (r *jobRepo) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	query := r.withRelations(ctx)
	if filter.RecruiterID != nil {
		query = query.Where("recruiter_id = ?", *filter.RecruiterID)
	}
	if filter.ActiveOnly != nil {
		query = query.Where("is_active = ?", *filter.ActiveOnly)
	}

	var jobs []domain.Job
	err := query.Order("created_at DESC").Find(&jobs).Error
	return jobs, translateError(err)
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(job).Error)
}

func (r *jobRepo) ToggleActive(ctx context.Context, id uint) (*domain.Job, error) {
	result := r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *jobRepo) CountDependents(ctx context.Context, id uint) (int64, error) {
	db := r.db.WithContext(ctx)

	var applications int64
	if err := db.Model(&domain.Application{}).Where("job_id = ?", id).Count(&applications).Error; err != nil {
		return 0, translateError(err)
	}

	var assignments int64
	if err := db.Model(&domain.WorkAssignment{}).Where("job_id = ?", id).Count(&assignments).Error; err != nil {
		return 0, translateError(err)
	}
	return applications + assignments, nil
}

func (r *jobRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Job{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
