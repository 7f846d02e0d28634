package postgres

import (
	"context"
	"time"

	"carebridge-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type workAssignmentRepo struct {
	db *gorm.DB
}

func NewWorkAssignmentRepository(db *gorm.DB) domain.WorkAssignmentRepository {
	return &workAssignmentRepo{db: db}
}

func (r *workAssignmentRepo) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Job.Category").
		Preload("Worker.User", userSummaryColumns).
		Preload("Recruiter.User", userSummaryColumns)
}

func (r *workAssignmentRepo) Create(ctx context.Context, assignment *domain.WorkAssignment) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(assignment).Error)
}

func (r *workAssignmentRepo) GetByID(ctx context.Context, id uint) (*domain.WorkAssignment, error) {
	var assignment domain.WorkAssignment
	if err := r.withRelations(ctx).First(&assignment, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &assignment, nil
}

func (r *workAssignmentRepo) Exists(ctx context.Context, jobID, workerID uint, workDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.WorkAssignment{}).
		Where("job_id = ? AND worker_id = ? AND work_date = ?", jobID, workerID, workDate).
		Count(&count).Error
	return count > 0, translateError(err)
}

func (r *workAssignmentRepo) List(ctx context.Context, filter domain.WorkAssignmentFilter) ([]domain.WorkAssignment, error) {
	query := r.withRelations(ctx)
	if filter.JobID != nil {
		query = query.Where("job_id = ?", *filter.JobID)
	}
	if filter.WorkerID != nil {
		query = query.Where("worker_id = ?", *filter.WorkerID)
	}
	if filter.RecruiterID != nil {
		query = query.Where("recruiter_id = ?", *filter.RecruiterID)
	}

	var assignments []domain.WorkAssignment
	err := query.Order("work_date DESC").Find(&assignments).Error
	return assignments, translateError(err)
}

func (r *workAssignmentRepo) Update(ctx context.Context, assignment *domain.WorkAssignment) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(assignment).Error)
}

func (r *workAssignmentRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.WorkAssignment{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
