package postgres

import (
	"context"

	"carebridge-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type workerRepo struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) domain.WorkerRepository {
	return &workerRepo{db: db}
}

func (r *workerRepo) withUser(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User", userSummaryColumns)
}

func (r *workerRepo) Create(ctx context.Context, worker *domain.Worker) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(worker).Error)
}

func (r *workerRepo) GetByID(ctx context.Context, id uint) (*domain.Worker, error) {
	var worker domain.Worker
	if err := r.withUser(ctx).First(&worker, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &worker, nil
}

func (r *workerRepo) GetByUserID(ctx context.Context, userID uint) (*domain.Worker, error) {
	var worker domain.Worker
	if err := r.withUser(ctx).Where("user_id = ?", userID).First(&worker).Error; err != nil {
		return nil, translateError(err)
	}
	return &worker, nil
}

func (r *workerRepo) List(ctx context.Context) ([]domain.Worker, error) {
	var workers []domain.Worker
	err := r.withUser(ctx).Order("created_at DESC").Find(&workers).Error
	return workers, translateError(err)
}

func (r *workerRepo) Update(ctx context.Context, worker *domain.Worker) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(worker).Error)
}

func (r *workerRepo) ToggleAvailability(ctx context.Context, id uint) (*domain.Worker, error) {
	result := r.db.WithContext(ctx).Model(&domain.Worker{}).
		Where("id = ?", id).
		Update("available", gorm.Expr("NOT available"))
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *workerRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Worker{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
