package postgres

import (
	"context"
	"strings"

	"carebridge-backend/internal/domain"

	"gorm.io/gorm"
)

type jobCategoryRepo struct {
	db *gorm.DB
}

func NewJobCategoryRepository(db *gorm.DB) domain.JobCategoryRepository {
	return &jobCategoryRepo{db: db}
}

func (r *jobCategoryRepo) Create(ctx context.Context, category *domain.JobCategory) error {
	return translateError(r.db.WithContext(ctx).Create(category).Error)
}

func (r *jobCategoryRepo) GetByID(ctx context.Context, id uint) (*domain.JobCategory, error) {
	var category domain.JobCategory
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

func (r *jobCategoryRepo) GetByName(ctx context.Context, name string) (*domain.JobCategory, error) {
	var category domain.JobCategory
	err := r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).First(&category).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

func (r *jobCategoryRepo) List(ctx context.Context) ([]domain.JobCategory, error) {
	var categories []domain.JobCategory
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&categories).Error
	return categories, translateError(err)
}

func (r *jobCategoryRepo) Update(ctx context.Context, category *domain.JobCategory) error {
	return translateError(r.db.WithContext(ctx).Save(category).Error)
}

// Delete refuses to remove a category that jobs still reference.
func (r *jobCategoryRepo) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var jobs int64
		if err := tx.Model(&domain.Job{}).Where("category_id = ?", id).Count(&jobs).Error; err != nil {
			return err
		}
		if jobs > 0 {
			return domain.ErrReferenceViolation
		}

		result := tx.Delete(&domain.JobCategory{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	return translateError(err)
}
