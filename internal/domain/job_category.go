package domain

import (
	"context"
	"time"
)

type JobCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateJobCategoryInput struct {
	Name        string  `json:"name" binding:"required,max=100,no_emoji"`
	Description *string `json:"description"`
}

type UpdateJobCategoryInput struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100,no_emoji"`
	Description *string `json:"description"`
}

type JobCategoryRepository interface {
	Create(ctx context.Context, category *JobCategory) error
	GetByID(ctx context.Context, id uint) (*JobCategory, error)
	GetByName(ctx context.Context, name string) (*JobCategory, error)
	List(ctx context.Context) ([]JobCategory, error)
	Update(ctx context.Context, category *JobCategory) error
	Delete(ctx context.Context, id uint) error
}

type JobCategoryUsecase interface {
	Create(ctx context.Context, input CreateJobCategoryInput) (*JobCategory, error)
	List(ctx context.Context) ([]JobCategory, error)
	GetByID(ctx context.Context, id uint) (*JobCategory, error)
	Update(ctx context.Context, id uint, input UpdateJobCategoryInput) (*JobCategory, error)
	Delete(ctx context.Context, id uint) error
}
