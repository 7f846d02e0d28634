package domain

import (
	"context"
	"time"
)

type Worker struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	UserID     uint         `gorm:"not null;uniqueIndex" json:"userId"`
	Location   *string      `gorm:"size:255" json:"location,omitempty"`
	Experience *string      `gorm:"type:text" json:"experience,omitempty"`
	Skills     *string      `gorm:"type:text" json:"skills,omitempty"`
	Resume     *string      `gorm:"size:500" json:"resume,omitempty"`
	Available  bool         `gorm:"not null" json:"available"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	User       *UserSummary `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// WorkerSummary is the bounded view of a worker embedded in related records.
type WorkerSummary struct {
	ID     uint         `json:"id"`
	UserID uint         `json:"userId"`
	User   *UserSummary `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (WorkerSummary) TableName() string { return "workers" }

type CreateWorkerInput struct {
	UserID     *uint   `json:"userId"`
	Location   *string `json:"location" binding:"omitempty,max=255"`
	Experience *string `json:"experience"`
	Skills     *string `json:"skills"`
	Resume     *string `json:"resume" binding:"omitempty,max=500"`
	Available  *bool   `json:"available"`
}

type UpdateWorkerInput struct {
	Location   *string `json:"location" binding:"omitempty,max=255"`
	Experience *string `json:"experience"`
	Skills     *string `json:"skills"`
	Resume     *string `json:"resume" binding:"omitempty,max=500"`
	Available  *bool   `json:"available"`
}

type WorkerRepository interface {
	Create(ctx context.Context, worker *Worker) error
	GetByID(ctx context.Context, id uint) (*Worker, error)
	GetByUserID(ctx context.Context, userID uint) (*Worker, error)
	List(ctx context.Context) ([]Worker, error)
	Update(ctx context.Context, worker *Worker) error
	ToggleAvailability(ctx context.Context, id uint) (*Worker, error)
	Delete(ctx context.Context, id uint) error
}

type WorkerUsecase interface {
	Create(ctx context.Context, actor Actor, input CreateWorkerInput) (*Worker, error)
	List(ctx context.Context) ([]Worker, error)
	GetByID(ctx context.Context, id uint) (*Worker, error)
	GetByUserID(ctx context.Context, userID uint) (*Worker, error)
	Update(ctx context.Context, actor Actor, id uint, input UpdateWorkerInput) (*Worker, error)
	UpdateMine(ctx context.Context, actor Actor, input UpdateWorkerInput) (*Worker, error)
	ToggleAvailability(ctx context.Context, id uint) (*Worker, error)
	ToggleMyAvailability(ctx context.Context, actor Actor) (*Worker, error)
	Delete(ctx context.Context, id uint) error
}
