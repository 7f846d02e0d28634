package domain

import (
	"context"
	"time"
)

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "PENDING"
	ApplicationReviewed  ApplicationStatus = "REVIEWED"
	ApplicationAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
	ApplicationWithdrawn ApplicationStatus = "WITHDRAWN"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn:
		return true
	}
	return false
}

// Application is a worker's application to a job. A worker applies to a job at most once.
type Application struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	JobID     uint              `gorm:"not null;uniqueIndex:idx_applications_job_worker" json:"jobId"`
	WorkerID  uint              `gorm:"not null;uniqueIndex:idx_applications_job_worker;index" json:"workerId"`
	Status    ApplicationStatus `gorm:"size:20;not null;index" json:"status"`
	Message   *string           `gorm:"type:text" json:"message,omitempty"`
	AppliedAt time.Time         `gorm:"not null;index" json:"appliedAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Job       *Job              `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Worker    *WorkerSummary    `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
}

type CreateApplicationInput struct {
	JobID    uint               `json:"jobId" binding:"required"`
	WorkerID uint               `json:"workerId" binding:"required"`
	Message  *string            `json:"message" binding:"omitempty,max=5000"`
	Status   *ApplicationStatus `json:"status" binding:"omitempty,oneof=PENDING REVIEWED ACCEPTED REJECTED WITHDRAWN"`
}

type UpdateApplicationInput struct {
	JobID    *uint              `json:"jobId"`
	WorkerID *uint              `json:"workerId"`
	Message  *string            `json:"message" binding:"omitempty,max=5000"`
	Status   *ApplicationStatus `json:"status" binding:"omitempty,oneof=PENDING REVIEWED ACCEPTED REJECTED WITHDRAWN"`
}

type ApplicationFilter struct {
	JobID    *uint
	WorkerID *uint
	Status   *ApplicationStatus
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id uint) (*Application, error)
	Exists(ctx context.Context, jobID, workerID uint) (bool, error)
	List(ctx context.Context, filter ApplicationFilter) ([]Application, error)
	Update(ctx context.Context, app *Application) error
	Delete(ctx context.Context, id uint) error
}

type ApplicationUsecase interface {
	Create(ctx context.Context, input CreateApplicationInput) (*Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]Application, error)
	GetByID(ctx context.Context, id uint) (*Application, error)
	ListByJob(ctx context.Context, jobID uint) ([]Application, error)
	ListByWorker(ctx context.Context, workerID uint) ([]Application, error)
	Update(ctx context.Context, id uint, input UpdateApplicationInput) (*Application, error)
	UpdateStatus(ctx context.Context, id uint, status ApplicationStatus) (*Application, error)
	Delete(ctx context.Context, id uint) error
}
