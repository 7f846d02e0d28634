package domain

import (
	"context"
	"time"
)

type AssignmentStatus string

const (
	AssignmentActive    AssignmentStatus = "ACTIVE"
	AssignmentCompleted AssignmentStatus = "COMPLETED"
	AssignmentCancelled AssignmentStatus = "CANCELLED"
)

func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentActive, AssignmentCompleted, AssignmentCancelled:
		return true
	}
	return false
}

// WorkAssignment schedules a worker on a job for one day.
type WorkAssignment struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	JobID       uint              `gorm:"not null;uniqueIndex:idx_assignments_job_worker_date" json:"jobId"`
	WorkerID    uint              `gorm:"not null;uniqueIndex:idx_assignments_job_worker_date;index" json:"workerId"`
	RecruiterID uint              `gorm:"not null;index" json:"recruiterId"`
	WorkDate    time.Time         `gorm:"not null;uniqueIndex:idx_assignments_job_worker_date" json:"workDate"`
	StartTime   *time.Time        `json:"startTime,omitempty"`
	EndTime     *time.Time        `json:"endTime,omitempty"`
	Status      AssignmentStatus  `gorm:"size:20;not null;index" json:"status"`
	Notes       *string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Job         *Job              `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Worker      *WorkerSummary    `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
	Recruiter   *RecruiterSummary `gorm:"foreignKey:RecruiterID" json:"recruiter,omitempty"`
}

type CreateWorkAssignmentInput struct {
	JobID       uint              `json:"jobId" binding:"required"`
	WorkerID    uint              `json:"workerId" binding:"required"`
	RecruiterID uint              `json:"recruiterId" binding:"required"`
	WorkDate    time.Time         `json:"workDate" binding:"required"`
	StartTime   *time.Time        `json:"startTime"`
	EndTime     *time.Time        `json:"endTime"`
	Status      *AssignmentStatus `json:"status" binding:"omitempty,oneof=ACTIVE COMPLETED CANCELLED"`
	Notes       *string           `json:"notes" binding:"omitempty,max=5000"`
}

type UpdateWorkAssignmentInput struct {
	JobID       *uint             `json:"jobId"`
	WorkerID    *uint             `json:"workerId"`
	RecruiterID *uint             `json:"recruiterId"`
	WorkDate    *time.Time        `json:"workDate"`
	StartTime   *time.Time        `json:"startTime"`
	EndTime     *time.Time        `json:"endTime"`
	Status      *AssignmentStatus `json:"status" binding:"omitempty,oneof=ACTIVE COMPLETED CANCELLED"`
	Notes       *string           `json:"notes" binding:"omitempty,max=5000"`
}

type WorkAssignmentFilter struct {
	JobID       *uint
	WorkerID    *uint
	RecruiterID *uint
}

type WorkAssignmentRepository interface {
	Create(ctx context.Context, assignment *WorkAssignment) error
	GetByID(ctx context.Context, id uint) (*WorkAssignment, error)
	Exists(ctx context.Context, jobID, workerID uint, workDate time.Time) (bool, error)
	List(ctx context.Context, filter WorkAssignmentFilter) ([]WorkAssignment, error)
	Update(ctx context.Context, assignment *WorkAssignment) error
	Delete(ctx context.Context, id uint) error
}

type WorkAssignmentUsecase interface {
	Create(ctx context.Context, input CreateWorkAssignmentInput) (*WorkAssignment, error)
	List(ctx context.Context, filter WorkAssignmentFilter) ([]WorkAssignment, error)
	GetByID(ctx context.Context, id uint) (*WorkAssignment, error)
	Update(ctx context.Context, id uint, input UpdateWorkAssignmentInput) (*WorkAssignment, error)
	UpdateStatus(ctx context.Context, id uint, status AssignmentStatus) (*WorkAssignment, error)
	Delete(ctx context.Context, id uint) error
}
