package domain

import (
	"context"
	"time"
)

type ConnectionStatus string

const (
	ConnectionPending   ConnectionStatus = "PENDING"
	ConnectionApproved  ConnectionStatus = "APPROVED"
	ConnectionRejected  ConnectionStatus = "REJECTED"
	ConnectionCancelled ConnectionStatus = "CANCELLED"
)

func (s ConnectionStatus) Valid() bool {
	switch s {
	case ConnectionPending, ConnectionApproved, ConnectionRejected, ConnectionCancelled:
		return true
	}
	return false
}

// ConnectionRequest is a recruiter's request, reviewed by an admin, to be put in touch with a worker.
// At most one non-cancelled request exists per recruiter and worker pair.
type ConnectionRequest struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	RecruiterID uint              `gorm:"not null;index" json:"recruiterId"`
	WorkerID    uint              `gorm:"not null;index" json:"workerId"`
	Status      ConnectionStatus  `gorm:"size:20;not null;index" json:"status"`
	Message     *string           `gorm:"type:text" json:"message,omitempty"`
	AdminNotes  *string           `gorm:"type:text" json:"adminNotes,omitempty"`
	CreatedAt   time.Time         `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Recruiter   *RecruiterSummary `gorm:"foreignKey:RecruiterID" json:"recruiter,omitempty"`
	Worker      *WorkerSummary    `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
}

type CreateConnectionRequestInput struct {
	RecruiterID uint    `json:"recruiterId" binding:"required"`
	WorkerID    uint    `json:"workerId" binding:"required"`
	Message     *string `json:"message" binding:"omitempty,max=5000"`
}

type UpdateConnectionStatusInput struct {
	Status     ConnectionStatus `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED CANCELLED"`
	AdminNotes *string          `json:"adminNotes" binding:"omitempty,max=5000"`
}

type ConnectionRequestFilter struct {
	RecruiterID *uint
	WorkerID    *uint
	Status      *ConnectionStatus
}

type ConnectionRequestRepository interface {
	Create(ctx context.Context, request *ConnectionRequest) error
	GetByID(ctx context.Context, id uint) (*ConnectionRequest, error)
	// ExistsOpen reports whether a non-cancelled request exists for the pair.
	ExistsOpen(ctx context.Context, recruiterID, workerID uint) (bool, error)
	List(ctx context.Context, filter ConnectionRequestFilter) ([]ConnectionRequest, error)
	Update(ctx context.Context, request *ConnectionRequest) error
}

type ConnectionRequestUsecase interface {
	Create(ctx context.Context, actor Actor, input CreateConnectionRequestInput) (*ConnectionRequest, error)
	List(ctx context.Context, filter ConnectionRequestFilter) ([]ConnectionRequest, error)
	GetByID(ctx context.Context, id uint) (*ConnectionRequest, error)
	UpdateStatus(ctx context.Context, id uint, input UpdateConnectionStatusInput) (*ConnectionRequest, error)
}
