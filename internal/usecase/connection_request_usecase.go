package usecase

import (
	"context"
	"errors"

	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"
	"carebridge-backend/pkg/logger"
)

const connectionExistsMsg = "Connection request already exists"

type connectionRequestUsecase struct {
	connectionRepo domain.ConnectionRequestRepository
	recruiterRepo  domain.RecruiterRepository
	workerRepo     domain.WorkerRepository
	userRepo       domain.UserRepository
	notifier       domain.Notifier
}

func NewConnectionRequestUsecase(
	connectionRepo domain.ConnectionRequestRepository,
	recruiterRepo domain.RecruiterRepository,
	workerRepo domain.WorkerRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
) domain.ConnectionRequestUsecase {
	return &connectionRequestUsecase{
		connectionRepo: connectionRepo,
		recruiterRepo:  recruiterRepo,
		workerRepo:     workerRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

// Create files a recruiter's request to be connected with a worker and alerts every admin.
func (u *connectionRequestUsecase) Create(ctx context.Context, actor domain.Actor, input domain.CreateConnectionRequestInput) (*domain.ConnectionRequest, error) {
	recruiter, err := u.recruiterRepo.GetByID(ctx, input.RecruiterID)
	if err != nil {
		return nil, lookupError(err, "Recruiter not found")
	}
	if !actor.IsAdmin() && recruiter.UserID != actor.UserID {
		return nil, apperror.Forbidden("You can only request connections for your own recruiter profile")
	}

	if _, err := u.workerRepo.GetByID(ctx, input.WorkerID); err != nil {
		return nil, lookupError(err, "Worker not found")
	}

	exists, err := u.connectionRepo.ExistsOpen(ctx, input.RecruiterID, input.WorkerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict(connectionExistsMsg)
	}

	request := &domain.ConnectionRequest{
		RecruiterID: input.RecruiterID,
		WorkerID:    input.WorkerID,
		Status:      domain.ConnectionPending,
		Message:     input.Message,
	}
	if err := u.connectionRepo.Create(ctx, request); err != nil {
		return nil, writeError(err, connectionExistsMsg)
	}

	created, err := u.GetByID(ctx, request.ID)
	if err != nil {
		return nil, err
	}

	admins, err := u.userRepo.ListActiveByRole(ctx, domain.RoleAdmin)
	if err != nil {
		logger.Log.Error("Failed to load admins for connection request notification", "request_id", created.ID, "error", err)
	} else {
		u.notifier.SendNewConnectionRequest(admins, created)
	}
	return created, nil
}

func (u *connectionRequestUsecase) List(ctx context.Context, filter domain.ConnectionRequestFilter) ([]domain.ConnectionRequest, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperror.BadRequest("Invalid connection status")
	}
	requests, err := u.connectionRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return requests, nil
}

func (u *connectionRequestUsecase) GetByID(ctx context.Context, id uint) (*domain.ConnectionRequest, error) {
	request, err := u.connectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Connection request not found")
	}
	return request, nil
}

// UpdateStatus records the admin decision and emails the parties involved.
func (u *connectionRequestUsecase) UpdateStatus(ctx context.Context, id uint, input domain.UpdateConnectionStatusInput) (*domain.ConnectionRequest, error) {
	if !input.Status.Valid() {
		return nil, apperror.BadRequest("Invalid status. Must be one of: PENDING, APPROVED, REJECTED, CANCELLED")
	}

	request, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	request.Status = input.Status
	if input.AdminNotes != nil {
		request.AdminNotes = input.AdminNotes
	}

	if err := u.connectionRepo.Update(ctx, request); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict(connectionExistsMsg)
		}
		return nil, lookupError(err, "Connection request not found")
	}

	updated, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch updated.Status {
	case domain.ConnectionApproved:
		u.notifier.SendConnectionApproved(updated)
	case domain.ConnectionRejected:
		u.notifier.SendConnectionRejected(updated)
	}
	return updated, nil
}
