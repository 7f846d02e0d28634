package usecase

import (
	"context"
	"errors"

	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"
)

type workerUsecase struct {
	workerRepo domain.WorkerRepository
	userRepo   domain.UserRepository
}

func NewWorkerUsecase(workerRepo domain.WorkerRepository, userRepo domain.UserRepository) domain.WorkerUsecase {
	return &workerUsecase{
		workerRepo: workerRepo,
		userRepo:   userRepo,
	}
}

// Create adds a worker profile for the caller. Admins may create one for any user.
func (u *workerUsecase) Create(ctx context.Context, actor domain.Actor, input domain.CreateWorkerInput) (*domain.Worker, error) {
	userID := actor.UserID
	if actor.IsAdmin() && input.UserID != nil {
		userID = *input.UserID
	}

	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return nil, lookupError(err, "User not found")
	}

	if _, err := u.workerRepo.GetByUserID(ctx, userID); err == nil {
		return nil, apperror.Conflict("Worker profile already exists for this user")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	worker := &domain.Worker{
		UserID:     userID,
		Location:   input.Location,
		Experience: input.Experience,
		Skills:     input.Skills,
		Resume:     input.Resume,
		Available:  true,
	}
	if input.Available != nil {
		worker.Available = *input.Available
	}

	if err := u.workerRepo.Create(ctx, worker); err != nil {
		return nil, writeError(err, "Worker profile already exists for this user")
	}
	return u.reload(ctx, worker.ID)
}

func (u *workerUsecase) reload(ctx context.Context, id uint) (*domain.Worker, error) {
	worker, err := u.workerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Worker not found")
	}
	return worker, nil
}

func (u *workerUsecase) List(ctx context.Context) ([]domain.Worker, error) {
	workers, err := u.workerRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return workers, nil
}

func (u *workerUsecase) GetByID(ctx context.Context, id uint) (*domain.Worker, error) {
	return u.reload(ctx, id)
}

func (u *workerUsecase) GetByUserID(ctx context.Context, userID uint) (*domain.Worker, error) {
	worker, err := u.workerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "Worker profile not found for this user")
	}
	return worker, nil
}

// Update changes a worker profile. Workers may only change their own.
func (u *workerUsecase) Update(ctx context.Context, actor domain.Actor, id uint, input domain.UpdateWorkerInput) (*domain.Worker, error) {
	worker, err := u.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && worker.UserID != actor.UserID {
		return nil, apperror.Forbidden("You can only update your own worker profile")
	}
	return u.apply(ctx, worker, input)
}

func (u *workerUsecase) UpdateMine(ctx context.Context, actor domain.Actor, input domain.UpdateWorkerInput) (*domain.Worker, error) {
	worker, err := u.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return u.apply(ctx, worker, input)
}

func (u *workerUsecase) apply(ctx context.Context, worker *domain.Worker, input domain.UpdateWorkerInput) (*domain.Worker, error) {
	if input.Location != nil {
		worker.Location = input.Location
	}
	if input.Experience != nil {
		worker.Experience = input.Experience
	}
	if input.Skills != nil {
		worker.Skills = input.Skills
	}
	if input.Resume != nil {
		worker.Resume = input.Resume
	}
	if input.Available != nil {
		worker.Available = *input.Available
	}

	if err := u.workerRepo.Update(ctx, worker); err != nil {
		return nil, writeError(err, "")
	}
	return worker, nil
}

func (u *workerUsecase) ToggleAvailability(ctx context.Context, id uint) (*domain.Worker, error) {
	worker, err := u.workerRepo.ToggleAvailability(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Worker not found")
	}
	return worker, nil
}

func (u *workerUsecase) ToggleMyAvailability(ctx context.Context, actor domain.Actor) (*domain.Worker, error) {
	worker, err := u.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return u.ToggleAvailability(ctx, worker.ID)
}

func (u *workerUsecase) Delete(ctx context.Context, id uint) error {
	if err := u.workerRepo.Delete(ctx, id); err != nil {
		return lookupError(err, "Worker not found")
	}
	return nil
}
