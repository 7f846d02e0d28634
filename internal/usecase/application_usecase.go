package usecase

import (
	"context"
	"time"

	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"
)

const applicationExistsMsg = "Application already exists for this job and worker"

type applicationUsecase struct {
	appRepo    domain.ApplicationRepository
	jobRepo    domain.JobRepository
	workerRepo domain.WorkerRepository
	notifier   domain.Notifier
}

func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	workerRepo domain.WorkerRepository,
	notifier domain.Notifier,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo:    appRepo,
		jobRepo:    jobRepo,
		workerRepo: workerRepo,
		notifier:   notifier,
	}
}

func (uc *applicationUsecase) checkJob(ctx context.Context, id uint) error {
	if _, err := uc.jobRepo.GetByID(ctx, id); err != nil {
		return lookupError(err, "Job not found")
	}
	return nil
}

func (uc *applicationUsecase) checkWorker(ctx context.Context, id uint) error {
	if _, err := uc.workerRepo.GetByID(ctx, id); err != nil {
		return lookupError(err, "Worker not found")
	}
	return nil
}

// Create records a worker's application and notifies the job's recruiter.
func (uc *applicationUsecase) Create(ctx context.Context, input domain.CreateApplicationInput) (*domain.Application, error) {
	exists, err := uc.appRepo.Exists(ctx, input.JobID, input.WorkerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict(applicationExistsMsg)
	}

	if err := uc.checkJob(ctx, input.JobID); err != nil {
		return nil, err
	}
	if err := uc.checkWorker(ctx, input.WorkerID); err != nil {
		return nil, err
	}

	status := domain.ApplicationPending
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperror.BadRequest("Invalid application status")
		}
		status = *input.Status
	}

	app := &domain.Application{
		JobID:     input.JobID,
		WorkerID:  input.WorkerID,
		Status:    status,
		Message:   input.Message,
		AppliedAt: time.Now(),
	}
	if err := uc.appRepo.Create(ctx, app); err != nil {
		return nil, writeError(err, applicationExistsMsg)
	}

	created, err := uc.GetByID(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	if created.Job != nil {
		uc.notifier.SendJobApplicationReceived(created.Job.Recruiter, created.Job, created.Worker, created.Message)
	}
	return created, nil
}

func (uc *applicationUsecase) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperror.BadRequest("Invalid application status")
	}
	apps, err := uc.appRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (uc *applicationUsecase) GetByID(ctx context.Context, id uint) (*domain.Application, error) {
	app, err := uc.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Application not found")
	}
	return app, nil
}

func (uc *applicationUsecase) ListByJob(ctx context.Context, jobID uint) ([]domain.Application, error) {
	return uc.List(ctx, domain.ApplicationFilter{JobID: &jobID})
}

func (uc *applicationUsecase) ListByWorker(ctx context.Context, workerID uint) ([]domain.Application, error) {
	return uc.List(ctx, domain.ApplicationFilter{WorkerID: &workerID})
}

func (uc *applicationUsecase) Update(ctx context.Context, id uint, input domain.UpdateApplicationInput) (*domain.Application, error) {
	app, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.JobID != nil {
		if err := uc.checkJob(ctx, *input.JobID); err != nil {
			return nil, err
		}
		app.JobID = *input.JobID
	}
	if input.WorkerID != nil {
		if err := uc.checkWorker(ctx, *input.WorkerID); err != nil {
			return nil, err
		}
		app.WorkerID = *input.WorkerID
	}
	if input.Message != nil {
		app.Message = input.Message
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperror.BadRequest("Invalid application status")
		}
		app.Status = *input.Status
	}

	return uc.save(ctx, app, input.Status != nil && *input.Status == domain.ApplicationAccepted)
}

func (uc *applicationUsecase) UpdateStatus(ctx context.Context, id uint, status domain.ApplicationStatus) (*domain.Application, error) {
	if !status.Valid() {
		return nil, apperror.BadRequest("Invalid status. Must be one of: PENDING, REVIEWED, ACCEPTED, REJECTED, WITHDRAWN")
	}

	app, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	app.Status = status

	return uc.save(ctx, app, status == domain.ApplicationAccepted)
}

// save persists app and, when accepted, tells the worker about the assignment.
func (uc *applicationUsecase) save(ctx context.Context, app *domain.Application, accepted bool) (*domain.Application, error) {
	if err := uc.appRepo.Update(ctx, app); err != nil {
		return nil, writeError(err, applicationExistsMsg)
	}

	updated, err := uc.GetByID(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	if accepted {
		uc.notifyAccepted(updated)
	}
	return updated, nil
}

func (uc *applicationUsecase) notifyAccepted(app *domain.Application) {
	if app.Worker == nil || app.Worker.User == nil || app.Job == nil {
		return
	}

	notice := domain.WorkAssignmentNotice{JobTitle: app.Job.Title}
	if app.Job.Location != nil {
		notice.Location = *app.Job.Location
	}
	if app.Job.Recruiter != nil {
		notice.Recruiter = app.Job.Recruiter.FullName()
	}
	uc.notifier.SendWorkAssignmentConfirmed(app.Worker.User, notice)
}

func (uc *applicationUsecase) Delete(ctx context.Context, id uint) error {
	if err := uc.appRepo.Delete(ctx, id); err != nil {
		return lookupError(err, "Application not found")
	}
	return nil
}
