package usecase

import (
	"context"
	"time"

	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"
)

const assignmentExistsMsg = "Worker already assigned to this job on the specified date"

type workAssignmentUsecase struct {
	assignmentRepo domain.WorkAssignmentRepository
	jobRepo        domain.JobRepository
	workerRepo     domain.WorkerRepository
	recruiterRepo  domain.RecruiterRepository
	notifier       domain.Notifier
}

func NewWorkAssignmentUsecase(
	assignmentRepo domain.WorkAssignmentRepository,
	jobRepo domain.JobRepository,
	workerRepo domain.WorkerRepository,
	recruiterRepo domain.RecruiterRepository,
	notifier domain.Notifier,
) domain.WorkAssignmentUsecase {
	return &workAssignmentUsecase{
		assignmentRepo: assignmentRepo,
		jobRepo:        jobRepo,
		workerRepo:     workerRepo,
		recruiterRepo:  recruiterRepo,
		notifier:       notifier,
	}
}

// workDay keeps the calendar date t carries in its own offset and stores it
// as midnight UTC, so one assignment per calendar day is enforced.
func workDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (u *workAssignmentUsecase) checkRefs(ctx context.Context, jobID, workerID, recruiterID *uint) error {
	if jobID != nil {
		if _, err := u.jobRepo.GetByID(ctx, *jobID); err != nil {
			return lookupError(err, "Job not found")
		}
	}
	if workerID != nil {
		if _, err := u.workerRepo.GetByID(ctx, *workerID); err != nil {
			return lookupError(err, "Worker not found")
		}
	}
	if recruiterID != nil {
		if _, err := u.recruiterRepo.GetByID(ctx, *recruiterID); err != nil {
			return lookupError(err, "Recruiter not found")
		}
	}
	return nil
}

func (u *workAssignmentUsecase) Create(ctx context.Context, input domain.CreateWorkAssignmentInput) (*domain.WorkAssignment, error) {
	if err := u.checkRefs(ctx, &input.JobID, &input.WorkerID, &input.RecruiterID); err != nil {
		return nil, err
	}

	day := workDay(input.WorkDate)
	exists, err := u.assignmentRepo.Exists(ctx, input.JobID, input.WorkerID, day)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict(assignmentExistsMsg)
	}

	status := domain.AssignmentActive
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperror.BadRequest("Invalid assignment status")
		}
		status = *input.Status
	}

	assignment := &domain.WorkAssignment{
		JobID:       input.JobID,
		WorkerID:    input.WorkerID,
		RecruiterID: input.RecruiterID,
		WorkDate:    day,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Status:      status,
		Notes:       input.Notes,
	}
	if err := u.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, writeError(err, assignmentExistsMsg)
	}

	created, err := u.GetByID(ctx, assignment.ID)
	if err != nil {
		return nil, err
	}
	u.notifyWorker(created)
	return created, nil
}

func (u *workAssignmentUsecase) notifyWorker(a *domain.WorkAssignment) {
	if a.Worker == nil || a.Worker.User == nil {
		return
	}

	workDate := a.WorkDate
	notice := domain.WorkAssignmentNotice{
		WorkDate:  &workDate,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
	}
	if a.Job != nil {
		notice.JobTitle = a.Job.Title
		if a.Job.Location != nil {
			notice.Location = *a.Job.Location
		}
	}
	if a.Recruiter != nil && a.Recruiter.User != nil {
		notice.Recruiter = a.Recruiter.User.FullName()
	}
	if a.Notes != nil {
		notice.Instruction = *a.Notes
	}
	u.notifier.SendWorkAssignmentConfirmed(a.Worker.User, notice)
}

func (u *workAssignmentUsecase) List(ctx context.Context, filter domain.WorkAssignmentFilter) ([]domain.WorkAssignment, error) {
	assignments, err := u.assignmentRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return assignments, nil
}

func (u *workAssignmentUsecase) GetByID(ctx context.Context, id uint) (*domain.WorkAssignment, error) {
	assignment, err := u.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Work assignment not found")
	}
	return assignment, nil
}

func (u *workAssignmentUsecase) Update(ctx context.Context, id uint, input domain.UpdateWorkAssignmentInput) (*domain.WorkAssignment, error) {
	assignment, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.checkRefs(ctx, input.JobID, input.WorkerID, input.RecruiterID); err != nil {
		return nil, err
	}

	if input.JobID != nil {
		assignment.JobID = *input.JobID
	}
	if input.WorkerID != nil {
		assignment.WorkerID = *input.WorkerID
	}
	if input.RecruiterID != nil {
		assignment.RecruiterID = *input.RecruiterID
	}
	if input.WorkDate != nil {
		assignment.WorkDate = workDay(*input.WorkDate)
	}
	if input.StartTime != nil {
		assignment.StartTime = input.StartTime
	}
	if input.EndTime != nil {
		assignment.EndTime = input.EndTime
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperror.BadRequest("Invalid assignment status")
		}
		assignment.Status = *input.Status
	}
	if input.Notes != nil {
		assignment.Notes = input.Notes
	}

	return u.save(ctx, assignment)
}

func (u *workAssignmentUsecase) UpdateStatus(ctx context.Context, id uint, status domain.AssignmentStatus) (*domain.WorkAssignment, error) {
	if !status.Valid() {
		return nil, apperror.BadRequest("Invalid status. Must be one of: ACTIVE, COMPLETED, CANCELLED")
	}

	assignment, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	assignment.Status = status
	return u.save(ctx, assignment)
}

func (u *workAssignmentUsecase) save(ctx context.Context, assignment *domain.WorkAssignment) (*domain.WorkAssignment, error) {
	if err := u.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, writeError(err, assignmentExistsMsg)
	}
	return u.GetByID(ctx, assignment.ID)
}

func (u *workAssignmentUsecase) Delete(ctx context.Context, id uint) error {
	if err := u.assignmentRepo.Delete(ctx, id); err != nil {
		return lookupError(err, "Work assignment not found")
	}
	return nil
}
