package usecase

import (
	"context"
	"errors"
	"strings"

	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"

	"gorm.io/datatypes"
)

type jobUsecase struct {
	jobRepo      domain.JobRepository
	categoryRepo domain.JobCategoryRepository
	userRepo     domain.UserRepository
}

func NewJobUsecase(jobRepo domain.JobRepository, categoryRepo domain.JobCategoryRepository, userRepo domain.UserRepository) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:      jobRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

func (u *jobUsecase) checkCategory(ctx context.Context, id uint) error {
	if _, err := u.categoryRepo.GetByID(ctx, id); err != nil {
		return lookupError(err, "Job category not found")
	}
	return nil
}

func (u *jobUsecase) checkRecruiter(ctx context.Context, id uint) error {
	if _, err := u.userRepo.GetByID(ctx, id); err != nil {
		return lookupError(err, "Recruiter not found")
	}
	return nil
}

// Create posts a job owned by the caller. Admins may post on behalf of another recruiter.
func (u *jobUsecase) Create(ctx context.Context, actor domain.Actor, input domain.CreateJobInput) (*domain.Job, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperror.BadRequest("Title is required")
	}

	recruiterID := actor.UserID
	if actor.IsAdmin() && input.RecruiterID != nil {
		recruiterID = *input.RecruiterID
	}

	if err := u.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	if err := u.checkRecruiter(ctx, recruiterID); err != nil {
		return nil, err
	}

	job := &domain.Job{
		Title:         title,
		Description:   input.Description,
		Location:      input.Location,
		Salary:        input.Salary,
		SalaryType:    domain.SalaryMonthly,
		Requirements:  input.Requirements,
		WorkingHours:  input.WorkingHours,
		IsActive:      true,
		AllowMultiple: true,
		Skills:        datatypes.JSONSlice[string](input.Skills),
		CategoryID:    input.CategoryID,
		RecruiterID:   recruiterID,
	}
	if job.Skills == nil {
		job.Skills = datatypes.JSONSlice[string]{}
	}
	if input.SalaryType != nil {
		job.SalaryType = *input.SalaryType
	}
	if input.IsActive != nil {
		job.IsActive = *input.IsActive
	}
	if input.AllowMultiple != nil {
		job.AllowMultiple = *input.AllowMultiple
	}
	if input.Urgent != nil {
		job.Urgent = *input.Urgent
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, writeError(err, "")
	}
	return u.GetByID(ctx, job.ID)
}

func (u *jobUsecase) List(ctx context.Context, activeOnly bool) ([]domain.Job, error) {
	filter := domain.JobFilter{}
	if activeOnly {
		filter.ActiveOnly = &activeOnly
	}
	jobs, err := u.jobRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

// ListMine lists the caller's jobs. A nil activeOnly returns active and inactive jobs.
func (u *jobUsecase) ListMine(ctx context.Context, actor domain.Actor, activeOnly *bool) ([]domain.Job, error) {
	jobs, err := u.jobRepo.List(ctx, domain.JobFilter{RecruiterID: &actor.UserID, ActiveOnly: activeOnly})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) GetByID(ctx context.Context, id uint) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Job not found")
	}
	return job, nil
}

// owned loads a job the actor may modify.
func (u *jobUsecase) owned(ctx context.Context, actor domain.Actor, id uint) (*domain.Job, error) {
	job, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && job.RecruiterID != actor.UserID {
		return nil, apperror.Forbidden("You can only modify your own jobs")
	}
	return job, nil
}

func (u *jobUsecase) Update(ctx context.Context, actor domain.Actor, id uint, input domain.UpdateJobInput) (*domain.Job, error) {
	job, err := u.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if err := u.checkCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		job.CategoryID = *input.CategoryID
	}
	if input.RecruiterID != nil && *input.RecruiterID != job.RecruiterID {
		if !actor.IsAdmin() {
			return nil, apperror.Forbidden("Only admins can reassign a job")
		}
		if err := u.checkRecruiter(ctx, *input.RecruiterID); err != nil {
			return nil, err
		}
		job.RecruiterID = *input.RecruiterID
	}

	if input.Title != nil {
		job.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Location != nil {
		job.Location = input.Location
	}
	if input.Salary != nil {
		job.Salary = input.Salary
	}
	if input.SalaryType != nil {
		job.SalaryType = *input.SalaryType
	}
	if input.Requirements != nil {
		job.Requirements = input.Requirements
	}
	if input.WorkingHours != nil {
		job.WorkingHours = input.WorkingHours
	}
	if input.IsActive != nil {
		job.IsActive = *input.IsActive
	}
	if input.AllowMultiple != nil {
		job.AllowMultiple = *input.AllowMultiple
	}
	if input.Urgent != nil {
		job.Urgent = *input.Urgent
	}
	if input.Skills != nil {
		job.Skills = datatypes.JSONSlice[string](input.Skills)
	}

	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, writeError(err, "")
	}
	return u.GetByID(ctx, job.ID)
}

func (u *jobUsecase) ToggleActive(ctx context.Context, actor domain.Actor, id uint) (*domain.Job, error) {
	if _, err := u.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	job, err := u.jobRepo.ToggleActive(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Job not found")
	}
	return job, nil
}

// Delete removes a job that has no applications or work assignments.
func (u *jobUsecase) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	if _, err := u.owned(ctx, actor, id); err != nil {
		return err
	}

	dependents, err := u.jobRepo.CountDependents(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if dependents > 0 {
		return apperror.BadRequest("Cannot delete job with existing applications or assignments")
	}

	if err := u.jobRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrReferenceViolation) {
			return apperror.BadRequest("Cannot delete job with existing applications or assignments")
		}
		return lookupError(err, "Job not found")
	}
	return nil
}
