package usecase

import (
	"context"
	"errors"
	"strings"

	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"
)

const categoryExistsMsg = "Job category with this name already exists"

type jobCategoryUsecase struct {
	categoryRepo domain.JobCategoryRepository
}

func NewJobCategoryUsecase(categoryRepo domain.JobCategoryRepository) domain.JobCategoryUsecase {
	return &jobCategoryUsecase{categoryRepo: categoryRepo}
}

func (u *jobCategoryUsecase) Create(ctx context.Context, input domain.CreateJobCategoryInput) (*domain.JobCategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.BadRequest("Name is required")
	}
	if err := u.ensureNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	category := &domain.JobCategory{Name: name, Description: input.Description}
	if err := u.categoryRepo.Create(ctx, category); err != nil {
		return nil, writeError(err, categoryExistsMsg)
	}
	return category, nil
}

// ensureNameFree fails with Conflict when another category (not exceptID) uses name.
func (u *jobCategoryUsecase) ensureNameFree(ctx context.Context, name string, exceptID uint) error {
	existing, err := u.categoryRepo.GetByName(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return apperror.Internal(err)
	}
	if existing.ID != exceptID {
		return apperror.Conflict(categoryExistsMsg)
	}
	return nil
}

func (u *jobCategoryUsecase) List(ctx context.Context) ([]domain.JobCategory, error) {
	categories, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return categories, nil
}

func (u *jobCategoryUsecase) GetByID(ctx context.Context, id uint) (*domain.JobCategory, error) {
	category, err := u.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Job category not found")
	}
	return category, nil
}

func (u *jobCategoryUsecase) Update(ctx context.Context, id uint, input domain.UpdateJobCategoryInput) (*domain.JobCategory, error) {
	category, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.BadRequest("Name cannot be empty")
		}
		if err := u.ensureNameFree(ctx, name, category.ID); err != nil {
			return nil, err
		}
		category.Name = name
	}
	if input.Description != nil {
		category.Description = input.Description
	}

	if err := u.categoryRepo.Update(ctx, category); err != nil {
		return nil, writeError(err, categoryExistsMsg)
	}
	return category, nil
}

func (u *jobCategoryUsecase) Delete(ctx context.Context, id uint) error {
	err := u.categoryRepo.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound("Job category not found")
	case errors.Is(err, domain.ErrReferenceViolation):
		return apperror.BadRequest("Cannot delete job category as it is referenced by other records")
	}
	return apperror.Internal(err)
}
