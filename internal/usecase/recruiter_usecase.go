package usecase

import (
	"context"
	"errors"
	"strings"

	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"
	"carebridge-backend/pkg/auth"
	"carebridge-backend/pkg/security"
)

type recruiterUsecase struct {
	recruiterRepo domain.RecruiterRepository
	userRepo      domain.UserRepository
	notifier      domain.Notifier
	securityLog   *security.SecurityLogger
}

func NewRecruiterUsecase(
	recruiterRepo domain.RecruiterRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
	securityLog *security.SecurityLogger,
) domain.RecruiterUsecase {
	return &recruiterUsecase{
		recruiterRepo: recruiterRepo,
		userRepo:      userRepo,
		notifier:      notifier,
		securityLog:   securityLog,
	}
}

// Register creates the recruiter user and profile atomically.
func (u *recruiterUsecase) Register(ctx context.Context, input domain.RegisterRecruiterInput) (*domain.Recruiter, error) {
	if !input.Type.Valid() {
		return nil, apperror.BadRequest("Invalid recruiter type")
	}

	email := normalizeEmail(input.Email)
	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict("User with this email already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Email:     email,
		Password:  hash,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Phone:     input.Phone,
		Role:      domain.RoleRecruiter,
		IsActive:  true,
	}
	recruiter := &domain.Recruiter{
		CompanyName: input.CompanyName,
		Type:        input.Type,
		Description: input.Description,
		Location:    input.Location,
		Website:     input.Website,
		Verified:    false,
	}

	if err := u.recruiterRepo.CreateWithUser(ctx, user, recruiter); err != nil {
		return nil, writeError(err, "User with this email already exists")
	}

	u.notifier.SendWelcome(user, recruiter.Type)

	return u.GetByID(ctx, recruiter.ID)
}

func (u *recruiterUsecase) List(ctx context.Context, filter domain.RecruiterFilter) (*domain.RecruiterList, error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, apperror.BadRequest("Invalid recruiter type")
	}
	filter.Page, filter.PageSize = domain.NormalizePage(filter.Page, filter.PageSize)

	recruiters, total, err := u.recruiterRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.RecruiterList{
		Recruiters: recruiters,
		Pagination: domain.NewPagination(filter.Page, filter.PageSize, total),
	}, nil
}

func (u *recruiterUsecase) Stats(ctx context.Context) (*domain.RecruiterStats, error) {
	stats, err := u.recruiterRepo.Stats(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}

func (u *recruiterUsecase) GetByID(ctx context.Context, id uint) (*domain.Recruiter, error) {
	recruiter, err := u.recruiterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Recruiter not found")
	}
	return recruiter, nil
}

func (u *recruiterUsecase) GetByUserID(ctx context.Context, userID uint) (*domain.Recruiter, error) {
	recruiter, err := u.recruiterRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "Recruiter profile not found for this user")
	}
	return recruiter, nil
}

func (u *recruiterUsecase) Update(ctx context.Context, actor domain.Actor, id uint, input domain.UpdateRecruiterInput) (*domain.Recruiter, error) {
	recruiter, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		if recruiter.UserID != actor.UserID {
			return nil, apperror.Forbidden("You can only update your own recruiter profile")
		}
		if input.UserID != nil || input.Verified != nil {
			return nil, apperror.Forbidden("Only admins can change the owner or verification status")
		}
	}

	if input.UserID != nil && *input.UserID != recruiter.UserID {
		if _, err := u.userRepo.GetByID(ctx, *input.UserID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, apperror.BadRequest("User does not exist")
			}
			return nil, apperror.Internal(err)
		}
		if _, err := u.recruiterRepo.GetByUserID(ctx, *input.UserID); err == nil {
			return nil, apperror.Conflict("Another recruiter profile already exists for this user")
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
		recruiter.UserID = *input.UserID
	}

	if input.CompanyName != nil {
		recruiter.CompanyName = input.CompanyName
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, apperror.BadRequest("Invalid recruiter type")
		}
		recruiter.Type = *input.Type
	}
	if input.Description != nil {
		recruiter.Description = input.Description
	}
	if input.Location != nil {
		recruiter.Location = input.Location
	}
	if input.Website != nil {
		recruiter.Website = input.Website
	}
	if input.Verified != nil {
		recruiter.Verified = *input.Verified
	}

	if err := u.recruiterRepo.Update(ctx, recruiter); err != nil {
		return nil, writeError(err, "Another recruiter profile already exists for this user")
	}
	return u.GetByID(ctx, recruiter.ID)
}

func (u *recruiterUsecase) Verify(ctx context.Context, id uint) (*domain.Recruiter, error) {
	return u.setVerified(ctx, id, true)
}

func (u *recruiterUsecase) Unverify(ctx context.Context, id uint) (*domain.Recruiter, error) {
	return u.setVerified(ctx, id, false)
}

func (u *recruiterUsecase) setVerified(ctx context.Context, id uint, verified bool) (*domain.Recruiter, error) {
	recruiter, err := u.recruiterRepo.SetVerified(ctx, id, verified)
	if err != nil {
		return nil, lookupError(err, "Recruiter not found")
	}
	u.logVerification(ctx, recruiter)
	return recruiter, nil
}

func (u *recruiterUsecase) ToggleVerification(ctx context.Context, id uint) (*domain.Recruiter, error) {
	recruiter, err := u.recruiterRepo.ToggleVerified(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Recruiter not found")
	}
	u.logVerification(ctx, recruiter)
	return recruiter, nil
}

func (u *recruiterUsecase) logVerification(ctx context.Context, recruiter *domain.Recruiter) {
	actorID, _ := ctx.Value(domain.KeyUserID).(uint)
	u.securityLog.LogAdminAction(ctx, security.EventRecruiterVerified, actorID, recruiter.ID, map[string]interface{}{
		"verified": recruiter.Verified,
	})
}

func (u *recruiterUsecase) Delete(ctx context.Context, id uint) error {
	if err := u.recruiterRepo.Delete(ctx, id); err != nil {
		return lookupError(err, "Recruiter not found")
	}
	return nil
}
