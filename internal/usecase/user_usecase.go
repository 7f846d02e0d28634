package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"
	"carebridge-backend/pkg/auth"
	"carebridge-backend/pkg/logger"
	"carebridge-backend/pkg/security"
	"carebridge-backend/pkg/security/antivirus"

	"github.com/google/uuid"
)

type userUsecase struct {
	userRepo       domain.UserRepository
	workerRepo     domain.WorkerRepository
	recruiterRepo  domain.RecruiterRepository
	jobRepo        domain.JobRepository
	appRepo        domain.ApplicationRepository
	assignmentRepo domain.WorkAssignmentRepository
	storage        domain.ObjectStorage
	scanner        antivirus.Scanner
	notifier       domain.Notifier
	securityLog    *security.SecurityLogger
}

func NewUserUsecase(
	userRepo domain.UserRepository,
	workerRepo domain.WorkerRepository,
	recruiterRepo domain.RecruiterRepository,
	jobRepo domain.JobRepository,
	appRepo domain.ApplicationRepository,
	assignmentRepo domain.WorkAssignmentRepository,
	storage domain.ObjectStorage,
	scanner antivirus.Scanner,
	notifier domain.Notifier,
	securityLog *security.SecurityLogger,
) domain.UserUsecase {
	return &userUsecase{
		userRepo:       userRepo,
		workerRepo:     workerRepo,
		recruiterRepo:  recruiterRepo,
		jobRepo:        jobRepo,
		appRepo:        appRepo,
		assignmentRepo: assignmentRepo,
		storage:        storage,
		scanner:        scanner,
		notifier:       notifier,
		securityLog:    securityLog,
	}
}

func userNotFound(err error, id uint) error {
	return lookupError(err, fmt.Sprintf("User with ID %d not found", id))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create registers a user. actor is nil for public sign-up; only an admin
// may create another admin.
func (u *userUsecase) Create(ctx context.Context, actor *domain.Actor, input domain.CreateUserInput, avatar *domain.FileUpload) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleWorker
	}
	if !role.Valid() {
		return nil, apperror.BadRequest("Invalid role")
	}
	isAdmin := actor != nil && actor.IsAdmin()
	if role == domain.RoleAdmin && !isAdmin {
		return nil, apperror.Forbidden("Only admins can create admin users")
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
		Role:      role,
		IsActive:  true,
	}
	if input.IsActive != nil && isAdmin {
		user.IsActive = *input.IsActive
	}

	if avatar != nil && len(avatar.Data) > 0 {
		url, err := u.storeAvatar(ctx, *avatar)
		if err != nil {
			return nil, err
		}
		user.Avatar = &url
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, writeError(err, "User with this email already exists")
	}

	if isAdmin {
		u.securityLog.LogAdminAction(ctx, security.EventUserCreated, actor.UserID, user.ID, map[string]interface{}{
			"role": string(user.Role),
		})
	}
	u.notifier.SendWelcome(user, domain.RecruiterTypeIndividual)

	return user, nil
}

func (u *userUsecase) List(ctx context.Context, filter domain.UserFilter) (*domain.UserList, error) {
	filter.Page, filter.PageSize = domain.NormalizePage(filter.Page, filter.PageSize)

	users, total, err := u.userRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.UserList{
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		Users:      users,
	}, nil
}

func (u *userUsecase) Search(ctx context.Context, filter domain.UserFilter) (*domain.UserList, error) {
	if strings.TrimSpace(filter.Query) == "" {
		return nil, apperror.BadRequest("Search query is required")
	}
	return u.List(ctx, filter)
}

func (u *userUsecase) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	users, err := u.userRepo.ListActiveByRole(ctx, role)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (u *userUsecase) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, userNotFound(err, id)
	}
	return user, nil
}

func (u *userUsecase) GetJobs(ctx context.Context, id uint) ([]domain.Job, error) {
	user, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleRecruiter {
		return nil, apperror.BadRequest("Only recruiters can have jobs")
	}

	jobs, err := u.jobRepo.List(ctx, domain.JobFilter{RecruiterID: &user.ID})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *userUsecase) GetApplications(ctx context.Context, id uint) ([]domain.Application, error) {
	user, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleWorker {
		return nil, apperror.BadRequest("Only workers can have applications")
	}

	worker, err := u.workerRepo.GetByUserID(ctx, user.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.Application{}, nil
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	apps, err := u.appRepo.List(ctx, domain.ApplicationFilter{WorkerID: &worker.ID})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (u *userUsecase) GetWorkAssignments(ctx context.Context, id uint) ([]domain.WorkAssignment, error) {
	user, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var filter domain.WorkAssignmentFilter
	switch user.Role {
	case domain.RoleWorker:
		worker, err := u.workerRepo.GetByUserID(ctx, user.ID)
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.WorkAssignment{}, nil
		}
		if err != nil {
			return nil, apperror.Internal(err)
		}
		filter.WorkerID = &worker.ID
	case domain.RoleRecruiter:
		recruiter, err := u.recruiterRepo.GetByUserID(ctx, user.ID)
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.WorkAssignment{}, nil
		}
		if err != nil {
			return nil, apperror.Internal(err)
		}
		filter.RecruiterID = &recruiter.ID
	default:
		return nil, apperror.BadRequest("Only workers and recruiters can have work assignments")
	}

	assignments, err := u.assignmentRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return assignments, nil
}

func (u *userUsecase) Update(ctx context.Context, actor domain.Actor, id uint, input domain.UpdateUserInput) (*domain.User, error) {
	if !actor.IsAdmin() && actor.UserID != id {
		return nil, apperror.Forbidden("You can only update your own account")
	}
	if !actor.IsAdmin() && (input.Role != nil || input.IsActive != nil) {
		return nil, apperror.Forbidden("Only admins can change role or account status")
	}

	user, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != user.Email {
			existing, err := u.userRepo.GetByEmail(ctx, email)
			if err == nil && existing.ID != user.ID {
				return nil, apperror.Conflict("User with this email already exists")
			}
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, apperror.Internal(err)
			}
			user.Email = email
		}
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		user.Password = hash
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperror.BadRequest("Invalid role")
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, writeError(err, "User with this email already exists")
	}
	return user, nil
}

func (u *userUsecase) UpdateAvatar(ctx context.Context, actor domain.Actor, id uint, avatar domain.FileUpload) (*domain.User, error) {
	if !actor.IsAdmin() && actor.UserID != id {
		return nil, apperror.Forbidden("You can only update your own avatar")
	}

	user, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := u.storeAvatar(ctx, avatar)
	if err != nil {
		return nil, err
	}
	user.Avatar = &url

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, writeError(err, "")
	}
	return user, nil
}

// storeAvatar validates, downsizes and uploads an avatar, returning its public URL.
func (u *userUsecase) storeAvatar(ctx context.Context, file domain.FileUpload) (string, error) {
	result := security.ValidateImage(file.Filename, file.Data)
	if !result.Valid {
		u.securityLog.Log(ctx, security.SecurityEvent{
			Event: security.EventFileRejected,
			Details: map[string]interface{}{
				"filename":      file.Filename,
				"detected_mime": result.DetectedMIME,
				"reason":        result.Error,
			},
		})
		return "", apperror.BadRequest("Invalid avatar: " + result.Error)
	}

	if scan := u.scanner.Scan(ctx, file.Filename, file.Data); scan.Infected {
		u.securityLog.Log(ctx, security.SecurityEvent{
			Event: security.EventMalwareDetected,
			Details: map[string]interface{}{
				"filename": file.Filename,
				"scanner":  scan.ScannerName,
				"threat":   scan.ThreatName,
				"error":    errString(scan.Error),
			},
		})
		return "", apperror.BadRequest("Invalid avatar: file failed malware scan")
	}

	data, err := security.CompressImage(file.Data, security.AvatarMaxDimension, security.AvatarJPEGQuality)
	if err != nil {
		return "", apperror.BadRequest("Avatar image could not be processed")
	}

	key := fmt.Sprintf("avatars/%s.jpg", uuid.NewString())
	url, err := u.storage.Upload(ctx, key, data, "image/jpeg")
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("upload avatar: %w", err))
	}
	return url, nil
}

func (u *userUsecase) UpdateRole(ctx context.Context, actor domain.Actor, id uint, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperror.BadRequest("Invalid role. Must be one of: ADMIN, RECRUITER, WORKER")
	}
	if actor.UserID == id {
		return nil, apperror.BadRequest("You cannot change your own role")
	}

	user, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := user.Role
	user.Role = role
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, writeError(err, "")
	}

	u.securityLog.LogAdminAction(ctx, security.EventRoleModified, actor.UserID, user.ID, map[string]interface{}{
		"from": string(previous),
		"to":   string(role),
	})
	return user, nil
}

func (u *userUsecase) ToggleStatus(ctx context.Context, actor domain.Actor, id uint) (*domain.User, error) {
	if actor.UserID == id {
		return nil, apperror.BadRequest("You cannot deactivate your own account")
	}

	user, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, writeError(err, "")
	}

	u.securityLog.LogAdminAction(ctx, security.EventUserStatusChanged, actor.UserID, user.ID, map[string]interface{}{
		"is_active": user.IsActive,
	})
	return user, nil
}

func (u *userUsecase) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	if actor.UserID == id {
		return apperror.BadRequest("You cannot delete your own account")
	}

	if err := u.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrReferenceViolation) {
			return apperror.BadRequest("Cannot delete user who still owns jobs")
		}
		return userNotFound(err, id)
	}

	u.securityLog.LogAdminAction(ctx, security.EventUserDeleted, actor.UserID, id, nil)
	return nil
}

// EnsureAdmin creates the first admin account when none exists yet.
func (u *userUsecase) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	count, err := u.userRepo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	email = normalizeEmail(email)
	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		logger.Log.Warn("Admin seed skipped: email already belongs to another account", "email", security.MaskEmail(email))
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("lookup admin seed: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &domain.User{
		Email:     email,
		Password:  hash,
		FirstName: "CareBridge",
		LastName:  "Admin",
		Role:      domain.RoleAdmin,
		IsActive:  true,
	}
	if err := u.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	logger.Log.Info("Seeded initial admin account", "email", security.MaskEmail(email))
	return nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
