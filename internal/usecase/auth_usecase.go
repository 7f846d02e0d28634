package usecase

import (
	"context"
	"errors"

	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"
	"carebridge-backend/pkg/auth"
	"carebridge-backend/pkg/logger"
	"carebridge-backend/pkg/security"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Generate(userID uint, email, role string) (string, error)
}

type authUsecase struct {
	userRepo    domain.UserRepository
	tokens      TokenIssuer
	tracker     domain.LoginAttemptTracker
	securityLog *security.SecurityLogger
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	tokens TokenIssuer,
	tracker domain.LoginAttemptTracker,
	securityLog *security.SecurityLogger,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		tokens:      tokens,
		tracker:     tracker,
		securityLog: securityLog,
	}
}

func (u *authUsecase) Login(ctx context.Context, email, password string, meta domain.LoginMeta) (*domain.LoginResult, error) {
	blocked, err := u.tracker.IsBlocked(ctx, email, meta.IP)
	if err != nil {
		// Tracker errors must not lock everyone out.
		logger.Log.Warn("Login tracker unavailable", "error", err)
	}
	if blocked {
		u.securityLog.LogLoginBlocked(ctx, email, meta.IP, meta.UserAgent, meta.RequestID)
		return nil, apperror.TooManyRequests("Too many failed login attempts. Please try again later.")
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, u.failLogin(ctx, email, meta, "unknown_email")
		}
		return nil, apperror.Internal(err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, u.failLogin(ctx, email, meta, "wrong_password")
	}

	if !user.IsActive {
		u.securityLog.LogLoginFailed(ctx, email, meta.IP, meta.UserAgent, meta.RequestID, "account_inactive")
		return nil, apperror.Unauthorized("Account is deactivated")
	}

	token, err := u.tokens.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if err := u.tracker.ClearAttempts(ctx, email, meta.IP); err != nil {
		logger.Log.Warn("Failed to clear login attempts", "error", err)
	}
	u.securityLog.LogLoginSuccess(ctx, user.ID, meta.IP, meta.RequestID)

	return &domain.LoginResult{Token: token, User: user}, nil
}

func (u *authUsecase) failLogin(ctx context.Context, email string, meta domain.LoginMeta, reason string) error {
	logger.Log.Debug("Login rejected", "reason", reason, "email", security.MaskEmail(email))

	blocked, _, err := u.tracker.RecordFailedAttempt(ctx, email, meta.IP, meta.UserAgent, meta.RequestID)
	if err != nil {
		logger.Log.Warn("Failed to record login attempt", "error", err)
	}
	if blocked {
		return apperror.TooManyRequests("Too many failed login attempts. Please try again later.")
	}
	return apperror.Unauthorized("Invalid credentials")
}

func (u *authUsecase) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User not found")
	}
	return user, nil
}
