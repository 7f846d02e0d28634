package usecase

import (
	"context"
	"strings"

	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"
)

type subscriptionUsecase struct {
	notifier domain.Notifier
}

func NewSubscriptionUsecase(notifier domain.Notifier) domain.SubscriptionUsecase {
	return &subscriptionUsecase{notifier: notifier}
}

// Subscribe queues the subscription welcome email; delivery is not awaited.
func (uc *subscriptionUsecase) Subscribe(ctx context.Context, input domain.SubscribeInput) error {
	email := normalizeEmail(input.Email)
	if email == "" {
		return apperror.BadRequest("Email is required")
	}

	uc.notifier.SendSubscriptionWelcome(email, strings.TrimSpace(input.Name))
	return nil
}
