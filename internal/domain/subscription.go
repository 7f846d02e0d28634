package domain

import "context"

type SubscribeInput struct {
	Email string `json:"email" binding:"required,email,max=255"`
	Name  string `json:"name" binding:"omitempty,max=100,no_emoji"`
}

type SubscriptionUsecase interface {
	Subscribe(ctx context.Context, input SubscribeInput) error
}
