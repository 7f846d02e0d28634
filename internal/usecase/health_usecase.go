package usecase

import (
	"context"
	"time"

	"carebridge-backend/internal/domain"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type healthUsecase struct {
	db         Pinger
	redisCheck func(ctx context.Context) error
}

// NewHealthUsecase reports database and Redis reachability. A nil redisCheck
// means Redis is not configured.
func NewHealthUsecase(db Pinger, redisCheck func(ctx context.Context) error) domain.HealthUsecase {
	return &healthUsecase{db: db, redisCheck: redisCheck}
}

func (u *healthUsecase) Check(ctx context.Context) *domain.HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := &domain.HealthStatus{Status: "ok", Database: "up", Redis: "disabled"}

	if err := u.db.PingContext(ctx); err != nil {
		status.Status = "degraded"
		status.Database = "down"
	}

	if u.redisCheck != nil {
		status.Redis = "up"
		if err := u.redisCheck(ctx); err != nil {
			status.Redis = "down"
		}
	}
	return status
}
