package jobs

import (
	"context"
	"time"

	"audora/internal/constants"
	"audora/internal/logger"
	"audora/internal/repositories"
	"audora/internal/services"
)

// TokenCleanupJob drops verification and reset tokens past their lifetime so
// stale links stop working even without a lookup
type TokenCleanupJob struct {
	tokenRepo repositories.TokenRepository
	log       logger.Logger
	schedule  services.Schedule
}

func NewTokenCleanupJob(
	tokenRepo repositories.TokenRepository,
	schedule services.Schedule,
) *TokenCleanupJob {
	return &TokenCleanupJob{
		tokenRepo: tokenRepo,
		log:       logger.New("tokenCleanupJob"),
		schedule:  schedule,
	}
}

func (j *TokenCleanupJob) Name() string {
	return "ExpiredTokenCleanup"
}

func (j *TokenCleanupJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	cutoff := time.Now().Add(-constants.TokenExpiry)
	removed, err := j.tokenRepo.DeleteExpired(ctx, cutoff)
	if err != nil {
		return log.Err("expired token cleanup failed", err)
	}

	if removed > 0 {
		log.Info("Removed expired tokens", "count", removed)
	}
	return nil
}

func (j *TokenCleanupJob) Schedule() services.Schedule {
	return j.schedule
}
