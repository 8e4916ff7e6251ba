package cron

import (
	"context"
	"log/slog"
	"time"
)

const JobPruneRevokedTokens = "tasks.auth.prune_revoked_tokens"

type revocationStore interface {
	PruneExpired(now time.Time) int
}

type TokenJobs struct {
	revocations revocationStore
	now         func() time.Time
}

func NewTokenJobs(revocations revocationStore) *TokenJobs {
	return &TokenJobs{revocations: revocations, now: time.Now}
}

func (j *TokenJobs) RegisterJobs(scheduler *Scheduler, spec string) error {
	return scheduler.AddJob(JobPruneRevokedTokens, spec, j.PruneRevokedTokens)
}

// PruneRevokedTokens drops revoked token ids whose tokens have expired.
func (j *TokenJobs) PruneRevokedTokens(ctx context.Context) error {
	removed := j.revocations.PruneExpired(j.now())
	if removed > 0 {
		slog.Info("Cron: Pruned expired revoked tokens", "removed", removed)
	}
	return nil
}
