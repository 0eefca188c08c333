package service

import (
	"LinkRewards-Backend/internal/domain"
	"LinkRewards-Backend/internal/repository"
	"LinkRewards-Backend/internal/reward"
	"context"

	"go.uber.org/zap"
)

// RewardScheduler hands a click off for asynchronous reward resolution.
// Satisfied by *reward.Processor; mocked in tests.
type RewardScheduler interface {
	Submit(job *reward.Job) error
}

// ClickContext is the request context captured with a click.
type ClickContext struct {
	UserAgent string
	IPAddress string
}

// Redirector implements the synchronous phase of the redirect protocol:
// record the click, bump the lifetime counter, schedule reward resolution,
// and return the target without ever waiting on the fraud check.
type Redirector struct {
	storage   repository.Storage
	scheduler RewardScheduler
	log       *zap.Logger
}

// NewRedirector creates a new redirector.
func NewRedirector(storage repository.Storage, scheduler RewardScheduler, log *zap.Logger) *Redirector {
	return &Redirector{
		storage:   storage,
		scheduler: scheduler,
		log:       log,
	}
}

// ResolveAndTrack resolves a short code to its target URL and records the
// click. An unknown code returns repository.ErrCodeNotFound. A failed
// hand-off to the reward scheduler does not fail the redirect: the click
// then stays unresolved, which is the accepted fire-and-forget outcome.
func (s *Redirector) ResolveAndTrack(ctx context.Context, shortCode string, clickCtx ClickContext) (string, error) {
	link, err := s.storage.GetLinkByShortCode(ctx, shortCode)
	if err != nil {
		return "", err
	}

	click := &domain.Click{
		LinkID:   link.ID,
		Validity: domain.ValidityUnresolved,
	}
	if clickCtx.UserAgent != "" {
		click.UserAgent = &clickCtx.UserAgent
	}
	if clickCtx.IPAddress != "" {
		click.IPAddress = &clickCtx.IPAddress
	}

	if err := s.storage.CreateClick(ctx, click); err != nil {
		return "", err
	}

	if err := s.storage.IncrementTotalClicks(ctx, link.ID); err != nil {
		return "", err
	}

	if err := s.scheduler.Submit(&reward.Job{
		ClickID:   click.ID,
		LinkID:    link.ID,
		UserAgent: clickCtx.UserAgent,
		IPAddress: clickCtx.IPAddress,
	}); err != nil {
		s.log.Warn("failed to schedule reward resolution",
			zap.Int64("click_id", click.ID),
			zap.Error(err))
	}

	return link.TargetURL, nil
}
