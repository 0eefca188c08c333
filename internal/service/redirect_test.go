package service

import (
	"LinkRewards-Backend/internal/domain"
	"LinkRewards-Backend/internal/repository"
	"LinkRewards-Backend/internal/repository/memory"
	"LinkRewards-Backend/internal/reward"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// captureScheduler records submitted jobs instead of processing them.
type captureScheduler struct {
	mu   sync.Mutex
	jobs []*reward.Job
	err  error
}

func (s *captureScheduler) Submit(job *reward.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.jobs = append(s.jobs, job)
	return nil
}

func seedLink(t *testing.T, storage repository.Storage, code, target string) *domain.Link {
	t.Helper()
	link := &domain.Link{ShortCode: code, TargetURL: target}
	require.NoError(t, storage.CreateLink(context.Background(), link))
	return link
}

func TestResolveAndTrack_ReturnsTargetAndRecordsClick(t *testing.T) {
	storage := memory.New()
	scheduler := &captureScheduler{}
	redirector := NewRedirector(storage, scheduler, zap.NewNop())

	link := seedLink(t, storage, "abcd1234", "https://example.com/a")

	target, err := redirector.ResolveAndTrack(context.Background(), "abcd1234", ClickContext{
		UserAgent: "Mozilla/5.0",
		IPAddress: "203.0.113.7",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", target)

	// Click row exists in its initial state.
	require.Len(t, scheduler.jobs, 1)
	job := scheduler.jobs[0]
	assert.Equal(t, link.ID, job.LinkID)
	assert.Equal(t, "Mozilla/5.0", job.UserAgent)

	click, err := storage.GetClick(context.Background(), job.ClickID)
	require.NoError(t, err)
	assert.Equal(t, domain.ValidityUnresolved, click.Validity)
	assert.False(t, click.Rewarded)
	assert.Zero(t, click.RewardCents)

	// Total counter bumped synchronously; reward counters untouched.
	updated, err := storage.GetLinkByShortCode(context.Background(), "abcd1234")
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.TotalClicks)
	assert.Zero(t, updated.ValidClicks)
	assert.Zero(t, updated.RewardCents)
}

func TestResolveAndTrack_UnknownCode(t *testing.T) {
	redirector := NewRedirector(memory.New(), &captureScheduler{}, zap.NewNop())

	_, err := redirector.ResolveAndTrack(context.Background(), "zzzzzzzz", ClickContext{})
	assert.ErrorIs(t, err, repository.ErrCodeNotFound)
}

func TestResolveAndTrack_SchedulerFailureDoesNotFailRedirect(t *testing.T) {
	storage := memory.New()
	scheduler := &captureScheduler{err: errors.New("queue full")}
	redirector := NewRedirector(storage, scheduler, zap.NewNop())

	seedLink(t, storage, "abcd1234", "https://example.com/a")

	target, err := redirector.ResolveAndTrack(context.Background(), "abcd1234", ClickContext{})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", target)

	// The click is recorded even though resolution was never scheduled.
	updated, err := storage.GetLinkByShortCode(context.Background(), "abcd1234")
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.TotalClicks)
}

func TestResolveAndTrack_EachClickGetsOwnRow(t *testing.T) {
	storage := memory.New()
	scheduler := &captureScheduler{}
	redirector := NewRedirector(storage, scheduler, zap.NewNop())

	seedLink(t, storage, "abcd1234", "https://example.com/a")

	ctx := context.Background()
	_, err := redirector.ResolveAndTrack(ctx, "abcd1234", ClickContext{})
	require.NoError(t, err)
	_, err = redirector.ResolveAndTrack(ctx, "abcd1234", ClickContext{})
	require.NoError(t, err)

	require.Len(t, scheduler.jobs, 2)
	assert.NotEqual(t, scheduler.jobs[0].ClickID, scheduler.jobs[1].ClickID)

	updated, err := storage.GetLinkByShortCode(ctx, "abcd1234")
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.TotalClicks)
}
