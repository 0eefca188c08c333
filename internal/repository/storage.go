package repository

import (
	"LinkRewards-Backend/internal/domain"
	"context"
	"errors"
	"time"
)

var (
	ErrCodeNotFound       = errors.New("short code not found")
	ErrClickNotFound      = errors.New("click not found")
	ErrDuplicateShortCode = errors.New("short code already exists")
	ErrDuplicateTargetURL = errors.New("target url already exists")
)

// MonthlyEarning is one month of rewarded earnings for a link, produced by
// grouping valid clicks by the calendar month of clicked_at.
type MonthlyEarning struct {
	LinkID       int64
	Month        time.Time
	EarningCents int64
}

// Storage is the persistence boundary for links and clicks. Every mutation is
// a narrow single-row or single-predicate operation so that correctness comes
// from the atomicity of each call, not from process-level locking.
type Storage interface {
	// Link methods
	CreateLink(ctx context.Context, link *domain.Link) error
	GetLinkByShortCode(ctx context.Context, shortCode string) (*domain.Link, error)
	GetLinkByTargetURL(ctx context.Context, targetURL string) (*domain.Link, error)
	IncrementTotalClicks(ctx context.Context, linkID int64) error
	// AddLinkReward bumps valid_clicks by one and reward_cents by
	// amountCents. Callers invoke it only after winning the RewardClick
	// conditional update.
	AddLinkReward(ctx context.Context, linkID int64, amountCents int64) error

	// Click methods
	CreateClick(ctx context.Context, click *domain.Click) error
	GetClick(ctx context.Context, clickID int64) (*domain.Click, error)
	MarkClickInvalid(ctx context.Context, clickID int64) error
	// RewardClick atomically marks the click valid and rewarded with the
	// given amount, conditioned on the click not being rewarded yet. It
	// reports whether the update matched: exactly one concurrent caller
	// observes true for a given click.
	RewardClick(ctx context.Context, clickID int64, amountCents int64) (bool, error)

	// Analytics methods
	CountLinks(ctx context.Context) (int64, error)
	ListLinks(ctx context.Context, offset, limit int) ([]*domain.Link, error)
	MonthlyEarnings(ctx context.Context, linkIDs []int64) ([]MonthlyEarning, error)
}
