package postgres

import (
	"LinkRewards-Backend/internal/domain"
	"LinkRewards-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Unique-violation class per SQLSTATE.
const uniqueViolation = "23505"

// PostgresStorage implements the Storage interface for PostgreSQL.
type PostgresStorage struct {
	db  *gorm.DB
	log *zap.Logger
}

// New creates a new PostgreSQL storage instance.
func New(db *gorm.DB, log *zap.Logger) *PostgresStorage {
	return &PostgresStorage{
		db:  db,
		log: log,
	}
}

// --- Link Methods ---

// CreateLink inserts a new link. Uniqueness conflicts are mapped to sentinel
// errors by constraint so the registration protocol can tell a target URL
// race from a short code collision.
func (s *PostgresStorage) CreateLink(ctx context.Context, link *domain.Link) error {
	if err := s.db.WithContext(ctx).Create(link).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case "ux_links_target_url":
				return repository.ErrDuplicateTargetURL
			case "ux_links_short_code":
				return repository.ErrDuplicateShortCode
			}
		}
		s.log.Error("failed to create link", zap.String("short_code", link.ShortCode), zap.Error(err))
		return fmt.Errorf("failed to create link: %w", err)
	}

	s.log.Info("created link", zap.String("short_code", link.ShortCode), zap.Int64("link_id", link.ID))
	return nil
}

// GetLinkByShortCode fetches a link by its short code.
func (s *PostgresStorage) GetLinkByShortCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	var link domain.Link

	err := s.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrCodeNotFound
	}
	if err != nil {
		s.log.Error("failed to get link by short code", zap.String("short_code", shortCode), zap.Error(err))
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	return &link, nil
}

// GetLinkByTargetURL fetches the canonical link for a normalized target URL.
func (s *PostgresStorage) GetLinkByTargetURL(ctx context.Context, targetURL string) (*domain.Link, error) {
	var link domain.Link

	err := s.db.WithContext(ctx).Where("target_url = ?", targetURL).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrCodeNotFound
	}
	if err != nil {
		s.log.Error("failed to get link by target url", zap.Error(err))
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	return &link, nil
}

// IncrementTotalClicks bumps the lifetime click counter of a link by one.
func (s *PostgresStorage) IncrementTotalClicks(ctx context.Context, linkID int64) error {
	result := s.db.WithContext(ctx).Model(&domain.Link{}).
		Where("id = ?", linkID).
		Update("total_clicks", gorm.Expr("total_clicks + 1"))
	if result.Error != nil {
		s.log.Error("failed to increment total clicks", zap.Int64("link_id", linkID), zap.Error(result.Error))
		return fmt.Errorf("failed to increment total clicks: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrCodeNotFound
	}

	return nil
}

// AddLinkReward credits one valid click and its reward to the link counters.
func (s *PostgresStorage) AddLinkReward(ctx context.Context, linkID int64, amountCents int64) error {
	result := s.db.WithContext(ctx).Model(&domain.Link{}).
		Where("id = ?", linkID).
		Updates(map[string]interface{}{
			"valid_clicks": gorm.Expr("valid_clicks + 1"),
			"reward_cents": gorm.Expr("reward_cents + ?", amountCents),
		})
	if result.Error != nil {
		s.log.Error("failed to add link reward", zap.Int64("link_id", linkID), zap.Error(result.Error))
		return fmt.Errorf("failed to add link reward: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrCodeNotFound
	}

	return nil
}

// --- Click Methods ---

// CreateClick inserts a new click row in its initial unresolved state.
func (s *PostgresStorage) CreateClick(ctx context.Context, click *domain.Click) error {
	if err := s.db.WithContext(ctx).Create(click).Error; err != nil {
		s.log.Error("failed to create click", zap.Int64("link_id", click.LinkID), zap.Error(err))
		return fmt.Errorf("failed to create click: %w", err)
	}

	return nil
}

// GetClick fetches a single click by id.
func (s *PostgresStorage) GetClick(ctx context.Context, clickID int64) (*domain.Click, error) {
	var click domain.Click

	err := s.db.WithContext(ctx).First(&click, clickID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrClickNotFound
	}
	if err != nil {
		s.log.Error("failed to get click", zap.Int64("click_id", clickID), zap.Error(err))
		return nil, fmt.Errorf("failed to get click: %w", err)
	}

	return &click, nil
}

// MarkClickInvalid records a failed fraud check. Counters are not touched.
func (s *PostgresStorage) MarkClickInvalid(ctx context.Context, clickID int64) error {
	result := s.db.WithContext(ctx).Model(&domain.Click{}).
		Where("id = ?", clickID).
		Update("validity", domain.ValidityInvalid)
	if result.Error != nil {
		s.log.Error("failed to mark click invalid", zap.Int64("click_id", clickID), zap.Error(result.Error))
		return fmt.Errorf("failed to mark click invalid: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrClickNotFound
	}

	return nil
}

// RewardClick is the double-reward guard: a single conditional UPDATE that
// only matches while rewarded is still false. RowsAffected tells the caller
// whether it won; a concurrent duplicate resolution for the same click
// observes zero rows and must skip the link credit.
func (s *PostgresStorage) RewardClick(ctx context.Context, clickID int64, amountCents int64) (bool, error) {
	result := s.db.WithContext(ctx).Model(&domain.Click{}).
		Where("id = ? AND rewarded = ?", clickID, false).
		Updates(map[string]interface{}{
			"validity":     domain.ValidityValid,
			"rewarded":     true,
			"reward_cents": amountCents,
		})
	if result.Error != nil {
		s.log.Error("failed to reward click", zap.Int64("click_id", clickID), zap.Error(result.Error))
		return false, fmt.Errorf("failed to reward click: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

// --- Analytics Methods ---

// CountLinks returns the total number of registered links.
func (s *PostgresStorage) CountLinks(ctx context.Context) (int64, error) {
	var count int64

	err := s.db.WithContext(ctx).Model(&domain.Link{}).Count(&count).Error
	if err != nil {
		s.log.Error("failed to count links", zap.Error(err))
		return 0, fmt.Errorf("failed to count links: %w", err)
	}

	return count, nil
}

// ListLinks returns one page of links, newest first.
func (s *PostgresStorage) ListLinks(ctx context.Context, offset, limit int) ([]*domain.Link, error) {
	var links []*domain.Link

	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&links).Error
	if err != nil {
		s.log.Error("failed to list links", zap.Int("offset", offset), zap.Int("limit", limit), zap.Error(err))
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	return links, nil
}

// MonthlyEarnings groups the valid clicks of the given links by calendar
// month of clicked_at and sums their rewards, newest month first.
func (s *PostgresStorage) MonthlyEarnings(ctx context.Context, linkIDs []int64) ([]repository.MonthlyEarning, error) {
	if len(linkIDs) == 0 {
		return nil, nil
	}

	var results []struct {
		LinkID       int64     `gorm:"column:link_id"`
		Month        time.Time `gorm:"column:month"`
		EarningCents int64     `gorm:"column:earning_cents"`
	}

	err := s.db.WithContext(ctx).
		Model(&domain.Click{}).
		Select("link_id, date_trunc('month', clicked_at) AS month, SUM(reward_cents) AS earning_cents").
		Where("link_id IN ? AND validity = ?", linkIDs, domain.ValidityValid).
		Group("link_id, date_trunc('month', clicked_at)").
		Order("month DESC").
		Find(&results).Error
	if err != nil {
		s.log.Error("failed to aggregate monthly earnings", zap.Int("links", len(linkIDs)), zap.Error(err))
		return nil, fmt.Errorf("failed to aggregate monthly earnings: %w", err)
	}

	earnings := make([]repository.MonthlyEarning, 0, len(results))
	for _, r := range results {
		earnings = append(earnings, repository.MonthlyEarning{
			LinkID:       r.LinkID,
			Month:        r.Month,
			EarningCents: r.EarningCents,
		})
	}

	return earnings, nil
}
