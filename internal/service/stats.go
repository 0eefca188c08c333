package service

import (
	"LinkRewards-Backend/internal/repository"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// MonthlyEntry is one calendar month of rewarded earnings, in dollars.
type MonthlyEntry struct {
	Month   string  `json:"month"` // YYYY-MM
	Earning float64 `json:"earning"`
}

// LinkStats is the per-link analytics row. TotalClicks comes from the link's
// denormalized counter, not from counting click rows.
type LinkStats struct {
	URL             string         `json:"url"`
	ShortCode       string         `json:"short_code"`
	TotalClicks     int64          `json:"total_clicks"`
	TotalEarning    float64        `json:"total_earning"`
	MonthlyEarnings []MonthlyEntry `json:"monthly_earnings"`
}

// PageMeta describes the pagination of a stats page.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalLinks int64 `json:"total_links"`
	TotalPages int64 `json:"total_pages"`
}

// StatsPage is one page of per-link analytics.
type StatsPage struct {
	Entries []LinkStats
	Meta    PageMeta
}

// StatsService aggregates per-link totals and monthly earning breakdowns.
// Storage keeps integer cents; conversion to dollars happens only here, at
// the boundary.
type StatsService struct {
	storage repository.Storage
	log     *zap.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(storage repository.Storage, log *zap.Logger) *StatsService {
	return &StatsService{
		storage: storage,
		log:     log,
	}
}

// GetStats returns one page of links, newest first, each with its monthly
// earnings over valid clicks. Pagination bounds (page >= 1, limit in
// [1,100]) are enforced by the boundary layer.
func (s *StatsService) GetStats(ctx context.Context, page, limit int) (*StatsPage, error) {
	totalLinks, err := s.storage.CountLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count links: %w", err)
	}

	totalPages := (totalLinks + int64(limit) - 1) / int64(limit)
	meta := PageMeta{
		Page:       page,
		Limit:      limit,
		TotalLinks: totalLinks,
		TotalPages: totalPages,
	}

	links, err := s.storage.ListLinks(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	if len(links) == 0 {
		// Empty page: no per-link aggregation query is issued.
		return &StatsPage{Entries: []LinkStats{}, Meta: meta}, nil
	}

	linkIDs := make([]int64, 0, len(links))
	for _, link := range links {
		linkIDs = append(linkIDs, link.ID)
	}

	earnings, err := s.storage.MonthlyEarnings(ctx, linkIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly earnings: %w", err)
	}

	// Earnings arrive ordered by month descending; fan them out per link.
	monthlyByLink := make(map[int64][]MonthlyEntry, len(links))
	for _, e := range earnings {
		monthlyByLink[e.LinkID] = append(monthlyByLink[e.LinkID], MonthlyEntry{
			Month:   e.Month.Format("2006-01"),
			Earning: centsToDollars(e.EarningCents),
		})
	}

	entries := make([]LinkStats, 0, len(links))
	for _, link := range links {
		monthly := monthlyByLink[link.ID]
		if monthly == nil {
			monthly = []MonthlyEntry{}
		}
		entries = append(entries, LinkStats{
			URL:             link.TargetURL,
			ShortCode:       link.ShortCode,
			TotalClicks:     link.TotalClicks,
			TotalEarning:    centsToDollars(link.RewardCents),
			MonthlyEarnings: monthly,
		})
	}

	return &StatsPage{Entries: entries, Meta: meta}, nil
}

func centsToDollars(cents int64) float64 {
	return float64(cents) / 100
}
