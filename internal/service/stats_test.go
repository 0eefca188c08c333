package service

import (
	"LinkRewards-Backend/internal/domain"
	"LinkRewards-Backend/internal/repository/memory"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetStats_EmptyStore(t *testing.T) {
	stats := NewStatsService(memory.New(), zap.NewNop())

	page, err := stats.GetStats(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Empty(t, page.Entries)
	assert.Equal(t, int64(0), page.Meta.TotalLinks)
	assert.Equal(t, int64(0), page.Meta.TotalPages)
	assert.Equal(t, 1, page.Meta.Page)
	assert.Equal(t, 10, page.Meta.Limit)
}

func TestGetStats_PageBeyondEnd(t *testing.T) {
	storage := memory.New()
	require.NoError(t, storage.CreateLink(context.Background(), &domain.Link{
		ShortCode: "abcd1234", TargetURL: "https://example.com/a",
	}))

	stats := NewStatsService(storage, zap.NewNop())
	page, err := stats.GetStats(context.Background(), 5, 10)
	require.NoError(t, err)

	assert.Empty(t, page.Entries)
	assert.Equal(t, int64(1), page.Meta.TotalLinks)
	assert.Equal(t, int64(1), page.Meta.TotalPages)
}

func TestGetStats_TotalsComeFromLinkCounters(t *testing.T) {
	storage := memory.New()
	ctx := context.Background()

	link := &domain.Link{ShortCode: "abcd1234", TargetURL: "https://example.com/a"}
	require.NoError(t, storage.CreateLink(ctx, link))

	// Two clicks, one rewarded.
	for i := 0; i < 2; i++ {
		click := &domain.Click{LinkID: link.ID}
		require.NoError(t, storage.CreateClick(ctx, click))
		require.NoError(t, storage.IncrementTotalClicks(ctx, link.ID))
		if i == 0 {
			matched, err := storage.RewardClick(ctx, click.ID, 10)
			require.NoError(t, err)
			require.True(t, matched)
			require.NoError(t, storage.AddLinkReward(ctx, link.ID, 10))
		}
	}

	stats := NewStatsService(storage, zap.NewNop())
	page, err := stats.GetStats(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)

	entry := page.Entries[0]
	assert.Equal(t, "https://example.com/a", entry.URL)
	assert.Equal(t, int64(2), entry.TotalClicks)
	assert.Equal(t, 0.10, entry.TotalEarning)
}

func TestGetStats_MonthlyBreakdown(t *testing.T) {
	storage := memory.New()
	ctx := context.Background()

	link := &domain.Link{ShortCode: "abcd1234", TargetURL: "https://example.com/a"}
	require.NoError(t, storage.CreateLink(ctx, link))

	// Three valid clicks in two calendar months, one invalid click that
	// must not contribute to earnings.
	months := []time.Time{
		time.Date(2026, time.July, 3, 10, 0, 0, 0, time.UTC),
		time.Date(2026, time.July, 20, 12, 0, 0, 0, time.UTC),
		time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, at := range months {
		click := &domain.Click{LinkID: link.ID, ClickedAt: at}
		require.NoError(t, storage.CreateClick(ctx, click))
		require.NoError(t, storage.IncrementTotalClicks(ctx, link.ID))
		matched, err := storage.RewardClick(ctx, click.ID, 10)
		require.NoError(t, err)
		require.True(t, matched)
		require.NoError(t, storage.AddLinkReward(ctx, link.ID, 10))
	}

	invalid := &domain.Click{LinkID: link.ID, ClickedAt: months[0]}
	require.NoError(t, storage.CreateClick(ctx, invalid))
	require.NoError(t, storage.IncrementTotalClicks(ctx, link.ID))
	require.NoError(t, storage.MarkClickInvalid(ctx, invalid.ID))

	stats := NewStatsService(storage, zap.NewNop())
	page, err := stats.GetStats(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)

	entry := page.Entries[0]
	assert.Equal(t, int64(4), entry.TotalClicks)
	assert.Equal(t, 0.30, entry.TotalEarning)

	require.Len(t, entry.MonthlyEarnings, 2)
	// Newest month first.
	assert.Equal(t, "2026-08", entry.MonthlyEarnings[0].Month)
	assert.Equal(t, 0.10, entry.MonthlyEarnings[0].Earning)
	assert.Equal(t, "2026-07", entry.MonthlyEarnings[1].Month)
	assert.Equal(t, 0.20, entry.MonthlyEarnings[1].Earning)
}

func TestGetStats_Pagination(t *testing.T) {
	storage := memory.New()
	ctx := context.Background()

	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, storage.CreateLink(ctx, &domain.Link{
			ShortCode: fmt.Sprintf("code%04d", i),
			TargetURL: fmt.Sprintf("https://example.com/%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	stats := NewStatsService(storage, zap.NewNop())

	first, err := stats.GetStats(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), first.Meta.TotalLinks)
	assert.Equal(t, int64(3), first.Meta.TotalPages)
	require.Len(t, first.Entries, 2)
	// Newest link first.
	assert.Equal(t, "https://example.com/4", first.Entries[0].URL)
	assert.Equal(t, "https://example.com/3", first.Entries[1].URL)

	last, err := stats.GetStats(ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, last.Entries, 1)
	assert.Equal(t, "https://example.com/0", last.Entries[0].URL)
}

func TestGetStats_LinkWithoutValidClicksHasEmptyBreakdown(t *testing.T) {
	storage := memory.New()
	ctx := context.Background()

	require.NoError(t, storage.CreateLink(ctx, &domain.Link{
		ShortCode: "abcd1234", TargetURL: "https://example.com/a",
	}))

	stats := NewStatsService(storage, zap.NewNop())
	page, err := stats.GetStats(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)

	assert.NotNil(t, page.Entries[0].MonthlyEarnings)
	assert.Empty(t, page.Entries[0].MonthlyEarnings)
	assert.Zero(t, page.Entries[0].TotalEarning)
}
