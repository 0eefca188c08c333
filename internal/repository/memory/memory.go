package memory

import (
	"LinkRewards-Backend/internal/domain"
	"LinkRewards-Backend/internal/repository"
	"context"
	"sort"
	"sync"
	"time"
)

// MemStorage is an in-memory Storage implementation used by unit tests and
// local development. A single mutex gives each operation the same atomicity
// the SQL implementation gets from single-statement updates.
type MemStorage struct {
	mu           sync.Mutex
	linksByID    map[int64]*domain.Link
	linksByCode  map[string]int64
	linksByURL   map[string]int64
	clicks       map[int64]*domain.Click
	linkCounter  int64
	clickCounter int64
}

func New() *MemStorage {
	return &MemStorage{
		linksByID:   make(map[int64]*domain.Link),
		linksByCode: make(map[string]int64),
		linksByURL:  make(map[string]int64),
		clicks:      make(map[int64]*domain.Click),
	}
}

// --- Link Methods ---

func (s *MemStorage) CreateLink(_ context.Context, link *domain.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.linksByURL[link.TargetURL]; exists {
		return repository.ErrDuplicateTargetURL
	}
	if _, exists := s.linksByCode[link.ShortCode]; exists {
		return repository.ErrDuplicateShortCode
	}

	s.linkCounter++
	link.ID = s.linkCounter
	now := time.Now()
	if link.CreatedAt.IsZero() {
		link.CreatedAt = now
	}
	link.UpdatedAt = now

	stored := *link
	s.linksByID[link.ID] = &stored
	s.linksByCode[link.ShortCode] = link.ID
	s.linksByURL[link.TargetURL] = link.ID
	return nil
}

func (s *MemStorage) GetLinkByShortCode(_ context.Context, shortCode string) (*domain.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.linksByCode[shortCode]
	if !ok {
		return nil, repository.ErrCodeNotFound
	}
	link := *s.linksByID[id]
	return &link, nil
}

func (s *MemStorage) GetLinkByTargetURL(_ context.Context, targetURL string) (*domain.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.linksByURL[targetURL]
	if !ok {
		return nil, repository.ErrCodeNotFound
	}
	link := *s.linksByID[id]
	return &link, nil
}

func (s *MemStorage) IncrementTotalClicks(_ context.Context, linkID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.linksByID[linkID]
	if !ok {
		return repository.ErrCodeNotFound
	}
	link.TotalClicks++
	link.UpdatedAt = time.Now()
	return nil
}

func (s *MemStorage) AddLinkReward(_ context.Context, linkID int64, amountCents int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.linksByID[linkID]
	if !ok {
		return repository.ErrCodeNotFound
	}
	link.ValidClicks++
	link.RewardCents += amountCents
	link.UpdatedAt = time.Now()
	return nil
}

// --- Click Methods ---

func (s *MemStorage) CreateClick(_ context.Context, click *domain.Click) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clickCounter++
	click.ID = s.clickCounter
	if click.ClickedAt.IsZero() {
		click.ClickedAt = time.Now()
	}

	stored := *click
	s.clicks[click.ID] = &stored
	return nil
}

func (s *MemStorage) GetClick(_ context.Context, clickID int64) (*domain.Click, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	click, ok := s.clicks[clickID]
	if !ok {
		return nil, repository.ErrClickNotFound
	}
	c := *click
	return &c, nil
}

func (s *MemStorage) MarkClickInvalid(_ context.Context, clickID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	click, ok := s.clicks[clickID]
	if !ok {
		return repository.ErrClickNotFound
	}
	click.Validity = domain.ValidityInvalid
	return nil
}

// RewardClick performs the check and the write under one critical section,
// matching the single conditional UPDATE of the SQL implementation.
func (s *MemStorage) RewardClick(_ context.Context, clickID int64, amountCents int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	click, ok := s.clicks[clickID]
	if !ok {
		return false, nil
	}
	if click.Rewarded {
		return false, nil
	}

	click.Validity = domain.ValidityValid
	click.Rewarded = true
	click.RewardCents = amountCents
	return true, nil
}

// --- Analytics Methods ---

func (s *MemStorage) CountLinks(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.linksByID)), nil
}

func (s *MemStorage) ListLinks(_ context.Context, offset, limit int) ([]*domain.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*domain.Link, 0, len(s.linksByID))
	for _, link := range s.linksByID {
		l := *link
		all = append(all, &l)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *MemStorage) MonthlyEarnings(_ context.Context, linkIDs []int64) ([]repository.MonthlyEarning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[int64]bool, len(linkIDs))
	for _, id := range linkIDs {
		wanted[id] = true
	}

	type key struct {
		linkID int64
		month  time.Time
	}
	sums := make(map[key]int64)
	for _, click := range s.clicks {
		if !wanted[click.LinkID] || click.Validity != domain.ValidityValid {
			continue
		}
		month := time.Date(click.ClickedAt.Year(), click.ClickedAt.Month(), 1, 0, 0, 0, 0, click.ClickedAt.Location())
		sums[key{click.LinkID, month}] += click.RewardCents
	}

	earnings := make([]repository.MonthlyEarning, 0, len(sums))
	for k, cents := range sums {
		earnings = append(earnings, repository.MonthlyEarning{
			LinkID:       k.linkID,
			Month:        k.month,
			EarningCents: cents,
		})
	}
	sort.Slice(earnings, func(i, j int) bool {
		return earnings[i].Month.After(earnings[j].Month)
	})

	return earnings, nil
}
