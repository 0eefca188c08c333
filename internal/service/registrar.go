package service

import (
	"LinkRewards-Backend/internal/config"
	"LinkRewards-Backend/internal/domain"
	"LinkRewards-Backend/internal/repository"
	"LinkRewards-Backend/pkg/random"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrExhaustedRetries means short code generation kept colliding and the
// retry bound ran out. Fatal for the request; not a client error.
var ErrExhaustedRetries = errors.New("exhausted short code generation retries")

// Registrar implements the link registration protocol: insert first, then
// resolve uniqueness conflicts. Registration is idempotent per normalized
// target URL: concurrent duplicate submissions converge on one canonical
// link, and the short code assigned to a URL never changes.
type Registrar struct {
	storage repository.Storage
	cfg     *config.Shortener
	log     *zap.Logger
}

// NewRegistrar creates a new link registrar.
func NewRegistrar(storage repository.Storage, cfg *config.Shortener, log *zap.Logger) *Registrar {
	return &Registrar{
		storage: storage,
		cfg:     cfg,
		log:     log,
	}
}

// RegisterLink creates a link for the given target URL, or returns the
// existing one when the URL is already registered. The URL is assumed
// pre-validated by the boundary layer; only whitespace trimming happens
// here.
//
// Conflict handling: a target URL conflict resolves to the canonical row
// (some other request won the race); a short code conflict means the fresh
// code collided with a different URL, so we retry with a new code up to the
// configured bound.
func (s *Registrar) RegisterLink(ctx context.Context, targetURL string) (*domain.Link, error) {
	target := strings.TrimSpace(targetURL)

	for attempt := 0; attempt < s.cfg.MaxCodeRetries; attempt++ {
		code, err := random.NewShortCode(s.cfg.CodeLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate short code: %w", err)
		}

		link := &domain.Link{
			ShortCode: code,
			TargetURL: target,
		}

		err = s.storage.CreateLink(ctx, link)
		switch {
		case err == nil:
			return link, nil

		case errors.Is(err, repository.ErrDuplicateTargetURL):
			existing, err := s.storage.GetLinkByTargetURL(ctx, target)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch existing link: %w", err)
			}
			s.log.Debug("target url already registered, returning canonical link",
				zap.String("short_code", existing.ShortCode))
			return existing, nil

		case errors.Is(err, repository.ErrDuplicateShortCode):
			s.log.Debug("short code collision, retrying",
				zap.String("short_code", code),
				zap.Int("attempt", attempt+1))
			continue

		default:
			return nil, err
		}
	}

	return nil, ErrExhaustedRetries
}

// ShortURL builds the public short URL for a link from the configured base.
func (s *Registrar) ShortURL(link *domain.Link) string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/" + link.ShortCode
}
