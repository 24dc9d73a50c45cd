package service

import (
	"context"
	"errors"
	"fmt"

	"urlshort/internal/database"
	"urlshort/internal/models"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// shortCodeAlphabet is the 62-symbol alphabet short codes are drawn from.
const shortCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ErrMaxRetriesExceeded is returned when the maximum number of retries for generating a short code is exceeded.
var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating short code")

// URLRepository defines the interface for working with URLs at the business logic layer.
type URLRepository interface {
	// Create inserts a new shortened URL into the repository.
	// Returns the created URL model or an error if the operation fails.
	Create(ctx context.Context, shortCode, originalURL string) (*models.URL, error)

	// ExistsByShortCode reports whether the given short code is already taken.
	ExistsByShortCode(ctx context.Context, shortCode string) (bool, error)

	// GetByShortCode retrieves a URL by its short code, counting the access.
	// Returns the URL model if found or an error if not found.
	GetByShortCode(ctx context.Context, shortCode string) (*models.URL, error)

	// GetStats retrieves a URL by its short code without changing it.
	// Returns the URL model if found or an error if not found.
	GetStats(ctx context.Context, shortCode string) (*models.URL, error)
}

// URLService provides methods to manage URL shortening operations.
// The service uses a URLRepository interface to interact with the underlying database.
type URLService struct {
	repo            URLRepository
	shortCodeLength int
}

// NewURLService creates a new instance of URLService with the provided repository and short code length.
func NewURLService(repo URLRepository, shortCodeLength int) *URLService {
	return &URLService{
		repo:            repo,
		shortCodeLength: shortCodeLength,
	}
}

// ShortenURL generates a short code for the provided original URL and stores it in the repository.
// Candidates are generated uniformly over the alphanumeric alphabet and checked against
// the repository before the insert. The check-then-insert sequence is not atomic under
// concurrent requests, so the unique constraint on the insert is treated as authoritative:
// a constraint violation means another request claimed the candidate first, and the loop
// retries with a fresh code, up to a maximum number of attempts.
func (s *URLService) ShortenURL(ctx context.Context, originalURL string) (*models.URL, error) {
	const op = "service.URLService.ShortenURL"
	const maxRetries = 5

	for i := 0; i < maxRetries; i++ {
		shortCode, err := gonanoid.Generate(shortCodeAlphabet, s.shortCodeLength)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		exists, err := s.repo.ExistsByShortCode(ctx, shortCode)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to check short code: %w", op, err)
		}
		if exists {
			continue
		}

		url, err := s.repo.Create(ctx, shortCode, originalURL)
		if err != nil {
			if errors.Is(err, database.ErrShortCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		return url, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrMaxRetriesExceeded)
}

// ResolveShortCode retrieves the original URL associated with the provided short code
// and records the visit. The click counter is incremented atomically as part of the
// lookup, so the returned model carries the count including this resolution.
func (s *URLService) ResolveShortCode(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "service.URLService.ResolveShortCode"

	url, err := s.repo.GetByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	return url, nil
}

// GetURLStats retrieves the statistics for the URL associated with the provided short code.
// It returns the URL model containing the statistics or an error if the operation fails.
func (s *URLService) GetURLStats(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "service.URLService.GetURLStats"

	url, err := s.repo.GetStats(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url stats: %w", op, err)
	}

	return url, nil
}
