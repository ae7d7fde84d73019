package service

import (
	"context"

	"library_catalog/internal/models"
	"library_catalog/internal/repository"
)

// DefaultRecommendations is how many books the dashboard shows.
const DefaultRecommendations = 3

type CatalogService struct {
	books repository.Books
}

func NewCatalogService(books repository.Books) *CatalogService {
	return &CatalogService{books: books}
}

// ListBooks returns the whole catalog in insertion order.
func (s *CatalogService) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.books.List(ctx)
}

// ListAvailable returns books whose availability flag is set, in insertion
// order. No sorting is applied.
func (s *CatalogService) ListAvailable(ctx context.Context) ([]models.Book, error) {
	return s.books.ListAvailable(ctx)
}

// Recommend returns the first n available books; fewer if the catalog cannot
// fill the quota. n <= 0 falls back to DefaultRecommendations. Selection is
// deterministic, not randomized.
func (s *CatalogService) Recommend(ctx context.Context, n int) ([]models.Book, error) {
	if n <= 0 {
		n = DefaultRecommendations
	}

	available, err := s.books.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if len(available) > n {
		available = available[:n]
	}
	return available, nil
}
