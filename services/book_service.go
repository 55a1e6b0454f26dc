package services

import (
	"context"
	"errors"
	"strings"

	"book-review/clients"
	"book-review/dto"
	"book-review/metrics"
)

var (
	ErrSearchQueryRequired = errors.New("search query required")
	ErrBookIDRequired      = errors.New("book id is required")
)

type IBookService interface {
	Search(ctx context.Context, query string) ([]dto.BookSummary, error)
	FetchOne(ctx context.Context, bookID string) (*dto.BookDetail, error)
}

type BookService struct {
	catalog     clients.ICatalogClient
	searchLimit int
}

func NewBookService(catalog clients.ICatalogClient, searchLimit int) IBookService {
	if searchLimit <= 0 {
		searchLimit = clients.DefaultSearchLimit
	}
	return &BookService{catalog: catalog, searchLimit: searchLimit}
}

func (s *BookService) Search(ctx context.Context, query string) ([]dto.BookSummary, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrSearchQueryRequired
	}
	books, err := s.catalog.Search(ctx, query, s.searchLimit)
	metrics.CatalogRequestsTotal.WithLabelValues("search", catalogResult(err)).Inc()
	return books, err
}

func (s *BookService) FetchOne(ctx context.Context, bookID string) (*dto.BookDetail, error) {
	if bookID == "" {
		return nil, ErrBookIDRequired
	}
	book, err := s.catalog.FetchOne(ctx, bookID)
	metrics.CatalogRequestsTotal.WithLabelValues("fetch", catalogResult(err)).Inc()
	return book, err
}

func catalogResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, clients.ErrUpstreamMalformed):
		return "malformed"
	default:
		return "unavailable"
	}
}
