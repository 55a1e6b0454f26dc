package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"book-review/dto"
)

var (
	// ErrUpstreamUnavailable covers network failures and non-2xx answers.
	ErrUpstreamUnavailable = errors.New("catalog unavailable")
	// ErrUpstreamMalformed covers bodies that do not decode into a volume.
	ErrUpstreamMalformed = errors.New("catalog response malformed")
)

const (
	DefaultCatalogBaseURL = "https://www.googleapis.com/books/v1"
	DefaultSearchLimit    = 5
	defaultAuthor         = "Unknown"
	maxBodyBytes          = 4 << 20
)

type ICatalogClient interface {
	Search(ctx context.Context, query string, limit int) ([]dto.BookSummary, error)
	FetchOne(ctx context.Context, bookID string) (*dto.BookDetail, error)
}

// CatalogClient talks to a Google Books compatible volumes API.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCatalogClient(baseURL string, timeout time.Duration) ICatalogClient {
	if baseURL == "" {
		baseURL = DefaultCatalogBaseURL
	}
	return &CatalogClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type volume struct {
	ID         string      `json:"id"`
	VolumeInfo *volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	ImageLinks *struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

func (v *volumeInfo) thumbnail() string {
	if v.ImageLinks == nil {
		return ""
	}
	return v.ImageLinks.Thumbnail
}

type volumeList struct {
	Items []volume `json:"items"`
}

func (c *CatalogClient) Search(ctx context.Context, query string, limit int) ([]dto.BookSummary, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(limit))

	var list volumeList
	if err := c.get(ctx, c.baseURL+"/volumes?"+params.Encode(), &list); err != nil {
		return nil, err
	}

	books := make([]dto.BookSummary, 0, len(list.Items))
	for _, item := range list.Items {
		if item.VolumeInfo == nil {
			return nil, fmt.Errorf("%w: volume %q has no volumeInfo", ErrUpstreamMalformed, item.ID)
		}
		authors := item.VolumeInfo.Authors
		if len(authors) == 0 {
			authors = []string{defaultAuthor}
		}
		books = append(books, dto.BookSummary{
			ID:        item.ID,
			Title:     item.VolumeInfo.Title,
			Authors:   authors,
			Thumbnail: item.VolumeInfo.thumbnail(),
		})
	}
	return books, nil
}

func (c *CatalogClient) FetchOne(ctx context.Context, bookID string) (*dto.BookDetail, error) {
	var v volume
	if err := c.get(ctx, c.baseURL+"/volumes/"+url.PathEscape(bookID), &v); err != nil {
		return nil, err
	}
	if v.VolumeInfo == nil {
		return nil, fmt.Errorf("%w: volume %q has no volumeInfo", ErrUpstreamMalformed, bookID)
	}

	id := v.ID
	if id == "" {
		id = bookID
	}
	return &dto.BookDetail{
		ID:        id,
		Title:     v.VolumeInfo.Title,
		Authors:   v.VolumeInfo.Authors,
		Thumbnail: v.VolumeInfo.thumbnail(),
	}, nil
}

func (c *CatalogClient) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamMalformed, err)
	}
	return nil
}
