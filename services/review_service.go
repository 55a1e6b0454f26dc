package services

import (
	"errors"
	"fmt"

	"book-review/dto"
	"book-review/metrics"
	"book-review/models"
	"book-review/repositories"
)

var (
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrRatingCommentRequired = errors.New("rating and comment are required")
	ErrRatingOutOfRange      = errors.New("rating must be between 1 and 5")
	ErrBookRequired          = errors.New("book id and title are required")
)

const (
	MinRating     = 1
	MaxRating     = 5
	UnknownAuthor = "Unknown"
)

type IReviewService interface {
	FindAll() (*[]models.ReviewWithUsername, error)
	FindByBook(bookID string) (*[]models.Review, error)
	Create(input dto.CreateReviewInput, identity *models.Identity) (*models.ReviewWithUsername, error)
}

type ReviewService struct {
	repository repositories.IReviewRepository
}

func NewReviewService(repository repositories.IReviewRepository) IReviewService {
	return &ReviewService{repository: repository}
}

func (s *ReviewService) FindAll() (*[]models.ReviewWithUsername, error) {
	return s.repository.FindAllWithUsername()
}

func (s *ReviewService) FindByBook(bookID string) (*[]models.Review, error) {
	if bookID == "" {
		return &[]models.Review{}, nil
	}
	return s.repository.FindByBook(bookID)
}

// Create inserts a review authored by identity and returns it re-read from
// storage with the username joined in.
func (s *ReviewService) Create(input dto.CreateReviewInput, identity *models.Identity) (*models.ReviewWithUsername, error) {
	if identity == nil || identity.ID == "" {
		return nil, ErrNotAuthenticated
	}
	if err := ValidateReview(input); err != nil {
		return nil, err
	}

	author := input.BookAuthor
	if author == "" {
		author = UnknownAuthor
	}
	newReview := models.Review{
		BookID:        input.BookID,
		BookTitle:     input.BookTitle,
		BookAuthor:    author,
		BookThumbnail: input.BookThumbnail,
		UserID:        identity.ID,
		Rating:        *input.Rating,
		Comment:       input.Comment,
	}

	created, err := s.repository.Create(newReview)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	metrics.ReviewsCreatedTotal.Inc()

	review, err := s.repository.FindWithUsername(created.ID)
	if err != nil {
		return nil, fmt.Errorf("reload review %d: %w", created.ID, err)
	}
	return review, nil
}

func ValidateReview(input dto.CreateReviewInput) error {
	if input.Rating == nil || input.Comment == "" {
		return ErrRatingCommentRequired
	}
	if *input.Rating < MinRating || *input.Rating > MaxRating {
		return ErrRatingOutOfRange
	}
	if input.BookID == "" || input.BookTitle == "" {
		return ErrBookRequired
	}
	return nil
}
