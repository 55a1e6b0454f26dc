package repositories

import (
	"errors"

	"book-review/models"

	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("Review not found")

type IReviewRepository interface {
	Create(newReview models.Review) (*models.Review, error)
	FindWithUsername(reviewID uint) (*models.ReviewWithUsername, error)
	FindAllWithUsername() (*[]models.ReviewWithUsername, error)
	FindByBook(bookID string) (*[]models.Review, error)
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) IReviewRepository {
	return &ReviewRepository{db: db}
}

// 新しい順。created_atが同じならidの大きい方が先
const newestFirst = "created_at DESC, id DESC"

func (r *ReviewRepository) Create(newReview models.Review) (*models.Review, error) {
	result := r.db.Create(&newReview)
	if result.Error != nil {
		return nil, result.Error
	}
	return &newReview, nil
}

// joined は reviews と users の内部結合。ユーザーが存在しないレビューは落ちる
func (r *ReviewRepository) joined() *gorm.DB {
	return r.db.Table("reviews AS r").
		Select("r.*, u.id AS username").
		Joins("JOIN users u ON r.user_id = u.id")
}

func (r *ReviewRepository) FindWithUsername(reviewID uint) (*models.ReviewWithUsername, error) {
	var reviews []models.ReviewWithUsername
	result := r.joined().Where("r.id = ?", reviewID).Limit(1).Scan(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(reviews) == 0 {
		return nil, ErrReviewNotFound
	}
	return &reviews[0], nil
}

func (r *ReviewRepository) FindAllWithUsername() (*[]models.ReviewWithUsername, error) {
	reviews := []models.ReviewWithUsername{}
	result := r.joined().Order("r.created_at DESC, r.id DESC").Scan(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}
	return &reviews, nil
}

func (r *ReviewRepository) FindByBook(bookID string) (*[]models.Review, error) {
	reviews := []models.Review{}
	result := r.db.Where("book_id = ?", bookID).Order(newestFirst).Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}
	return &reviews, nil
}
