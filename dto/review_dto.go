package dto

import "book-review/models"

// CreateReviewInput is bound from either a JSON body or a form post.
// UserID is accepted for compatibility but ignored: the author is always the
// authenticated identity.
type CreateReviewInput struct {
	BookID        string `json:"book_id" form:"book_id" binding:"required"`
	BookTitle     string `json:"book_title" form:"book_title" binding:"required"`
	BookAuthor    string `json:"book_author" form:"book_author"`
	BookThumbnail string `json:"book_thumbnail" form:"book_thumbnail"`
	Rating        *int   `json:"rating" form:"rating" binding:"required,min=1,max=5"`
	Comment       string `json:"comment" form:"comment" binding:"required"`
	UserID        string `json:"user_id" form:"user_id"`
}

type CreateReviewResponse struct {
	Success bool                       `json:"success"`
	Review  *models.ReviewWithUsername `json:"review"`
}
