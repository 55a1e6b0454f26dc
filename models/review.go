package models

import "time"

type Review struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BookID        string    `gorm:"not null;index" json:"book_id"`
	BookTitle     string    `gorm:"not null" json:"book_title"`
	BookAuthor    string    `json:"book_author"`
	BookThumbnail string    `json:"book_thumbnail"`
	UserID        string    `gorm:"not null;index" json:"user_id"`
	Rating        int       `gorm:"not null" json:"rating"`
	Comment       string    `gorm:"not null" json:"comment"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

// ReviewWithUsername is a Review joined with the posting user's id.
type ReviewWithUsername struct {
	Review
	Username string `json:"username"`
}
