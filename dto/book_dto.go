package dto

type BookSummary struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Thumbnail string   `json:"thumbnail,omitempty"`
}

type BookDetail struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Thumbnail string   `json:"thumbnail"`
}
