package views

import (
	"html/template"
	"strings"
	"time"

	"book-review/dto"
	"book-review/models"
)

const maxStars = 5

var funcs = template.FuncMap{
	"stars": Stars,
	"joinAuthors": func(authors []string) string {
		return strings.Join(authors, ", ")
	},
	"orDefault": func(value, fallback string) string {
		if value == "" {
			return fallback
		}
		return value
	},
	"when": func(t time.Time) string {
		return t.Local().Format("2006-01-02 15:04:05")
	},
	"ratings": func() []int {
		return []int{1, 2, 3, 4, 5}
	},
}

// Stars renders a rating as filled and empty stars, e.g. 3 -> ★★★☆☆.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > maxStars {
		rating = maxStars
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", maxStars-rating)
}

var (
	indexTmpl      = template.Must(template.New("index").Funcs(funcs).Parse(indexHTML))
	dashboardTmpl  = template.Must(template.New("dashboard").Funcs(funcs).Parse(dashboardHTML))
	adminTmpl      = template.Must(template.New("admin").Funcs(funcs).Parse(adminHTML))
	reviewFormTmpl = template.Must(template.New("reviewForm").Funcs(funcs).Parse(reviewFormHTML))
	errorTmpl      = template.Must(template.New("error").Funcs(funcs).Parse(errorHTML))
)

func execute(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// IndexPage is the register/login landing fragment. message is inserted
// without escaping.
func IndexPage(message string) (string, error) {
	return execute(indexTmpl, struct {
		Message template.HTML
	}{Message: template.HTML(message)})
}

type DashboardData struct {
	Username string
	Message  string
	Reviews  []models.ReviewWithUsername
}

func DashboardPage(data DashboardData) (string, error) {
	return execute(dashboardTmpl, data)
}

type AdminData struct {
	Users   []models.User
	Reviews []models.ReviewWithUsername
}

func AdminPage(data AdminData) (string, error) {
	return execute(adminTmpl, data)
}

func ReviewFormPage(book dto.BookDetail) (string, error) {
	return execute(reviewFormTmpl, book)
}

type ErrorData struct {
	Message  string
	LinkHref string
	LinkText string
}

func ErrorFragment(data ErrorData) (string, error) {
	return execute(errorTmpl, data)
}

const indexHTML = `
{{if .Message}}<div class="message">{{.Message}}</div>{{end}}
<div class="auth-container">
  <h2>Register</h2>
  <form action="/register" method="post">
    <div class="form-group">
      <label for="reg-username">Username:</label>
      <input type="text" id="reg-username" name="username" required>
    </div>
    <div class="form-group">
      <label for="reg-password">Password:</label>
      <input type="password" id="reg-password" name="password" required>
    </div>
    <button type="submit">Register</button>
  </form>
  <a href="/protected" class="login-link">Already have an account? Login</a>
</div>
`

const reviewCardsHTML = `
{{define "reviewCards"}}
{{range .}}
  <div class="review-card">
    <div class="review-header">
      {{if .BookThumbnail}}<img src="{{.BookThumbnail}}" class="book-cover" alt="">{{else}}<div class="no-cover">No cover</div>{{end}}
      <div>
        <h3>{{.BookTitle}}</h3>
        <p>{{orDefault .BookAuthor "Unknown author"}}</p>
      </div>
    </div>
    <div class="review-content">
      <div class="star-rating">{{stars .Rating}}</div>
      <p>{{.Comment}}</p>
      <div class="review-meta">Reviewed by {{.Username}} on {{when .CreatedAt}}</div>
    </div>
  </div>
{{else}}
  <p>No reviews yet. Be the first to review!</p>
{{end}}
{{end}}
`

const dashboardHTML = reviewCardsHTML + `
{{if .Message}}<div class="message">{{.Message}}</div>{{end}}
<h1>Dashboard</h1>
<p>Welcome, {{.Username}}!</p>

<div class="search-container">
  <input type="text" id="search" placeholder="Search for books...">
  <button id="search-button">Search</button>
</div>

<div id="search-results"></div>

<div id="review-section" data-user-id="{{.Username}}">
  <h2>Add Your Review</h2>
  <div id="selected-book"></div>
  <div>
    <label>Rating:</label>
    <div id="star-rating">
      {{range ratings}}<span class="star" data-rating="{{.}}">☆</span>{{end}}
      <input type="hidden" id="rating" value="0">
    </div>
  </div>
  <textarea id="comment" placeholder="Write your review here..." required></textarea>
  <button id="submit-review" class="submit-btn">Submit Review</button>
</div>

<h2>All Reviews</h2>
<div id="reviews-list">
{{template "reviewCards" .Reviews}}
</div>

<script src="/public/js/dashboard.js"></script>
`

const adminHTML = `
<h1>Admin Dashboard</h1>
<h2>All Users</h2>
<table>
  <tr>
    <th>Username</th>
    <th>Password</th>
    <th>Role</th>
  </tr>
  {{range .Users}}
  <tr>
    <td>{{.ID}}</td>
    <td>{{.Password}}</td>
    <td>{{.Role}}</td>
  </tr>
  {{end}}
</table>

<h2>All Reviews</h2>
<div>
{{range .Reviews}}
  <div class="review-item">
    {{if .BookThumbnail}}<img src="{{.BookThumbnail}}" class="review-thumbnail" alt="">{{else}}<div class="no-image">No image</div>{{end}}
    <div class="review-body">
      <strong>{{.Username}}</strong> reviewed <em>{{.BookTitle}}</em><br>
      <span class="gold-star">{{stars .Rating}}</span>
      <p>{{.Comment}}</p>
      <small>Reviewed on: {{when .CreatedAt}}</small>
    </div>
  </div>
{{else}}
  <p>No reviews yet.</p>
{{end}}
</div>
`

const reviewFormHTML = `
<div class="review-container">
  <div class="book-header">
    {{if .Thumbnail}}<img src="{{.Thumbnail}}" class="book-cover" alt="">{{end}}
    <div>
      <h1>Review: {{.Title}}</h1>
      <p>by {{orDefault (joinAuthors .Authors) "Unknown author"}}</p>
    </div>
  </div>

  <form action="/submit-review" method="POST">
    <input type="hidden" name="book_id" value="{{.ID}}">
    <input type="hidden" name="book_title" value="{{.Title}}">
    <input type="hidden" name="book_author" value="{{joinAuthors .Authors}}">
    <input type="hidden" name="book_thumbnail" value="{{.Thumbnail}}">

    <div class="form-group">
      <label><strong>Your Rating:</strong></label>
      <div class="star-rating">
        {{range ratings}}<span class="star" data-rating="{{.}}">☆</span>{{end}}
        <input type="hidden" name="rating" id="rating-input" value="0" required>
      </div>
    </div>

    <div class="form-group">
      <label><strong>Your Review:</strong></label>
      <textarea name="comment" placeholder="Share your thoughts about this book..." required></textarea>
    </div>

    <button type="submit" class="submit-btn">Submit Review</button>
  </form>
</div>
<script src="/public/js/review-form.js"></script>
`

const errorHTML = `
<div class="error">
  <p>{{.Message}}</p>
  {{if .LinkHref}}<a href="{{.LinkHref}}">{{.LinkText}}</a>{{end}}
</div>
`
