package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"book-review/clients"
	"book-review/constants"
	"book-review/dto"
	"book-review/infra"
	"book-review/models"
	"book-review/repositories"
	"book-review/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCatalog struct {
	books []dto.BookSummary
	book  *dto.BookDetail
	err   error
}

func (s *stubCatalog) Search(ctx context.Context, query string, limit int) ([]dto.BookSummary, error) {
	return s.books, s.err
}

func (s *stubCatalog) FetchOne(ctx context.Context, bookID string) (*dto.BookDetail, error) {
	return s.book, s.err
}

type testApp struct {
	router  *gin.Engine
	db      *gorm.DB
	catalog *stubCatalog
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := infra.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))
	t.Cleanup(func() { _ = infra.CloseDB(db) })

	hasher := services.PlainPasswordHasher{}
	require.NoError(t, services.NewAuthService(repositories.NewAuthRepository(db), hasher).Seed())

	templates := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(templates, "header.html"), []byte("<html><body>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(templates, "footer.html"), []byte("</body></html>"), 0o644))

	cfg := &infra.Config{
		TemplatesDir: templates,
		StaticDir:    "public",
		Catalog:      infra.CatalogConfig{SearchLimit: 5},
	}
	catalog := &stubCatalog{}
	return &testApp{
		router:  setupRouter(db, cfg, catalog, hasher),
		db:      db,
		catalog: catalog,
	}
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

var (
	adminAuth = basicAuth("ldnel", "secret")
	guestAuth = basicAuth("frank", "secret2")
)

func (a *testApp) do(method, path, authorization, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(path, authorization string) *httptest.ResponseRecorder {
	return a.do(http.MethodGet, path, authorization, "", "")
}

func (a *testApp) postForm(path, authorization string, form url.Values) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, path, authorization, "application/x-www-form-urlencoded", form.Encode())
}

func (a *testApp) postJSON(path, authorization, body string) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, path, authorization, "application/json", body)
}

func (a *testApp) countReviews(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, a.db.Model(&models.Review{}).Count(&n).Error)
	return n
}

func redirectMessage(t *testing.T, rec *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	require.Equal(t, http.StatusFound, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	return location.Path, location.Query().Get("message")
}

func TestPublicPages(t *testing.T) {
	app := setupTestApp(t)

	rec := app.get("/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<html><body>"))
	assert.Contains(t, rec.Body.String(), `action="/register"`)

	rec = app.get("/index.html?message=Hello", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello")

	rec = app.get("/public/css/style.css", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.get("/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestProtectedRoutesRequireBasicAuth(t *testing.T) {
	app := setupTestApp(t)

	rec := app.get("/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, constants.RealmLogin, rec.Header().Get("WWW-Authenticate"))
	assert.Equal(t, constants.ErrUnauthorized, rec.Body.String())

	rec = app.get("/api/reviews/all", basicAuth("frank", "wrong"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, constants.ErrInvalidCredentials, rec.Body.String())

	rec = app.get("/api/reviews/all", "Basic")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, constants.ErrInvalidAuthFormat, rec.Body.String())

	rec = app.get("/api/reviews/all", "Bearer abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRedirectsByRole(t *testing.T) {
	app := setupTestApp(t)

	rec := app.get("/protected", adminAuth)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/users", rec.Header().Get("Location"))

	rec = app.get("/protected", guestAuth)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestAdminPageAccess(t *testing.T) {
	app := setupTestApp(t)

	rec := app.get("/users", guestAuth)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, constants.MsgAdminRequired, rec.Body.String())

	rec = app.get("/users", adminAuth)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<td>ldnel</td>")
	assert.Contains(t, rec.Body.String(), "<td>frank</td>")

	rec = app.get("/metrics", guestAuth)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = app.get("/metrics", adminAuth)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	app := setupTestApp(t)
	form := url.Values{"username": {"alice"}, "password": {"pw"}}

	path, message := redirectMessage(t, app.postForm("/register", "", form))
	assert.Equal(t, "/index.html", path)
	assert.Equal(t, constants.MsgRegistered, message)

	_, message = redirectMessage(t, app.postForm("/register", "", form))
	assert.Equal(t, constants.MsgUsernameTaken, message)

	_, message = redirectMessage(t, app.postForm("/register", "", url.Values{"username": {"bob"}}))
	assert.Equal(t, constants.MsgCredentialsRequired, message)

	rec := app.postForm("/login", "", form)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	// the new account works on protected routes right away
	rec = app.get("/dashboard", basicAuth("alice", "pw"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome, alice!")

	_, message = redirectMessage(t, app.postForm("/login", "", url.Values{"username": {"alice"}, "password": {"nope"}}))
	assert.Equal(t, constants.MsgInvalidLogin, message)
}

func TestLoginSetsAdminCookie(t *testing.T) {
	app := setupTestApp(t)

	rec := app.postForm("/login-auth", "", url.Values{"username": {"ldnel"}, "password": {"secret"}})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/users", rec.Header().Get("Location"))
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "isAdmin=true")

	rec = app.postForm("/login", "", url.Values{"username": {"frank"}, "password": {"secret2"}})
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.NotContains(t, rec.Header().Get("Set-Cookie"), "isAdmin=true")
}

func TestCreateReviewAPI(t *testing.T) {
	app := setupTestApp(t)

	rec := app.postJSON("/api/reviews", guestAuth,
		`{"book_id":"X","book_title":"Dune","book_author":"Frank Herbert","rating":4,"comment":"Great","user_id":"ldnel"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created dto.CreateReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Success)
	require.NotNil(t, created.Review)
	assert.Equal(t, "frank", created.Review.UserID)
	assert.Equal(t, "frank", created.Review.Username)
	assert.Equal(t, 4, created.Review.Rating)
	assert.False(t, created.Review.CreatedAt.IsZero())
	assert.EqualValues(t, 1, app.countReviews(t))
}

func TestCreateReviewAPI_Rejections(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing rating", `{"book_id":"X","book_title":"Dune","comment":"c"}`, constants.ErrRatingRequired},
		{"missing comment", `{"book_id":"X","book_title":"Dune","rating":3}`, constants.ErrRatingRequired},
		{"rating too high", `{"book_id":"X","book_title":"Dune","rating":9,"comment":"c"}`, "Rating must be between 1 and 5"},
		{"missing book", `{"rating":3,"comment":"c"}`, "Book ID and title are required"},
		{"bad json", `{"rating":`, constants.ErrInvalidJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.postJSON("/api/reviews", guestAuth, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"`+tt.message+`"}`, rec.Body.String())
		})
	}
	assert.EqualValues(t, 0, app.countReviews(t))
}

func TestListReviews(t *testing.T) {
	app := setupTestApp(t)

	for _, body := range []string{
		`{"book_id":"X","book_title":"A","rating":3,"comment":"first"}`,
		`{"book_id":"Y","book_title":"B","rating":5,"comment":"second"}`,
	} {
		require.Equal(t, http.StatusOK, app.postJSON("/api/reviews", guestAuth, body).Code)
	}

	rec := app.get("/api/reviews/all", adminAuth)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.ReviewWithUsername
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 2)
	assert.Equal(t, "B", all[0].BookTitle)
	assert.Equal(t, "A", all[1].BookTitle)

	rec = app.get("/api/reviews?book_id=X", guestAuth)
	require.Equal(t, http.StatusOK, rec.Code)
	var byBook []models.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &byBook))
	require.Len(t, byBook, 1)
	assert.Equal(t, "first", byBook[0].Comment)

	rec = app.get("/api/reviews?book_id=none", guestAuth)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = app.get("/dashboard", guestAuth)
	assert.Contains(t, rec.Body.String(), "★★★★★")
}

func TestSubmitReviewForm(t *testing.T) {
	app := setupTestApp(t)

	path, message := redirectMessage(t, app.postForm("/submit-review", guestAuth, url.Values{
		"book_id": {"X"}, "book_title": {"Dune"}, "rating": {"5"}, "comment": {"Loved it"},
	}))
	assert.Equal(t, "/dashboard", path)
	assert.Equal(t, constants.MsgReviewSubmitted, message)

	_, message = redirectMessage(t, app.postForm("/submit-review", guestAuth, url.Values{
		"book_id": {"X"}, "book_title": {"Dune"}, "rating": {"5"},
	}))
	assert.Equal(t, constants.ErrRatingRequired, message)

	_, message = redirectMessage(t, app.postForm("/submit-review", guestAuth, url.Values{
		"book_id": {"X"}, "book_title": {"Dune"}, "rating": {""}, "comment": {"hi"},
	}))
	assert.Equal(t, constants.ErrRatingRequired, message)

	_, message = redirectMessage(t, app.postForm("/submit-review", guestAuth, url.Values{
		"book_id": {"X"}, "book_title": {"Dune"}, "rating": {"0"}, "comment": {"hi"},
	}))
	assert.Equal(t, "Rating must be between 1 and 5", message)
	assert.EqualValues(t, 1, app.countReviews(t))
}

func TestBookSearch(t *testing.T) {
	app := setupTestApp(t)

	rec := app.get("/api/books/search", guestAuth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Search query required"}`, rec.Body.String())

	app.catalog.books = []dto.BookSummary{{ID: "1", Title: "Dune", Authors: []string{"Frank Herbert"}}}
	rec = app.get("/api/books/search?q=dune", guestAuth)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"1","title":"Dune","authors":["Frank Herbert"]}]`, rec.Body.String())

	app.catalog.err = clients.ErrUpstreamUnavailable
	rec = app.get("/api/books/search?q=dune", guestAuth)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to connect to books API"}`, rec.Body.String())

	app.catalog.err = clients.ErrUpstreamMalformed
	rec = app.get("/api/books/search?q=dune", guestAuth)
	assert.JSONEq(t, `{"error":"Failed to process book data"}`, rec.Body.String())
}

func TestReviewFormPage(t *testing.T) {
	app := setupTestApp(t)

	rec := app.get("/review", guestAuth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	app.catalog.book = &dto.BookDetail{ID: "abc", Title: "Dune", Authors: []string{"Frank Herbert"}}
	rec = app.get("/review?book_id=abc", guestAuth)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Review: Dune")

	app.catalog.err = clients.ErrUpstreamUnavailable
	rec = app.get("/review?book_id=abc", guestAuth)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
