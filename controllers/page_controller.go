package controllers

import (
	"errors"
	"net/http"

	"book-review/clients"
	"book-review/logger"
	"book-review/models"
	"book-review/services"
	"book-review/views"

	"github.com/gin-gonic/gin"
)

type IPageController interface {
	Index(ctx *gin.Context)
	Dashboard(ctx *gin.Context)
	Users(ctx *gin.Context)
	ReviewForm(ctx *gin.Context)
}

type PageController struct {
	renderer      views.IRenderer
	authService   services.IAuthService
	reviewService services.IReviewService
	bookService   services.IBookService
}

func NewPageController(
	renderer views.IRenderer,
	authService services.IAuthService,
	reviewService services.IReviewService,
	bookService services.IBookService,
) IPageController {
	return &PageController{
		renderer:      renderer,
		authService:   authService,
		reviewService: reviewService,
		bookService:   bookService,
	}
}

func (c *PageController) Index(ctx *gin.Context) {
	fragment, err := views.IndexPage(ctx.Query("message"))
	renderPage(ctx, c.renderer, http.StatusOK, fragment, err)
}

func (c *PageController) Dashboard(ctx *gin.Context) {
	identity := identityFrom(ctx)
	if identity == nil {
		redirectWithMessage(ctx, "/", "Please login first")
		return
	}

	reviews, err := c.reviewService.FindAll()
	if err != nil {
		logger.Get().Error().Err(err).Msg("load reviews for dashboard")
		renderError(ctx, c.renderer, http.StatusInternalServerError, views.ErrorData{Message: "Failed to load reviews"})
		return
	}

	fragment, err := views.DashboardPage(views.DashboardData{
		Username: identity.ID,
		Message:  ctx.Query("message"),
		Reviews:  *reviews,
	})
	renderPage(ctx, c.renderer, http.StatusOK, fragment, err)
}

// Users is the admin listing. RoleBasedAccessControl guards the route.
func (c *PageController) Users(ctx *gin.Context) {
	users, err := c.authService.FindAllUsers()
	if err != nil {
		logger.Get().Error().Err(err).Msg("load users for admin page")
		renderError(ctx, c.renderer, http.StatusInternalServerError, views.ErrorData{Message: "Failed to load users"})
		return
	}

	reviews, err := c.reviewService.FindAll()
	if err != nil {
		logger.Get().Error().Err(err).Msg("load reviews for admin page")
		renderError(ctx, c.renderer, http.StatusInternalServerError, views.ErrorData{Message: "Failed to load reviews"})
		return
	}

	fragment, err := views.AdminPage(views.AdminData{
		Users:   derefUsers(users),
		Reviews: *reviews,
	})
	renderPage(ctx, c.renderer, http.StatusOK, fragment, err)
}

func (c *PageController) ReviewForm(ctx *gin.Context) {
	if identityFrom(ctx) == nil {
		redirectWithMessage(ctx, "/", "Please login first")
		return
	}

	book, err := c.bookService.FetchOne(ctx.Request.Context(), ctx.Query("book_id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookIDRequired):
			renderError(ctx, c.renderer, http.StatusBadRequest, views.ErrorData{Message: "Book ID is required"})
		case errors.Is(err, clients.ErrUpstreamMalformed):
			logger.Get().Error().Err(err).Str("book_id", ctx.Query("book_id")).Msg("parse book details")
			renderError(ctx, c.renderer, http.StatusBadGateway, views.ErrorData{
				Message:  "Failed to load book details. Please try again later.",
				LinkHref: "/dashboard",
				LinkText: "Return to Dashboard",
			})
		default:
			logger.Get().Error().Err(err).Str("book_id", ctx.Query("book_id")).Msg("fetch book details")
			renderError(ctx, c.renderer, http.StatusBadGateway, views.ErrorData{
				Message:  "Could not connect to book service. Please try again later.",
				LinkHref: "/dashboard",
				LinkText: "Return to Dashboard",
			})
		}
		return
	}

	fragment, err := views.ReviewFormPage(*book)
	renderPage(ctx, c.renderer, http.StatusOK, fragment, err)
}

func derefUsers(users *[]models.User) []models.User {
	if users == nil {
		return nil
	}
	return *users
}
