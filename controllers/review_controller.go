package controllers

import (
	"net/http"
	"strings"

	"book-review/constants"
	"book-review/dto"
	"book-review/logger"
	"book-review/services"

	"github.com/gin-gonic/gin"
)

type IReviewController interface {
	FindAll(ctx *gin.Context)
	FindByBook(ctx *gin.Context)
	Create(ctx *gin.Context)
	Submit(ctx *gin.Context)
}

type ReviewController struct {
	service services.IReviewService
}

func NewReviewController(service services.IReviewService) IReviewController {
	return &ReviewController{service: service}
}

func (c *ReviewController) FindAll(ctx *gin.Context) {
	reviews, err := c.service.FindAll()
	if err != nil {
		logger.Get().Error().Err(err).Msg("list reviews")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrFetchReviews})
		return
	}
	ctx.JSON(http.StatusOK, reviews)
}

func (c *ReviewController) FindByBook(ctx *gin.Context) {
	bookID := ctx.Query("book_id")
	reviews, err := c.service.FindByBook(bookID)
	if err != nil {
		logger.Get().Error().Err(err).Str("book_id", bookID).Msg("list reviews by book")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrFetchReviews})
		return
	}
	ctx.JSON(http.StatusOK, reviews)
}

// Create is the JSON path: every outcome is a JSON body.
func (c *ReviewController) Create(ctx *gin.Context) {
	identity := identityFrom(ctx)
	if identity == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": constants.ErrNotAuthenticated})
		return
	}

	var input dto.CreateReviewInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		if verr := reviewValidationError(err); verr != nil {
			message, _ := reviewErrorMessage(verr)
			ctx.JSON(http.StatusBadRequest, gin.H{"error": message})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidJSON})
		return
	}

	review, err := c.service.Create(input, identity)
	if err != nil {
		if message, ok := reviewErrorMessage(err); ok {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": message})
			return
		}
		logger.Get().Error().Err(err).Str("user", identity.ID).Msg("create review")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrDatabase})
		return
	}

	ctx.JSON(http.StatusOK, dto.CreateReviewResponse{Success: true, Review: review})
}

// Submit is the form path: every outcome is a redirect carrying a message.
func (c *ReviewController) Submit(ctx *gin.Context) {
	identity := identityFrom(ctx)
	if identity == nil {
		redirectWithMessage(ctx, "/", "Please login first")
		return
	}

	// 空のratingはフォームバインドで0になるので、未入力として先に弾く
	if strings.TrimSpace(ctx.PostForm("rating")) == "" {
		redirectWithMessage(ctx, "/dashboard", constants.ErrRatingRequired)
		return
	}

	var input dto.CreateReviewInput
	if err := ctx.ShouldBind(&input); err != nil {
		if verr := reviewValidationError(err); verr != nil {
			message, _ := reviewErrorMessage(verr)
			redirectWithMessage(ctx, "/dashboard", message)
			return
		}
		redirectWithMessage(ctx, "/dashboard", "An error occurred. Please try again.")
		return
	}

	if _, err := c.service.Create(input, identity); err != nil {
		if message, ok := reviewErrorMessage(err); ok {
			redirectWithMessage(ctx, "/dashboard", message)
			return
		}
		logger.Get().Error().Err(err).Str("user", identity.ID).Msg("save submitted review")
		redirectWithMessage(ctx, "/dashboard", "Failed to save review. Please try again.")
		return
	}

	redirectWithMessage(ctx, "/dashboard", constants.MsgReviewSubmitted)
}
