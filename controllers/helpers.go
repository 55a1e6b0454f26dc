package controllers

import (
	"errors"
	"net/http"
	"net/url"

	"book-review/constants"
	"book-review/logger"
	"book-review/models"
	"book-review/services"
	"book-review/views"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func identityFrom(ctx *gin.Context) *models.Identity {
	value, exists := ctx.Get(constants.IdentityKey)
	if !exists {
		return nil
	}
	identity, _ := value.(*models.Identity)
	return identity
}

func redirectWithMessage(ctx *gin.Context, path string, message string) {
	ctx.Redirect(http.StatusFound, path+"?message="+url.QueryEscape(message))
}

// renderPage はフラグメントをheader/footerで包んで返す。テンプレートが読めなければ500
func renderPage(ctx *gin.Context, renderer views.IRenderer, status int, fragment string, err error) {
	if err != nil {
		logger.Get().Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("build page fragment")
		ctx.String(http.StatusInternalServerError, constants.ErrUnexpected)
		return
	}
	page, err := renderer.Render(fragment)
	if err != nil {
		logger.Get().Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("render page")
		ctx.String(http.StatusInternalServerError, constants.ErrUnexpected)
		return
	}
	ctx.Data(status, "text/html; charset=utf-8", []byte(page))
}

func renderError(ctx *gin.Context, renderer views.IRenderer, status int, data views.ErrorData) {
	fragment, err := views.ErrorFragment(data)
	renderPage(ctx, renderer, status, fragment, err)
}

// reviewValidationError maps a binding failure to one of the review
// validation errors. It returns nil when err is not a field validation
// failure, i.e. the body itself could not be decoded.
func reviewValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" && (fe.Field() == "Rating" || fe.Field() == "Comment") {
			return services.ErrRatingCommentRequired
		}
	}
	for _, fe := range verrs {
		if fe.Field() == "Rating" {
			return services.ErrRatingOutOfRange
		}
	}
	return services.ErrBookRequired
}

var reviewErrorMessages = map[error]string{
	services.ErrRatingCommentRequired: constants.ErrRatingRequired,
	services.ErrRatingOutOfRange:      "Rating must be between 1 and 5",
	services.ErrBookRequired:          "Book ID and title are required",
}

func reviewErrorMessage(err error) (string, bool) {
	for target, message := range reviewErrorMessages {
		if errors.Is(err, target) {
			return message, true
		}
	}
	return "", false
}
