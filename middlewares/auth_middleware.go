package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"book-review/constants"
	"book-review/logger"
	"book-review/metrics"
	"book-review/services"

	"github.com/gin-gonic/gin"
)

// PublicPaths skip authentication entirely.
var PublicPaths = map[string]struct{}{
	"/":           {},
	"/index.html": {},
	"/health":     {},
	"/login-auth": {},
	"/login":      {},
	"/register":   {},
}

const PublicPrefix = "/public/"

func IsPublicPath(path string) bool {
	if _, ok := PublicPaths[path]; ok {
		return true
	}
	return strings.HasPrefix(path, PublicPrefix)
}

// AuthMiddleware はリクエストごとにBasic認証ヘッダーを検証し、identityをctxに載せる
func AuthMiddleware(authService services.IAuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if IsPublicPath(ctx.Request.URL.Path) {
			ctx.Next()
			return
		}

		identity, err := authService.Authenticate(ctx.GetHeader("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingCredentials):
				metrics.AuthFailuresTotal.WithLabelValues("missing").Inc()
				ctx.Header("WWW-Authenticate", constants.RealmLogin)
				ctx.String(http.StatusUnauthorized, constants.ErrUnauthorized)
			case errors.Is(err, services.ErrMalformedCredentials):
				metrics.AuthFailuresTotal.WithLabelValues("malformed").Inc()
				ctx.String(http.StatusBadRequest, constants.ErrInvalidAuthFormat)
			case errors.Is(err, services.ErrInvalidCredentials):
				metrics.AuthFailuresTotal.WithLabelValues("invalid").Inc()
				ctx.Header("WWW-Authenticate", constants.RealmLogin)
				ctx.String(http.StatusUnauthorized, constants.ErrInvalidCredentials)
			default:
				logger.Get().Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("authentication lookup failed")
				ctx.String(http.StatusInternalServerError, constants.ErrInternal)
			}
			ctx.Abort()
			return
		}

		ctx.Set(constants.IdentityKey, identity)
		ctx.Next()
	}
}
