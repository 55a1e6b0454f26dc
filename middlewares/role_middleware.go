package middlewares

import (
	"net/http"
	"strings"

	"book-review/constants"
	"book-review/logger"
	"book-review/models"

	"github.com/gin-gonic/gin"
)

// RoleBasedAccessControl 指定されたロールのみアクセスを許可するミドルウェア
// AuthMiddlewareの後に使用することを想定（ctxにidentityが設定されている必要がある）
// ロールは毎回Credential Storeから引いたものを使い、isAdmin Cookieは見ない
func RoleBasedAccessControl(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(ctx *gin.Context) {
		value, exists := ctx.Get(constants.IdentityKey)
		identity, ok := value.(*models.Identity)
		if !exists || !ok || identity == nil {
			ctx.Header("WWW-Authenticate", constants.RealmAdmin)
			ctx.String(http.StatusUnauthorized, constants.ErrUnauthorized)
			ctx.Abort()
			return
		}

		if _, ok := allowed[strings.ToLower(strings.TrimSpace(identity.Role))]; !ok {
			logger.Get().Info().
				Str("user", identity.ID).
				Str("role", identity.Role).
				Strs("allowed_roles", allowedRoles).
				Msg("access denied")
			ctx.Data(http.StatusForbidden, "text/html; charset=utf-8", []byte(constants.MsgAdminRequired))
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
