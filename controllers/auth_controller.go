package controllers

import (
	"errors"
	"net/http"

	"book-review/constants"
	"book-review/dto"
	"book-review/logger"
	"book-review/services"

	"github.com/gin-gonic/gin"
)

const indexPath = "/index.html"

type IAuthController interface {
	Register(ctx *gin.Context)
	Login(ctx *gin.Context)
	Protected(ctx *gin.Context)
}

type AuthController struct {
	service services.IAuthService
}

func NewAuthController(service services.IAuthService) IAuthController {
	return &AuthController{service: service}
}

// Register never answers with an error status: every outcome is a redirect
// back to the landing page carrying a message.
func (c *AuthController) Register(ctx *gin.Context) {
	var input dto.CredentialsInput
	_ = ctx.ShouldBind(&input)

	err := c.service.Signup(input.Username, input.Password)
	switch {
	case err == nil:
		logger.Get().Info().Str("user", input.Username).Msg("user registered")
		redirectWithMessage(ctx, indexPath, constants.MsgRegistered)
	case errors.Is(err, services.ErrCredentialsRequired):
		redirectWithMessage(ctx, indexPath, constants.MsgCredentialsRequired)
	case errors.Is(err, services.ErrUsernameTaken):
		redirectWithMessage(ctx, indexPath, constants.MsgUsernameTaken)
	default:
		logger.Get().Error().Err(err).Str("user", input.Username).Msg("signup failed")
		redirectWithMessage(ctx, indexPath, constants.MsgRegisterFailed)
	}
}

func (c *AuthController) Login(ctx *gin.Context) {
	var input dto.CredentialsInput
	_ = ctx.ShouldBind(&input)

	user, err := c.service.Login(input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCredentialsRequired):
			redirectWithMessage(ctx, indexPath, constants.MsgCredentialsRequired)
		case errors.Is(err, services.ErrInvalidCredentials):
			redirectWithMessage(ctx, indexPath, constants.MsgInvalidLogin)
		default:
			logger.Get().Error().Err(err).Str("user", input.Username).Msg("login lookup failed")
			redirectWithMessage(ctx, indexPath, constants.MsgDatabaseError)
		}
		return
	}

	logger.Get().Info().Str("user", user.ID).Msg("user logged in")

	// isAdmin は画面表示用のヒントでしかない。認可判定には使わない
	if user.Role == constants.RoleAdmin {
		ctx.SetCookie("isAdmin", "true", 0, "/", "", false, true)
		ctx.Redirect(http.StatusFound, "/users")
		return
	}
	ctx.SetCookie("isAdmin", "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusFound, "/dashboard")
}

func (c *AuthController) Protected(ctx *gin.Context) {
	identity := identityFrom(ctx)
	if identity == nil {
		ctx.Header("WWW-Authenticate", constants.RealmLogin)
		ctx.String(http.StatusUnauthorized, constants.ErrUnauthorized)
		return
	}
	if identity.Role == constants.RoleAdmin {
		ctx.Redirect(http.StatusFound, "/users")
		return
	}
	ctx.Redirect(http.StatusFound, "/dashboard")
}
