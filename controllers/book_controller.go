package controllers

import (
	"errors"
	"net/http"

	"book-review/clients"
	"book-review/constants"
	"book-review/logger"
	"book-review/services"

	"github.com/gin-gonic/gin"
)

type IBookController interface {
	Search(ctx *gin.Context)
}

type BookController struct {
	service services.IBookService
}

func NewBookController(service services.IBookService) IBookController {
	return &BookController{service: service}
}

func (c *BookController) Search(ctx *gin.Context) {
	query := ctx.Query("q")
	books, err := c.service.Search(ctx.Request.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSearchQueryRequired):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrSearchQueryRequired})
		case errors.Is(err, clients.ErrUpstreamMalformed):
			logger.Get().Error().Err(err).Str("query", query).Msg("process catalog response")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrBooksAPIMalformed})
		default:
			logger.Get().Error().Err(err).Str("query", query).Msg("catalog request failed")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrBooksAPIUnavailable})
		}
		return
	}
	ctx.JSON(http.StatusOK, books)
}
