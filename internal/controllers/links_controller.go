package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/fsdevblog/linkstats/internal/services"
)

// LinksController обрабатывает HTTP запросы сокращения, редиректа и статистики.
type LinksController struct {
	linkService Shortener
}

func NewLinksController(linkService Shortener) *LinksController {
	return &LinksController{linkService: linkService}
}

type shortenRequest struct {
	URL string `json:"url" binding:"required"`
}

type shortenResponse struct {
	ShortURL string `json:"short_url"`
}

// CreateShortLink принимает JSON запрос со ссылкой.
// POST /shorten.
func (c *LinksController) CreateShortLink(ctx *gin.Context) {
	var req shortenRequest
	if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	shortURL, err := c.linkService.Shorten(ctx.Request.Context(), req.URL, ctx.ClientIP())
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, shortenResponse{ShortURL: shortURL})
}

// Redirect перенаправляет на оригинальный URL и попутно логирует посещение.
// GET /:shortCode.
func (c *LinksController) Redirect(ctx *gin.Context) {
	shortCode := ctx.Param("shortCode")

	longURL, err := c.linkService.Redirect(
		ctx.Request.Context(),
		shortCode,
		ctx.ClientIP(),
		ctx.Request.UserAgent(),
	)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusTemporaryRedirect, longURL)
}

// Stats отдает агрегированную статистику посещений.
// GET /stats/:shortCode.
func (c *LinksController) Stats(ctx *gin.Context) {
	stats, err := c.linkService.Stats(ctx.Request.Context(), ctx.Param("shortCode"))
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// renderError мапит ошибки сервисного слоя на HTTP статусы.
func (c *LinksController) renderError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRateLimited):
		ctx.JSON(http.StatusTooManyRequests, gin.H{"detail": ErrRateLimited.Error()})
	case errors.Is(err, services.ErrInvalidURL):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
	case errors.Is(err, services.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"detail": ErrRecordNotFound.Error()})
	default:
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": ErrInternal.Error()})
	}
}
