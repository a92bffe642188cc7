package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PingController struct {
	pingService ConnectionChecker
}

func NewPingController(pingService ConnectionChecker) *PingController {
	return &PingController{pingService: pingService}
}

// Ping проверяет соединение с хранилищем.
// GET /ping.
func (p *PingController) Ping(ctx *gin.Context) {
	timeoutCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	if err := p.pingService.CheckConnection(timeoutCtx); err != nil {
		_ = ctx.Error(err)
		ctx.String(http.StatusInternalServerError, "")
		return
	}
	ctx.String(http.StatusOK, "pong")
}
