package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/linkstats/internal/controllers/middlewares"
)

func SetupRouter(linkService Shortener, pingService ConnectionChecker, l *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestIDMiddleware())
	r.Use(middlewares.LoggerMiddleware(l))

	linksController := NewLinksController(linkService)
	pingController := NewPingController(pingService)

	r.POST("/shorten", linksController.CreateShortLink)
	r.GET("/ping", pingController.Ping)
	r.GET("/stats/:shortCode", linksController.Stats)
	r.GET("/:shortCode", linksController.Redirect)

	return r
}
