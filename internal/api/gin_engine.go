package api

import (
	"ticketpix/pkg/logger"
	"ticketpix/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func NewGinEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(
		logger.CorrelationMiddleware(),
		metrics.GinMiddleware("/metrics", "/health/live", "/health/ready"),
		logger.RequestLogger(),
		gin.Recovery(),
	)
	return engine
}
