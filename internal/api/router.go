package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"portfolio/internal/config"
	"portfolio/internal/metrics"
)

// NewRouter 构建 Gin 路由引擎，挂载健康检查与 Prometheus 指标端点。
func NewRouter(cfg *config.Config) *gin.Engine {
	if cfg.API.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(metrics.GinMiddleware(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
