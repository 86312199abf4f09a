package web

import (
	// 外部依赖
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// 内部引用
	coreCompound "github.com/scienceol/molcache/pkg/core/compound"
	logger "github.com/scienceol/molcache/pkg/middleware/logger"
	compoundView "github.com/scienceol/molcache/pkg/web/views/compound"
	health "github.com/scienceol/molcache/pkg/web/views/health"
)

func NewRouter(g *gin.Engine, svc coreCompound.Service) {
	installMiddleware(g)
	installURL(g, svc)
}

func installMiddleware(g *gin.Engine) {
	g.ContextWithFallback = true
	g.Use(cors.Default())
	g.Use(logger.LogWithWriter())
}

func installURL(g *gin.Engine, svc coreCompound.Service) {
	hHandle := health.NewHandle(svc)
	api := g.Group("/api")
	api.GET("/health", hHandle.Health)
	api.GET("/health/live", hHandle.Live)
	api.GET("/health/ready", hHandle.Ready)

	cHandle := compoundView.NewHandle(svc)
	{
		v1 := api.Group("/v1")

		// Compound lookups
		{
			compoundRouter := v1.Group("/compound")
			compoundRouter.GET("", cHandle.Lookup)
			compoundRouter.POST("/prefetch", cHandle.Prefetch)
		}

		// Cache maintenance
		{
			cacheRouter := v1.Group("/cache")
			cacheRouter.GET("", cHandle.Entries)
			cacheRouter.GET("/stats", cHandle.Stats)
			cacheRouter.DELETE("/entry", cHandle.Evict)
			cacheRouter.POST("/flush", cHandle.Flush)
		}
	}
}
