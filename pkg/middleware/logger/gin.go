package logger

import (
	// 外部依赖
	"time"

	"github.com/gin-gonic/gin"

	// 内部引用
	uuid "github.com/scienceol/molcache/pkg/common/uuid"
)

// LogWithWriter tags each request with a request id and writes one access
// line after the handler chain finishes. A well-formed client supplied
// X-Request-Id is kept so ids correlate across services.
func LogWithWriter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader("X-Request-Id")
		if _, err := uuid.FromString(id); err != nil {
			id = uuid.NewV4().String()
		}
		ctx.Set(RequestIDKey, id)
		ctx.Header("X-Request-Id", id)

		start := time.Now()
		ctx.Next()

		Infof(ctx, "%s %s status: %d, cost: %s, client: %s",
			ctx.Request.Method,
			ctx.Request.URL.RequestURI(),
			ctx.Writer.Status(),
			time.Since(start),
			ctx.ClientIP(),
		)
	}
}
