package health

import (
	// 外部依赖
	"net/http"

	"github.com/gin-gonic/gin"

	// 内部引用
	coreCompound "github.com/scienceol/molcache/pkg/core/compound"
)

type Handle struct {
	cService coreCompound.Service
}

func NewHandle(svc coreCompound.Service) *Handle {
	return &Handle{cService: svc}
}

// Health is a simple health check (backward compatible).
func (h *Handle) Health(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Live is a lightweight liveness probe: the process is alive.
func (h *Handle) Live(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready is a readiness probe. It verifies the compound service is up and
// can report on its cache store.
func (h *Handle) Ready(g *gin.Context) {
	checks := gin.H{}
	healthy := true

	if h.cService == nil {
		checks["cache"] = "not_initialized"
		healthy = false
	} else if _, err := h.cService.Stats(g); err != nil {
		checks["cache"] = "unhealthy"
		healthy = false
	} else {
		checks["cache"] = "ok"
	}

	status := http.StatusOK
	msg := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		msg = "not_ready"
	}

	g.JSON(status, gin.H{
		"status": msg,
		"checks": checks,
	})
}
