package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsModule exposes the Prometheus registry at /metrics. Register it
// at the engine root, not under /api.
type MetricsModule struct {
	Limit Limiter
}

func NewMetricsModule(limit Limiter) *MetricsModule { return &MetricsModule{Limit: limit} }

func (m *MetricsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/metrics", m.Limit.PerIP("metrics", 120), gin.WrapH(promhttp.Handler()))
}
