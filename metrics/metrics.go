package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var GatewayRequestTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "avasho",
	Subsystem: "gateway",
	Name:      "request_seconds",
}, []string{"route"})

var GatewayErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "avasho",
	Subsystem: "gateway",
	Name:      "errors_total",
}, []string{"route", "err_code"})

var ArchiveUploads = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "avasho",
	Subsystem: "archive",
	Name:      "uploads_total",
}, []string{"result"})

var JobsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "avasho",
	Subsystem: "jobs",
	Name:      "submitted_total",
})
