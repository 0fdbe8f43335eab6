package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/labstack/echo/v4"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "booking", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "booking", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	BookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "booking", Name: "bookings_created_total", Help: "Successful booking creations."},
	)
	BookingsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "booking", Name: "bookings_cancelled_total", Help: "Booking cancellations."},
	)
	NotificationPublishFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "booking", Name: "notification_publish_failures_total", Help: "Failed confirmation event publishes."},
	)
)

// MustRegister installs all collectors on the default registry.  Call once
// at startup.
func MustRegister() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, BookingsCreated, BookingsCancelled, NotificationPublishFailures)
}

// HTTPMetrics is an Echo middleware recording per-route request counts and
// latencies.
func HTTPMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			route := c.Path()
			method := c.Request().Method
			HTTPLatency.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			HTTPRequests.WithLabelValues(route, method, strconv.Itoa(c.Response().Status)).Inc()
			return err
		}
	}
}

// Serve exposes /metrics on METRICS_ADDR in a background goroutine.
// Disabled when METRICS_ADDR is unset.
func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()
}
