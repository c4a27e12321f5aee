package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	bookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Booking transaction outcomes",
		},
		[]string{"outcome"},
	)

	chatbotTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_turns_total",
			Help: "Chatbot turns by resolved intent or step",
		},
		[]string{"intent"},
	)

	waitlistJoinsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "waitlist_joins_total",
			Help: "Accepted waitlist joins",
		},
	)
)

// Middleware records per-route request latency and status.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}

// RegisterRoutes exposes /metrics.
func RegisterRoutes(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func ObserveBooking(outcome string) {
	bookingsTotal.WithLabelValues(outcome).Inc()
}

func ObserveChatTurn(intent string) {
	chatbotTurnsTotal.WithLabelValues(intent).Inc()
}

func ObserveWaitlistJoin() {
	waitlistJoinsTotal.Inc()
}
