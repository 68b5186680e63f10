package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache names used as the "cache" label.
const (
	CacheCourse = "course"
	CacheStats  = "stats"
)

var (
	certificatesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "learnify_certificates_issued_total",
		Help: "Number of certificates issued.",
	})
	certificateVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnify_certificate_verifications_total",
		Help: "Certificate verification lookups by result.",
	}, []string{"result"})
	enrollments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnify_enrollments_total",
		Help: "Enrollment attempts by result.",
	}, []string{"result"})
	courseDeletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnify_course_deletions_total",
		Help: "Course deletion cascades by result.",
	}, []string{"result"})
	cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnify_cache_requests_total",
		Help: "Cache lookups by cache and result.",
	}, []string{"cache", "result"})
	cacheLookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "learnify_cache_lookup_duration_seconds",
		Help:    "Duration of cache lookups.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	}, []string{"result"})
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "learnify_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func IncCertificatesIssued() { certificatesIssued.Inc() }

// IncCertificateVerification records a lookup; result is valid, revoked or not_found.
func IncCertificateVerification(result string) {
	certificateVerifications.WithLabelValues(result).Inc()
}

// IncEnrollment records an attempt; result is created, duplicate, not_found or error.
func IncEnrollment(result string) { enrollments.WithLabelValues(result).Inc() }

func IncCourseDeletion(result string) { courseDeletions.WithLabelValues(result).Inc() }

func IncCacheHit(cache string)  { cacheRequests.WithLabelValues(cache, "hit").Inc() }
func IncCacheMiss(cache string) { cacheRequests.WithLabelValues(cache, "miss").Inc() }

func AddHitDuration(seconds float64)  { cacheLookupDuration.WithLabelValues("hit").Observe(seconds) }
func AddMissDuration(seconds float64) { cacheLookupDuration.WithLabelValues("miss").Observe(seconds) }

func ObserveHTTPRequest(method, route, status string, seconds float64) {
	httpRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
