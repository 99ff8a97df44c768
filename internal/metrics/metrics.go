// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements service.Recorder and feeds the HTTP and expiry metrics.
type Collector struct {
	listingsPublished prometheus.Counter
	accountsCreated   prometheus.Counter
	publishFailures   *prometheus.CounterVec
	listingViews      prometheus.Counter
	httpResponses     *prometheus.CounterVec
	expiredListings   prometheus.Gauge
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		listingsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autoclassifieds_listings_published_total",
			Help: "Listings published.",
		}),
		accountsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autoclassifieds_accounts_created_total",
			Help: "Accounts created while publishing.",
		}),
		publishFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoclassifieds_publish_failures_total",
			Help: "Failed publish attempts by error kind.",
		}, []string{"kind"}),
		listingViews: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autoclassifieds_listing_views_total",
			Help: "Listing detail views.",
		}),
		httpResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoclassifieds_http_responses_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		expiredListings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "autoclassifieds_expired_listings",
			Help: "Listings past their expiration at the last report.",
		}),
	}

	reg.MustRegister(
		c.listingsPublished,
		c.accountsCreated,
		c.publishFailures,
		c.listingViews,
		c.httpResponses,
		c.expiredListings,
	)

	return c
}

func (c *Collector) ListingPublished() {
	c.listingsPublished.Inc()
}

func (c *Collector) AccountCreated() {
	c.accountsCreated.Inc()
}

func (c *Collector) PublishFailed(kind string) {
	c.publishFailures.WithLabelValues(kind).Inc()
}

func (c *Collector) ListingViewed() {
	c.listingViews.Inc()
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpResponses.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) SetExpiredListings(count int) {
	c.expiredListings.Set(float64(count))
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
