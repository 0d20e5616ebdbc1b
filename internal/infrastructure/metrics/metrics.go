package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records catalog, pricing and cart activity.
// Every method is safe on a nil receiver so services can run without metrics.
type Metrics struct {
	reg           prometheus.Registerer
	listings      *prometheus.CounterVec
	listingSize   prometheus.Histogram
	listingTime   prometheus.Histogram
	cacheLookups  *prometheus.CounterVec
	quotes        *prometheus.CounterVec
	cartMutations *prometheus.CounterVec
}

// New registers the service metrics on reg
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	m := &Metrics{
		listings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vegist_catalog_listings_total",
			Help: "Catalog listings served, by sort key.",
		}, []string{"sort"}),
		listingSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vegist_catalog_listing_results",
			Help:    "Number of products matching a listing before pagination.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		listingTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vegist_catalog_listing_duration_seconds",
			Help:    "Time spent filtering and sorting a listing.",
			Buckets: prometheus.DefBuckets,
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vegist_cache_lookups_total",
			Help: "Listing cache lookups, by result.",
		}, []string{"result"}),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vegist_price_quotes_total",
			Help: "Variant price quotes, by outcome.",
		}, []string{"outcome"}),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vegist_cart_mutations_total",
			Help: "Cart and wishlist mutations, by operation.",
		}, []string{"operation"}),
	}
	m.reg = reg
	reg.MustRegister(m.listings, m.listingSize, m.listingTime, m.cacheLookups, m.quotes, m.cartMutations)
	return m
}

// ObserveListing records one listing computation
func (m *Metrics) ObserveListing(sort string, results int, duration time.Duration) {
	if m == nil || m.listings == nil {
		return
	}
	m.listings.WithLabelValues(normalizeLabel(sort)).Inc()
	m.listingSize.Observe(float64(results))
	m.listingTime.Observe(duration.Seconds())
}

// CacheHit counts a listing served from cache
func (m *Metrics) CacheHit() {
	if m == nil || m.cacheLookups == nil {
		return
	}
	m.cacheLookups.WithLabelValues("hit").Inc()
}

// CacheMiss counts a listing computed because the cache had no entry
func (m *Metrics) CacheMiss() {
	if m == nil || m.cacheLookups == nil {
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// IncQuote counts a price quote with the given outcome
func (m *Metrics) IncQuote(outcome string) {
	if m == nil || m.quotes == nil {
		return
	}
	m.quotes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncCartMutation counts a cart or wishlist change
func (m *Metrics) IncCartMutation(operation string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(operation)).Inc()
}

// TrackCacheEntries exports the size of the in-process cache, read on every scrape
func (m *Metrics) TrackCacheEntries(size func() int) {
	if m == nil || m.reg == nil {
		return
	}
	m.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "vegist_cache_entries",
		Help: "Entries held by the in-memory cache.",
	}, func() float64 { return float64(size()) }))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
