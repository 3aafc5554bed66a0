// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	scanAccepted prometheus.Counter
	scanRejected prometheus.Counter
	txLogged     prometheus.Counter
	txLogFailed  prometheus.Counter
	httpStatus   *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		scanAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rfid_scan_accepted_total",
			Help: "Scans that resolved to an active account.",
		}),
		scanRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rfid_scan_rejected_total",
			Help: "Scans with an invalid or inactive tag.",
		}),
		txLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rfid_transactions_logged_total",
			Help: "Transaction rows appended for accepted scans.",
		}),
		txLogFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rfid_transaction_log_failures_total",
			Help: "Accepted scans whose transaction append failed.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rfid_http_responses_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.scanAccepted,
		c.scanRejected,
		c.txLogged,
		c.txLogFailed,
		c.httpStatus,
	)
	return c
}

func (c *Collector) RecordScanAccepted()         { c.scanAccepted.Inc() }
func (c *Collector) RecordScanRejected()         { c.scanRejected.Inc() }
func (c *Collector) RecordTransactionLogged()    { c.txLogged.Inc() }
func (c *Collector) RecordTransactionLogFailed() { c.txLogFailed.Inc() }

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler returns the scrape endpoint for the given gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
