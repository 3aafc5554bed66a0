package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordScanAccepted()
	c.RecordScanAccepted()
	c.RecordScanRejected()
	c.RecordTransactionLogged()
	c.RecordTransactionLogFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.scanAccepted))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.scanRejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.txLogged))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.txLogFailed))
}

func TestHTTPStatusLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.httpStatus.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpStatus.WithLabelValues("404")))
}

func TestScrapeHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordScanAccepted()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	Handler(reg).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rfid_scan_accepted_total 1")
}
