package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.IncReportSubmitted(true)
	m.IncReportSubmitted(true)
	m.IncReportSubmitted(false)
	m.IncProjectCompleted()
	m.IncCacheLookup("hit")
	m.IncEventPublished("report.submitted", nil)
	m.IncEventPublished("report.submitted", errors.New("down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReportsSubmitted.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsSubmitted.WithLabelValues("updated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProjectsCompleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportCacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("report.submitted", "failed")))
}

func TestHandler_ExposesInstruments(t *testing.T) {
	m := New()
	m.RecordUseCase("submit-report", true, 5*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/v1/projects", "200", time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "cadence_use_case_duration_seconds")
	assert.Contains(t, body, `use_case="submit-report"`)
	assert.Contains(t, body, "cadence_http_request_duration_seconds")
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
