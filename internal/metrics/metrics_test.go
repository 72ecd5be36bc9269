package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveVisitorsFollowsSource(t *testing.T) {
	n := 0
	Register(func() int { return n })
	Register(func() int { return -1 })

	assert.Equal(t, 0.0, testutil.ToFloat64(activeVisitors))
	n = 3
	assert.Equal(t, 3.0, testutil.ToFloat64(activeVisitors))

	IncCalculation("bmi", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(calculations.WithLabelValues("bmi", "valid")))

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "studyhub_active_visitors 3")
}
