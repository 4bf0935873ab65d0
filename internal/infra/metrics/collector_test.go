package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"internhub/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordSync(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSync(service.SyncOutcomeCreated)
	c.RecordSync(service.SyncOutcomeCreated)
	c.RecordSync(service.SyncOutcomeRaceResolved)

	assert.InDelta(t, 2, testutil.ToFloat64(c.syncs.WithLabelValues("created")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.syncs.WithLabelValues("race_resolved")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(c.syncs.WithLabelValues("failed")), 0)
}

func TestCollector_RecordGuardDecisionAndEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordGuardDecision("redirect_login")
	c.RecordSessionEvent(service.EventSignedIn)
	c.RecordSessionEvent(service.EventSignedIn)

	assert.InDelta(t, 1, testutil.ToFloat64(c.guardDecisions.WithLabelValues("redirect_login")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(c.sessionEvents.WithLabelValues("SIGNED_IN")), 0)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordSync(service.SyncOutcomeExisting)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `internhub_account_sync_total{outcome="existing"} 1`)
}
