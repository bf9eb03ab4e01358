package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCoercion(t *testing.T) {
	before := testutil.ToFloat64(CoercionResultsTotal.WithLabelValues("diet", "fallback"))
	RecordCoercion("diet", "fallback")
	after := testutil.ToFloat64(CoercionResultsTotal.WithLabelValues("diet", "fallback"))
	assert.Equal(t, before+1, after)
}

func TestRecordLedgerAppend(t *testing.T) {
	before := testutil.ToFloat64(LedgerAppendsTotal.WithLabelValues("ok"))
	RecordLedgerAppend("ok")
	assert.Equal(t, before+1, testutil.ToFloat64(LedgerAppendsTotal.WithLabelValues("ok")))
}

func TestServer_ExposesMetrics(t *testing.T) {
	RecordRequest("POST", "/diet", "200", 0.25)

	srv := httptest.NewServer(NewServer(":0", time.Second, zerolog.Nop()).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "nutrition_bot_requests_total")
}

func TestServer_DisabledReturnsImmediately(t *testing.T) {
	s := NewServer("", time.Second, zerolog.Nop())
	assert.NoError(t, s.Run(context.Background()))
}
