package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"nutrition-bot/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		SheetID:                  "sheet-123",
		GoogleServiceAccountJSON: `{"type":"service_account"}`,
		SheetRange:               "A1",
	}
}

func TestAppender_NotConfigured(t *testing.T) {
	a := NewAppender(&config.Config{SheetRange: "A1"}, zerolog.Nop())
	assert.False(t, a.Configured())
	assert.Error(t, a.Append(context.Background(), []any{"x"}))

	a = NewAppender(&config.Config{SheetID: "only-id", SheetRange: "A1"}, zerolog.Nop())
	assert.False(t, a.Configured())
}

func TestAppender_AppendsRawRow(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "/v4/spreadsheets/sheet-123/values/")
		assert.True(t, strings.HasSuffix(r.URL.Path, ":append"), r.URL.Path)
		assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))

		var body struct {
			Values [][]any `json:"values"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if assert.Len(t, body.Values, 1) {
			assert.Equal(t, []any{"2024-01-01", "u1", "soup", float64(120)}, body.Values[0])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-123","updates":{"updatedRange":"Sheet1!A2:D2","updatedCells":4}}`))
	}))
	defer srv.Close()

	a := NewAppender(testConfig(), zerolog.Nop(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.True(t, a.Configured())

	err := a.Append(context.Background(), []any{"2024-01-01", "u1", "soup", json.Number("120")})
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestAppender_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission"}}`))
	}))
	defer srv.Close()

	a := NewAppender(testConfig(), zerolog.Nop(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)

	err := a.Append(context.Background(), []any{nil, nil, nil, nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "append row")
}
