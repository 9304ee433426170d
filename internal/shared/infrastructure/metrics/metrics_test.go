package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentTransport_RecordsRequests(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
	}{
		{"success_200", http.StatusOK},
		{"bad_request_400", http.StatusBadRequest},
		{"forbidden_403", http.StatusForbidden},
		{"server_error_500", http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
			}))
			defer ts.Close()

			m := New()
			client := &http.Client{Transport: m.InstrumentTransport(nil)}

			resp, err := client.Post(ts.URL, "text/plain", strings.NewReader("x"))
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tc.statusCode, resp.StatusCode)
			assert.Equal(t, 1, testutil.CollectAndCount(m.requestsTotal))
			assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues(strconv.Itoa(tc.statusCode), "post")))
			assert.Equal(t, float64(0), testutil.ToFloat64(m.inFlight))
		})
	}
}

func TestRecorder(t *testing.T) {
	m := New()
	m.RecordOutcome("saved")
	m.RecordOutcome("saved")
	m.RecordOutcome("remote_error")
	m.RecordBytes("in", 10)
	m.RecordBytes("out", 32)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.outcomesTotal.WithLabelValues("saved")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.outcomesTotal.WithLabelValues("remote_error")))
	assert.Equal(t, float64(10), testutil.ToFloat64(m.bytesTotal.WithLabelValues("in")))
	assert.Equal(t, float64(32), testutil.ToFloat64(m.bytesTotal.WithLabelValues("out")))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.RecordOutcome("saved")

	path := filepath.Join(t.TempDir(), "textfile", "bgerase.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `bgerase_removals_total{outcome="saved"} 1`)
}
