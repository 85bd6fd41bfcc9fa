package pusher_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/cryolab/fridgewatch/internal/errors"
	"codeberg.org/cryolab/fridgewatch/internal/metricmap"
	"codeberg.org/cryolab/fridgewatch/internal/pusher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) pusher.Config {
	return pusher.Config{
		URL:         url,
		JobName:     "fridge",
		MachineName: "fridge-alpha",
		Timeout:     5 * time.Second,
	}
}

func testBatch() []metricmap.MetricSample {
	return []metricmap.MetricSample{
		{Name: "cpahpa_mbar", Value: 120.5, Help: "Compressor high pressure actual [Status file] (cpahpa)"},
		{Name: "ch6_t_kelvin", Value: 0.012, Help: "MXC (mixing chamber) temperature [CH6 T file] (ch6_t)"},
	}
}

func TestPushReplacesGroup(t *testing.T) {
	var (
		method string
		path   string
		body   []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p, err := pusher.New(testConfig(server.URL))
	require.NoError(t, err)

	err = p.Push(context.Background(), testBatch())
	require.NoError(t, err)

	// PUT replaces the whole job/instance group, so stale metrics from a
	// prior run cannot linger.
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/metrics/job/fridge/instance/fridge-alpha", path)

	text := string(body)
	assert.Contains(t, text, "cpahpa_mbar 120.5")
	assert.Contains(t, text, "ch6_t_kelvin 0.012")
	assert.Contains(t, text, "last_push_timestamp_seconds")
}

func TestPushFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no thanks", http.StatusInternalServerError)
	}))
	defer server.Close()

	p, err := pusher.New(testConfig(server.URL))
	require.NoError(t, err)

	err = p.Push(context.Background(), testBatch())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, pusher.ErrPushFailed))
}

func TestPushTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	cfg := testConfig(server.URL)
	cfg.Timeout = 50 * time.Millisecond

	p, err := pusher.New(cfg)
	require.NoError(t, err)

	err = p.Push(context.Background(), testBatch())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, pusher.ErrPushTimeout))
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := pusher.New(pusher.Config{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, pusher.ErrInvalidConfig))
}
