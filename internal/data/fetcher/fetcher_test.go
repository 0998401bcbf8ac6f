package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/daterange"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/model"
)

var testRange = daterange.Range{
	DateIni: "20240301000000",
	DateEnd: "20240305235959",
}

var testOp = model.Operation{Name: "Ventas", Server: "14", Token: "secret-token"}

const reportBody = `{
	"code": "200",
	"error": null,
	"msg": "ok",
	"data": [
		{"session_id": "s1", "date": "2024-03-01 10:00:00", "customer_phone": "555", "customer_query": "hi"},
		{"session_id": "s2", "date": "2024-03-02 11:00:00", "customer_phone": "777", "routing_answer": "hello"}
	]
}`

func newClientFor(url string) *Client {
	c := NewClient()
	c.SetBaseURL(url)
	return c
}

func TestFetchReportSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/reports_manager.php", r.URL.Path)
		assert.Equal(t, "diagram_9", r.URL.Query().Get("api"))
		assert.Equal(t, "20240301000000", r.URL.Query().Get("date_ini"))
		assert.Equal(t, "20240305235959", r.URL.Query().Get("date_end"))
		assert.Equal(t, "14", r.Header.Get("wolkvox-server"))
		assert.Equal(t, "secret-token", r.Header.Get("wolkvox-token"))
		w.Write([]byte(reportBody))
	}))
	defer srv.Close()

	records, err := newClientFor(srv.URL).FetchReport(context.Background(), testOp, testRange)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "555", records[0].CustomerPhone)
	assert.Equal(t, "hello", records[1].RoutingAnswer)
}

func TestFetchReportNotFoundMeansEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	records, err := newClientFor(srv.URL).FetchReport(context.Background(), testOp, testRange)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFetchReportEnvelopeCodeMeansEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "404", "error": null, "msg": "no data", "data": []}`))
	}))
	defer srv.Close()

	records, err := newClientFor(srv.URL).FetchReport(context.Background(), testOp, testRange)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchReportUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newClientFor(srv.URL).FetchReport(context.Background(), testOp, testRange)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestFetchReportMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := newClientFor(srv.URL).FetchReport(context.Background(), testOp, testRange)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestFetchReportTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newClientFor(srv.URL).FetchReport(context.Background(), testOp, testRange)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestFetchReportCaching(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(reportBody))
	}))
	defer srv.Close()

	client := newClientFor(srv.URL)

	for i := 0; i < 3; i++ {
		records, err := client.FetchReport(context.Background(), testOp, testRange)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	}
	assert.Equal(t, int32(1), hits.Load())

	client.ResetCache()
	_, err := client.FetchReport(context.Background(), testOp, testRange)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchReportCacheDisabled(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(reportBody))
	}))
	defer srv.Close()

	client := newClientFor(srv.URL)
	client.SetCacheEnabled(false)

	for i := 0; i < 2; i++ {
		_, err := client.FetchReport(context.Background(), testOp, testRange)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), hits.Load())
}
