package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhnp/tron-block-api/internal/apperr"
	"github.com/thanhnp/tron-block-api/internal/processor"
	"github.com/thanhnp/tron-block-api/internal/rpc/tron"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeFetcher struct {
	raw   tron.RawBlock
	err   error
	calls int
	ctx   context.Context
}

func (f *fakeFetcher) FetchLatestBlock(ctx context.Context) (tron.RawBlock, error) {
	f.calls++
	f.ctx = ctx
	return f.raw, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEngine(groups ...interface{ RegisterRoutes(gin.IRouter) }) *gin.Engine {
	engine := gin.New()
	for _, g := range groups {
		g.RegisterRoutes(engine)
	}
	return engine
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	h := NewHealthHandler(&fakeFetcher{}, "1.0.0")
	h.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	rec := get(newEngine(h), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","timestamp":"2024-01-02T03:04:05Z","service":"tronScan-api","version":"1.0.0"}`, rec.Body.String())
}

func TestHealthWithoutClient(t *testing.T) {
	rec := get(newEngine(NewHealthHandler(nil, "1.0.0")), "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"SERVER_ERROR"`)
}

func TestGetLatest(t *testing.T) {
	fetcher := &fakeFetcher{raw: tron.RawBlock(`{"blockID":"0x01","block_header":{"raw_data":{"number":100,"timestamp":1700000000000,"witness_address":"TAddr"}}}`)}
	h := NewBlockHandler(fetcher, processor.New(discardLogger()), discardLogger())

	rec := get(newEngine(h), "/latest-block")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"blockNumber":100,"timestamp":1700000000000,"transactionCount":0,"producer":"TAddr","hash":"0x01"}}`, rec.Body.String())
	assert.Equal(t, 1, fetcher.calls)
	assert.NotNil(t, fetcher.ctx)
}

func TestGetLatest_ValidationFailure(t *testing.T) {
	fetcher := &fakeFetcher{raw: tron.RawBlock(`{"block_header":{"raw_data":{"number":100}}}`)}
	h := NewBlockHandler(fetcher, processor.New(discardLogger()), discardLogger())

	rec := get(newEngine(h), "/latest-block")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":{"message":"block data validation failed","type":"DATA_ERROR"}}`, rec.Body.String())
}

func TestErrorEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		fetcher  *fakeFetcher
		path     string
		wantMsg  string
		wantType apperr.Kind
	}{
		{
			name:     "network error on summary",
			fetcher:  &fakeFetcher{err: apperr.Wrap(apperr.NetworkError, "tron node request failed", errors.New("HTTP 503"))},
			path:     "/latest-block",
			wantMsg:  "tron node request failed",
			wantType: apperr.NetworkError,
		},
		{
			name:     "network error on details",
			fetcher:  &fakeFetcher{err: apperr.Wrap(apperr.NetworkError, "tron node request failed", errors.New("timeout"))},
			path:     "/latest-details",
			wantMsg:  "tron node request failed",
			wantType: apperr.NetworkError,
		},
		{
			name:     "missing header on details",
			fetcher:  &fakeFetcher{raw: tron.RawBlock(`{"blockID":"x"}`)},
			path:     "/latest-details",
			wantMsg:  "invalid block data structure",
			wantType: apperr.DataError,
		},
		{
			name:     "empty body on summary",
			fetcher:  &fakeFetcher{raw: tron.RawBlock(``)},
			path:     "/latest-block",
			wantMsg:  "invalid block data structure",
			wantType: apperr.DataError,
		},
		{
			name:     "unexpected error is hidden",
			fetcher:  &fakeFetcher{err: errors.New("secret internals")},
			path:     "/latest-details",
			wantMsg:  "internal server error",
			wantType: apperr.ServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewBlockHandler(tt.fetcher, processor.New(discardLogger()), discardLogger())
			rec := get(newEngine(h), tt.path)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantMsg, resp.Error.Message)
			assert.Equal(t, tt.wantType, resp.Error.Type)
		})
	}
}

func TestGetLatestDetails(t *testing.T) {
	fetcher := &fakeFetcher{raw: tron.RawBlock(`{"blockID":"0x01","block_header":{"raw_data":{"number":100,"timestamp":1700000000000,"witness_address":"TAddr","size":500,"version":30}},
		"transactions":[{"txID":"tx1","raw_data":{"contract":[{"type":"TransferContract","parameter":{"value":{"owner_address":"A","to_address":"B","amount":1000}}}],"timestamp":1700000000001}}],"confirmed":5}`)}
	h := NewBlockHandler(fetcher, processor.New(discardLogger()), discardLogger())

	rec := get(newEngine(h), "/latest-details")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{
		"blockNumber":100,"blockHash":"0x01","timestamp":1700000000000,"producerAddress":"TAddr","transactionCount":1,
		"transactions":[{"txId":"tx1","fromAddress":"A","toAddress":"B","amount":1000,"timestamp":1700000000001,"contractType":"TransferContract"}],
		"blockSize":500,"confirmations":5,"version":30}}`, rec.Body.String())
}

func TestGetLatestDetails_SkipsValidation(t *testing.T) {
	fetcher := &fakeFetcher{raw: tron.RawBlock(`{"block_header":{"raw_data":{}}}`)}
	h := NewBlockHandler(fetcher, processor.New(discardLogger()), discardLogger())

	rec := get(newEngine(h), "/latest-details")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"transactions":[]`)
}
