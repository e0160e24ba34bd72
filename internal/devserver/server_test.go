package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ---- Stubs ----

type recordingProxy struct {
	got  events.APIGatewayProxyRequest
	resp events.APIGatewayProxyResponse
	err  error
}

func (p *recordingProxy) Handle(_ context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	p.got = req
	return p.resp, p.err
}

func okProxy() *recordingProxy {
	return &recordingProxy{resp: events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":     "application/json",
			"X-Correlation-Id": "corr-1",
		},
		Body: `{"role":"assistant","content":"hi"}`,
	}}
}

func newTestServer(t *testing.T, proxy Proxy, opts Options) *gin.Engine {
	t.Helper()
	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = 1 << 10
	}
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	r, err := New(proxy, opts)
	require.NoError(t, err)
	return r
}

// ---- Tests ----

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, Options{MaxBodyBytes: 1})
	require.Error(t, err)

	_, err = New(okProxy(), Options{})
	require.Error(t, err)
}

func TestServer_ForwardsRequest(t *testing.T) {
	proxy := okProxy()
	r := newTestServer(t, proxy, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat?debug=1", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Correlation-Id", "corr-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"role":"assistant","content":"hi"}`, rec.Body.String())
	require.Equal(t, "corr-1", rec.Header().Get("X-Correlation-Id"))
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	require.Equal(t, http.MethodPost, proxy.got.HTTPMethod)
	require.Equal(t, "/api/chat", proxy.got.Path)
	require.Equal(t, `{"message":"hi"}`, proxy.got.Body)
	require.Equal(t, "corr-1", proxy.got.Headers["X-Correlation-Id"])
	require.Equal(t, "1", proxy.got.QueryStringParameters["debug"])
	require.NotEmpty(t, proxy.got.RequestContext.RequestID)
}

func TestServer_UnknownPathStillReachesProxy(t *testing.T) {
	proxy := okProxy()
	proxy.resp = events.APIGatewayProxyResponse{StatusCode: http.StatusNotFound, Body: `{"error":"Not found"}`}
	r := newTestServer(t, proxy, Options{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "/nope", proxy.got.Path)
}

func TestServer_ProxyError(t *testing.T) {
	proxy := &recordingProxy{err: errors.New("boom")}
	r := newTestServer(t, proxy, Options{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{}`)))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.NotContains(t, rec.Body.String(), "boom")
}

func TestServer_BodyTooLarge(t *testing.T) {
	proxy := okProxy()
	r := newTestServer(t, proxy, Options{MaxBodyBytes: 8})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(strings.Repeat("x", 64))))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Empty(t, proxy.got.HTTPMethod)
}

func TestServer_Healthz(t *testing.T) {
	r := newTestServer(t, okProxy(), Options{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "ok", out["status"])
}
