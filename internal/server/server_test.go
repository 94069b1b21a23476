package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/telebot/internal/bot/handlers"
	"github.com/edgard/telebot/internal/config"
	"github.com/edgard/telebot/internal/logger"
	"github.com/edgard/telebot/internal/server"
	"github.com/edgard/telebot/internal/testutil"
)

const validUpdate = `{"update_id":7,"message":{"message_id":1,"date":0,"chat":{"id":-100,"type":"group"},"from":{"id":42,"is_bot":false,"first_name":"Alice"},"text":"/ping"}}`

type fakeDispatcher struct {
	mu      sync.Mutex
	err     error
	panic   bool
	updates []*models.Update
}

func (f *fakeDispatcher) Dispatch(_ context.Context, u *models.Update) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panic {
		panic("dispatcher exploded")
	}
	f.updates = append(f.updates, u)
	return f.err
}

func (f *fakeDispatcher) received() []*models.Update {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.Update(nil), f.updates...)
}

func newServer(t *testing.T, d server.Dispatcher, mutate ...func(*config.Config)) http.Handler {
	t.Helper()
	cfg := testutil.Config()
	cfg.Transport.UseWebhook = true
	cfg.Transport.WebhookURL = "https://example.com"
	for _, m := range mutate {
		m(cfg)
	}
	return server.New(cfg, d, logger.Discard()).Handler()
}

func do(h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func webhookPath() string { return "/bot" + testutil.Token }

func TestHealth(t *testing.T) {
	t.Parallel()

	rec := do(newServer(t, &fakeDispatcher{}), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
		Mode      string `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "webhook", body.Mode)

	ts, err := time.Parse(time.RFC3339, body.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
	assert.True(t, strings.HasSuffix(body.Timestamp, "Z"))
}

func TestIndex_RedactsToken(t *testing.T) {
	t.Parallel()

	rec := do(newServer(t, &fakeDispatcher{}), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), testutil.Token)

	var body struct {
		Message   string            `json:"message"`
		Status    string            `json:"status"`
		Endpoints map[string]string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "running", body.Status)
	assert.Equal(t, "/health", body.Endpoints["health"])
	assert.Equal(t, "/bot<redacted>", body.Endpoints["webhook"])
}

func TestWebhook(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		dispErr  error
		wantCode int
		wantBody string
	}{
		{name: "valid update", method: http.MethodPost, path: webhookPath(), body: validUpdate, wantCode: http.StatusOK, wantBody: "OK"},
		{name: "empty update object", method: http.MethodPost, path: webhookPath(), body: `{}`, wantCode: http.StatusOK, wantBody: "OK"},
		{name: "invalid json", method: http.MethodPost, path: webhookPath(), body: `{"update_id":`, wantCode: http.StatusInternalServerError},
		{name: "dispatch failure", method: http.MethodPost, path: webhookPath(), body: validUpdate, dispErr: handlers.ErrHandlerPanic, wantCode: http.StatusInternalServerError},
		{name: "wrong token", method: http.MethodPost, path: "/botwrong", body: validUpdate, wantCode: http.StatusNotFound},
		{name: "unknown path", method: http.MethodGet, path: "/nope", wantCode: http.StatusNotFound},
		{name: "get on webhook", method: http.MethodGet, path: webhookPath(), wantCode: http.StatusNotFound},
		{name: "post on health", method: http.MethodPost, path: "/health", body: "{}", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := do(newServer(t, &fakeDispatcher{err: tt.dispErr}), tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantCode == http.StatusNotFound {
				assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
			}
		})
	}
}

func TestWebhook_PassesDecodedUpdate(t *testing.T) {
	t.Parallel()

	d := &fakeDispatcher{}
	rec := do(newServer(t, d), http.MethodPost, webhookPath(), validUpdate)
	require.Equal(t, http.StatusOK, rec.Code)

	got := d.received()
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].ID)
	require.NotNil(t, got[0].Message)
	assert.Equal(t, "/ping", got[0].Message.Text)
}

func TestWebhook_PanicBecomesJSON500(t *testing.T) {
	t.Parallel()

	rec := do(newServer(t, &fakeDispatcher{panic: true}), http.MethodPost, webhookPath(), validUpdate)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
}

func TestWebhook_Secret(t *testing.T) {
	t.Parallel()

	h := newServer(t, &fakeDispatcher{}, func(c *config.Config) { c.Transport.WebhookSecret = "s3cret" })

	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodPost, webhookPath(), validUpdate).Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodPost, webhookPath(), validUpdate, server.SecretHeader, "nope").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, webhookPath(), validUpdate, server.SecretHeader, "s3cret").Code)
}

func TestWebhook_RateLimit(t *testing.T) {
	t.Parallel()

	h := newServer(t, &fakeDispatcher{}, func(c *config.Config) {
		c.HTTP.RateLimit = 0.001
		c.HTTP.RateBurst = 2
	})

	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, webhookPath(), validUpdate).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, webhookPath(), validUpdate).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(h, http.MethodPost, webhookPath(), validUpdate).Code)
}

func TestWebhook_BodyTooLarge(t *testing.T) {
	t.Parallel()

	h := newServer(t, &fakeDispatcher{}, func(c *config.Config) { c.HTTP.MaxBodyBytes = 1024 })
	body := `{"update_id":1,"message":{"text":"` + strings.Repeat("a", 2048) + `"}}`
	assert.Equal(t, http.StatusRequestEntityTooLarge, do(h, http.MethodPost, webhookPath(), body).Code)
}

func TestWebhook_EndToEnd(t *testing.T) {
	t.Parallel()

	sender := &testutil.FakeSender{}
	cfg := testutil.Config()
	d := handlers.NewDispatcher(handlers.HandlerDeps{Logger: logger.Discard(), Config: cfg, Sender: sender})
	h := server.New(cfg, d, logger.Discard()).Handler()

	rec := do(h, http.MethodPost, webhookPath(), validUpdate)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{config.DefaultMessages.Pong}, sender.Texts())
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := server.New(testutil.Config(), &fakeDispatcher{}, logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServe_ReportsListenerFailure(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	srv := server.New(testutil.Config(), &fakeDispatcher{}, logger.Discard())
	err = srv.Serve(context.Background(), ln)
	require.Error(t, err)
	assert.False(t, errors.Is(err, http.ErrServerClosed))
}
