package app

import (
	"net/http"
	"net/http/httptest"
	"postaladdr/pkg/client"
	"postaladdr/pkg/config"
	"postaladdr/pkg/logger"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
)

type echoHandler struct{}

func (echoHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/echo", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	router.GET("/api/v1/panic", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		panic("boom")
	})
}

func newTestApplication() *Application {
	cfg := &config.Config{
		Port:              "8080",
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    time.Second,
		IdempotencyTTL:    time.Minute,
		MaxRequestSize:    64,
		ReadTimeout:       time.Second,
		WriteTimeout:      time.Second,
		IdleTimeout:       time.Second,
		ShutdownTimeout:   time.Second,
		Log:               logger.Discard(),
		Client:            client.NewClient(),
	}
	a := NewApplication(cfg)
	a.SetApp(echoHandler{})
	return a
}

func TestApplication_MiddlewareStack(t *testing.T) {
	a := newTestApplication()
	defer a.stopWorkers()
	h := a.Handler()

	send := func(method, path, contentType, body, remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	if rr := send(http.MethodGet, "/health", "", "", "10.0.0.9:1"); rr.Code != http.StatusOK {
		t.Errorf("/health status = %d", rr.Code)
	}
	if rr := send(http.MethodPost, "/api/v1/echo", "text/plain", "{}", "10.0.0.1:1"); rr.Code != http.StatusUnsupportedMediaType {
		t.Errorf("content type status = %d", rr.Code)
	}
	if rr := send(http.MethodPost, "/api/v1/echo", "application/json", strings.Repeat("x", 100), "10.0.0.2:1"); rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("size status = %d", rr.Code)
	}
	if rr := send(http.MethodGet, "/api/v1/panic", "", "", "10.0.0.3:1"); rr.Code != http.StatusInternalServerError {
		t.Errorf("panic status = %d", rr.Code)
	}

	for i := 0; i < 2; i++ {
		if rr := send(http.MethodPost, "/api/v1/echo", "application/json", "{}", "10.0.0.4:1"); rr.Code != http.StatusCreated {
			t.Fatalf("request %d status = %d", i, rr.Code)
		}
	}
	if rr := send(http.MethodPost, "/api/v1/echo", "application/json", "{}", "10.0.0.4:1"); rr.Code != http.StatusTooManyRequests {
		t.Errorf("rate limited status = %d", rr.Code)
	}
	if rr := send(http.MethodGet, "/health", "", "", "10.0.0.4:1"); rr.Code != http.StatusOK {
		t.Errorf("health must bypass the rate limiter, status = %d", rr.Code)
	}
}
