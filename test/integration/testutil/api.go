package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"postaladdr/pkg/model"
)

const readyTimeout = 30 * time.Second

// API calls the address endpoints of a running server.
type API struct {
	base string
	http *http.Client
}

func NewAPI(baseURL string) *API {
	return &API{base: baseURL, http: &http.Client{Timeout: 10 * time.Second}}
}

// Result is a fully read response.
type Result struct {
	Status int
	Header http.Header
	Body   []byte
}

func (a *API) Normalize(t *testing.T, req model.NormalizeRequest) *Result {
	t.Helper()
	return a.do(t, http.MethodPost, "/api/v1/addresses/normalize", req, nil)
}

func (a *API) NormalizeBatch(t *testing.T, items ...model.NormalizeRequest) *Result {
	t.Helper()
	return a.do(t, http.MethodPost, "/api/v1/addresses/normalize/batch", model.BatchNormalizeRequest{Items: items}, nil)
}

// Create stores one address. A non-empty idempotencyKey is sent as the
// Idempotency-Key header.
func (a *API) Create(t *testing.T, req model.CreateAddressRequest, idempotencyKey string) *Result {
	t.Helper()
	var header http.Header
	if idempotencyKey != "" {
		header = http.Header{"Idempotency-Key": {idempotencyKey}}
	}
	return a.do(t, http.MethodPost, "/api/v1/addresses", req, header)
}

func (a *API) CreateBatch(t *testing.T, items ...model.CreateAddressRequest) *Result {
	t.Helper()
	return a.do(t, http.MethodPost, "/api/v1/addresses/batch", model.BatchCreateRequest{Items: items}, nil)
}

func (a *API) Get(t *testing.T, id string) *Result {
	t.Helper()
	return a.do(t, http.MethodGet, "/api/v1/addresses/"+url.PathEscape(id), nil, nil)
}

func (a *API) Delete(t *testing.T, id string) *Result {
	t.Helper()
	return a.do(t, http.MethodDelete, "/api/v1/addresses/"+url.PathEscape(id), nil, nil)
}

func (a *API) List(t *testing.T, filter url.Values) *Result {
	t.Helper()
	path := "/api/v1/addresses"
	if len(filter) > 0 {
		path += "?" + filter.Encode()
	}
	return a.do(t, http.MethodGet, path, nil, nil)
}

func (a *API) do(t *testing.T, method, path string, body any, header http.Header) *Result {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode %s %s: %v", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, a.base+path, reader)
	if err != nil {
		t.Fatalf("build %s %s: %v", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := a.http.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s %s: %v", method, path, err)
	}
	return &Result{Status: resp.StatusCode, Header: resp.Header, Body: raw}
}

// WaitReady polls /ready, which also checks the database.
func (a *API) WaitReady(t *testing.T) {
	t.Helper()

	deadline := time.Now().Add(readyTimeout)
	for time.Now().Before(deadline) {
		resp, err := a.http.Get(a.base + "/ready")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("%s not ready after %s", a.base, readyTimeout)
}

// Expect fails the test unless the response has the given status.
func (r *Result) Expect(t *testing.T, status int) *Result {
	t.Helper()
	if r.Status != status {
		t.Fatalf("status = %d, want %d, body: %s", r.Status, status, r.Body)
	}
	return r
}

func (r *Result) ExpectBodyContains(t *testing.T, substr string) {
	t.Helper()
	if !strings.Contains(string(r.Body), substr) {
		t.Fatalf("body does not mention %q: %s", substr, r.Body)
	}
}

// Data decodes the {"data": ...} envelope of a single-item response.
func Data[T any](t *testing.T, r *Result) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal(r.Body, &env); err != nil {
		t.Fatalf("decode data envelope: %v, body: %s", err, r.Body)
	}
	return env.Data
}

// Page is the list response shape.
type Page[T any] struct {
	Data       []T   `json:"data"`
	TotalCount int64 `json:"total_count"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

func Paged[T any](t *testing.T, r *Result) Page[T] {
	t.Helper()
	var p Page[T]
	if err := json.Unmarshal(r.Body, &p); err != nil {
		t.Fatalf("decode page: %v, body: %s", err, r.Body)
	}
	return p
}
