package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planwright/pkg/cache"
	"github.com/matzehuels/planwright/pkg/config"
	"github.com/matzehuels/planwright/pkg/errors"
	"github.com/matzehuels/planwright/pkg/observability"
	"github.com/matzehuels/planwright/pkg/pipeline"
	"github.com/matzehuels/planwright/pkg/render/annot"
)

const january = `{"config": {"start": "2025-01-01", "end": "2025-01-31"}%s}`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := httptest.NewServer(New(pipeline.NewRunner(fc, nil, logger), logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/v1/planners", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestGeneratePDF(t *testing.T) {
	srv := newServer(t)

	resp := post(t, srv, strings.Replace(january, "%s", "", 1))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if resp.Header.Get("X-Run-ID") == "" {
		t.Error("missing X-Run-ID")
	}
	if got := resp.Header.Get("X-Cache"); got != "miss" {
		t.Errorf("X-Cache = %q, want miss", got)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(body, []byte("%PDF-")) {
		t.Error("body is not a PDF")
	}

	again := post(t, srv, strings.Replace(january, "%s", "", 1))
	if got := again.Header.Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
	if again.Header.Get("X-Run-ID") == resp.Header.Get("X-Run-ID") {
		t.Error("runs share an ID")
	}
}

func TestGenerateAnnotations(t *testing.T) {
	srv := newServer(t)

	resp := post(t, srv, strings.Replace(january, "%s", `, "format": "json", "top_left": true`, 1))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	d, err := annot.Parse(body)
	if err != nil {
		t.Fatalf("annot.Parse() error = %v", err)
	}
	if d.Origin != annot.OriginTopLeft || d.Links == 0 {
		t.Errorf("origin = %s, links = %d", d.Origin, d.Links)
	}
	if got := resp.Header.Get("X-Page-Count"); got == "" || got == "0" {
		t.Errorf("X-Page-Count = %q", got)
	}
}

func TestGenerateErrors(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed", `{"config":`, http.StatusBadRequest, "INVALID_CONFIG"},
		{"unknown key", `{"config": {"glow": true}}`, http.StatusBadRequest, "INVALID_CONFIG"},
		{"bad device", `{"config": {"device": "etch-a-sketch"}}`, http.StatusBadRequest, "INVALID_DEVICE"},
		{"bad format", `{"format": "png"}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"span too long", `{"config": {"start": "1900-01-01", "end": "9999-12-31"}}`, http.StatusBadRequest, "INVALID_DATE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var e errorBody
			if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
				t.Fatal(err)
			}
			if e.Code != tt.code || e.Message == "" {
				t.Errorf("error = %+v, want code %s", e, tt.code)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/v1/presets")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var p Presets
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if len(p.Devices) == 0 || len(p.Densities) == 0 || len(p.Colors) == 0 {
		t.Errorf("presets = %+v", p)
	}
	for i := 1; i < len(p.Devices); i++ {
		if p.Devices[i-1].Name > p.Devices[i].Name {
			t.Errorf("devices not sorted: %s before %s", p.Devices[i-1].Name, p.Devices[i].Name)
		}
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingHooks) OnRequest(_ context.Context, _, route string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = append(h.status, status)
}

func TestHealthAndHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	h := New(pipeline.NewRunner(nil, nil, nil), log.NewWithOptions(io.Discard, log.Options{})).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, want ok", body.Status)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/planners", strings.NewReader(`{"format": "png"}`)))

	wantRoutes := []string{"/healthz", "/v1/planners"}
	wantStatus := []int{http.StatusOK, http.StatusBadRequest}
	if len(hooks.routes) != 2 || len(hooks.status) != 2 {
		t.Fatalf("hooks saw routes %v status %v", hooks.routes, hooks.status)
	}
	for i := range wantRoutes {
		if hooks.routes[i] != wantRoutes[i] || hooks.status[i] != wantStatus[i] {
			t.Errorf("hook %d = %s %d, want %s %d", i, hooks.routes[i], hooks.status[i], wantRoutes[i], wantStatus[i])
		}
	}
}

func TestCheckSpan(t *testing.T) {
	tests := []struct {
		start, end string
		wantErr    bool
	}{
		{"2025-01-01", "2025-12-31", false},
		{"2025-01-01", "2030-01-01", false},
		{"2025-01-01", "2030-01-02", true},
		{"2025-02-01", "2025-01-01", false},
	}
	for _, tt := range tests {
		cfg := config.Default()
		cfg.Start = config.MustDate(tt.start)
		cfg.End = config.MustDate(tt.end)
		err := checkSpan(cfg)
		if (err != nil) != tt.wantErr {
			t.Errorf("checkSpan(%s, %s) error = %v, wantErr %v", tt.start, tt.end, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidDate) {
			t.Errorf("checkSpan(%s, %s) error = %v, want INVALID_DATE", tt.start, tt.end, err)
		}
	}
}
