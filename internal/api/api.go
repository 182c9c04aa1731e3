// Package api serves planner generation over HTTP.
//
// # Routes
//
//	POST /v1/planners   generate one artifact from a JSON configuration
//	GET  /v1/presets    list device, density and color presets
//	GET  /healthz       liveness and build information
//
// A generation request carries the configuration in the same shape as the
// TOML file, encoded as JSON, plus the output format:
//
//	{"config": {"device": "remarkable2", "start": "2025-01-01", "end": "2025-12-31"},
//	 "format": "pdf"}
//
// The response body is the artifact itself. X-Run-ID identifies the run in
// logs; X-Cache reports whether the artifact came from the cache. Errors are
// JSON objects with a code and a message; validation failures answer 400.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/planwright/pkg/buildinfo"
	"github.com/matzehuels/planwright/pkg/config"
	"github.com/matzehuels/planwright/pkg/errors"
	"github.com/matzehuels/planwright/pkg/observability"
	"github.com/matzehuels/planwright/pkg/pipeline"
	"github.com/matzehuels/planwright/pkg/profile"
)

const (
	// maxBodySize bounds the request body of a generation request.
	maxBodySize = 1 << 20
	// maxSpanYears bounds the date range one request may plan.
	maxSpanYears = 5
)

// Server answers API requests with a shared pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server. A nil logger means log.Default().
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// Inline middleware runs after routing, so the pattern is known.
	r.Group(func(r chi.Router) {
		r.Use(s.observe)
		r.Get("/healthz", s.handleHealth)
		r.Get("/v1/presets", s.handlePresets)
		r.Post("/v1/planners", s.handleGenerate)
	})
	return r
}

// GenerateRequest is the body of POST /v1/planners.
type GenerateRequest struct {
	Config  json.RawMessage `json:"config"`
	Format  string          `json:"format,omitempty"`
	TopLeft bool            `json:"top_left,omitempty"`
	Refresh bool            `json:"refresh,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode request"))
		return
	}
	if req.Format == "" {
		req.Format = pipeline.FormatPDF
	}
	if err := pipeline.ValidateFormat(req.Format); err != nil {
		s.writeError(w, err)
		return
	}

	cfg := config.Default()
	if len(req.Config) > 0 {
		var err error
		if cfg, err = config.ParseJSON(req.Config); err != nil {
			s.writeError(w, err)
			return
		}
	}
	if err := checkSpan(cfg); err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Config:  cfg,
		Formats: []string{req.Format},
		TopLeft: req.TopLeft,
		Refresh: req.Refresh,
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	data := res.Artifacts[req.Format]
	h := w.Header()
	h.Set("Content-Type", pipeline.ContentTypes[req.Format])
	h.Set("Content-Length", strconv.Itoa(len(data)))
	h.Set("X-Run-ID", res.RunID)
	h.Set("X-Page-Count", strconv.Itoa(res.Stats.Pages))
	if res.CacheInfo.Hit {
		h.Set("X-Cache", "hit")
	} else {
		h.Set("X-Cache", "miss")
	}
	if req.Format == pipeline.FormatPDF {
		h.Set("Content-Disposition", `attachment; filename="`+pipeline.Filename("planner", req.Format)+`"`)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("write response", "run", res.RunID, "err", err)
	}
}

// checkSpan rejects ranges longer than maxSpanYears. A reversed range is
// left to the planner, which renders it empty.
func checkSpan(cfg config.Config) error {
	limit := cfg.Start.Time().AddDate(maxSpanYears, 0, 0)
	if cfg.End.Time().After(limit) {
		return errors.New(errors.ErrCodeInvalidDate, "date range %s to %s exceeds %d years", cfg.Start, cfg.End, maxSpanYears)
	}
	return nil
}

// Presets lists the built-in presets.
type Presets struct {
	Devices   []profile.Device      `json:"devices"`
	Densities []profile.Density     `json:"densities"`
	Colors    []profile.ColorScheme `json:"colors"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	var p Presets
	for _, name := range profile.DeviceNames() {
		p.Devices = append(p.Devices, profile.Devices[name])
	}
	for _, name := range profile.DensityNames() {
		p.Densities = append(p.Densities, profile.Densities[name])
	}
	for _, name := range profile.ColorSchemeNames() {
		p.Colors = append(p.Colors, profile.ColorSchemes[name])
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", "err", err)
	}
}

// observe reports every request to the HTTP hooks and logs it at debug
// level, keyed by route pattern rather than raw path.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status, "duration", time.Since(start))
	})
}
