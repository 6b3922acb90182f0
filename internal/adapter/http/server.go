// Package http exposes the planner over a JSON HTTP API, plus the usual
// health, readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/preparedness-planner-service/internal/domain"
	"github.com/couchcryptid/preparedness-planner-service/internal/planner"
)

// Server wraps the planner session behind HTTP routes.
type Server struct {
	httpServer *http.Server
	session    *planner.Session
	logger     *slog.Logger
}

// NewServer creates the HTTP server with all planner and operational routes.
func NewServer(addr string, session *planner.Session, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		session: session,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/supplies", s.handleSupplies)
	mux.HandleFunc("POST /api/supplies/toggle", s.handleSupplyToggle)
	mux.HandleFunc("POST /api/supplies/reset", s.handleSupplyReset)
	mux.HandleFunc("GET /api/supplies/export", s.handleSupplyExport)

	mux.HandleFunc("GET /api/contacts", s.handleContactList)
	mux.HandleFunc("POST /api/contacts", s.handleContactAdd)
	mux.HandleFunc("DELETE /api/contacts/{id}", s.handleContactRemove)
	mux.HandleFunc("GET /api/emergency-numbers", s.handleEmergencyNumbers)

	mux.HandleFunc("POST /api/scenarios/generate", s.handleScenarioGenerate)
	mux.HandleFunc("POST /api/scenarios/custom", s.handleScenarioCustom)
	mux.HandleFunc("POST /api/scenarios/escalate", s.handleScenarioEscalate)
	mux.HandleFunc("GET /api/scenarios/current", s.handleScenarioCurrent)
	mux.HandleFunc("GET /api/scenarios/templates", s.handleScenarioTemplates)
	mux.HandleFunc("GET /api/scenarios/daily", s.handleScenarioDaily)

	mux.HandleFunc("POST /api/location/analyze", s.handleLocationAnalyze)
	mux.HandleFunc("GET /api/location/route", s.handleEvacuationRoute)

	mux.HandleFunc("GET /api/guides", s.handleGuideList)
	mux.HandleFunc("GET /api/guides/{id}", s.handleGuide)

	mux.HandleFunc("GET /api/preferences", s.handlePreferencesGet)
	mux.HandleFunc("PUT /api/preferences", s.handlePreferencesPut)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.session.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// --- supplies ---

func (s *Server) handleSupplies(w http.ResponseWriter, r *http.Request) {
	people := intQuery(r, "people")
	days := intQuery(r, "days")
	writeJSON(w, http.StatusOK, s.session.Supplies(people, days))
}

func (s *Server) handleSupplyToggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
		Name     string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	snapshot, warning, err := s.session.ToggleSupply(r.Context(), domain.Category(req.Category), req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, withWarning(snapshot, warning))
}

func (s *Server) handleSupplyReset(w http.ResponseWriter, r *http.Request) {
	snapshot, warning := s.session.ResetSupplies(r.Context())
	writeJSON(w, http.StatusOK, withWarning(snapshot, warning))
}

func (s *Server) handleSupplyExport(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.session.ExportSupplies())) //nolint:errcheck // best-effort text response
}

// --- contacts ---

func (s *Server) handleContactList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"contacts": s.session.Contacts()})
}

func (s *Server) handleContactAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		Phone     string `json:"phone"`
		Relation  string `json:"relation"`
		IsPrimary bool   `json:"isPrimary"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	contact, warning, err := s.session.AddContact(r.Context(), req.Name, req.Phone, req.Relation, req.IsPrimary)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, withWarning(contact, warning))
}

func (s *Server) handleContactRemove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid contact id"})
		return
	}

	removed, warning := s.session.RemoveContact(r.Context(), id)
	writeJSON(w, http.StatusOK, withWarning(map[string]any{"removed": removed}, warning))
}

func (s *Server) handleEmergencyNumbers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.EmergencyNumbers)
}

// --- scenarios ---

func (s *Server) handleScenarioGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Difficulty string `json:"difficulty"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.session.GenerateScenario(r.Context(), req.Difficulty)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleScenarioCustom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.session.CustomScenario(r.Context(), req.Description)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleScenarioEscalate(w http.ResponseWriter, r *http.Request) {
	result, err := s.session.Escalate(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleScenarioCurrent(w http.ResponseWriter, _ *http.Request) {
	result, err := s.session.Current()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleScenarioTemplates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.Templates)
}

func (s *Server) handleScenarioDaily(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"doom":    domain.DailyDoom(),
		"outlook": domain.DailyOutlook(),
	})
}

// --- location ---

func (s *Server) handleLocationAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, warning, err := s.session.AnalyzeLocation(r.Context(), req.Query)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, withWarning(result, warning))
}

func (s *Server) handleEvacuationRoute(w http.ResponseWriter, r *http.Request) {
	route, err := domain.EvacuationRoute(r.URL.Query().Get("direction"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"route": route})
}

// --- guides ---

func (s *Server) handleGuideList(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		writeJSON(w, http.StatusOK, map[string]any{"guides": domain.SearchGuides(q)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guides": domain.Guides()})
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.GuideByID(r.PathValue("id")))
}

// --- preferences ---

func (s *Server) handlePreferencesGet(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Preferences())
}

func (s *Server) handlePreferencesPut(w http.ResponseWriter, r *http.Request) {
	var prefs planner.Preferences
	if !decodeBody(w, r, &prefs) {
		return
	}
	warning := s.session.SetPreferences(r.Context(), prefs)
	writeJSON(w, http.StatusOK, withWarning(prefs, warning))
}

// --- plumbing ---

// writeError maps domain and session errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Error()})
	case errors.Is(err, planner.ErrNoScenario):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, planner.ErrSuperseded):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		s.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// intQuery parses an integer query parameter. Absent means "keep the current
// value" (0); present but unparseable or non-positive asks the session to
// fall back to the catalog default (-1).
func intQuery(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return -1
	}
	return n
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

// withWarning attaches a persistence warning to a successful response body.
func withWarning(v any, warning string) map[string]any {
	out := map[string]any{"result": v}
	if warning != "" {
		out["warning"] = warning
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort JSON response
}
