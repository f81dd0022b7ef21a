package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	domain "betterfeedback/internal/domain/feedback"
	"betterfeedback/internal/middleware"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Analyzer is the slice of the application service the router needs.
type Analyzer interface {
	Run(ctx context.Context, text string) domain.AnalyzeResponse
	History(ctx context.Context, limit int) ([]*domain.AnalysisRun, error)
}

type Router struct {
	svc Analyzer
	log *zap.Logger
}

func NewRouter(svc Analyzer, allowedOrigins []string, log *zap.Logger) http.Handler {
	r := &Router{svc: svc, log: log}
	mux := chi.NewRouter()
	mux.Use(middleware.RequestLogger(log))

	// Registered before the /api subrouter so the mounted routes inherit them.
	mux.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	})

	mux.Route("/api", func(rt chi.Router) {
		rt.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
		rt.Get("/health", r.wrap(r.handleHealth))
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/history", r.wrap(r.handleHistory))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			r.log.Error("handler error", zap.String("path", req.URL.Path), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
	}
}

// GET /api/health
func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /api/analyze
// Body: {"text": "..."}
// Always answers with the AnalyzeResponse shape. Adapter failures come back
// as 200 with error set; only a malformed body is a 400.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Text == "" {
		resp := domain.ResponseFromError("Invalid request: 'text' field is required and must be non-empty.")
		return writeJSON(w, http.StatusBadRequest, resp)
	}

	resp := r.svc.Run(req.Context(), body.Text)
	return writeJSON(w, http.StatusOK, resp)
}

// GET /api/history?limit=N
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	limit := defaultHistoryLimit
	if v := req.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	runs, err := r.svc.History(req.Context(), limit)
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []*domain.AnalysisRun{}
	}
	return writeJSON(w, http.StatusOK, runs)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
