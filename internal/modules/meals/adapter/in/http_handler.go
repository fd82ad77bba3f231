package in

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"mealsync/internal/modules/meals/dto"
	mealsin "mealsync/internal/modules/meals/port/in"
)

// HTTPHandler serves the static site and an endpoint that refreshes the
// menu on demand.
type HTTPHandler struct {
	usecase mealsin.Usecase
	siteDir string
	private map[string]struct{}
	logger  *zap.Logger

	// mu keeps one pipeline run at a time so the output files have a
	// single writer.
	mu sync.Mutex
}

// NewHTTPHandler serves siteDir. Dot-files and the paths in private are
// answered with 404.
func NewHTTPHandler(usecase mealsin.Usecase, siteDir string, private []string, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &HTTPHandler{usecase: usecase, siteDir: siteDir, private: map[string]struct{}{}, logger: logger}
	for _, path := range private {
		h.private[absPath(path)] = struct{}{}
	}
	return h
}

func (h *HTTPHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)
	r.Use(cors)

	r.Get("/api/meals", h.meals)
	r.Post("/api/meals", h.meals)
	r.Get("/*", h.static)
	return r
}

func (h *HTTPHandler) meals(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	out, err := h.usecase.Sync(r.Context(), dto.SyncInput{Date: r.URL.Query().Get("date")})
	h.mu.Unlock()
	if err != nil {
		h.logger.Error("meals refresh failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to fetch meals from eAsistent",
			"message": err.Error(),
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Payload)
}

func (h *HTTPHandler) static(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	if name == "" {
		name = "index.html"
	}
	clean := filepath.Clean("/" + name)
	path := filepath.Join(h.siteDir, filepath.FromSlash(clean))
	if h.isPrivate(clean, path) {
		h.logger.Warn("refused private file", zap.String("path", r.URL.Path))
		notFound(w)
		return
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		if err == nil || os.IsNotExist(err) {
			notFound(w)
			return
		}
		http.Error(w, "Server Error", http.StatusInternalServerError)
		return
	}
	http.ServeFile(w, r, path)
}

func (h *HTTPHandler) isPrivate(clean, path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(clean), "/") {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	_, ok := h.private[absPath(path)]
	return ok
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("<h1>404 Not Found</h1>"))
}

func (h *HTTPHandler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Info("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(started)),
		)
	})
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
