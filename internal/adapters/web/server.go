package web

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/corey/foilview/internal/adapters/render"
	"github.com/corey/foilview/internal/domain/airfoil"
	"github.com/corey/foilview/internal/ports"
)

// Catalog lists and loads the airfoils the server exposes. Load reports
// fs.ErrNotExist for unknown names.
type Catalog interface {
	Names() ([]string, error)
	Load(name string) (airfoil.Airfoil, error)
}

// Server serves the preview page, JSON API and PNG plots over HTTP.
type Server struct {
	catalog  Catalog
	renderer ports.Renderer
	figure   ports.Figure
	listener net.Listener
	httpSrv  *http.Server
	port     int
	started  time.Time
	stopOnce sync.Once
	log      *slog.Logger

	portFilePath string // .foilview/run/http.port
}

// HealthResult is the body of GET /api/health.
type HealthResult struct {
	Status   string `json:"status"`
	Airfoils int    `json:"airfoils"`
	Uptime   string `json:"uptime"`
}

// ListResult is the body of GET /api/airfoils.
type ListResult struct {
	Airfoils []string `json:"airfoils"`
	Count    int      `json:"count"`
}

// ErrorResult is the body of every error response.
type ErrorResult struct {
	Error string `json:"error"`
	Line  int    `json:"line,omitempty"`
}

// NewServer creates an HTTP server for the preview page.
// The portFilePath is where the bound port is written for discovery.
// A nil logger discards output.
func NewServer(catalog Catalog, renderer ports.Renderer, fig ports.Figure, portFilePath string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{
		catalog:      catalog,
		renderer:     renderer,
		figure:       fig,
		portFilePath: portFilePath,
		started:      time.Now(),
		log:          log,
	}
}

// DefaultPort computes a directory-specific port: 19000 + (hash(abs_path) % 1000).
func DefaultPort(dir string) int {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	h := sha256.Sum256([]byte(abs))
	// Use first 4 bytes as uint32
	n := uint32(h[0])<<24 | uint32(h[1])<<16 | uint32(h[2])<<8 | uint32(h[3])
	return 19000 + int(n%1000)
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /", http.FileServerFS(staticRoot()))
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/airfoils", s.handleList)
	mux.HandleFunc("GET /api/airfoils/{name...}", s.handleAirfoil)
	mux.HandleFunc("GET /plot/{name...}", s.handlePlot)
	return mux
}

// Start begins listening on the preferred port (0 picks a free one) and
// writes the bound port to the port file.
func (s *Server) Start(preferredPort int) error {
	addr := fmt.Sprintf("127.0.0.1:%d", preferredPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.port = ln.Addr().(*net.TCPAddr).Port
	s.started = time.Now()

	s.httpSrv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if s.portFilePath != "" {
		if err := os.WriteFile(s.portFilePath, []byte(strconv.Itoa(s.port)), 0644); err != nil {
			ln.Close()
			return fmt.Errorf("write port file: %w", err)
		}
	}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("http server stopped", "port", s.port, "err", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the HTTP server. Idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.httpSrv.Shutdown(ctx); err != nil {
				s.log.Warn("http shutdown", "err", err)
			}
		}
		if s.portFilePath != "" {
			if err := os.Remove(s.portFilePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
				s.log.Warn("remove port file", "path", s.portFilePath, "err", err)
			}
		}
	})
}

// Port returns the bound port number.
func (s *Server) Port() int {
	return s.port
}

// URL returns the preview page URL.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	names, err := s.catalog.Names()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, HealthResult{
		Status:   "ok",
		Airfoils: len(names),
		Uptime:   time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.catalog.Names()
	if err != nil {
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, ListResult{Airfoils: names, Count: len(names)})
}

func (s *Server) handleAirfoil(w http.ResponseWriter, r *http.Request) {
	a, err := s.catalog.Load(r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// handlePlot renders a PNG. Optional query parameters: dpi overrides the
// figure resolution, thumb bounds the longer side in pixels.
func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	fig := s.figure
	q := r.URL.Query()
	if v := q.Get("dpi"); v != "" {
		dpi, err := strconv.Atoi(v)
		if err != nil || dpi <= 0 {
			writeJSON(w, http.StatusBadRequest, ErrorResult{Error: fmt.Sprintf("invalid dpi %q", v)})
			return
		}
		fig.DPI = dpi
	}
	thumb := 0
	if v := q.Get("thumb"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, ErrorResult{Error: fmt.Sprintf("invalid thumb %q", v)})
			return
		}
		thumb = n
	}

	a, err := s.catalog.Load(r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	img, err := s.renderer.Render(a, fig)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResult{Error: err.Error()})
		return
	}
	img = render.Thumbnail(img, thumb)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	if err := render.EncodePNG(w, img); err != nil {
		s.log.Warn("write plot", "name", r.PathValue("name"), "err", err)
	}
}

// writeError maps err to a status: 404 for unknown airfoils, 422 for parse
// errors, 500 otherwise.
func writeError(w http.ResponseWriter, err error) {
	var pe *airfoil.ParseError
	switch {
	case errors.As(err, &pe):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResult{Error: pe.Error(), Line: pe.Line})
	case errors.Is(err, fs.ErrNotExist):
		writeJSON(w, http.StatusNotFound, ErrorResult{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResult{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
