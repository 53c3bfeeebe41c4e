package http

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/handbook"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server is forcibly stopped.
const ShutdownTimeout = 5 * time.Second

// maxFormBytes bounds POST bodies; forms here carry a few short fields.
const maxFormBytes = 16 << 10

// DefaultAppName is shown in the page title and sidebar heading.
const DefaultAppName = "Handbook"

// Server serves the handbook web interface.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router
	tmpl   *template.Template
	policy *bluemonday.Policy

	// Addr is the bind address. Set before calling Open().
	Addr string

	// AppName is shown in the page title. Defaults to DefaultAppName.
	AppName string

	Logger *slog.Logger

	// Services used by the HTTP handlers.
	CatalogService handbook.CatalogService
	SessionService handbook.SessionService
	ReportService  handbook.ReportService
	Renderer       *handbook.Renderer
}

// NewServer returns a new instance of Server with routes registered.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{ReadHeaderTimeout: 10 * time.Second},
		router: chi.NewRouter(),
		tmpl:   template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")),
		policy: bluemonday.UGCPolicy(),
		Logger: slog.Default(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	static, _ := fs.Sub(staticFS, "static")
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	s.router.Get("/healthz", s.handleHealthz)

	s.router.Group(func(r chi.Router) {
		r.Use(s.loadSession)
		r.Get("/", s.handleIndex)
		r.Post("/select", s.handleSelect)
		r.Post("/report", s.handleReport)
	})

	s.server.Handler = s.router
	return s
}

// Handler returns the root handler. Useful for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// URL returns the address the server listens on once opened.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Open binds the listener. Call Serve to start handling requests.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	return nil
}

// Serve handles requests until Close is called.
func (s *Server) Serve() error {
	if s.ln == nil {
		return errors.New("server not open")
	}
	if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) appName() string {
	if s.AppName == "" {
		return DefaultAppName
	}
	return s.AppName
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// logRequests logs one line per request once the response is written.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		begin := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(begin),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
