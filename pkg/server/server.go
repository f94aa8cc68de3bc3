package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/glint-dev/glint/pkg/element"
	"github.com/glint-dev/glint/pkg/errs"
	"github.com/glint-dev/glint/pkg/media"
	"github.com/glint-dev/glint/pkg/protocol"
)

// AppFunc is the host script: it receives a fresh DeltaGenerator per
// connection and emits elements through it. Invocations are independent
// and share no mutable state.
type AppFunc func(ctx context.Context, dg *element.DeltaGenerator) error

// Server accepts WebSocket sessions and runs the app function for each.
type Server struct {
	config   *Config
	app      AppFunc
	sessions *Manager
	router   chi.Router
	httpSrv  *http.Server
	upgrader websocket.Upgrader

	sweepDone chan struct{}
}

// New creates a server for the given app function.
func New(app AppFunc, opts ...Option) *Server {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	s := &Server{
		config:   config,
		app:      app,
		sessions: NewManager(config),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		sweepDone: make(chan struct{}),
	}
	s.router = s.routes()
	s.httpSrv = &http.Server{
		Addr:    config.Addr,
		Handler: s.router,
	}
	return s
}

// Router returns the server's HTTP handler, for mounting under a larger
// application or for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Sessions returns the session manager.
func (s *Server) Sessions() *Manager {
	return s.sessions
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/ws", s.handleWS)

	if s.config.MediaStore != nil {
		r.Post("/media", s.handleMediaUpload)
		r.Get("/media/{id}", s.handleMediaGet)
	}

	return r
}

// ListenAndServe starts the HTTP server and the idle-session sweeper.
func (s *Server) ListenAndServe() error {
	go s.sweepLoop()
	s.config.Logger.Info("listening", "addr", s.config.Addr)
	return s.httpSrv.ListenAndServe()
}

// Shutdown closes all sessions and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.sweepDone)
	s.sessions.CloseAll()
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) sweepLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.sessions.Sweep(s.config.IdleTimeout); n > 0 {
				s.config.Logger.Info("swept idle sessions", "count", n)
			}
		case <-s.sweepDone:
			return
		}
	}
}

// handleWS upgrades the connection, creates a session, and runs the app.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.config.Logger.Error("upgrade failed", "error", err)
		return
	}

	session, err := s.sessions.Create(conn)
	if err != nil {
		s.config.Logger.Warn("session rejected", "error", err)
		conn.Close()
		return
	}
	session.Start()

	// The request context dies when this handler returns; the app runs
	// for the life of the session instead.
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-session.done
		cancel()
	}()

	dg := element.NewDeltaGenerator(session,
		element.WithContext(ctx),
		element.WithInterceptors(s.config.Interceptors...))

	go s.runApp(ctx, session, dg)
}

// runApp executes the app function for one session. Validation errors are
// reported to the client as non-fatal InvalidArgument messages; anything
// else is an internal error.
func (s *Server) runApp(ctx context.Context, session *Session, dg *element.DeltaGenerator) {
	defer func() {
		if r := recover(); r != nil {
			session.logger.Error("app panic", "panic", r)
			session.sendError(protocol.NewFatalError(
				protocol.ErrServerError, "internal error"))
		}
	}()

	if err := s.app(ctx, dg); err != nil {
		if errs.IsInvalidArgument(err) {
			session.logger.Warn("app validation error", "error", err)
			session.sendError(protocol.NewError(
				protocol.ErrInvalidArgument, err.Error()))
			return
		}
		session.logger.Error("app error", "error", err)
		session.sendError(protocol.NewFatalError(
			protocol.ErrServerError, "internal error"))
	}
}

// handleMediaUpload accepts a multipart upload and stores it as an asset.
func (s *Server) handleMediaUpload(w http.ResponseWriter, r *http.Request) {
	const maxUpload = 32 << 20

	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "no file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	id, err := s.config.MediaStore.Save(r.Context(),
		header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		if errors.Is(err, media.ErrTooLarge) {
			http.Error(w, "asset too large", http.StatusRequestEntityTooLarge)
			return
		}
		s.config.Logger.Error("media save failed", "error", err)
		http.Error(w, "upload failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// handleMediaGet serves a stored asset.
func (s *Server) handleMediaGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	asset, err := s.config.MediaStore.Open(r.Context(), id)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		s.config.Logger.Error("media open failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer asset.Close()

	if asset.ContentType != "" {
		w.Header().Set("Content-Type", asset.ContentType)
	}
	io.Copy(w, asset.Reader)
}
