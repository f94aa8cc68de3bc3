package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/glint-dev/glint/pkg/element"
	"github.com/glint-dev/glint/pkg/media"
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address (default ":8080").
	Addr string

	// ReadTimeout bounds a single WebSocket read.
	ReadTimeout time.Duration

	// WriteTimeout bounds a single WebSocket write.
	WriteTimeout time.Duration

	// HeartbeatInterval is how often the server pings the client.
	HeartbeatInterval time.Duration

	// IdleTimeout is how long an inactive session survives before the
	// sweeper closes it.
	IdleTimeout time.Duration

	// QueueDepth is the forward queue capacity per session.
	QueueDepth int

	// MaxSessions caps concurrent sessions (0 = unlimited).
	MaxSessions int

	// Logger is the structured logger. Defaults to slog.Default().
	Logger *slog.Logger

	// MediaStore serves element assets under /media. Nil disables the
	// media routes.
	MediaStore media.Store

	// Interceptors are applied to every session's DeltaGenerator.
	Interceptors []element.Interceptor

	// CheckOrigin validates WebSocket upgrade origins. Nil allows
	// same-origin requests only (the gorilla default).
	CheckOrigin func(r *http.Request) bool
}

// Option configures the server.
type Option func(*Config)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(c *Config) { c.Addr = addr }
}

// WithReadTimeout sets the WebSocket read timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Config) { c.ReadTimeout = d }
}

// WithWriteTimeout sets the WebSocket write timeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) { c.WriteTimeout = d }
}

// WithHeartbeatInterval sets the server ping interval.
func WithHeartbeatInterval(d time.Duration) Option {
	return func(c *Config) { c.HeartbeatInterval = d }
}

// WithIdleTimeout sets how long idle sessions are kept.
func WithIdleTimeout(d time.Duration) Option {
	return func(c *Config) { c.IdleTimeout = d }
}

// WithQueueDepth sets the per-session forward queue capacity.
func WithQueueDepth(n int) Option {
	return func(c *Config) { c.QueueDepth = n }
}

// WithMaxSessions caps concurrent sessions.
func WithMaxSessions(n int) Option {
	return func(c *Config) { c.MaxSessions = n }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithMediaStore enables the /media routes backed by the given store.
func WithMediaStore(store media.Store) Option {
	return func(c *Config) { c.MediaStore = store }
}

// WithElementInterceptors applies interceptors (usage metrics, tracing) to
// every session's DeltaGenerator.
func WithElementInterceptors(ics ...element.Interceptor) Option {
	return func(c *Config) { c.Interceptors = append(c.Interceptors, ics...) }
}

// WithCheckOrigin sets the WebSocket origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(c *Config) { c.CheckOrigin = fn }
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:              ":8080",
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		IdleTimeout:       5 * time.Minute,
		QueueDepth:        256,
		Logger:            slog.Default(),
	}
}
