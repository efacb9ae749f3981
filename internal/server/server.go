// Package server runs the HTTP listener of the serve command with graceful
// shutdown on SIGINT/SIGTERM and catalog reloads on SIGHUP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/errcatalog/internal/config"
	"github.com/dmitrymomot/errcatalog/internal/logger"
)

var (
	// ErrStart indicates that the server failed to start.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)

// ReloadFunc is called on SIGHUP. A failed reload is logged and the server keeps running.
type ReloadFunc func(ctx context.Context) error

type options struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
	reload          []ReloadFunc
	listener        net.Listener
}

// Option configures the server.
type Option func(*options)

// WithAddr sets the address the server listens on.
func WithAddr(addr string) Option {
	return func(o *options) {
		if addr != "" {
			o.addr = addr
		}
	}
}

// WithTimeouts sets the read, write and idle timeouts. Zero values keep net/http defaults.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(o *options) {
		o.readTimeout = read
		o.writeTimeout = write
		o.idleTimeout = idle
	}
}

// WithShutdownTimeout sets the time allowed for graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

// WithLogger supplies the server logger. Default discards logs.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithReload registers a function run on every SIGHUP.
func WithReload(fn ReloadFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.reload = append(o.reload, fn)
		}
	}
}

// WithListener serves on an existing listener instead of listening on the address.
func WithListener(l net.Listener) Option {
	return func(o *options) {
		o.listener = l
	}
}

// Server wraps http.Server with graceful shutdown, reload signals and logging.
type Server struct {
	opts *options
	mu   sync.Mutex
	srv  *http.Server
	once sync.Once
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	o := &options{
		addr:            ":8080",
		shutdownTimeout: 5 * time.Second,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	return &Server{opts: o}
}

// NewFromConfig creates a Server from the HTTP configuration.
func NewFromConfig(cfg config.HTTPConfig, opts ...Option) *Server {
	base := []Option{
		WithAddr(cfg.Addr),
		WithTimeouts(cfg.ReadTimeout, cfg.WriteTimeout, cfg.IdleTimeout),
		WithShutdownTimeout(cfg.ShutdownTimeout),
	}
	return New(append(base, opts...)...)
}

// Run serves handler and blocks until ctx is done, SIGINT or SIGTERM arrives,
// or the listener fails. It returns ErrStart joined with the underlying error
// if the server fails to start.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, errors.New("server already running"))
	}
	srv := &http.Server{
		Addr:         s.opts.addr,
		Handler:      handler,
		ReadTimeout:  s.opts.readTimeout,
		WriteTimeout: s.opts.writeTimeout,
		IdleTimeout:  s.opts.idleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
	s.srv = srv
	s.mu.Unlock()

	log := s.opts.logger.With(logger.Component("http"))

	errCh := make(chan error, 1)
	go func() {
		if s.opts.listener != nil {
			log.Info("HTTP server started", "addr", s.opts.listener.Addr().String())
			errCh <- srv.Serve(s.opts.listener)
			return
		}
		log.Info("HTTP server started", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	hup := make(chan os.Signal, 1)
	if len(s.opts.reload) > 0 {
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)
	}

	var runErr error
loop:
	for {
		select {
		case <-ctx.Done():
			_ = s.Shutdown(context.Background())
			runErr = <-errCh
			break loop
		case <-stop:
			_ = s.Shutdown(context.Background())
			runErr = <-errCh
			break loop
		case <-hup:
			s.Reload(ctx)
		case runErr = <-errCh:
			break loop
		}
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	log.Info("HTTP server stopped")
	return nil
}

// Reload runs the registered reload functions. Failures are logged only.
func (s *Server) Reload(ctx context.Context) {
	for _, fn := range s.opts.reload {
		start := time.Now()
		if err := fn(ctx); err != nil {
			s.opts.logger.Error("reload failed", logger.Error(err))
			continue
		}
		s.opts.logger.Info("reloaded", logger.Duration(time.Since(start)))
	}
}

// Shutdown stops the server gracefully. It is safe for repeated calls.
// Any error from http.Server.Shutdown is joined with ErrShutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv == nil {
			return
		}
		ctx, cancel := context.WithTimeout(ctx, s.opts.shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(ctx)
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
