package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	stdhttp "net/http"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/burnroom-server/internal/config"
	"github.com/vovakirdan/burnroom-server/internal/core"
	"github.com/vovakirdan/burnroom-server/internal/killswitch"
	applog "github.com/vovakirdan/burnroom-server/internal/log"
	"github.com/vovakirdan/burnroom-server/internal/policy"
	transporthttp "github.com/vovakirdan/burnroom-server/internal/transport/http"
)

// Option customizes App construction.
type Option func(*options)

type options struct {
	exit   func(code int)
	secret *killswitch.Secret
	clock  core.Clock
}

// WithExit replaces os.Exit for the kill-switch.
func WithExit(exit func(code int)) Option {
	return func(o *options) { o.exit = exit }
}

// WithSecret uses a pre-generated kill-switch secret instead of drawing a new one.
func WithSecret(secret *killswitch.Secret) Option {
	return func(o *options) { o.secret = secret }
}

// WithClock replaces the wall clock used by the relay and sweeper.
func WithClock(clock core.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// App wires together core, kill-switch and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	store           *core.Store
	sweeper         *core.Sweeper
	killSwitch      *killswitch.Listener
	secret          *killswitch.Secret
	log             *zerolog.Logger

	mu       sync.Mutex
	httpAddr net.Addr
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger, opts ...Option) (*App, error) {
	o := options{exit: os.Exit, clock: core.SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	secret := o.secret
	if secret == nil {
		var err error
		secret, err = killswitch.NewSecret()
		if err != nil {
			return nil, fmt.Errorf("init kill-switch: %w", err)
		}
	}

	store := core.NewStore(cfg.Limits)
	limiter := core.NewRateLimiter(o.clock, cfg.Limits)
	relay := core.NewRelay(store, limiter, o.clock, policy.IsEncrypted, cfg.Limits)
	sweeper := core.NewSweeper(store, limiter, o.clock, cfg.Limits, applog.Component(logger, "sweeper"))
	listener := killswitch.NewListener(cfg.KillSwitchAddr, secret.Digest(), store, o.exit, applog.Component(logger, "killswitch"))
	server := transporthttp.NewServer(relay, cfg, applog.Component(logger, "http"))

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		store:           store,
		sweeper:         sweeper,
		killSwitch:      listener,
		secret:          secret,
		log:             logger,
	}, nil
}

// Run starts the background tasks and the HTTP server, and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Shown once; only the digest is kept afterwards. Log() bypasses the level filter.
	a.log.Log().Str("secret", a.secret.Hex()).Msg("emergency kill-switch secret key (hex)")
	a.secret.Wipe()

	if err := a.killSwitch.Start(ctx); err != nil {
		return err
	}
	go a.sweeper.Run(ctx)

	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen http on %s: %w", a.server.Addr, err)
	}
	a.mu.Lock()
	a.httpAddr = ln.Addr()
	a.mu.Unlock()
	a.log.Info().Str("addr", ln.Addr().String()).Msg("http listening")

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancelShutdown()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// HTTPAddr returns the bound HTTP address once Run has started listening.
func (a *App) HTTPAddr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.httpAddr
}

// KillSwitchAddr returns the bound kill-switch address once Run has started it.
func (a *App) KillSwitchAddr() net.Addr {
	return a.killSwitch.Addr()
}

// cleanup wipes every message still held before the process goes away.
func (a *App) cleanup() {
	erased := a.store.EraseAll()
	a.log.Info().Int("erased", erased).Msg("store wiped")
}
