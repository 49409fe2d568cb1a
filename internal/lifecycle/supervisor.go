// Package lifecycle owns process shutdown. A Supervisor runs the HTTP
// server, reacts to termination signals and unrecoverable faults, drains
// in-flight requests within a bounded timeout, and reports the process exit
// code: 0 for graceful signals, 1 for faults.
//
// The supervisor is an explicit state machine (Running → ShuttingDown →
// Stopped) held in a single instance; shutdown is idempotent, so a second
// signal or a concurrent Stop while already shutting down is a no-op.
package lifecycle

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// State is the supervisor lifecycle state.
type State int32

const (
	// Running means the server is accepting connections.
	Running State = iota
	// ShuttingDown means a stop was requested and in-flight requests are
	// being drained.
	ShuttingDown
	// Stopped means the server has released the listener and all shutdown
	// hooks have run.
	Stopped
)

// String implements fmt.Stringer for log fields.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting_down"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Supervisor drives an http.Server through graceful shutdown.
type Supervisor struct {
	srv   *http.Server
	log   zerolog.Logger
	drain time.Duration
	hooks []func(context.Context) error

	state    atomic.Int32
	stopCh   chan int
	stopOnce sync.Once
}

// New constructs a Supervisor for srv. drain bounds the wait for in-flight
// requests during shutdown; a non-positive value defaults to 10s.
func New(srv *http.Server, log zerolog.Logger, drain time.Duration) *Supervisor {
	if drain <= 0 {
		drain = 10 * time.Second
	}
	return &Supervisor{
		srv:    srv,
		log:    log,
		drain:  drain,
		stopCh: make(chan int, 1),
	}
}

// OnShutdown registers fn to run during shutdown, after the listener is
// released. Hooks run in registration order; errors are logged, not fatal.
// Must be called before Run.
func (s *Supervisor) OnShutdown(fn func(context.Context) error) {
	s.hooks = append(s.hooks, fn)
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	return State(s.state.Load())
}

// Stop requests shutdown with the given exit code. Only the first call has
// any effect; later calls (including a second termination signal routed
// here) are no-ops.
func (s *Supervisor) Stop(code int) {
	s.stopOnce.Do(func() {
		s.stopCh <- code
	})
}

// Fault reports an unrecoverable asynchronous failure. It logs the error
// and requests shutdown with exit code 1.
func (s *Supervisor) Fault(err error) {
	s.log.Error().Err(err).Msg("unrecoverable fault")
	s.Stop(1)
}

// Run serves until a termination signal (ctx cancelled), a Stop/Fault call,
// or a server failure, then performs the shutdown sequence exactly once and
// returns the process exit code.
//
// Exit codes: 0 for a graceful signal, 1 for a startup failure (e.g. the
// port is already bound), an unrecoverable fault, or a failed drain.
func (s *Supervisor) Run(ctx context.Context) int {
	s.state.Store(int32(Running))
	s.log.Info().Str("addr", s.srv.Addr).Msg("server listening")

	serveErr := make(chan error, 1)
	go func() { serveErr <- s.srv.ListenAndServe() }()

	code := 0
	select {
	case err := <-serveErr:
		// The listener died before any stop request: startup failure or an
		// external Close. Nothing is left to drain.
		s.state.Store(int32(Stopped))
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("server failed")
			s.runHooks()
			return 1
		}
		s.runHooks()
		return 0
	case <-ctx.Done():
		s.log.Info().Msg("termination signal received")
	case code = <-s.stopCh:
		s.log.Warn().Int("exit_code", code).Msg("stop requested")
	}

	// Exactly one caller wins the transition; shutdown never re-enters.
	if !s.state.CompareAndSwap(int32(Running), int32(ShuttingDown)) {
		return code
	}

	shCtx, cancel := context.WithTimeout(context.Background(), s.drain)
	defer cancel()

	if err := s.srv.Shutdown(shCtx); err != nil {
		s.log.Error().Err(err).Dur("drain", s.drain).Msg("graceful shutdown failed; forcing close")
		_ = s.srv.Close()
		code = 1
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error().Err(err).Msg("server error during shutdown")
		code = 1
	}

	s.runHooks()
	s.state.Store(int32(Stopped))
	s.log.Info().Int("exit_code", code).Msg("shutdown complete")
	return code
}

// runHooks executes shutdown hooks with a bounded context.
func (s *Supervisor) runHooks() {
	if len(s.hooks) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.drain)
	defer cancel()
	for _, fn := range s.hooks {
		if err := fn(ctx); err != nil {
			s.log.Error().Err(err).Msg("shutdown hook failed")
		}
	}
}
