// Package workerutil runs background goroutines that survive panics.
package workerutil

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

const (
	// defaultInitialBackoff is the delay before the first restart. Short
	// enough that a listener which panicked on one bad event is back before
	// the user presses the shortcut again, long enough to avoid a hot loop
	// when the panic repeats immediately. Doubles per attempt.
	defaultInitialBackoff = 100 * time.Millisecond

	// defaultMaxBackoff caps the doubling.
	defaultMaxBackoff = 5 * time.Second

	// defaultMaxRetries bounds the total runs. With the doubling above, ten
	// runs span roughly half a minute before the worker is given up.
	defaultMaxRetries = 10
)

// RecoveryOptions tunes RunWithPanicRecovery. Zero numeric fields take the
// defaults (100ms initial backoff, 5s cap, 10 attempts). Nil callbacks are
// skipped.
//
// NOTE: a restart only happens after a panic. A worker function that
// returns normally is finished, whatever the reason; the hotkey listener
// relies on this to end when its key grab is released.
type RecoveryOptions struct {
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// MaxRetries is the total number of runs allowed. 1 means run once.
	MaxRetries int

	// OnPanic runs after each recovered panic. attempt is 1-based.
	OnPanic func(worker string, attempt int)
	// OnFatal runs once the worker has panicked MaxRetries times.
	OnFatal func(worker string, maxRetries int)
	// IsShutdown stops restarts while the application tears down.
	IsShutdown func() bool
}

func (opts RecoveryOptions) withDefaults() RecoveryOptions {
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = defaultInitialBackoff
	}
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = defaultMaxBackoff
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.MaxBackoff < opts.InitialBackoff {
		slog.Warn("[worker] MaxBackoff below InitialBackoff, raising it",
			"initialBackoff", opts.InitialBackoff, "maxBackoff", opts.MaxBackoff)
		opts.MaxBackoff = opts.InitialBackoff
	}
	return opts
}

// RunWithPanicRecovery starts fn on a goroutine tracked by wg. A panic is
// logged with its stack and fn is restarted after an exponential backoff,
// unless ctx is done or the shutdown hook reports teardown. fn must return
// when ctx is cancelled.
func RunWithPanicRecovery(
	ctx context.Context,
	name string,
	wg *sync.WaitGroup,
	fn func(ctx context.Context),
	opts RecoveryOptions,
) {
	opts = opts.withDefaults()
	wg.Go(func() {
		superviseWorker(ctx, name, fn, opts)
	})
}

func superviseWorker(ctx context.Context, name string, fn func(ctx context.Context), opts RecoveryOptions) {
	delay := opts.InitialBackoff
	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		if !runGuarded(ctx, name, fn) || ctx.Err() != nil {
			return
		}
		if opts.IsShutdown != nil && opts.IsShutdown() {
			slog.Info("[worker] shutting down, not restarting", "worker", name)
			return
		}
		slog.Warn("[worker] restarting after panic", "worker", name, "attempt", attempt, "delay", delay)
		if opts.OnPanic != nil {
			opts.OnPanic(name, attempt)
		}
		if attempt == opts.MaxRetries {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		delay = nextBackoff(delay, opts.MaxBackoff)
	}

	slog.Error("[worker] giving up after repeated panics", "worker", name, "maxRetries", opts.MaxRetries)
	if opts.OnFatal != nil {
		opts.OnFatal(name, opts.MaxRetries)
	}
}

// runGuarded reports whether fn panicked.
func runGuarded(ctx context.Context, name string, fn func(ctx context.Context)) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[worker] recovered from panic",
				"worker", name,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			panicked = true
		}
	}()
	fn(ctx)
	return false
}

func nextBackoff(current, limit time.Duration) time.Duration {
	if current <= 0 {
		return defaultInitialBackoff
	}
	next := current * 2
	if next > limit || next < current {
		return limit
	}
	return next
}
