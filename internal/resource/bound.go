package resource

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/reel/internal/domain"
)

// NetworkBound sequences a cache read, a staleness check, a network call,
// persistence and a final cache read into one ordered stream:
//
//	Loading(cached) -> Success(fresh) | Error(message, cached)
//
// V is the value read from the local store, R the raw network payload.
// The caller supplies the four hooks; ShouldFetch may be nil (always fetch).
type NetworkBound[V, R any] struct {
	// LoadFromDB returns the current cache state; false means nothing cached.
	LoadFromDB func(ctx context.Context) (V, bool, error)

	// ShouldFetch decides whether the cached value needs a refresh.
	ShouldFetch func(cached V, ok bool) bool

	// CreateCall performs the network operation(s). This is the only
	// point where the pipeline waits on the network.
	CreateCall func(ctx context.Context) Resource[R]

	// SaveCallResult persists a successful payload, applying merge logic.
	SaveCallResult func(ctx context.Context, item R) error

	Logger *slog.Logger
}

// Stream runs the pipeline on its own goroutine. The returned channel
// receives the Loading state followed by exactly one terminal state and is
// then closed. Cancelling ctx stops the pipeline before the network call
// and closes the channel early.
func (b *NetworkBound[V, R]) Stream(ctx context.Context) <-chan Resource[V] {
	// At most two emissions per run, so sends never block.
	out := make(chan Resource[V], 2)
	go func() {
		defer close(out)
		b.run(ctx, func(r Resource[V]) { out <- r })
	}()
	return out
}

// Run executes the pipeline synchronously and returns every emission in order.
func (b *NetworkBound[V, R]) Run(ctx context.Context) []Resource[V] {
	var states []Resource[V]
	b.run(ctx, func(r Resource[V]) { states = append(states, r) })
	return states
}

func (b *NetworkBound[V, R]) run(ctx context.Context, emit func(Resource[V])) {
	logger := b.logger()
	terminated := false
	emitTerminal := func(r Resource[V]) {
		terminated = true
		emit(r)
	}

	// A panicking hook still terminates the stream with an Error state.
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("resource pipeline panicked", "panic", rec)
			if !terminated {
				emitTerminal(ErrorEmpty[V](fmt.Sprint(rec)))
			}
		}
	}()

	// 1. Current cache state
	cached, ok := b.loadCached(ctx, logger)
	if ok {
		emit(Loading(cached))
	} else {
		emit(LoadingEmpty[V]())
	}

	// 2. Staleness policy
	if b.ShouldFetch != nil && !b.ShouldFetch(cached, ok) {
		logger.Debug("cache fresh, skipping fetch", "cached", ok)
		if ok {
			emitTerminal(Success(cached))
		} else {
			emitTerminal(ErrorEmpty[V](domain.ErrNoCache.Error()))
		}
		return
	}

	if ctx.Err() != nil {
		logger.Debug("pipeline cancelled before fetch", "error", ctx.Err())
		return
	}

	// 3. Network call, then persistence
	resp := b.CreateCall(ctx)
	if resp.Status != StatusSuccess || !resp.HasData {
		msg := resp.Message
		if resp.Status == StatusSuccess {
			msg = domain.ErrNoData.Error()
		}
		logger.Warn("remote call failed", "message", msg)
		emitTerminal(fallback(cached, ok, msg))
		return
	}

	if err := b.SaveCallResult(ctx, resp.Data); err != nil {
		logger.Error("failed to save call result", "error", err)
		emitTerminal(fallback(cached, ok, err.Error()))
		return
	}

	// 4. Re-read so the emission reflects what loadFromDB makes of the write
	fresh, ok, err := b.LoadFromDB(ctx)
	if err != nil {
		logger.Error("failed to reload cache", "error", err)
		emitTerminal(ErrorEmpty[V](err.Error()))
		return
	}
	if !ok {
		emitTerminal(SuccessEmpty[V]())
		return
	}
	emitTerminal(Success(fresh))
}

// loadCached treats an unreadable cache as an empty one: a missing cache
// forces a fetch and is never terminal on its own.
func (b *NetworkBound[V, R]) loadCached(ctx context.Context, logger *slog.Logger) (V, bool) {
	cached, ok, err := b.LoadFromDB(ctx)
	if err != nil {
		logger.Warn("failed to read cache", "error", err)
		var zero V
		return zero, false
	}
	return cached, ok
}

func (b *NetworkBound[V, R]) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}

func fallback[V any](cached V, ok bool, msg string) Resource[V] {
	if ok {
		return Error(msg, cached)
	}
	return ErrorEmpty[V](msg)
}
