// Package engine applies mutation intents to the store one at a time.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/gyaneshwarpardhi/opsdash/internal/action"
	"github.com/gyaneshwarpardhi/opsdash/internal/config"
	"github.com/gyaneshwarpardhi/opsdash/internal/intent"
	"github.com/gyaneshwarpardhi/opsdash/internal/metrics"
	"github.com/gyaneshwarpardhi/opsdash/internal/store"
)

var (
	// ErrQueueFull is returned when the dispatch queue is at capacity.
	ErrQueueFull = errors.New("intent queue full")
	// ErrShutdown is returned for intents submitted after Shutdown.
	ErrShutdown = errors.New("engine shut down")
	// ErrTimeout is returned when a synchronous dispatch is not answered in time.
	ErrTimeout = errors.New("intent processing timeout")
)

// Outcome is the result of one intent within a batch. Err is set when the
// intent could not be executed at all (unknown kind, malformed payload).
type Outcome struct {
	Result *action.Result
	Err    error
}

// Engine serializes intents onto a single writer.
type Engine struct {
	store    *store.Store
	registry *action.Registry
	pool     *workerPool[*work]
	conf     config.EngineConf
}

// work is a run of intents applied back to back. A nil ctx runs under the
// engine's own context.
type work struct {
	ctx     context.Context
	intents []*intent.Intent
	resultC chan []Outcome

	mu   sync.Mutex
	done []Outcome
}

func (w *work) record(o Outcome) {
	w.mu.Lock()
	w.done = append(w.done, o)
	w.mu.Unlock()
}

// completed returns the outcomes recorded so far, in intent order.
func (w *work) completed() []Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.done)
}

// New creates an Engine over s using conf and starts its writer.
func New(ctx context.Context, s *store.Store, reg *action.Registry, conf config.EngineConf) *Engine {
	e := &Engine{store: s, registry: reg, conf: conf}
	e.pool = newWorkerPool(ctx, 1, conf.QueueDepth, e.process)
	return e
}

// Store returns the store the engine writes to.
func (e *Engine) Store() *store.Store { return e.store }

// Registry returns the executors the engine dispatches to.
func (e *Engine) Registry() *action.Registry { return e.registry }

// ProcessSync applies in and waits for its result.
// Unknown kinds and malformed payloads are returned as errors; validation
// failures come back as a Result with Errors set.
func (e *Engine) ProcessSync(ctx context.Context, in *intent.Intent) (*action.Result, error) {
	out, err := e.ProcessBatch(ctx, []*intent.Intent{in})
	if err != nil {
		return nil, err
	}
	return out[0].Result, out[0].Err
}

// ProcessBatch applies ins in order, with no other intent interleaved, and
// waits for every outcome.
//
// On timeout the error wraps ErrTimeout and the outcomes finished so far are
// returned with it; out[i] belongs to ins[i]. Those intents stay applied. The
// intent running at the deadline may still complete, and the rest of the
// batch is cancelled before it touches the store.
func (e *Engine) ProcessBatch(ctx context.Context, ins []*intent.Intent) ([]Outcome, error) {
	timeout := time.Duration(e.conf.IntentTimeoutMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	w := &work{ctx: ctx, intents: ins, resultC: make(chan []Outcome, 1)}
	if err := e.submit(w); err != nil {
		return nil, err
	}

	select {
	case out := <-w.resultC:
		return out, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return w.completed(), fmt.Errorf("%w after %v", ErrTimeout, timeout)
		}
		return w.completed(), ctx.Err()
	}
}

// ProcessAsync enqueues in for background processing.
func (e *Engine) ProcessAsync(in *intent.Intent) error {
	return e.submit(&work{intents: []*intent.Intent{in}})
}

func (e *Engine) submit(w *work) error {
	if err := e.pool.Submit(w); err != nil {
		if errors.Is(err, ErrQueueFull) {
			metrics.IntentsDropped.Add(float64(len(w.intents)))
			return fmt.Errorf("%w (capacity %d)", err, e.pool.QueueCap())
		}
		return err
	}
	metrics.IntentsEnqueued.Add(float64(len(w.intents)))
	metrics.QueueUtilization.Set(e.QueueUtilization())
	return nil
}

// QueueUtilization returns queue used / capacity (0–1).
func (e *Engine) QueueUtilization() float64 {
	if e.pool.QueueCap() == 0 {
		return 0
	}
	return float64(e.pool.QueueLen()) / float64(e.pool.QueueCap())
}

func (e *Engine) process(ctx context.Context, w *work) {
	metrics.QueueUtilization.Set(e.QueueUtilization())
	if w.ctx != nil {
		ctx = w.ctx
	}
	for _, in := range w.intents {
		res, err := e.dispatch(ctx, in)
		w.record(Outcome{Result: res, Err: err})
		if w.resultC == nil && err != nil {
			slog.Warn("async intent failed", "intent_id", in.ID, "kind", in.Kind, "err", err)
		}
	}
	if w.resultC != nil {
		w.resultC <- w.completed()
	}
}

func (e *Engine) dispatch(ctx context.Context, in *intent.Intent) (*action.Result, error) {
	start := time.Now()
	defer func() {
		metrics.IntentDuration.Observe(float64(time.Since(start).Microseconds()) / 1000)
	}()

	exec, err := e.registry.Get(in.Kind)
	if err != nil {
		metrics.IntentsProcessed.WithLabelValues("unknown", "error").Inc()
		return nil, err
	}
	res, err := exec.Execute(ctx, e.store, in.Payload)
	if err != nil {
		metrics.IntentsProcessed.WithLabelValues(in.Kind, "error").Inc()
		return nil, err
	}
	res.IntentID = in.ID
	status := "applied"
	switch {
	case res.Errors != nil:
		status = "invalid"
	case !res.Applied:
		status = "noop"
	}
	metrics.IntentsProcessed.WithLabelValues(in.Kind, status).Inc()
	slog.Debug("intent processed", "intent_id", in.ID, "kind", in.Kind, "status", status, "entity_id", res.EntityID)
	return res, nil
}

// Shutdown stops intake and drains the queue.
func (e *Engine) Shutdown() {
	e.pool.Drain()
}
