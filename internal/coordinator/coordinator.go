// Package coordinator runs multi-step writes against storage.
//
// Each operation moves through Validating, Allocating and Persisting to
// Committed, or stops in Failed. Nothing is written before Persisting, so a
// failure or cancellation in the earlier phases leaves no trace. Once
// Persisting begins the operation runs to completion regardless of the
// caller's context, and a partially written expense is deleted again before
// the error is reported.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/mmynk/groupledger/internal/metrics"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/session"
	"github.com/mmynk/groupledger/internal/storage"
)

// Phase is a step of a coordinated mutation.
type Phase int

const (
	PhaseValidating Phase = iota
	PhaseAllocating
	PhasePersisting
	PhaseCommitted
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseValidating:
		return "validating"
	case PhaseAllocating:
		return "allocating"
	case PhasePersisting:
		return "persisting"
	case PhaseCommitted:
		return "committed"
	case PhaseFailed:
		return "failed"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Coordinator performs expense, settlement and membership mutations.
type Coordinator struct {
	repo     Repository
	observer Observer
	logger   *slog.Logger
	inflight singleflight.Group

	mu      sync.Mutex
	flights map[string]*flight
}

// flight is the detached context of one shared call and the number of
// callers still waiting on it.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithObserver registers the receiver of committed mutations.
func WithObserver(o Observer) Option {
	return func(c *Coordinator) { c.observer = o }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

// New returns a coordinator writing through repo.
func New(repo Repository, opts ...Option) *Coordinator {
	c := &Coordinator{
		repo:     repo,
		observer: nopObserver{},
		logger:   slog.Default(),
		flights:  make(map[string]*flight),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// share runs fn once for all concurrent callers with the same key.
//
// fn gets a context that carries the first caller's values and is cancelled
// only when every caller has left. Each caller stops waiting when its own ctx
// is done.
func (c *Coordinator) share(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	f, ok := c.flights[key]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		c.flights[key] = f
	}
	f.waiters++
	ch := c.inflight.DoChan(key, func() (any, error) {
		defer c.land(key, f)
		return fn(f.ctx)
	})
	c.mu.Unlock()

	select {
	case res := <-ch:
		c.leave(key, f, false)
		return res.Val, res.Shared, res.Err
	case <-ctx.Done():
		c.leave(key, f, true)
		return nil, false, ctx.Err()
	}
}

// land retires a flight whose call has returned.
func (c *Coordinator) land(key string, f *flight) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.flights[key] == f {
		delete(c.flights, key)
	}
	f.cancel()
}

// leave drops one waiter. The last waiter to give up cancels the call and
// lets the next caller with the key start afresh.
func (c *Coordinator) leave(key string, f *flight, gaveUp bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f.waiters--
	if f.waiters > 0 {
		return
	}
	if c.flights[key] == f {
		delete(c.flights, key)
		if gaveUp {
			c.inflight.Forget(key)
		}
	}
	f.cancel()
}

// run tracks the phase of one operation for logs and metrics.
type run struct {
	logger *slog.Logger
	op     string
	phase  Phase
}

func (c *Coordinator) start(op string, attrs ...any) *run {
	r := &run{logger: c.logger.With(append([]any{"op", op}, attrs...)...), op: op, phase: PhaseValidating}
	r.logger.Debug("Mutation started", "phase", r.phase.String())
	return r
}

func (r *run) enter(p Phase) {
	r.logger.Debug("Mutation phase", "from", r.phase.String(), "to", p.String())
	r.phase = p
}

// fail records err against the current phase and returns it.
func (r *run) fail(err error) error {
	failedIn := r.phase
	r.phase = PhaseFailed
	metrics.Mutations.WithLabelValues(r.op, failedIn.String()).Inc()

	var pe *PersistError
	if errors.As(err, &pe) {
		r.logger.Error("Mutation failed", "phase", failedIn.String(), "error", err, "compensated", pe.Compensated)
	} else {
		r.logger.Warn("Mutation rejected", "phase", failedIn.String(), "error", err)
	}
	return err
}

func (r *run) commit() {
	r.enter(PhaseCommitted)
	metrics.Mutations.WithLabelValues(r.op, PhaseCommitted.String()).Inc()
}

// requireMembership loads the caller's membership of the group.
func (c *Coordinator) requireMembership(ctx context.Context, s *session.Session, groupID string) (*models.Membership, error) {
	if s == nil || s.MemberID == "" {
		return nil, ErrNotMember
	}
	m, err := c.repo.GetMembership(ctx, groupID, s.MemberID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotMember, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load membership: %w", err)
	}
	return m, nil
}

// beginPersist ends the cancellable part of an operation. The returned
// context keeps ctx's values but is never cancelled.
func beginPersist(ctx context.Context, r *run) (context.Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.enter(PhasePersisting)
	return context.WithoutCancel(ctx), nil
}

type nopObserver struct{}

func (nopObserver) ExpenseAdded(context.Context, *models.Expense) {}
func (nopObserver) ExpenseRemoved(context.Context, string, string) {}
func (nopObserver) SettlementAdded(context.Context, *models.Settlement) {}
func (nopObserver) MemberRemoved(context.Context, string, string) {}
