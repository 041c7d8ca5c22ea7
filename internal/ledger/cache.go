package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/groupledger/internal/metrics"
	"github.com/mmynk/groupledger/internal/models"
)

// Loader reads a group's full history from storage.
type Loader interface {
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)
}

// Cache keeps one Book per group, fed by committed mutations.
//
// Events are versioned in the order they reach the cache. A book that rejects
// an event, or that fails verification, is dropped and rebuilt from storage
// on the next read. Every event also bumps a per-group generation, so a load
// that overlaps an event is never installed.
type Cache struct {
	loader Loader
	logger *slog.Logger
	verify bool

	mu    sync.Mutex
	books map[string]*Book
	gens  map[string]uint64
}

// maxLoadAttempts bounds how often For reloads while events keep arriving.
const maxLoadAttempts = 3

// Option configures a Cache.
type Option func(*Cache)

// WithVerify makes every read compare the cached book with a full recompute.
func WithVerify(verify bool) Option {
	return func(c *Cache) { c.verify = verify }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// NewCache returns an empty cache reading history through loader.
func NewCache(loader Loader, opts ...Option) *Cache {
	c := &Cache{
		loader: loader,
		logger: slog.Default(),
		books:  make(map[string]*Book),
		gens:   make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// For returns the balances of a group, loading them on first use.
func (c *Cache) For(ctx context.Context, groupID string) (*View, error) {
	for attempt := 1; ; attempt++ {
		c.mu.Lock()
		book, ok := c.books[groupID]
		if ok && !c.verify {
			view := book.View()
			c.mu.Unlock()
			return view, nil
		}
		gen := c.gens[groupID]
		c.mu.Unlock()

		expenses, settlements, err := c.load(ctx, groupID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gens[groupID] != gen {
			c.mu.Unlock()
			metrics.LedgerRebuilds.WithLabelValues("raced").Inc()
			if attempt < maxLoadAttempts {
				c.logger.Debug("Ledger event landed during load, reloading", "group_id", groupID, "attempt", attempt)
				continue
			}
			// Serve the snapshot without caching it; the next read tries again.
			c.logger.Warn("Ledger kept changing during load, serving uncached view", "group_id", groupID)
			return Rebuild(groupID, 0, expenses, settlements).View(), nil
		}
		view := c.install(groupID, expenses, settlements)
		c.mu.Unlock()
		return view, nil
	}
}

// install stores a book built from a snapshot taken at the current
// generation. The caller holds c.mu.
func (c *Cache) install(groupID string, expenses []*models.Expense, settlements []*models.Settlement) *View {
	if cached, ok := c.books[groupID]; ok {
		if err := cached.Verify(expenses, settlements); err != nil {
			var ce *ConsistencyError
			if errors.As(err, &ce) {
				metrics.LedgerConsistencyErrors.Inc()
			}
			c.logger.Error("Cached ledger disagrees with recompute, rebuilding",
				"group_id", groupID,
				"version", cached.Version(),
				"error", err,
			)
			c.books[groupID] = Rebuild(groupID, cached.Version(), expenses, settlements)
			metrics.LedgerRebuilds.WithLabelValues("consistency").Inc()
		}
		return c.books[groupID].View()
	}

	book := Rebuild(groupID, 0, expenses, settlements)
	c.books[groupID] = book
	metrics.LedgerRebuilds.WithLabelValues("cold").Inc()
	c.logger.Debug("Ledger loaded", "group_id", groupID, "expenses", len(expenses), "settlements", len(settlements))
	return book.View()
}

// Recompute builds balances straight from storage, bypassing the cache.
func (c *Cache) Recompute(ctx context.Context, groupID string) (*View, error) {
	expenses, settlements, err := c.load(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return Rebuild(groupID, 0, expenses, settlements).View(), nil
}

// Invalidate drops the cached book of a group.
func (c *Cache) Invalidate(groupID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.books, groupID)
	c.gens[groupID]++
}

// ExpenseAdded applies a committed expense.
func (c *Cache) ExpenseAdded(_ context.Context, e *models.Expense) {
	c.apply(e.GroupID, Event{Kind: ExpenseAdded, Expense: e, ExpenseID: e.ID})
}

// ExpenseRemoved applies a committed expense deletion.
func (c *Cache) ExpenseRemoved(_ context.Context, groupID, expenseID string) {
	c.apply(groupID, Event{Kind: ExpenseRemoved, ExpenseID: expenseID})
}

// SettlementAdded applies a committed settlement.
func (c *Cache) SettlementAdded(_ context.Context, s *models.Settlement) {
	c.apply(s.GroupID, Event{Kind: SettlementAdded, Settlement: s})
}

// MemberRemoved applies a committed member removal.
func (c *Cache) MemberRemoved(_ context.Context, groupID, memberID string) {
	c.apply(groupID, Event{Kind: MemberRemoved, MemberID: memberID})
}

func (c *Cache) apply(groupID string, ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[groupID]++
	book, ok := c.books[groupID]
	if !ok {
		// Not loaded yet; the next read sees the event in storage.
		return
	}

	ev.Version = book.Version() + 1
	if err := book.Apply(ev); err != nil {
		c.logger.Warn("Ledger event rejected, dropping cached book",
			"group_id", groupID,
			"event", ev.Kind.String(),
			"version", ev.Version,
			"error", err,
		)
		delete(c.books, groupID)
		metrics.LedgerRebuilds.WithLabelValues("event_error").Inc()
		return
	}
	c.logger.Debug("Ledger event applied", "group_id", groupID, "event", ev.Kind.String(), "version", ev.Version)
}

func (c *Cache) load(ctx context.Context, groupID string) ([]*models.Expense, []*models.Settlement, error) {
	expenses, err := c.loader.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	settlements, err := c.loader.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settlements: %w", err)
	}
	return expenses, settlements, nil
}
