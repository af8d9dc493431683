// Package query layers reactive, observable state over a
// triego.TrieSearch.
//
// A Query holds three independently observable inputs (search text,
// result limit, reducer) and a derived result list. Any input change,
// and any mutation of the underlying index, triggers a synchronous
// recompute and republishes the full replacement result slice to
// subscribers. Recompute generations are monotonically increasing;
// because everything is synchronous, no out-of-order delivery is
// possible.
//
// Chosen recompute policies, tested explicitly:
//
//   - Reducer changes recompute eagerly, like text changes.
//   - Limit-only changes re-truncate the cached post-reducer hit list
//     without re-walking the trie; the published items are identical
//     to a full recompute.
//
// No debouncing is performed; callers needing it compose it outside.
// Like the index itself, a Query is single-threaded: callers must not
// mutate it concurrently.
package query

import (
	"errors"
	"fmt"

	"github.com/hupe1980/triego"
)

var (
	// ErrDestroyed is returned when mutating a destroyed Query.
	ErrDestroyed = errors.New("query is destroyed")

	// ErrNilIndex is returned by New when the TrieSearch is nil.
	ErrNilIndex = errors.New("trie search must not be nil")
)

// Query is a reactive view over one TrieSearch. Multiple queries over
// the same index are supported and independent; a Query never mutates
// the index it observes.
type Query[T any] struct {
	ts *triego.TrieSearch[T]

	text    *Value[string]
	limit   *Value[int]
	reducer *Value[triego.Reducer[T]]

	raw     []triego.Hit[T] // post-reducer, pre-limit cache
	results []triego.Hit[T]
	gen     uint64
	started bool // false until the first text set

	subs      []subscriber[[]triego.Hit[T]]
	nextSub   int
	unsubTrie func()
	destroyed bool

	logger *triego.Logger
}

type queryOptions[T any] struct {
	limit   int
	reducer triego.Reducer[T]
	logger  *triego.Logger
}

// Option configures Query construction.
type Option[T any] func(*queryOptions[T])

// WithLimit sets the initial result limit. Negative values other than
// triego.NoLimit fail at construction.
func WithLimit[T any](n int) Option[T] {
	return func(o *queryOptions[T]) {
		o.limit = n
	}
}

// WithReducer sets the initial reducer.
func WithReducer[T any](r triego.Reducer[T]) Option[T] {
	return func(o *queryOptions[T]) {
		o.reducer = r
	}
}

// WithLogger configures structured logging for recomputes.
func WithLogger[T any](logger *triego.Logger) Option[T] {
	return func(o *queryOptions[T]) {
		if logger == nil {
			logger = triego.NoopLogger()
		}
		o.logger = logger
	}
}

// New creates a Query bound to ts. The query starts idle: Results()
// is empty and nothing is published until the first Text().Set.
func New[T any](ts *triego.TrieSearch[T], optFns ...Option[T]) (*Query[T], error) {
	if ts == nil {
		return nil, ErrNilIndex
	}

	opts := queryOptions[T]{
		limit:  triego.NoLimit,
		logger: triego.NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	if err := validateLimit(opts.limit); err != nil {
		return nil, err
	}

	q := &Query[T]{
		ts:     ts,
		logger: opts.logger,
	}
	q.text = newValue("", nil)
	q.limit = newValue(opts.limit, validateLimit)
	q.reducer = newValue(opts.reducer, nil)

	q.text.Subscribe(func(string) {
		q.started = true
		q.recompute()
	})
	q.limit.Subscribe(func(int) {
		q.retruncate()
	})
	q.reducer.Subscribe(func(triego.Reducer[T]) {
		q.recompute()
	})
	q.unsubTrie = ts.Notify(func() {
		q.recompute()
	})

	return q, nil
}

func validateLimit(n int) error {
	if n < triego.NoLimit {
		return fmt.Errorf("%w: %d", triego.ErrInvalidLimit, n)
	}
	return nil
}

// Text is the observable search text. Setting it triggers a
// synchronous recompute and publish.
func (q *Query[T]) Text() *Value[string] {
	return q.text
}

// Limit is the observable result limit. triego.NoLimit disables
// truncation; other negative values are rejected by Set.
func (q *Query[T]) Limit() *Value[int] {
	return q.limit
}

// Reducer is the observable reducer. Setting it recomputes eagerly.
func (q *Query[T]) Reducer() *Value[triego.Reducer[T]] {
	return q.reducer
}

// Results returns the most recently published result list. Before the
// first text set, and after Destroy, it is empty.
func (q *Query[T]) Results() []triego.Hit[T] {
	return q.results
}

// Generation returns the number of publishes so far. Every publish
// increments it; a later publish always supersedes an earlier one.
func (q *Query[T]) Generation() uint64 {
	return q.gen
}

// Destroyed reports whether Destroy has been called.
func (q *Query[T]) Destroyed() bool {
	return q.destroyed
}

// Subscribe registers fn to receive the full replacement result slice
// on every publish. The returned func unregisters it.
func (q *Query[T]) Subscribe(fn func(hits []triego.Hit[T])) (unsubscribe func()) {
	if q.destroyed {
		return func() {}
	}
	id := q.nextSub
	q.nextSub++
	q.subs = append(q.subs, subscriber[[]triego.Hit[T]]{id: id, fn: fn})
	return func() {
		for i, sub := range q.subs {
			if sub.id == id {
				q.subs = append(q.subs[:i], q.subs[i+1:]...)
				return
			}
		}
	}
}

// Destroy disconnects the query from its TrieSearch and releases all
// observers. It is terminal and idempotent: once destroyed, setters
// fail with ErrDestroyed and nothing is published again. The
// underlying TrieSearch is left untouched.
func (q *Query[T]) Destroy() {
	if q.destroyed {
		return
	}
	q.destroyed = true
	q.unsubTrie()
	q.text.close()
	q.limit.close()
	q.reducer.close()
	q.subs = nil
	q.raw = nil
	q.results = nil
}

// recompute re-runs the trie search with the current text and reducer,
// caches the untruncated hits, and publishes the truncated list.
func (q *Query[T]) recompute() {
	if q.destroyed || !q.started {
		return
	}

	hits, err := q.ts.Search(q.text.Get(), func(o *triego.SearchOptions[T]) {
		o.Reducer = q.reducer.Get()
		o.Limit = triego.NoLimit // truncation is applied from the cache
	})
	if err != nil {
		// Unreachable with NoLimit, but never swallow silently.
		q.logger.Error("recompute failed", "text", q.text.Get(), "error", err)
		return
	}

	q.raw = hits
	q.publish(q.truncate(hits))
}

// retruncate re-applies the limit to the cached hits without
// re-walking the trie.
func (q *Query[T]) retruncate() {
	if q.destroyed || !q.started {
		return
	}
	q.publish(q.truncate(q.raw))
}

func (q *Query[T]) truncate(hits []triego.Hit[T]) []triego.Hit[T] {
	n := q.limit.Get()
	if n == triego.NoLimit || len(hits) <= n {
		return hits
	}
	return hits[:n]
}

func (q *Query[T]) publish(hits []triego.Hit[T]) {
	q.results = hits
	q.gen++
	q.logger.LogRecompute(q.text.Get(), q.gen, len(hits))
	for _, sub := range q.subs {
		sub.fn(hits)
	}
}
