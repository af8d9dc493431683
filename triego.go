package triego

import (
	"fmt"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/triego/internal/trie"
)

// NoLimit disables result truncation. It is the default search limit.
const NoLimit = -1

// Hit is a single search result.
type Hit[T any] struct {
	// ID is the item's identity key.
	ID string

	// Item is the indexed item.
	Item T

	// Terms are the normalized words the item was indexed under.
	// Reducers may use them for ranking.
	Terms []string
}

// Stats describes the current size of a TrieSearch.
type Stats struct {
	// Items is the number of indexed items.
	Items int

	// Nodes is the number of trie nodes.
	Nodes int
}

// TrieSearch is a trie-based search index over items of type T.
//
// Items are indexed under every suffix (of configurable minimum
// length) of every word of every key the key selector derives, so any
// sufficiently long contiguous substring of a key finds the item.
//
// TrieSearch is not safe for concurrent mutation: callers must
// serialize Add and Remove externally. Searches are read-only.
type TrieSearch[T any] struct {
	identity func(T) string
	keys     KeySelector[T]
	opts     options

	tree  *trie.Tree
	byKey map[string]uint32 // identity key -> internal ID
	items map[uint32]T
	words map[uint32][]string // normalized words indexed per item

	nextID uint32

	watchers  []watcher
	nextWatch int

	metrics MetricsCollector
	logger  *Logger
}

type watcher struct {
	id int
	fn func()
}

// New creates a TrieSearch.
//
// identity derives the item-equality key used for idempotent add and
// remove. keys derives the indexable strings. Both must be non-nil
// and pure; contradictory options fail here, not at first search.
func New[T any](identity func(T) string, keys KeySelector[T], optFns ...Option) (*TrieSearch[T], error) {
	if identity == nil {
		return nil, ErrNilIdentity
	}
	if keys == nil {
		return nil, ErrNilKeySelector
	}

	opts := applyOptions(optFns)
	if opts.minKeyLength < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMinKeyLength, opts.minKeyLength)
	}
	if opts.maxExpansion < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidExpansion, opts.maxExpansion)
	}

	return &TrieSearch[T]{
		identity: identity,
		keys:     keys,
		opts:     opts,
		tree:     trie.New(),
		byKey:    make(map[string]uint32),
		items:    make(map[uint32]T),
		words:    make(map[uint32][]string),
		metrics:  opts.metrics,
		logger:   opts.logger,
	}, nil
}

// Add indexes an item. Re-adding an item with the same identity key is
// an update: old postings are dropped and the item is reindexed in its
// original insertion position, never duplicated.
//
// An item whose key selector yields no words is rejected with
// ErrNoIndexableKey and left unindexed.
func (ts *TrieSearch[T]) Add(item T) error {
	start := time.Now()
	id := ts.identity(item)
	terms, err := ts.add(id, item)
	ts.metrics.RecordAdd(time.Since(start), err)
	ts.logger.LogAdd(id, terms, err)
	return err
}

func (ts *TrieSearch[T]) add(id string, item T) (int, error) {
	words := ts.derive(item)
	if len(words) == 0 {
		return 0, fmt.Errorf("%w: item %q", ErrNoIndexableKey, id)
	}

	iid, ok := ts.byKey[id]
	if ok {
		ts.unindex(iid)
	} else {
		iid = ts.nextID
		ts.nextID++
		ts.byKey[id] = iid
	}

	ts.items[iid] = item
	ts.words[iid] = words
	ts.index(iid, words)
	ts.notify()
	return len(words), nil
}

// BatchAddResult reports the outcome of a BatchAdd. Errors holds one
// entry per input item, nil on success.
type BatchAddResult struct {
	Added  int
	Errors []error
}

// BatchAdd indexes multiple items, continuing past per-item failures.
func (ts *TrieSearch[T]) BatchAdd(items []T) BatchAddResult {
	start := time.Now()
	result := BatchAddResult{
		Errors: make([]error, len(items)),
	}

	for i, item := range items {
		id := ts.identity(item)
		if _, err := ts.add(id, item); err != nil {
			result.Errors[i] = err
		} else {
			result.Added++
		}
	}

	failed := len(items) - result.Added
	ts.metrics.RecordBatchAdd(len(items), failed, time.Since(start))
	ts.logger.LogBatchAdd(len(items), failed)
	return result
}

// Remove deletes an item from the index. Removing an absent item is a
// no-op.
func (ts *TrieSearch[T]) Remove(item T) {
	ts.RemoveID(ts.identity(item))
}

// RemoveID deletes the item with the given identity key from the
// index. Removing an absent key is a no-op.
func (ts *TrieSearch[T]) RemoveID(id string) {
	start := time.Now()
	iid, ok := ts.byKey[id]
	if ok {
		ts.unindex(iid)
		delete(ts.byKey, id)
		delete(ts.items, iid)
		delete(ts.words, iid)
		ts.notify()
	}
	ts.metrics.RecordRemove(time.Since(start))
	ts.logger.LogRemove(id, ok)
}

// Get returns the indexed item with the given identity key.
func (ts *TrieSearch[T]) Get(id string) (T, error) {
	iid, ok := ts.byKey[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return ts.items[iid], nil
}

// Has reports whether an item with the given identity key is indexed.
func (ts *TrieSearch[T]) Has(id string) bool {
	_, ok := ts.byKey[id]
	return ok
}

// Len returns the number of indexed items.
func (ts *TrieSearch[T]) Len() int {
	return len(ts.byKey)
}

// Stats returns size statistics for the index.
func (ts *TrieSearch[T]) Stats() Stats {
	return Stats{
		Items: len(ts.byKey),
		Nodes: ts.tree.NodeCount(),
	}
}

// Notify registers fn to be called synchronously after every mutation
// (successful Add or Remove). The returned func unregisters it.
// Reactive queries use this to recompute on index changes.
func (ts *TrieSearch[T]) Notify(fn func()) (unsubscribe func()) {
	id := ts.nextWatch
	ts.nextWatch++
	ts.watchers = append(ts.watchers, watcher{id: id, fn: fn})
	return func() {
		for i, w := range ts.watchers {
			if w.id == id {
				ts.watchers = append(ts.watchers[:i], ts.watchers[i+1:]...)
				return
			}
		}
	}
}

func (ts *TrieSearch[T]) notify() {
	for _, w := range ts.watchers {
		w.fn()
	}
}

// SearchOptions controls the execution of a single search.
type SearchOptions[T any] struct {
	// Limit is an upper bound on returned hits. The truncated result
	// is a prefix of the unlimited result in engine order.
	// NoLimit (the default) disables truncation; values below NoLimit
	// are rejected.
	Limit int

	// Reducer post-processes the raw hits. Nil passes the engine
	// order (insertion order) through unchanged. The reducer runs
	// before Limit truncation.
	Reducer Reducer[T]

	// Exact disables prefix expansion: only items indexed under a
	// term exactly equal to the query token match.
	Exact bool
}

// Search returns the items matching the query.
//
// The query is split into tokens with the configured splitter; a
// multi-token query returns the items matching every token (AND
// semantics, bitmap intersection) and one unmatched token voids the
// whole query. An empty or whitespace-only query returns no hits.
// Results are ordered by insertion, oldest first.
func (ts *TrieSearch[T]) Search(query string, optFns ...func(o *SearchOptions[T])) ([]Hit[T], error) {
	start := time.Now()
	opts := SearchOptions[T]{
		Limit: NoLimit,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	tokens := ts.opts.splitter(ts.fold(query))

	hits, err := ts.search(tokens, opts)
	ts.metrics.RecordSearch(len(tokens), time.Since(start), err)
	ts.logger.LogSearch(query, len(tokens), len(hits), err)
	if err != nil {
		return nil, err
	}

	if opts.Reducer != nil {
		hits = opts.Reducer(query, hits)
	}
	if opts.Limit != NoLimit && len(hits) > opts.Limit {
		hits = hits[:opts.Limit]
	}
	return hits, nil
}

func (ts *TrieSearch[T]) search(tokens []string, opts SearchOptions[T]) ([]Hit[T], error) {
	if opts.Limit < NoLimit {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, opts.Limit)
	}
	if len(tokens) == 0 {
		return []Hit[T]{}, nil
	}

	matches := ts.tokenMatches(tokens, opts.Exact)

	// Fail-fast AND: one empty token set voids the whole query.
	result := matches[0]
	for _, m := range matches[1:] {
		if result.IsEmpty() {
			break
		}
		result.And(m)
	}

	// Roaring iterates in ascending ID order, which is insertion order.
	hits := make([]Hit[T], 0, result.GetCardinality())
	it := result.Iterator()
	for it.HasNext() {
		iid := it.Next()
		item := ts.items[iid]
		hits = append(hits, Hit[T]{
			ID:    ts.identity(item),
			Item:  item,
			Terms: ts.words[iid],
		})
	}
	return hits, nil
}

// tokenMatches walks the trie for every token. Multi-token queries fan
// the read-only walks out across goroutines and join before returning,
// so the search as a whole stays synchronous.
func (ts *TrieSearch[T]) tokenMatches(tokens []string, exact bool) []*roaring.Bitmap {
	matches := make([]*roaring.Bitmap, len(tokens))
	if len(tokens) == 1 {
		matches[0] = ts.tokenMatch(tokens[0], exact)
		return matches
	}

	var g errgroup.Group
	for i, tok := range tokens {
		i, tok := i, tok
		g.Go(func() error {
			matches[i] = ts.tokenMatch(tok, exact)
			return nil
		})
	}
	_ = g.Wait() // walks never fail
	return matches
}

func (ts *TrieSearch[T]) tokenMatch(token string, exact bool) *roaring.Bitmap {
	node := ts.tree.Walk(token)
	if node == nil {
		return roaring.New()
	}
	if exact {
		out := roaring.New()
		if items := node.Items(); items != nil {
			out.Or(items)
		}
		return out
	}
	return ts.tree.Collect(node, ts.opts.maxExpansion)
}

// derive extracts the normalized indexable words for an item.
func (ts *TrieSearch[T]) derive(item T) []string {
	var words []string
	for _, key := range ts.keys(item) {
		words = append(words, ts.opts.splitter(ts.fold(key))...)
	}
	return words
}

// index inserts the item under every suffix of every word that meets
// the minimum key length.
func (ts *TrieSearch[T]) index(iid uint32, words []string) {
	ts.eachTerm(words, func(term string) {
		ts.tree.Insert(term, iid)
	})
}

func (ts *TrieSearch[T]) unindex(iid uint32) {
	ts.eachTerm(ts.words[iid], func(term string) {
		ts.tree.Remove(term, iid)
	})
}

func (ts *TrieSearch[T]) eachTerm(words []string, fn func(term string)) {
	min := ts.opts.minKeyLength
	for _, word := range words {
		runes := []rune(word)
		for i := 0; len(runes)-i >= min; i++ {
			fn(string(runes[i:]))
		}
	}
}

func (ts *TrieSearch[T]) fold(s string) string {
	if ts.opts.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}
