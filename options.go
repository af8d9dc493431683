package triego

import (
	"log/slog"
	"strings"
)

// Splitter decomposes an indexable key (or a query string) into words.
// The default splitter is strings.Fields: split around any run of
// Unicode whitespace.
type Splitter func(s string) []string

type options struct {
	splitter      Splitter
	minKeyLength  int
	maxExpansion  int
	caseSensitive bool
	metrics       MetricsCollector
	logger        *Logger
}

// Option configures TrieSearch construction.
//
// Defaults are per instance; there is no shared mutable option state
// between indexes.
type Option func(*options)

// WithSplitter configures how keys and queries decompose into words.
//
// If nil is passed, the default whitespace splitter is used.
func WithSplitter(fn Splitter) Option {
	return func(o *options) {
		if fn == nil {
			fn = strings.Fields
		}
		o.splitter = fn
	}
}

// WithMinKeyLength configures the minimum length (in runes) a word
// suffix must have to be indexed. Words and suffixes shorter than n
// contribute no terms of their own; shorter query tokens can still
// match via prefix expansion. Must be positive. Default: 1.
func WithMinKeyLength(n int) Option {
	return func(o *options) {
		o.minKeyLength = n
	}
}

// WithMaxExpansion caps the number of items collected per query token
// during prefix expansion. Which items survive the cap is defined by
// the trie's breadth-first, insertion-ordered traversal.
// 0 disables the cap. Default: 0.
func WithMaxExpansion(n int) Option {
	return func(o *options) {
		o.maxExpansion = n
	}
}

// WithCaseSensitive configures case handling. When false (the
// default), keys and queries are lower-cased before indexing and
// matching.
func WithCaseSensitive(v bool) Option {
	return func(o *options) {
		o.caseSensitive = v
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		splitter:     strings.Fields,
		minKeyLength: 1,
		maxExpansion: 0,
		metrics:      NoopMetricsCollector{},
		logger:       NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
