package triego

import "strings"

// Reducer is a pluggable post-processing step applied to raw search
// hits before they reach the caller. It receives the originating
// query and the hits in engine order and returns the transformed
// sequence. A nil Reducer passes the raw order through unchanged.
//
// Reducers are selected by value: per search via SearchOptions, or as
// observable state on a reactive query. Swapping a reducer never
// requires reconstructing the trie.
type Reducer[T any] func(query string, hits []Hit[T]) []Hit[T]

// ExactFirst returns a reducer that stably moves hits whose indexed
// words contain the query (compared case-insensitively, whole words
// only) ahead of prefix-expanded matches.
func ExactFirst[T any]() Reducer[T] {
	return func(query string, hits []Hit[T]) []Hit[T] {
		exact := make([]Hit[T], 0, len(hits))
		rest := make([]Hit[T], 0, len(hits))
		for _, h := range hits {
			if containsFold(h.Terms, query) {
				exact = append(exact, h)
			} else {
				rest = append(rest, h)
			}
		}
		return append(exact, rest...)
	}
}

// Chain composes reducers left to right; nil entries are skipped.
func Chain[T any](reducers ...Reducer[T]) Reducer[T] {
	return func(query string, hits []Hit[T]) []Hit[T] {
		for _, r := range reducers {
			if r != nil {
				hits = r(query, hits)
			}
		}
		return hits
	}
}

func containsFold(terms []string, s string) bool {
	for _, t := range terms {
		if strings.EqualFold(t, s) {
			return true
		}
	}
	return false
}
