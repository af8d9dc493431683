// Package triego provides a generic, embeddable trie-based search
// index for Go.
//
// TrieSearch indexes items under one or more string keys and answers
// prefix, substring and multi-word queries with deterministic,
// insertion-ordered results:
//
//   - Multi-key indexing via a caller-supplied key selector
//   - Substring search: every word suffix above a configurable minimum
//     length is indexed
//   - Prefix expansion: a query token matches items indexed under any
//     extension of that token, up to a configurable cap
//   - AND semantics for multi-word queries (bitmap intersection)
//   - Pluggable result reducers for ranking and post-processing
//   - Roaring Bitmap item sets for compact storage and fast intersection
//
// # Quick Start
//
//	type Spell struct {
//	    ID   string
//	    Name string
//	}
//
//	ts, err := triego.New(
//	    func(s Spell) string { return s.ID },
//	    triego.Key(func(s Spell) string { return s.Name }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ts.Add(Spell{ID: "1", Name: "Fireball"})
//	ts.Add(Spell{ID: "2", Name: "Firewall"})
//	ts.Add(Spell{ID: "3", Name: "Icebolt"})
//
//	hits, _ := ts.Search("fire") // Fireball, Firewall
//
// # Reactive Queries
//
// The query subpackage layers observable query/limit/reducer state on
// top of a TrieSearch and republishes a derived result list whenever
// any input (or the index itself) changes:
//
//	q, _ := query.New(ts)
//	unsub := q.Subscribe(func(hits []triego.Hit[Spell]) {
//	    render(hits)
//	})
//	defer unsub()
//
//	q.Text().Set("fire") // synchronous recompute + publish
//
// # Concurrency
//
// TrieSearch follows a single-writer model: no internal locking is
// performed. Callers running concurrent mutations must serialize Add
// and Remove externally. Searches are read-only and complete before
// returning control.
package triego
