package triego

import "github.com/tidwall/gjson"

// KeySelector extracts one or more indexable strings from an item.
// It must be pure and stable for an item's lifetime in the index; the
// engine does not detect selector value changes for items already
// indexed.
type KeySelector[T any] func(item T) []string

// Key adapts a single-string selector.
func Key[T any](fn func(item T) string) KeySelector[T] {
	return func(item T) []string {
		return []string{fn(item)}
	}
}

// Keys combines multiple single-string selectors into one.
func Keys[T any](fns ...func(item T) string) KeySelector[T] {
	return func(item T) []string {
		keys := make([]string, 0, len(fns))
		for _, fn := range fns {
			keys = append(keys, fn(item))
		}
		return keys
	}
}

// JSONKeys returns a selector over raw JSON documents that extracts
// the values at the given gjson paths. Array results contribute one
// key per element; missing paths contribute nothing.
//
//	ts, _ := triego.New(
//	    triego.JSONPath("id"),
//	    triego.JSONKeys("name", "tags.#.label"),
//	)
func JSONKeys(paths ...string) KeySelector[string] {
	return func(doc string) []string {
		keys := make([]string, 0, len(paths))
		for _, p := range paths {
			res := gjson.Get(doc, p)
			switch {
			case res.IsArray():
				for _, el := range res.Array() {
					if s := el.String(); s != "" {
						keys = append(keys, s)
					}
				}
			case res.Exists():
				if s := res.String(); s != "" {
					keys = append(keys, s)
				}
			}
		}
		return keys
	}
}

// JSONPath returns an identity function over raw JSON documents that
// reads the value at the given gjson path.
func JSONPath(path string) func(doc string) string {
	return func(doc string) string {
		return gjson.Get(doc, path).String()
	}
}
