package triego

import "errors"

var (
	// ErrNotFound is returned when an item is not present in the index.
	ErrNotFound = errors.New("not found")

	// ErrNilIdentity is returned by New when the identity function is nil.
	ErrNilIdentity = errors.New("identity function must not be nil")

	// ErrNilKeySelector is returned by New when the key selector is nil.
	ErrNilKeySelector = errors.New("key selector must not be nil")

	// ErrInvalidMinKeyLength is returned by New when the minimum
	// indexed key length is not positive.
	ErrInvalidMinKeyLength = errors.New("minimum key length must be positive")

	// ErrInvalidExpansion is returned by New when the expansion cap
	// is negative.
	ErrInvalidExpansion = errors.New("max expansion must not be negative")

	// ErrInvalidLimit is returned when a result limit is neither
	// NoLimit nor a non-negative count.
	ErrInvalidLimit = errors.New("limit must be NoLimit or non-negative")

	// ErrNoIndexableKey is returned by Add when the key selector
	// produces no non-empty key for an item. The item is rejected and
	// not partially indexed.
	ErrNoIndexableKey = errors.New("key selector produced no indexable key")
)
