package cache

import (
	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrInvalidResultType is returned by Wrap when a fetched value does not
	// match the requested type.
	ErrInvalidResultType = goerrors.New("cached result has unexpected type", goerrors.CategoryInternal)

	// ErrNilFetchFn is returned when GetOrFetch is called without a fetch function.
	ErrNilFetchFn = goerrors.New("fetch function cannot be nil", goerrors.CategoryBadInput)

	// ErrNilStore is returned when the engine is built without a store.
	ErrNilStore = goerrors.New("store cannot be nil", goerrors.CategoryBadInput)

	// ErrInvalidPattern is returned when a raw pattern does not belong to the namespace.
	ErrInvalidPattern = goerrors.New("pattern is outside the cache namespace", goerrors.CategoryBadInput)
)
