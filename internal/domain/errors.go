package domain

import "errors"

var (
	// ErrCatalogFetch is returned when downloading or parsing the
	// catalog sheet fails.
	ErrCatalogFetch = errors.New("catalog fetch failed")

	// ErrCatalogUnavailable is returned when a fetch fails and no
	// previously loaded catalog exists to fall back on.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrInvalidRequest is returned when request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request parameters")
)
