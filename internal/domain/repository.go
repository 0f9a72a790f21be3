package domain

import "context"

// CatalogSource fetches the full product table from the configured
// catalog sheet. Implementations own transport concerns (timeouts,
// retries, rate limiting).
type CatalogSource interface {
	FetchCatalog(ctx context.Context) ([]CatalogRow, error)
}

// CatalogProvider hands out the current catalog rows, refreshing from
// the source when the cached copy is older than the TTL. Rows carry
// their precomputed SearchText.
type CatalogProvider interface {
	Rows(ctx context.Context) ([]CatalogRow, error)
}
