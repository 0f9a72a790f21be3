package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/florabot/backend/internal/domain"
	"github.com/florabot/backend/internal/usecase"
)

// Client downloads the published catalog sheet as CSV over HTTP.
type Client struct {
	httpClient  *http.Client
	sheetURL    string
	rateLimiter *rate.Limiter
	log         *logrus.Entry
}

// NewClient creates a catalog sheet client. The rate limiter guards the
// sheet endpoint against refresh storms when many handlers race past an
// expired TTL at once.
func NewClient(sheetURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		sheetURL:    sheetURL,
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 3),
		log:         logrus.WithField("component", "sheets"),
	}
}

// FetchCatalog downloads and parses the catalog. Transient HTTP
// failures are retried up to 3 times with backoff.
func (c *Client) FetchCatalog(ctx context.Context) ([]domain.CatalogRow, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, err := c.download(ctx)
		if err != nil {
			c.log.WithError(err).WithField("attempt", attempt).Warn("catalog download failed")
			lastErr = err
			if attempt < 3 {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(exponentialBackoff(attempt)):
				}
			}
			continue
		}

		rows, err := parseCatalog(strings.NewReader(body))
		if err != nil {
			// A malformed body will not improve on retry.
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogFetch, err)
		}

		c.log.WithField("rows", len(rows)).Debug("catalog fetched")
		return rows, nil
	}

	return nil, lastErr
}

// download performs one HTTP GET of the sheet and returns the body.
func (c *Client) download(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sheetURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "FloraBot/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCatalogFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCatalogFetch, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrCatalogFetch, resp.StatusCode)
	}

	return string(body), nil
}

// exponentialBackoff returns the wait before retry n: 500ms, 1s, 2s.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}

// expectedColumns maps normalized header names onto row fields.
// Header matching is tolerant to case, accents and reordering; a
// missing optional column simply leaves its field empty.
var expectedColumns = map[string]func(*domain.CatalogRow, string){
	"nome_popular": func(r *domain.CatalogRow, v string) { r.Name = v },
	"apelidos":     func(r *domain.CatalogRow, v string) { r.Aliases = v },
	"preco":        func(r *domain.CatalogRow, v string) { r.Price = v },
	"estoque":      func(r *domain.CatalogRow, v string) { r.Stock = v },
	"vaso":         func(r *domain.CatalogRow, v string) { r.PotSize = v },
	"luz":          func(r *domain.CatalogRow, v string) { r.Light = v },
	"rega":         func(r *domain.CatalogRow, v string) { r.Watering = v },
	"pets":         func(r *domain.CatalogRow, v string) { r.PetSafety = v },
	"observacoes":  func(r *domain.CatalogRow, v string) { r.Notes = v },
}

// parseCatalog reads CSV text with a header row into catalog rows.
func parseCatalog(r io.Reader) ([]domain.CatalogRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	setters := make([]func(*domain.CatalogRow, string), len(header))
	for i, name := range header {
		setters[i] = expectedColumns[normalizeHeader(name)]
	}

	var rows []domain.CatalogRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		var row domain.CatalogRow
		for i, value := range record {
			if i < len(setters) && setters[i] != nil {
				setters[i](&row, strings.TrimSpace(value))
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// normalizeHeader folds a header cell to the canonical column key,
// e.g. "Nome Popular" and "nome popular" both map to "nome_popular".
func normalizeHeader(name string) string {
	return strings.ReplaceAll(usecase.Normalize(name), " ", "_")
}
