package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florabot/backend/internal/domain"
)

const sampleCSV = `nome_popular,apelidos,preco,estoque,vaso,luz,rega,pets,observacoes
Jiboia,jiboia verde|epipremnum,"49,90",12,pote 14,luz indireta,1x por semana,tóxica,cresce rápido
Samambaia,,25,3,pote 11,meia-sombra,2x por semana,ok,
`

func TestNewClient(t *testing.T) {
	client := NewClient("https://example.com/sheet.csv", 5*time.Second)

	assert.NotNil(t, client)
	assert.Equal(t, "https://example.com/sheet.csv", client.sheetURL)
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	assert.NotNil(t, client.rateLimiter)
}

func TestNewClientDefaultTimeout(t *testing.T) {
	client := NewClient("https://example.com/sheet.csv", 0)
	assert.Equal(t, 20*time.Second, client.httpClient.Timeout)
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, exponentialBackoff(tt.attempt))
	}
}

func TestFetchCatalog_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	rows, err := client.FetchCatalog(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Jiboia", rows[0].Name)
	assert.Equal(t, "jiboia verde|epipremnum", rows[0].Aliases)
	assert.Equal(t, "49,90", rows[0].Price)
	assert.Equal(t, "12", rows[0].Stock)
	assert.Equal(t, "pote 14", rows[0].PotSize)
	assert.Equal(t, "luz indireta", rows[0].Light)
	assert.Equal(t, "1x por semana", rows[0].Watering)
	assert.Equal(t, "tóxica", rows[0].PetSafety)
	assert.Equal(t, "cresce rápido", rows[0].Notes)

	assert.Equal(t, "Samambaia", rows[1].Name)
	assert.Empty(t, rows[1].Aliases)
	assert.Empty(t, rows[1].Notes)
}

func TestFetchCatalog_HeaderTolerance(t *testing.T) {
	// Reordered, accented, mixed-case headers still map onto the
	// expected fields; unknown columns are ignored.
	csvBody := "Preço,Nome Popular,Categoria,Apelidos\n\"12,5\",Suculenta,interna,cacto\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(csvBody))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	rows, err := client.FetchCatalog(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Suculenta", rows[0].Name)
	assert.Equal(t, "12,5", rows[0].Price)
	assert.Equal(t, "cacto", rows[0].Aliases)
	// Columns absent from the sheet default to empty, never an error.
	assert.Empty(t, rows[0].Stock)
	assert.Empty(t, rows[0].Light)
}

func TestFetchCatalog_ServerError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	rows, err := client.FetchCatalog(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogFetch)
	assert.Nil(t, rows)
	assert.Equal(t, 3, calls, "transient failures are retried 3 times")
}

func TestFetchCatalog_RecoversAfterTransientError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	rows, err := client.FetchCatalog(context.Background())

	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 2, calls)
}

func TestParseCatalog_EmptyBody(t *testing.T) {
	_, err := parseCatalog(strings.NewReader(""))
	require.Error(t, err)
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Nome Popular", "nome_popular"},
		{"PREÇO", "preco"},
		{" observações ", "observacoes"},
		{"apelidos", "apelidos"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeHeader(tt.in))
	}
}
