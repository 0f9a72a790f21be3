package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/florabot/backend/config"
	"github.com/florabot/backend/internal/domain"
	"github.com/florabot/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// staticCatalog serves a fixed in-memory catalog.
type staticCatalog struct {
	rows []domain.CatalogRow
}

func (s *staticCatalog) Rows(ctx context.Context) ([]domain.CatalogRow, error) {
	return s.rows, nil
}

func setupTestRouter() *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}

	catalog := &staticCatalog{rows: []domain.CatalogRow{
		{Name: "Samambaia", Price: "25", SearchText: usecase.Normalize("Samambaia | ")},
		{Name: "Suculenta", Price: "12,5", SearchText: usecase.Normalize("Suculenta | ")},
	}}

	chatService := usecase.NewChatService(
		catalog,
		usecase.NewResolver(usecase.ResolverConfig{}),
		usecase.ChatServiceConfig{},
	)

	return SetupRouter(cfg, NewHandler(chatService))
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", response["status"])
	}
}

func TestChatEndpoint(t *testing.T) {
	router := setupTestRouter()

	t.Run("answers a price question", func(t *testing.T) {
		body := strings.NewReader(`{"message": "quanto custa a samambaia"}`)
		req, _ := http.NewRequest("POST", "/api/v1/chat", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
		}

		var reply domain.Reply
		if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
			t.Fatalf("Failed to unmarshal reply: %v", err)
		}
		if !strings.Contains(reply.Text, "Samambaia") || !strings.Contains(reply.Text, "R$ 25,00") {
			t.Errorf("reply = %q, want product answer with formatted price", reply.Text)
		}
	})

	t.Run("unknown product gets a friendly follow-up", func(t *testing.T) {
		body := strings.NewReader(`{"message": "quanto custa o xyzqwkj"}`)
		req, _ := http.NewRequest("POST", "/api/v1/chat", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var reply domain.Reply
		if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
			t.Fatalf("Failed to unmarshal reply: %v", err)
		}
		if reply.FollowUp == "" {
			t.Error("no-match reply should carry a follow-up prompt")
		}
	})

	t.Run("missing message is a bad request", func(t *testing.T) {
		body := strings.NewReader(`{}`)
		req, _ := http.NewRequest("POST", "/api/v1/chat", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}
