package display

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func setupDisplayTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true

	h := NewHandler(svc)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api/state", h.State)
	r.GET("/api/roast", h.Roast)
	r.POST("/api/roast", h.Roast)
	r.POST("/api/bake", h.Bake)
	r.GET("/api/debug", h.Debug)

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"ok": false, "error": "method not allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
	})

	return r
}

// brokenRepository reads fine but refuses every write, standing in for a
// database outage on the save path.
type brokenRepository struct {
	*InMemoryRepository
}

func (r *brokenRepository) SaveState(ctx context.Context, s *State) error {
	return errors.New("connection refused")
}

func newBrokenService(now time.Time) *Service {
	svc := NewService(&brokenRepository{NewInMemoryRepository()}, testConfig())
	svc.now = func() time.Time { return now }
	return svc
}

func TestHealthEndpoint(t *testing.T) {
	svc, _ := newTestService(at(10, 0))
	router := setupDisplayTestRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRoastViaQueryParam(t *testing.T) {
	svc, repo := newTestService(at(10, 0))
	router := setupDisplayTestRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/roast?item=Honduras", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	st, _ := repo.LoadState(context.Background())
	if st.RoastCurrent != "Honduras" {
		t.Fatalf("expected roast persisted, got %q", st.RoastCurrent)
	}
}

func TestRoastViaJSONBody(t *testing.T) {
	svc, repo := newTestService(at(10, 0))
	router := setupDisplayTestRouter(svc)

	body := bytes.NewBufferString(`{"item":"Kenya AA"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/roast", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	st, _ := repo.LoadState(context.Background())
	if st.RoastCurrent != "Kenya AA" {
		t.Fatalf("expected roast persisted, got %q", st.RoastCurrent)
	}
}

func TestRoastMissingItem(t *testing.T) {
	svc, _ := newTestService(at(10, 0))
	router := setupDisplayTestRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/roast", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if ok, _ := resp["ok"].(bool); ok {
		t.Fatal("expected ok=false")
	}
}

func TestBakeInvalidJSON(t *testing.T) {
	svc, _ := newTestService(at(10, 0))
	router := setupDisplayTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/bake", bytes.NewBufferString(`{bad`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBakeItemsNotAList(t *testing.T) {
	svc, _ := newTestService(at(10, 0))
	router := setupDisplayTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/bake", bytes.NewBufferString(`{"source":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBakeSuccessReturnsCount(t *testing.T) {
	svc, _ := newTestService(at(10, 0))
	router := setupDisplayTestRouter(svc)

	body := bytes.NewBufferString(`{"items":["Croissant","croissant","Bagel"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/bake", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if count, _ := resp["count"].(float64); int(count) != 3 {
		t.Fatalf("expected count 3 (no dedup on the API path), got %v", resp["count"])
	}
}

func TestRoastPersistenceFailureIsServerError(t *testing.T) {
	router := setupDisplayTestRouter(newBrokenService(at(10, 0)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/roast?item=Honduras", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBakePersistenceFailureIsServerError(t *testing.T) {
	router := setupDisplayTestRouter(newBrokenService(at(10, 0)))

	body := bytes.NewBufferString(`{"items":["Croissant"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/bake", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBakeMethodNotAllowed(t *testing.T) {
	svc, _ := newTestService(at(10, 0))
	router := setupDisplayTestRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/bake", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestUnknownRouteNotFound(t *testing.T) {
	svc, _ := newTestService(at(10, 0))
	router := setupDisplayTestRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestStateEndpointShape(t *testing.T) {
	now := at(11, 0)
	svc, repo := newTestService(now)
	router := setupDisplayTestRouter(svc)

	seed := NewState()
	seed.Date = TodayKey(now)
	seed.BakeItems = []string{"a", "b", "c", "d", "e", "f"}
	seed.LastBakeTime = now.Add(-5 * time.Minute).Format(time.RFC3339)
	if err := repo.SaveState(context.Background(), seed); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var snap Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.BakingDisplayMode != ModeBaking {
		t.Fatalf("recent bake must report baking, got %s", snap.BakingDisplayMode)
	}
	if snap.BakeCurrentIndex != 3 {
		t.Fatalf("expected window index 3 at 11:00, got %d", snap.BakeCurrentIndex)
	}
}
