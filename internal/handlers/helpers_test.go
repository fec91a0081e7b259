package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"confeitaria/internal/dates"
	"confeitaria/internal/middleware"
	"confeitaria/internal/models"
	"confeitaria/internal/pagination"
	"confeitaria/internal/services"
	"confeitaria/internal/validator"
)

const (
	testUserID  = "0190a4c2-0000-7000-8000-000000000001"
	testOtherID = "0190a4c2-0000-7000-8000-0000000000ff"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// --- mock activity service ---

type mockActivityService struct {
	mu      sync.Mutex
	entries []services.ActivityEntry
	listFn  func(userID string, filter services.ActivityFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Activity], error)
}

func (m *mockActivityService) Log(entry services.ActivityEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
}

func (m *mockActivityService) ListActivities(userID string, filter services.ActivityFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Activity], error) {
	if m.listFn != nil {
		return m.listFn(userID, filter, page)
	}
	resp := pagination.NewPageResponse([]models.Activity{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockActivityService) logged() []services.ActivityEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]services.ActivityEntry(nil), m.entries...)
}

var _ services.ActivityServicer = (*mockActivityService)(nil)

// --- test helpers ---

// testClock is fixed at Wednesday 2024-06-12 15:00 UTC (12:00 in São Paulo).
func testClock() *dates.Clock {
	return dates.NewClock("America/Sao_Paulo").WithNow(func() time.Time {
		return time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)
	})
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	if _, ok := result["error"].(string); !ok {
		t.Fatalf("expected error message in response, got: %v", result)
	}
	if result["code"] != code {
		t.Errorf("expected error code %q, got %q", code, result["code"])
	}
}
