package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"confeitaria/internal/config"
	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
	config.Set(&config.Config{JWTSecret: testSecret})
}

func testUser() *models.User {
	return &models.User{Base: models.Base{ID: "0190a4c2-0000-7000-8000-000000000001"}, Email: "ana@example.com"}
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func setupAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(UserIDKey), "email": c.GetString(EmailKey)})
	})
	return r
}

func doAuthRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", http.NoBody)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	r := setupAuthRouter()
	access, err := GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("failed to sign access token: %v", err)
	}
	refresh, err := GenerateRefreshToken(testUser())
	if err != nil {
		t.Fatalf("failed to sign refresh token: %v", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{
		UserID:    testUser().ID,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredToken, _ := expired.SignedString([]byte(testSecret))

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{UserID: testUser().ID, TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer}})
	foreignToken, _ := foreign.SignedString([]byte("other-secret"))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid_access_token", header: "Bearer " + access, wantStatus: http.StatusOK},
		{name: "missing_header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong_scheme", header: "Token " + access, wantStatus: http.StatusUnauthorized},
		{name: "refresh_token_rejected", header: "Bearer " + refresh, wantStatus: http.StatusUnauthorized},
		{name: "expired_token", header: "Bearer " + expiredToken, wantStatus: http.StatusUnauthorized},
		{name: "wrong_signature", header: "Bearer " + foreignToken, wantStatus: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doAuthRequest(r, tt.header)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			body := parseBody(t, rec)
			if tt.wantStatus == http.StatusOK {
				if body["user_id"] != testUser().ID || body["email"] != "ana@example.com" {
					t.Errorf("unexpected identity %v", body)
				}
				return
			}
			if body["code"] != "UNAUTHORIZED" {
				t.Errorf("expected UNAUTHORIZED code, got %v", body["code"])
			}
		})
	}
}

func TestValidateRefreshToken(t *testing.T) {
	t.Run("accepts_refresh_token", func(t *testing.T) {
		token, _ := GenerateRefreshToken(testUser())
		claims, err := ValidateRefreshToken(token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.UserID != testUser().ID {
			t.Errorf("expected user id %s, got %s", testUser().ID, claims.UserID)
		}
	})

	t.Run("rejects_access_token", func(t *testing.T) {
		token, _ := GenerateAccessToken(testUser())
		if _, err := ValidateRefreshToken(token); err == nil {
			t.Fatal("expected error for access token")
		}
	})
}

func TestHashToken(t *testing.T) {
	a, b := HashToken("abc"), HashToken("abc")
	if a != b || len(a) != 64 {
		t.Errorf("expected stable 64-char digest, got %q and %q", a, b)
	}
	if HashToken("abd") == a {
		t.Error("expected different digests for different tokens")
	}
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		_ = c.Error(apperrors.ErrOrderNotFound)
	})
	r.GET("/wrapped", func(c *gin.Context) {
		_ = c.Error(apperrors.Wrap(apperrors.ErrInternalServer, errors.New("pq: connection refused")))
	})
	r.GET("/plain", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})

	tests := []struct {
		path       string
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"/app", http.StatusNotFound, "NOT_FOUND", "Pedido não encontrado"},
		{"/wrapped", http.StatusInternalServerError, "INTERNAL_ERROR", "Erro interno do servidor"},
		{"/plain", http.StatusInternalServerError, "INTERNAL_ERROR", "Erro interno do servidor"},
	}
	for _, tt := range tests {
		t.Run(tt.path[1:], func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			body := parseBody(t, rec)
			if body["code"] != tt.wantCode || body["error"] != tt.wantMsg {
				t.Errorf("unexpected body %v", body)
			}
		})
	}
}

func TestRequestLogging(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("generates_request_id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		if len(rec.Header().Get("X-Request-ID")) != 36 {
			t.Errorf("expected uuid request id, got %q", rec.Header().Get("X-Request-ID"))
		}
	})

	t.Run("keeps_incoming_request_id", func(t *testing.T) {
		id := "7d444840-9dc0-11d1-b245-5ffdce74fad2"
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		req.Header.Set("X-Request-ID", id)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Header().Get("X-Request-ID") != id {
			t.Errorf("expected %s, got %s", id, rec.Header().Get("X-Request-ID"))
		}
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("https://painel.example.com"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", http.NoBody))
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://painel.example.com" {
		t.Error("expected allowed origin header")
	}
}
