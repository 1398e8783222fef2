package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"mockmate/internal/domain"
	"mockmate/internal/service"
)

func newProtectedRouter(jwtSvc *service.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(jwtSvc), func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no claims"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": claims.Subject, "email": claims.Email})
	})
	return r
}

func doGet(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", "mockmate", "mockmate-web")
	router := newProtectedRouter(jwtSvc)

	token, err := jwtSvc.Generate(domain.User{ID: "u1", Email: "a@x.com", FullName: "Alice"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	rec := doGet(router, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["user_id"] != "u1" || body["email"] != "a@x.com" {
		t.Fatalf("unexpected claims in response: %v", body)
	}
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	router := newProtectedRouter(service.NewJWTService("secret", "mockmate", "mockmate-web"))

	rec := doGet(router, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", rec.Code)
	}
}

func TestJWTAuthMiddleware_MalformedHeader(t *testing.T) {
	router := newProtectedRouter(service.NewJWTService("secret", "mockmate", "mockmate-web"))

	rec := doGet(router, "Token abc")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer scheme, got %d", rec.Code)
	}
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", "mockmate", "mockmate-web")
	otherSvc := service.NewJWTService("other-secret", "mockmate", "mockmate-web")
	router := newProtectedRouter(jwtSvc)

	token, err := otherSvc.Generate(domain.User{ID: "u1", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	rec := doGet(router, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for foreign signature, got %d", rec.Code)
	}
}
