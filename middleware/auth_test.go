package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func authContext(t *testing.T, header string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}
	return c, w
}

func TestAuth_AcceptsIssuedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	c, _ := authContext(t, "Bearer "+token)
	Auth()(c)

	if c.IsAborted() {
		t.Fatalf("valid token must pass the middleware")
	}
	if UserID(c) != 42 {
		t.Fatalf("expected user id 42, got %d", UserID(c))
	}
}

func TestAuth_RejectsMissingOrMalformedHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	for _, header := range []string{"", "Token abc", "Bearer"} {
		c, w := authContext(t, header)
		Auth()(c)

		if !c.IsAborted() {
			t.Fatalf("header %q must be rejected", header)
		}
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestAuth_RejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	c, w := authContext(t, "Bearer "+token+"x")
	Auth()(c)

	if !c.IsAborted() {
		t.Fatalf("tampered token must be rejected")
	}
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
