package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/utils"
)

const testSecret = "unit-test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 42, "USER", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	rec, c := runJWT(t, "Bearer "+at.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}
	if got, ok := c.Get("user_id").(uint64); !ok || got != 42 {
		t.Errorf("user_id = %v, want uint64 42", c.Get("user_id"))
	}
	if got, ok := c.Get("role").(string); !ok || got != "USER" {
		t.Errorf("role = %v, want USER", c.Get("role"))
	}
}

func TestJWTAuthRejects(t *testing.T) {
	other, err := utils.NewAccessToken("another-secret", 42, "USER", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + other.Token},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := runJWT(t, tc.header)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		role    interface{}
		allowed []string
		want    int
	}{
		{"allowed role", "STAFF", []string{"STAFF"}, http.StatusOK},
		{"one of several", "USER", []string{"USER", "STAFF"}, http.StatusOK},
		{"wrong role", "USER", []string{"STAFF"}, http.StatusForbidden},
		{"missing role", nil, []string{"STAFF"}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != nil {
				c.Set("role", tc.role)
			}

			h := RequireRole(tc.allowed...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := h(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}
