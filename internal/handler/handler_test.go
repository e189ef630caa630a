package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newCtx(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestPagination(t *testing.T) {
	cases := []struct {
		name         string
		target       string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "/", 1, 20},
		{"explicit", "/?page=3&page_size=50", 3, 50},
		{"capped at 100", "/?page_size=500", 1, 100},
		{"zero ignored", "/?page=0&page_size=0", 1, 20},
		{"negative ignored", "/?page=-2&page_size=-5", 1, 20},
		{"garbage ignored", "/?page=abc&page_size=xyz", 1, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, pageSize := pagination(newCtx(tc.target))
			if page != tc.wantPage || pageSize != tc.wantPageSize {
				t.Errorf("pagination(%q) = (%d, %d), want (%d, %d)",
					tc.target, page, pageSize, tc.wantPage, tc.wantPageSize)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	c := newCtx("/")
	c.SetParamNames("id")
	c.SetParamValues("1234")
	id, err := pathID(c, "id")
	if err != nil || id != 1234 {
		t.Errorf("pathID = (%d, %v), want (1234, nil)", id, err)
	}

	for _, bad := range []string{"", "abc", "-1", "1.5"} {
		c := newCtx("/")
		c.SetParamNames("id")
		c.SetParamValues(bad)
		if _, err := pathID(c, "id"); err == nil {
			t.Errorf("pathID accepted %q", bad)
		}
	}
}
