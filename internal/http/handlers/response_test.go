package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tbourn/foodgram-backend/internal/services"
)

func Test_fail_500_LogsCauseAndBody(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	r := newEngine(0)
	r.Use(func(c *gin.Context) {
		c.Set("logger", &logger)
		c.Next()
	})
	r.GET("/boom", func(c *gin.Context) {
		serviceError(c, errors.New("disk on fire"))
	})

	w := do(r, http.MethodGet, "/boom", nil)
	er := expectError(t, w, http.StatusInternalServerError, ErrCodeInternal)
	if er.Message != "internal server error" {
		t.Fatalf("message=%q", er.Message)
	}

	logs := buf.String()
	if !strings.Contains(logs, `"level":"error"`) || !strings.Contains(logs, "disk on fire") {
		t.Fatalf("expected error log with cause, got: %s", logs)
	}
}

func Test_fail_4xx_NotLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	r := newEngine(0)
	r.Use(func(c *gin.Context) {
		c.Set("logger", &logger)
		c.Next()
	})
	r.GET("/missing", func(c *gin.Context) {
		Fail(c, http.StatusNotFound, ErrCodeNotFound, "nope")
	})

	er := expectError(t, do(r, http.MethodGet, "/missing", nil), http.StatusNotFound, ErrCodeNotFound)
	if er.Message != "nope" || er.Fields != nil {
		t.Fatalf("body=%+v", er)
	}
	if buf.Len() != 0 {
		t.Fatalf("4xx should not be logged: %s", buf.String())
	}
}

func Test_serviceError_WrappedSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
		field  string
	}{
		{fmt.Errorf("load: %w", services.ErrRecipeNotFound), http.StatusNotFound, ErrCodeNotFound, ""},
		{services.ErrForbidden, http.StatusForbidden, ErrCodeForbidden, ""},
		{services.ErrUsernameTaken, http.StatusBadRequest, ErrCodeUsernameTaken, "username"},
		{services.ErrReservedUsername, http.StatusBadRequest, ErrCodeValidation, "username"},
		{services.ErrInvalidImage, http.StatusBadRequest, ErrCodeValidation, "image"},
		{fmt.Errorf("%w: leading zero", services.ErrInvalidShortLink), http.StatusBadRequest, ErrCodeInvalidShortLink, ""},
		{services.ErrIdempotencyConflict, http.StatusConflict, ErrCodeConflict, ""},
		{fmt.Errorf("create: %w", services.ErrUnknownAccount), http.StatusUnauthorized, ErrCodeUnauthorized, ""},
	}
	for _, tc := range cases {
		r := newEngine(0)
		r.GET("/x", func(c *gin.Context) { serviceError(c, tc.err) })

		er := expectError(t, do(r, http.MethodGet, "/x", nil), tc.status, tc.code)
		if tc.field != "" && er.Fields[tc.field] == "" {
			t.Errorf("%v: want field %q, got %v", tc.err, tc.field, er.Fields)
		}
		if tc.field == "" && er.Fields != nil {
			t.Errorf("%v: unexpected fields %v", tc.err, er.Fields)
		}
	}
}

func Test_successHelpers(t *testing.T) {
	r := newEngine(0)
	r.GET("/ok", func(c *gin.Context) { ok(c, http.StatusCreated, gin.H{"id": 1}) })
	r.DELETE("/gone", noContent)

	w := do(r, http.MethodGet, "/ok", nil)
	if w.Code != http.StatusCreated || decode[map[string]any](t, w)["id"] != float64(1) {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	w = do(r, http.MethodDelete, "/gone", nil)
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
}

func Test_clampPagination(t *testing.T) {
	h := newHandlers(t, Deps{PageSize: 6, MaxPageSize: 20})
	cases := []struct {
		query      string
		page, size int
	}{
		{"", 1, 6},
		{"page=3&limit=10", 3, 10},
		{"page=-1&limit=0", 1, 1},
		{"page=abc&limit=500", 1, 20},
	}
	for _, tc := range cases {
		var page, size int
		r := newEngine(0)
		r.GET("/p", func(c *gin.Context) { page, size = h.clampPagination(c) })
		do(r, http.MethodGet, "/p?"+tc.query, nil)
		if page != tc.page || size != tc.size {
			t.Errorf("%q: got (%d,%d) want (%d,%d)", tc.query, page, size, tc.page, tc.size)
		}
	}
}
