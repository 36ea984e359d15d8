package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/oksasatya/go-finances/internal/application/authorization"
	"github.com/oksasatya/go-finances/pkg/helpers"
)

type stubSessions map[string]string

func (s stubSessions) Validate(_ context.Context, token string) (string, error) {
	if token == "broken" {
		return "", errors.New("redis down")
	}
	if uid, ok := s[token]; ok {
		return uid, nil
	}
	return "", authorization.ErrInvalidSession
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey))
	})
	return r
}

func TestAuthAcceptsBearerAndCookie(t *testing.T) {
	logger, _ := test.NewNullLogger()
	r := newEngine(Auth(stubSessions{"tok": "u-1"}, logger))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "u-1" {
		t.Fatalf("bearer: %d %q", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: helpers.AccessCookie, Value: "tok"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "u-1" {
		t.Fatalf("cookie: %d %q", w.Code, w.Body.String())
	}
}

func TestAuthRejections(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := newEngine(Auth(stubSessions{"tok": "u-1"}, logger))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"unknown", "Bearer nope", http.StatusUnauthorized},
		{"wrong scheme", "Basic tok", http.StatusUnauthorized},
		{"store down", "Bearer broken", http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}
	if hook.LastEntry() == nil || hook.LastEntry().Message != "session lookup failed" {
		t.Fatal("store failures must be logged")
	}
}

func TestRequestIDHonorsCaller(t *testing.T) {
	r := newEngine(RequestIDMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("expected caller id, got %q", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	if got := w.Header().Get(RequestIDHeader); len(got) != 36 {
		t.Fatalf("expected a generated uuid, got %q", got)
	}
}

func TestRealIPPrefersCloudflareThenForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RealIP())
	r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, ipFromCtx(c)) })

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("CF-Connecting-IP", "203.0.113.7")
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "203.0.113.7" {
		t.Fatalf("unexpected ip %q", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "198.51.100.1" {
		t.Fatalf("unexpected ip %q", w.Body.String())
	}
}

func TestRealIPSkipsUnparsableHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RealIP())
	r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, ipFromCtx(c)) })

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("CF-Connecting-IP", "not-an-ip")
	req.Header.Set("X-Real-IP", "192.0.2.44")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "192.0.2.44" {
		t.Fatalf("unexpected ip %q", w.Body.String())
	}
}

func TestRateLimitWithoutRedisIsDisabled(t *testing.T) {
	r := newEngine(RateLimit(nil, 1, time.Minute, KeyByIP(), nil))
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: %d", i, w.Code)
		}
	}
}

func TestKeyFuncs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/favoreds", nil)
	c.Set("real_ip", "10.1.2.3")

	if got := KeyByIP()(c); got != "rl:ip:10.1.2.3" {
		t.Fatalf("ip key %q", got)
	}
	if got := KeyByUserID()(c); got != "rl:user:anon:ip:10.1.2.3" {
		t.Fatalf("anon key %q", got)
	}
	c.Set(CtxUserIDKey, "u-1")
	if got := KeyByUserID()(c); got != "rl:user:u-1" {
		t.Fatalf("user key %q", got)
	}
	if !AllowPrivateIP()(c) {
		t.Fatal("10/8 must bypass")
	}
	if got := remaining(5, 7); got != 0 {
		t.Fatalf("remaining must not go negative, got %d", got)
	}
}

func TestAccessLogWritesOneEntry(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := newEngine(AccessLog(logger))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	if len(hook.Entries) != 1 || hook.LastEntry().Data["status"] != http.StatusOK || hook.LastEntry().Data["path"] != "/me" {
		t.Fatalf("unexpected log entries %+v", hook.Entries)
	}
}
