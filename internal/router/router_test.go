package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-finances/config"
	"github.com/oksasatya/go-finances/internal/application"
	"github.com/oksasatya/go-finances/internal/application/event"
	"github.com/oksasatya/go-finances/internal/container"
	"github.com/oksasatya/go-finances/internal/infrastructure/memory"
	"github.com/oksasatya/go-finances/internal/infrastructure/session"
	"github.com/oksasatya/go-finances/pkg/helpers"
)

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	store := memory.NewStore()
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	sessions := session.NewIssuer(jwt, nil, logger)

	m, err := application.Build(application.Deps{
		Users:     store.Users(),
		Favoreds:  store.Favoreds(),
		Incomings: store.Incomings(),
		Expenses:  store.Expenses(),
		UoW:       store,
		Hasher:    helpers.BcryptHasher{Cost: bcrypt.MinCost},
		Tokens:    sessions,
		Events:    event.NewBus(logger, time.Second),
		Logger:    logger,
	})
	if err != nil {
		t.Fatal(err)
	}

	container.SetConfig(&config.Config{CookieDomain: "localhost", RateLimitMax: 100, RateLimitWindow: time.Minute})
	container.SetLogger(logger)
	container.SetRedis(nil)
	container.SetMediator(m)
	container.SetSessions(sessions)

	r := gin.New()
	reg := NewRegistry(r)
	if err := InitModules(reg); err != nil {
		t.Fatal(err)
	}
	reg.RegisterAll()
	return r
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env
}

func signUpAndIn(t *testing.T, r http.Handler) (userID, token string) {
	t.Helper()
	code, env := do(t, r, http.MethodPost, "/api/accounts", "", map[string]any{
		"username": "ana", "password": "correct-horse", "firstName": "Ana", "lastName": "Silva",
		"age": 30, "taxNumber": "12345678901", "phoneNumber": "+5511999990000", "email": "ana@example.com",
	})
	if code != http.StatusCreated {
		t.Fatalf("sign up: %d %+v", code, env)
	}
	code, env = do(t, r, http.MethodPost, "/api/signin", "", map[string]string{"username": "ana", "password": "correct-horse"})
	if code != http.StatusOK {
		t.Fatalf("sign in: %d %+v", code, env)
	}
	var sess struct {
		UserID string `json:"userId"`
		Token  string `json:"token"`
	}
	_ = json.Unmarshal(env.Data, &sess)
	return sess.UserID, sess.Token
}

func TestAccountLifecycle(t *testing.T) {
	r := newServer(t)
	_, token := signUpAndIn(t, r)

	code, env := do(t, r, http.MethodPost, "/api/accounts", "", map[string]any{
		"username": "ana", "password": "correct-horse", "firstName": "Ana", "lastName": "Silva",
		"age": 30, "taxNumber": "12345678901", "phoneNumber": "+5511999990000",
	})
	if code != http.StatusConflict || env.Success {
		t.Fatalf("duplicate sign up: %d %+v", code, env)
	}

	code, _ = do(t, r, http.MethodPost, "/api/signin", "", map[string]string{"username": "ana", "password": "wrong-password"})
	if code != http.StatusUnauthorized {
		t.Fatalf("bad password: %d", code)
	}

	code, _ = do(t, r, http.MethodPost, "/api/signout", token, nil)
	if code != http.StatusOK {
		t.Fatalf("sign out: %d", code)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	r := newServer(t)
	for _, path := range []string{"/api/favoreds", "/api/incomings", "/api/expenses", "/api/favoreds/search?q=x"} {
		if code, _ := do(t, r, http.MethodGet, path, "", nil); code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, code)
		}
	}
}

func TestFavoredFlow(t *testing.T) {
	r := newServer(t)
	_, token := signUpAndIn(t, r)

	fav := map[string]any{
		"name": "Maria", "taxNumber": "98765432100",
		"account": map[string]string{"bank": "001", "bankBranch": "1234", "bankAccount": "111", "bankAccountDigit": "1"},
	}
	code, env := do(t, r, http.MethodPost, "/api/favoreds", token, fav)
	if code != http.StatusCreated {
		t.Fatalf("create favored: %d %+v", code, env)
	}
	code, env = do(t, r, http.MethodPost, "/api/favoreds", token, fav)
	if code != http.StatusConflict {
		t.Fatalf("repeat favored: %d %+v", code, env)
	}

	code, env = do(t, r, http.MethodGet, "/api/favoreds", token, nil)
	var views []map[string]any
	_ = json.Unmarshal(env.Data, &views)
	if code != http.StatusOK || len(views) != 1 {
		t.Fatalf("list favoreds: %d %s", code, env.Data)
	}

	code, env = do(t, r, http.MethodGet, "/api/favoreds/search?q=mar&size=5", token, nil)
	var docs []map[string]any
	_ = json.Unmarshal(env.Data, &docs)
	if code != http.StatusOK || len(docs) != 1 {
		t.Fatalf("search favoreds: %d %s", code, env.Data)
	}

	code, _ = do(t, r, http.MethodGet, "/api/favoreds/search?q=mar&size=abc", token, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("bad size: %d", code)
	}
}

func TestFinanceFlow(t *testing.T) {
	r := newServer(t)
	_, token := signUpAndIn(t, r)

	code, env := do(t, r, http.MethodPost, "/api/incomings", token, map[string]any{
		"description": "salary", "amountCents": 500000, "receivedOn": "2024-05-05",
	})
	if code != http.StatusCreated {
		t.Fatalf("create incoming: %d %+v", code, env)
	}
	code, env = do(t, r, http.MethodPost, "/api/expenses", token, map[string]any{
		"description": "rent", "amountCents": 0, "spentOn": "05/05/2024",
	})
	if code != http.StatusBadRequest || env.Success {
		t.Fatalf("invalid expense: %d %+v", code, env)
	}

	code, env = do(t, r, http.MethodGet, "/api/incomings", token, nil)
	var incomings []map[string]any
	_ = json.Unmarshal(env.Data, &incomings)
	if code != http.StatusOK || len(incomings) != 1 {
		t.Fatalf("list incomings: %d %s", code, env.Data)
	}

	code, env = do(t, r, http.MethodGet, "/api/expenses", token, nil)
	if code != http.StatusOK || string(env.Data) != "[]" {
		t.Fatalf("empty expenses must be an empty list: %d %s", code, env.Data)
	}
}

func TestUploadImageWithoutStorage(t *testing.T) {
	r := newServer(t)
	_, token := signUpAndIn(t, r)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "me.png")
	_, _ = part.Write([]byte("png"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/profile/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// CreateFormFile sends application/octet-stream, which fails validation first.
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
}

type stubModule struct{ name string }

func (s stubModule) Name() string { return s.name }

func (s stubModule) Register(rg *gin.RouterGroup) {
	rg.GET("/"+s.name, func(c *gin.Context) { c.Status(http.StatusNoContent) })
}

func TestRegistryRejectsDuplicateModules(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reg := NewRegistry(r)
	if err := reg.Add(stubModule{"ping"}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Add(stubModule{"ping"}); !errors.Is(err, ErrDuplicateModule) {
		t.Fatalf("expected ErrDuplicateModule, got %v", err)
	}
	reg.RegisterAll()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, APIPrefix+"/ping", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if got := reg.Modules(); len(got) != 1 || got[0] != "ping" {
		t.Fatalf("unexpected modules %v", got)
	}
}
