package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSuccessWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	Success(c, 0, map[string]string{"id": "x"}, "ok", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	var got APIResponse[map[string]string]
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if !got.Success || got.RequestID != "req-1" || got.Data["id"] != "x" || got.Status != http.StatusOK {
		t.Fatalf("unexpected envelope %+v", got)
	}
}

func TestErrorDefaultsToBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	resp := Error[any](c, 0, "invalid payload", map[string]string{"name": "is required"})

	if w.Code != http.StatusBadRequest || resp.Success {
		t.Fatalf("unexpected status %d", w.Code)
	}
	var got map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got["data"] != nil {
		t.Fatal("data must be null on errors")
	}
	if got["error"].(map[string]any)["name"] != "is required" {
		t.Fatalf("unexpected error field %v", got["error"])
	}
}
