package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-finances/internal/application/mediator"
)

func TestStatusFor(t *testing.T) {
	cases := map[mediator.Kind]int{
		mediator.KindValidation:    http.StatusBadRequest,
		mediator.KindUnauthorized:  http.StatusUnauthorized,
		mediator.KindDuplicate:     http.StatusConflict,
		mediator.KindNotFound:      http.StatusNotFound,
		mediator.KindStorage:       http.StatusInternalServerError,
		mediator.KindCanceled:      http.StatusRequestTimeout,
		mediator.KindConfiguration: http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := StatusFor(kind); got != want {
			t.Errorf("%s: expected %d, got %d", kind, want, got)
		}
	}
}

func TestReplyCarriesViolations(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	res := mediator.Response[string]{
		Kind:       mediator.KindValidation,
		Message:    "invalid request: name is required",
		Violations: []mediator.Violation{{Field: "name", Tag: "required", Message: "is required"}},
	}
	reply(c, http.StatusCreated, res)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", w.Code)
	}
	var body struct {
		Success bool                 `json:"success"`
		Message string               `json:"message"`
		Error   []mediator.Violation `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Success || len(body.Error) != 1 || body.Error[0].Field != "name" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestReplySuccessUsesGivenStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	reply(c, http.StatusCreated, mediator.OK("created", map[string]string{"id": "x"}))
	if w.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d", w.Code)
	}
}
