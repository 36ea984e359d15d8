package validation

import (
	"errors"
	"testing"
)

type sample struct {
	Name      string        `json:"name" validate:"required"`
	TaxNumber string        `json:"taxNumber" validate:"required,taxnumber"`
	Nested    *sampleNested `json:"nested"`
}

type sampleNested struct {
	Code string `json:"code" validate:"required,numeric"`
}

func TestFieldErrorsUsesJSONNamesAndAliases(t *testing.T) {
	v := New()
	err := v.Struct(sample{TaxNumber: "12ab", Nested: &sampleNested{Code: "x"}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	got := FieldErrors(err)
	if len(got) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %+v", len(got), got)
	}
	byField := map[string]ValidationsError{}
	for _, fe := range got {
		byField[fe.Field] = fe
	}
	if fe, ok := byField["name"]; !ok || fe.Message != "is required" {
		t.Fatalf("name: got %+v", byField["name"])
	}
	if fe, ok := byField["taxNumber"]; !ok || fe.Tag != "taxnumber" {
		t.Fatalf("taxNumber: got %+v", byField["taxNumber"])
	}
	if fe, ok := byField["nested.code"]; !ok || fe.Message != "must be numeric" {
		t.Fatalf("nested.code: got %+v", byField["nested.code"])
	}
}

func TestFieldErrorsNilAndForeignErrors(t *testing.T) {
	if FieldErrors(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
	got := FieldErrors(errors.New("boom"))
	if len(got) != 1 || got[0].Field != "payload" {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestToDetailsInvalidJSON(t *testing.T) {
	details := ToDetails(errors.New("plain"))
	if details["payload"] != "invalid payload" {
		t.Fatalf("unexpected details: %v", details)
	}
}
