package mediator

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-finances/pkg/validation"
)

// RuleSet validates one request type before its handler runs.
type RuleSet[Req any] interface {
	Validate(ctx context.Context, req Req) []Violation
}

// Check is a request specific rule evaluated after the struct tags pass.
type Check[Req any] func(ctx context.Context, req Req) []Violation

type structRules[Req any] struct {
	v      *validator.Validate
	checks []Check[Req]
}

// Rules validates the request's `validate` struct tags and then runs checks in order.
func Rules[Req any](v *validator.Validate, checks ...Check[Req]) RuleSet[Req] {
	return structRules[Req]{v: v, checks: checks}
}

func (r structRules[Req]) Validate(ctx context.Context, req Req) []Violation {
	if err := r.v.StructCtx(ctx, req); err != nil {
		return validation.FieldErrors(err)
	}
	var out []Violation
	for _, check := range r.checks {
		out = append(out, check(ctx, req)...)
	}
	return out
}

type noRules[Req any] struct{}

func (noRules[Req]) Validate(context.Context, Req) []Violation { return nil }

// NoRules is the explicit empty rule-set for requests that need no validation.
func NoRules[Req any]() RuleSet[Req] { return noRules[Req]{} }
