// Package mediator routes typed requests to exactly one handler after running
// the request's validation rules.
package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrDuplicateHandler = errors.New("handler already registered for request type")
	ErrMissingRules     = errors.New("rule set is required")
	ErrMissingHandler   = errors.New("handler is required")
	ErrNoHandler        = errors.New("no handler registered for request type")
)

// Handler executes the business logic of one request type.
type Handler[Req, Res any] interface {
	Handle(ctx context.Context, req Req) Response[Res]
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[Req, Res any] func(ctx context.Context, req Req) Response[Res]

func (f HandlerFunc[Req, Res]) Handle(ctx context.Context, req Req) Response[Res] {
	return f(ctx, req)
}

type route[Req, Res any] struct {
	handler Handler[Req, Res]
	rules   RuleSet[Req]
}

// Mediator holds the request routes. Register everything before serving;
// the route table is read without locking afterwards.
type Mediator struct {
	routes map[reflect.Type]any
	logger *logrus.Logger
	tracer trace.Tracer
}

func New(logger *logrus.Logger) *Mediator {
	return &Mediator{
		routes: make(map[reflect.Type]any),
		logger: logger,
		tracer: otel.Tracer("github.com/oksasatya/go-finances/mediator"),
	}
}

// TypeOf returns the routing key of a request type.
func TypeOf[Req any]() reflect.Type {
	return reflect.TypeOf((*Req)(nil)).Elem()
}

// Register binds the handler and rule set to Req. Registering a type twice is a configuration error.
func Register[Req, Res any](m *Mediator, h Handler[Req, Res], rules RuleSet[Req]) error {
	t := TypeOf[Req]()
	if h == nil {
		return fmt.Errorf("%s: %w", t, ErrMissingHandler)
	}
	if rules == nil {
		return fmt.Errorf("%s: %w", t, ErrMissingRules)
	}
	if _, exists := m.routes[t]; exists {
		return fmt.Errorf("%s: %w", t, ErrDuplicateHandler)
	}
	m.routes[t] = route[Req, Res]{handler: h, rules: rules}
	return nil
}

// Verify fails when any of the expected request types has no route.
func (m *Mediator) Verify(types ...reflect.Type) error {
	var missing []string
	for _, t := range types {
		if _, ok := m.routes[t]; !ok {
			missing = append(missing, t.String())
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrNoHandler, strings.Join(missing, ", "))
	}
	return nil
}

// Send validates req and dispatches it to its handler.
func Send[Req, Res any](ctx context.Context, m *Mediator, req Req) Response[Res] {
	t := TypeOf[Req]()
	name := t.Name()

	raw, ok := m.routes[t]
	if !ok {
		m.log().WithField("request", name).Error("no handler registered")
		return Fail[Res](KindConfiguration, "request type is not supported")
	}
	r, ok := raw.(route[Req, Res])
	if !ok {
		m.log().WithField("request", name).Error("handler registered with a different response type")
		return Fail[Res](KindConfiguration, "request type is not supported")
	}

	if err := ctx.Err(); err != nil {
		return Fail[Res](KindCanceled, "request canceled")
	}

	ctx, span := m.tracer.Start(ctx, "mediator.Send "+name, trace.WithAttributes(attribute.String("request.type", name)))
	defer span.End()
	start := time.Now()

	if violations := r.rules.Validate(ctx, req); len(violations) > 0 {
		span.SetAttributes(attribute.String("response.kind", string(KindValidation)))
		span.SetStatus(codes.Error, "validation failed")
		m.log().WithFields(logrus.Fields{"request": name, "violations": len(violations)}).Debug("request rejected by validation")
		return invalid[Res](violations)
	}

	res := r.handler.Handle(ctx, req)

	span.SetAttributes(attribute.Bool("response.success", res.Success), attribute.String("response.kind", string(res.Kind)))
	if !res.Success {
		span.SetStatus(codes.Error, res.Message)
	}
	m.log().WithFields(logrus.Fields{
		"request":  name,
		"success":  res.Success,
		"kind":     res.Kind,
		"duration": time.Since(start).String(),
	}).Debug("request handled")
	return res
}

func (m *Mediator) log() *logrus.Logger {
	if m.logger == nil {
		return logrus.StandardLogger()
	}
	return m.logger
}
