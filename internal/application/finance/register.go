package finance

import (
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-finances/internal/application/mediator"
)

func Requests() []reflect.Type {
	return []reflect.Type{
		mediator.TypeOf[CreateIncoming](),
		mediator.TypeOf[GetIncomingsByUserId](),
		mediator.TypeOf[CreateExpense](),
		mediator.TypeOf[GetExpensesByUserId](),
	}
}

func Register(m *mediator.Mediator, v *validator.Validate, s *Service) error {
	if err := mediator.Register(m, mediator.HandlerFunc[CreateIncoming, Created](s.CreateIncoming), mediator.Rules[CreateIncoming](v)); err != nil {
		return err
	}
	if err := mediator.Register(m, mediator.HandlerFunc[GetIncomingsByUserId, []IncomingView](s.GetIncomingsByUserId), mediator.Rules[GetIncomingsByUserId](v)); err != nil {
		return err
	}
	if err := mediator.Register(m, mediator.HandlerFunc[CreateExpense, Created](s.CreateExpense), mediator.Rules[CreateExpense](v)); err != nil {
		return err
	}
	return mediator.Register(m, mediator.HandlerFunc[GetExpensesByUserId, []ExpenseView](s.GetExpensesByUserId), mediator.Rules[GetExpensesByUserId](v))
}
