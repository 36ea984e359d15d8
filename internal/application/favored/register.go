package favored

import (
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-finances/internal/application/mediator"
)

// Requests lists the request types served by this package.
func Requests() []reflect.Type {
	return []reflect.Type{
		mediator.TypeOf[CreateFavored](),
		mediator.TypeOf[GetFavoredsByUserId](),
		mediator.TypeOf[SearchFavoreds](),
	}
}

func Register(m *mediator.Mediator, v *validator.Validate, s *Service) error {
	if err := mediator.Register(m, mediator.HandlerFunc[CreateFavored, Registered](s.CreateFavored), mediator.Rules[CreateFavored](v)); err != nil {
		return err
	}
	if err := mediator.Register(m, mediator.HandlerFunc[GetFavoredsByUserId, []View](s.GetFavoredsByUserId), mediator.Rules[GetFavoredsByUserId](v)); err != nil {
		return err
	}
	return mediator.Register(m, mediator.HandlerFunc[SearchFavoreds, []Document](s.SearchFavoreds), mediator.Rules[SearchFavoreds](v))
}
