package authorization

import (
	"context"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-finances/internal/application/mediator"
)

func Requests() []reflect.Type {
	return []reflect.Type{
		mediator.TypeOf[CreateAccount](),
		mediator.TypeOf[SignIn](),
		mediator.TypeOf[RefreshSession](),
		mediator.TypeOf[SignOut](),
		mediator.TypeOf[UploadUserImage](),
	}
}

func Register(m *mediator.Mediator, v *validator.Validate, s *Service) error {
	if err := mediator.Register(m, mediator.HandlerFunc[CreateAccount, AccountCreated](s.CreateAccount), mediator.Rules[CreateAccount](v)); err != nil {
		return err
	}
	if err := mediator.Register(m, mediator.HandlerFunc[SignIn, Session](s.SignIn), mediator.Rules[SignIn](v)); err != nil {
		return err
	}
	if err := mediator.Register(m, mediator.HandlerFunc[RefreshSession, Session](s.RefreshSession), mediator.Rules[RefreshSession](v)); err != nil {
		return err
	}
	if err := mediator.Register(m, mediator.HandlerFunc[SignOut, Empty](s.SignOut), mediator.Rules[SignOut](v)); err != nil {
		return err
	}
	return mediator.Register(m, mediator.HandlerFunc[UploadUserImage, ImageUploaded](s.UploadUserImage), mediator.Rules[UploadUserImage](v, requireBody))
}

func requireBody(_ context.Context, req UploadUserImage) []mediator.Violation {
	if req.Body == nil {
		return []mediator.Violation{{Field: "file", Tag: "required", Message: "is required"}}
	}
	return nil
}
