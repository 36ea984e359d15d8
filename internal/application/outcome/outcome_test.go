package outcome

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/oksasatya/go-finances/internal/application/mediator"
	"github.com/oksasatya/go-finances/internal/domain/repository"
)

func TestWriteConstraintIsLoggedAsWarning(t *testing.T) {
	logger, hook := test.NewNullLogger()
	err := &repository.StorageError{Kind: repository.ErrConstraint, Table: "users", Constraint: "users_pkey", Err: errors.New("duplicate key value")}

	res := Write[struct{}](logger, "create account", err)
	if res.Success || res.Kind != mediator.KindStorage || res.Message != MsgRejected {
		t.Fatalf("unexpected response %+v", res)
	}
	if hook.LastEntry().Level != logrus.WarnLevel || hook.LastEntry().Data["constraint"] != "users_pkey" {
		t.Fatalf("unexpected log entry %+v", hook.LastEntry())
	}
}

func TestWriteUnavailableHidesDetails(t *testing.T) {
	logger, hook := test.NewNullLogger()
	err := &repository.StorageError{Kind: repository.ErrUnavailable, Err: errors.New("dial tcp 10.0.0.1:5432: connection refused")}

	res := Write[struct{}](logger, "create favored", err)
	if res.Kind != mediator.KindStorage || res.Message != MsgServerError {
		t.Fatalf("unexpected response %+v", res)
	}
	if hook.LastEntry().Level != logrus.ErrorLevel {
		t.Fatalf("expected error log, got %v", hook.LastEntry().Level)
	}
}

func TestCanceledWrites(t *testing.T) {
	logger, _ := test.NewNullLogger()
	err := &repository.StorageError{Kind: repository.ErrUnavailable, Err: context.Canceled}
	if res := Write[struct{}](logger, "op", err); res.Kind != mediator.KindCanceled {
		t.Fatalf("expected canceled, got %+v", res)
	}
	if res := Read[struct{}](logger, "op", context.DeadlineExceeded); res.Kind != mediator.KindCanceled {
		t.Fatalf("expected canceled, got %+v", res)
	}
	if res := Read[struct{}](nil, "op", errors.New("boom")); res.Kind != mediator.KindStorage {
		t.Fatalf("expected storage, got %+v", res)
	}
}
