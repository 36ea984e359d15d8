// Package outcome converts infrastructure errors into handler responses.
// Storage details go to the logs only; callers get a generic message.
package outcome

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-finances/internal/application/mediator"
	"github.com/oksasatya/go-finances/internal/domain/repository"
)

const (
	MsgServerError = "something went wrong on the server, please try again later"
	MsgRejected    = "the request could not be saved, please review the data and try again"
	MsgCanceled    = "request canceled"
)

// Write reports a failed commit. Constraint failures and transport failures
// share the caller-facing kind but are logged apart.
func Write[T any](logger *logrus.Logger, op string, err error) mediator.Response[T] {
	if canceled(err) {
		log(logger).WithError(err).WithField("op", op).Info("write abandoned: request canceled")
		return mediator.Fail[T](mediator.KindCanceled, MsgCanceled)
	}
	var se *repository.StorageError
	entry := log(logger).WithError(err).WithField("op", op)
	if errors.As(err, &se) {
		entry = entry.WithFields(logrus.Fields{"table": se.Table, "constraint": se.Constraint})
	}
	if repository.IsConstraint(err, "") {
		entry.Warn("write rejected by storage constraint")
		return mediator.Fail[T](mediator.KindStorage, MsgRejected)
	}
	entry.Error("write failed")
	return mediator.Fail[T](mediator.KindStorage, MsgServerError)
}

// Read reports a failed lookup that is not a plain "not found".
func Read[T any](logger *logrus.Logger, op string, err error) mediator.Response[T] {
	if canceled(err) {
		return mediator.Fail[T](mediator.KindCanceled, MsgCanceled)
	}
	log(logger).WithError(err).WithField("op", op).Error("read failed")
	return mediator.Fail[T](mediator.KindStorage, MsgServerError)
}

func canceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func log(l *logrus.Logger) *logrus.Logger {
	if l == nil {
		return logrus.StandardLogger()
	}
	return l
}
