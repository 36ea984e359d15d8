// Package authorization creates accounts and manages sign-in sessions.
package authorization

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-finances/internal/application/event"
	"github.com/oksasatya/go-finances/internal/application/mediator"
	"github.com/oksasatya/go-finances/internal/application/outcome"
	"github.com/oksasatya/go-finances/internal/domain/entity"
	"github.com/oksasatya/go-finances/internal/domain/repository"
)

var ErrInvalidSession = errors.New("invalid session")

const (
	msgUsernameTaken      = "a user with this username already exists"
	msgInvalidCredentials = "invalid username or password"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// TokenIssuer issues, rotates and revokes sessions. Refresh returns
// ErrInvalidSession for tokens that are malformed, expired or superseded.
type TokenIssuer interface {
	Issue(ctx context.Context, userID string) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
	Revoke(ctx context.Context, userID string) error
}

// ImageStore uploads an object and returns where it can be fetched.
type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type Service struct {
	Users  repository.UserRepository
	UoW    repository.UnitOfWork
	Hasher PasswordHasher
	Tokens TokenIssuer
	Images ImageStore // optional
	Events event.Publisher
	Logger *logrus.Logger

	Now   func() time.Time
	NewID func() string
}

func NewService(users repository.UserRepository, uow repository.UnitOfWork, hasher PasswordHasher, tokens TokenIssuer, events event.Publisher, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		Users:  users,
		UoW:    uow,
		Hasher: hasher,
		Tokens: tokens,
		Events: events,
		Logger: logger,
		Now:    func() time.Time { return time.Now().UTC() },
		NewID:  uuid.NewString,
	}
}

// CreateAccount writes the user, person, contact, their joins and the optional
// image in one batch. The username must not exist in any status.
func (s *Service) CreateAccount(ctx context.Context, req CreateAccount) mediator.Response[AccountCreated] {
	_, err := s.Users.GetByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return mediator.Fail[AccountCreated](mediator.KindDuplicate, msgUsernameTaken)
	case !errors.Is(err, repository.ErrNotFound):
		return outcome.Read[AccountCreated](s.Logger, "find user", err)
	}

	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		s.Logger.WithError(err).Error("hash password failed")
		return mediator.Fail[AccountCreated](mediator.KindStorage, outcome.MsgServerError)
	}

	user := entity.User{
		ID:           s.NewID(),
		Username:     req.Username,
		PasswordHash: hash,
		Status:       entity.StatusActive,
		CreatedAt:    s.Now(),
	}
	person := entity.Person{
		ID:        s.NewID(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Age:       req.Age,
		TaxNumber: req.TaxNumber,
		Gender:    req.Gender,
	}
	contact := entity.Contact{
		ID:          s.NewID(),
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	}
	batch := repository.NewBatch(
		user,
		person,
		entity.UserHasPerson{UserID: user.ID, PersonID: person.ID},
		contact,
		entity.PersonHasContact{PersonID: person.ID, ContactID: contact.ID},
	)
	if req.ImagePath != "" {
		batch.Add(entity.UserImage{ID: s.NewID(), UserID: user.ID, Path: req.ImagePath})
	}

	if err := s.UoW.Commit(ctx, batch); err != nil {
		// lost a race with a concurrent sign up
		if repository.IsConstraint(err, repository.UniqueUsername) {
			return mediator.Fail[AccountCreated](mediator.KindDuplicate, msgUsernameTaken)
		}
		return outcome.Write[AccountCreated](s.Logger, "create account", err)
	}

	if s.Events != nil {
		ev := event.UserCreated{ID: user.ID, Username: user.Username, FirstName: person.FirstName, Email: contact.Email}
		if err := s.Events.Publish(ctx, ev); err != nil {
			s.Logger.WithError(err).WithField("user_id", user.ID).Warn("post-commit event delivery failed")
		}
	}
	return mediator.OK("account created successfully", AccountCreated{UserID: user.ID})
}

// SignIn answers the same way for unknown users, wrong passwords and inactive users.
func (s *Service) SignIn(ctx context.Context, req SignIn) mediator.Response[Session] {
	u, err := s.Users.GetByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return outcome.Read[Session](s.Logger, "find user", err)
	}
	if err != nil || u.Status != entity.StatusActive || !s.Hasher.Compare(u.PasswordHash, req.Password) {
		return mediator.Fail[Session](mediator.KindUnauthorized, msgInvalidCredentials)
	}

	sess, err := s.Tokens.Issue(ctx, u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue session failed")
		return mediator.Fail[Session](mediator.KindStorage, outcome.MsgServerError)
	}
	return mediator.OK("signed in successfully", sess)
}

func (s *Service) RefreshSession(ctx context.Context, req RefreshSession) mediator.Response[Session] {
	sess, err := s.Tokens.Refresh(ctx, req.RefreshToken)
	if errors.Is(err, ErrInvalidSession) {
		return mediator.Fail[Session](mediator.KindUnauthorized, "invalid or expired refresh token")
	}
	if err != nil {
		s.Logger.WithError(err).Error("refresh session failed")
		return mediator.Fail[Session](mediator.KindStorage, outcome.MsgServerError)
	}
	if _, err := s.Users.GetByID(ctx, sess.UserID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return outcome.Read[Session](s.Logger, "find user", err)
		}
		_ = s.Tokens.Revoke(ctx, sess.UserID)
		return mediator.Fail[Session](mediator.KindUnauthorized, "invalid or expired refresh token")
	}
	return mediator.OK("session refreshed", sess)
}

func (s *Service) SignOut(ctx context.Context, req SignOut) mediator.Response[Empty] {
	if err := s.Tokens.Revoke(ctx, req.UserID); err != nil {
		s.Logger.WithError(err).WithField("user_id", req.UserID).Error("revoke session failed")
		return mediator.Fail[Empty](mediator.KindStorage, outcome.MsgServerError)
	}
	return mediator.OK("signed out", Empty{})
}

// UploadUserImage stores the object under avatars/<user>/<id><ext>.
func (s *Service) UploadUserImage(ctx context.Context, req UploadUserImage) mediator.Response[ImageUploaded] {
	if s.Images == nil {
		return mediator.Fail[ImageUploaded](mediator.KindConfiguration, "image storage is not configured")
	}
	if _, err := s.Users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return mediator.Fail[ImageUploaded](mediator.KindNotFound, "user not found")
		}
		return outcome.Read[ImageUploaded](s.Logger, "find user", err)
	}

	imageID := s.NewID()
	objectPath := path.Join("avatars", req.UserID, imageID+strings.ToLower(path.Ext(req.Filename)))
	url, err := s.Images.Upload(ctx, objectPath, req.ContentType, io.LimitReader(req.Body, req.Size))
	if err != nil {
		s.Logger.WithError(err).WithField("object", objectPath).Error("image upload failed")
		return mediator.Fail[ImageUploaded](mediator.KindStorage, outcome.MsgServerError)
	}

	if err := s.UoW.Commit(ctx, repository.NewBatch(entity.UserImage{ID: imageID, UserID: req.UserID, Path: url})); err != nil {
		return outcome.Write[ImageUploaded](s.Logger, "save user image", err)
	}
	return mediator.OK("image uploaded", ImageUploaded{ImageID: imageID, URL: url})
}
