package authorization

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-finances/internal/application/event"
	"github.com/oksasatya/go-finances/internal/application/mediator"
	"github.com/oksasatya/go-finances/internal/domain/entity"
	"github.com/oksasatya/go-finances/internal/domain/repository"
	"github.com/oksasatya/go-finances/internal/infrastructure/memory"
	"github.com/oksasatya/go-finances/pkg/helpers"
	"github.com/oksasatya/go-finances/pkg/validation"
)

type fakeTokens struct {
	issued  map[string]string // refresh token -> user id
	revoked []string
	fail    error
}

func (f *fakeTokens) Issue(_ context.Context, userID string) (Session, error) {
	if f.fail != nil {
		return Session{}, f.fail
	}
	refresh := "refresh-" + uuid.NewString()
	f.issued[refresh] = userID
	return Session{UserID: userID, Token: "access-" + userID, RefreshToken: refresh, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeTokens) Refresh(ctx context.Context, token string) (Session, error) {
	userID, ok := f.issued[token]
	if !ok {
		return Session{}, ErrInvalidSession
	}
	delete(f.issued, token)
	return f.Issue(ctx, userID)
}

func (f *fakeTokens) Revoke(_ context.Context, userID string) error {
	f.revoked = append(f.revoked, userID)
	return nil
}

type fakeImages struct {
	path string
	body string
}

func (f *fakeImages) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.path, f.body = objectPath, string(b)
	return "https://cdn.test/" + objectPath, nil
}

type fixture struct {
	store  *memory.Store
	tokens *fakeTokens
	bus    *event.Bus
	svc    *Service
	m      *mediator.Mediator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store := memory.NewStore()
	tokens := &fakeTokens{issued: map[string]string{}}
	bus := event.NewBus(logger, time.Second)
	svc := NewService(store.Users(), store, helpers.BcryptHasher{Cost: bcrypt.MinCost}, tokens, bus, logger)
	m := mediator.New(logger)
	if err := Register(m, validation.New(), svc); err != nil {
		t.Fatalf("register: %v", err)
	}
	return &fixture{store: store, tokens: tokens, bus: bus, svc: svc, m: m}
}

func validAccount() CreateAccount {
	return CreateAccount{
		Username:    "ana",
		Password:    "correct-horse",
		FirstName:   "Ana",
		LastName:    "Silva",
		Age:         31,
		TaxNumber:   "12345678901",
		Gender:      "female",
		PhoneNumber: "+5511999990000",
		Email:       "ana@example.com",
		ImagePath:   "https://cdn.test/ana.png",
	}
}

var accountTables = []string{"users", "persons", "user_has_person", "contacts", "person_has_contact", "user_images"}

func (f *fixture) createAccount(req CreateAccount) mediator.Response[AccountCreated] {
	return mediator.Send[CreateAccount, AccountCreated](context.Background(), f.m, req)
}

func TestCreateAccountWritesEveryRow(t *testing.T) {
	f := newFixture(t)
	var created []event.UserCreated
	f.bus.Subscribe(event.UserCreatedName, event.SubscriberFunc{ID: "rec", Fn: func(_ context.Context, ev event.Event) error {
		created = append(created, ev.(event.UserCreated))
		return nil
	}})

	res := f.createAccount(validAccount())
	if !res.Success || res.Payload.UserID == "" {
		t.Fatalf("unexpected response %+v", res)
	}
	for _, table := range accountTables {
		if n := f.store.Count(table); n != 1 {
			t.Fatalf("%s: expected 1 row, got %d", table, n)
		}
	}

	u, err := f.store.Users().GetByUsername(context.Background(), "ana")
	if err != nil {
		t.Fatal(err)
	}
	if u.PasswordHash == "correct-horse" || !helpers.CompareHashAndPassword(u.PasswordHash, "correct-horse") {
		t.Fatal("password must be stored as a bcrypt hash")
	}
	c, err := f.store.Users().ContactOf(context.Background(), u.ID)
	if err != nil || c.Email != "ana@example.com" || c.PhoneNumber != "+5511999990000" {
		t.Fatalf("unexpected contact %+v (err=%v)", c, err)
	}
	if len(created) != 1 || created[0].ID != u.ID || created[0].Email != "ana@example.com" {
		t.Fatalf("unexpected events %+v", created)
	}
}

func TestCreateAccountWithoutImage(t *testing.T) {
	f := newFixture(t)
	req := validAccount()
	req.ImagePath = ""
	if res := f.createAccount(req); !res.Success {
		t.Fatalf("unexpected response %+v", res)
	}
	if f.store.Count("user_images") != 0 || f.store.Count("person_has_contact") != 1 {
		t.Fatal("image row must be skipped, others written")
	}
}

func TestCreateAccountDuplicateUsername(t *testing.T) {
	f := newFixture(t)
	if res := f.createAccount(validAccount()); !res.Success {
		t.Fatalf("first: %+v", res)
	}

	second := validAccount()
	second.TaxNumber = "98765432100"
	res := f.createAccount(second)
	if res.Success || res.Kind != mediator.KindDuplicate || res.Message != msgUsernameTaken {
		t.Fatalf("expected duplicate, got %+v", res)
	}
	for _, table := range accountTables {
		if n := f.store.Count(table); n != 1 {
			t.Fatalf("%s: duplicate must not add rows, got %d", table, n)
		}
	}
}

func TestCreateAccountDuplicateIgnoresStatus(t *testing.T) {
	f := newFixture(t)
	if err := f.store.Commit(context.Background(), batchOf(entity.User{ID: uuid.NewString(), Username: "ana", Status: entity.StatusInactive})); err != nil {
		t.Fatal(err)
	}
	if res := f.createAccount(validAccount()); res.Kind != mediator.KindDuplicate {
		t.Fatalf("inactive user must still reserve the username, got %+v", res)
	}
}

func TestCreateAccountIsAtomic(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn = func(rec entity.Record) error {
		if rec.TableName() == "user_images" {
			return errors.New("disk full")
		}
		return nil
	}
	res := f.createAccount(validAccount())
	if res.Success || res.Kind != mediator.KindStorage {
		t.Fatalf("expected storage failure, got %+v", res)
	}
	if strings.Contains(res.Message, "disk full") {
		t.Fatal("storage details must not leak")
	}
	for _, table := range accountTables {
		if n := f.store.Count(table); n != 0 {
			t.Fatalf("%s: expected no rows, got %d", table, n)
		}
	}
}

func TestCreateAccountValidation(t *testing.T) {
	f := newFixture(t)
	req := validAccount()
	req.Username = "a"
	req.Password = "short"
	req.PhoneNumber = "123"
	res := f.createAccount(req)
	if res.Kind != mediator.KindValidation || len(res.Violations) != 3 {
		t.Fatalf("expected 3 violations, got %+v", res)
	}
	if f.store.Count("users") != 0 {
		t.Fatal("invalid request must not write")
	}
}

func TestSignIn(t *testing.T) {
	f := newFixture(t)
	created := f.createAccount(validAccount())

	ok := mediator.Send[SignIn, Session](context.Background(), f.m, SignIn{Username: "ana", Password: "correct-horse"})
	if !ok.Success || ok.Payload.UserID != created.Payload.UserID || ok.Payload.Token == "" {
		t.Fatalf("unexpected sign in %+v", ok)
	}

	for _, req := range []SignIn{
		{Username: "ana", Password: "wrong-password"},
		{Username: "nobody", Password: "correct-horse"},
	} {
		res := mediator.Send[SignIn, Session](context.Background(), f.m, req)
		if res.Success || res.Kind != mediator.KindUnauthorized || res.Message != msgInvalidCredentials {
			t.Fatalf("%s: expected unauthorized, got %+v", req.Username, res)
		}
	}
}

func TestSignInTokenFailure(t *testing.T) {
	f := newFixture(t)
	f.createAccount(validAccount())
	f.tokens.fail = errors.New("redis down")
	res := mediator.Send[SignIn, Session](context.Background(), f.m, SignIn{Username: "ana", Password: "correct-horse"})
	if res.Kind != mediator.KindStorage {
		t.Fatalf("expected storage kind, got %+v", res)
	}
}

func TestRefreshAndSignOut(t *testing.T) {
	f := newFixture(t)
	f.createAccount(validAccount())
	sess := mediator.Send[SignIn, Session](context.Background(), f.m, SignIn{Username: "ana", Password: "correct-horse"})

	refreshed := mediator.Send[RefreshSession, Session](context.Background(), f.m, RefreshSession{RefreshToken: sess.Payload.RefreshToken})
	if !refreshed.Success || refreshed.Payload.RefreshToken == sess.Payload.RefreshToken {
		t.Fatalf("expected rotated session, got %+v", refreshed)
	}
	reused := mediator.Send[RefreshSession, Session](context.Background(), f.m, RefreshSession{RefreshToken: sess.Payload.RefreshToken})
	if reused.Kind != mediator.KindUnauthorized {
		t.Fatalf("reused refresh token must be rejected, got %+v", reused)
	}

	out := mediator.Send[SignOut, Empty](context.Background(), f.m, SignOut{UserID: sess.Payload.UserID})
	if !out.Success || len(f.tokens.revoked) != 1 || f.tokens.revoked[0] != sess.Payload.UserID {
		t.Fatalf("unexpected sign out %+v revoked=%v", out, f.tokens.revoked)
	}
}

func TestUploadUserImage(t *testing.T) {
	f := newFixture(t)
	created := f.createAccount(validAccount())
	images := &fakeImages{}

	req := UploadUserImage{UserID: created.Payload.UserID, Filename: "Me.PNG", ContentType: "image/png", Size: 4, Body: strings.NewReader("png!extra")}
	missing := mediator.Send[UploadUserImage, ImageUploaded](context.Background(), f.m, req)
	if missing.Kind != mediator.KindConfiguration {
		t.Fatalf("expected configuration failure without a store, got %+v", missing)
	}

	f.svc.Images = images
	req.Body = strings.NewReader("png!extra")
	res := mediator.Send[UploadUserImage, ImageUploaded](context.Background(), f.m, req)
	if !res.Success {
		t.Fatalf("upload: %+v", res)
	}
	if !strings.HasPrefix(images.path, "avatars/"+created.Payload.UserID+"/") || !strings.HasSuffix(images.path, ".png") {
		t.Fatalf("unexpected object path %q", images.path)
	}
	if images.body != "png!" {
		t.Fatalf("body must be capped at the declared size, got %q", images.body)
	}
	if f.store.Count("user_images") != 2 {
		t.Fatalf("expected the new image row, got %d", f.store.Count("user_images"))
	}
}

func TestUploadUserImageRequiresBody(t *testing.T) {
	f := newFixture(t)
	f.svc.Images = &fakeImages{}
	res := mediator.Send[UploadUserImage, ImageUploaded](context.Background(), f.m,
		UploadUserImage{UserID: uuid.NewString(), Filename: "a.png", ContentType: "image/png", Size: 1})
	if res.Kind != mediator.KindValidation || res.Violations[0].Field != "file" {
		t.Fatalf("expected file violation, got %+v", res)
	}
}

func batchOf(records ...entity.Record) *repository.Batch {
	return repository.NewBatch(records...)
}
