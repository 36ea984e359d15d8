// Package event publishes domain events to in-process subscribers after a successful commit.
package event

const (
	FavoredCreatedName       = "favored.created"
	FavoredAccountLinkedName = "favored.account_linked"
	UserCreatedName          = "user.created"
)

// Event is a domain fact that already happened.
type Event interface {
	EventName() string
}

type FavoredCreated struct {
	ID          string `json:"id"`
	OwnerUserID string `json:"ownerUserId"`
	Name        string `json:"name"`
	TaxNumber   string `json:"taxNumber"`
	AccountID   string `json:"accountId,omitempty"`
}

func (FavoredCreated) EventName() string { return FavoredCreatedName }

// FavoredAccountLinked is raised when a new bank account is attached to an existing favored.
type FavoredAccountLinked struct {
	FavoredID   string `json:"favoredId"`
	AccountID   string `json:"accountId"`
	OwnerUserID string `json:"ownerUserId"`
}

func (FavoredAccountLinked) EventName() string { return FavoredAccountLinkedName }

type UserCreated struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	Email     string `json:"email,omitempty"`
}

func (UserCreated) EventName() string { return UserCreatedName }
