package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in PasswordHash.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Status       Status
	CreatedAt    time.Time
}

func (User) TableName() string    { return "users" }
func (u User) PrimaryKey() string { return u.ID }

// Person holds the personal data of a user, linked through UserHasPerson.
type Person struct {
	ID        string
	FirstName string
	LastName  string
	Age       int
	TaxNumber string
	Gender    string
}

func (Person) TableName() string    { return "persons" }
func (p Person) PrimaryKey() string { return p.ID }

type UserHasPerson struct {
	UserID   string
	PersonID string
}

func (UserHasPerson) TableName() string      { return "user_has_person" }
func (j UserHasPerson) References() []string { return []string{j.UserID, j.PersonID} }

type Contact struct {
	ID          string
	PhoneNumber string
	Email       string
}

func (Contact) TableName() string    { return "contacts" }
func (c Contact) PrimaryKey() string { return c.ID }

type PersonHasContact struct {
	PersonID  string
	ContactID string
}

func (PersonHasContact) TableName() string      { return "person_has_contact" }
func (j PersonHasContact) References() []string { return []string{j.PersonID, j.ContactID} }

// UserImage points at an uploaded picture; Path is an object URL or a client supplied path.
type UserImage struct {
	ID     string
	UserID string
	Path   string
}

func (UserImage) TableName() string      { return "user_images" }
func (i UserImage) PrimaryKey() string   { return i.ID }
func (i UserImage) References() []string { return []string{i.UserID} }
