package entity

import "time"

// Favored is a payee registered by a user.
// Dedup identity is (TaxNumber, OwnerUserID) among active favoreds.
type Favored struct {
	ID          string
	OwnerUserID string
	Name        string
	TaxNumber   string
	Status      Status
	CreatedAt   time.Time
}

func (Favored) TableName() string      { return "favoreds" }
func (f Favored) PrimaryKey() string   { return f.ID }
func (f Favored) References() []string { return []string{f.OwnerUserID} }

// Account is a bank account. It is attached to exactly one favored via FavoredHasAccount.
type Account struct {
	ID               string
	Bank             string
	BankBranch       string
	BankAccount      string
	BankAccountDigit string
	Status           Status
}

func (Account) TableName() string    { return "accounts" }
func (a Account) PrimaryKey() string { return a.ID }

type FavoredHasAccount struct {
	FavoredID string
	AccountID string
}

func (FavoredHasAccount) TableName() string      { return "favored_has_account" }
func (j FavoredHasAccount) References() []string { return []string{j.FavoredID, j.AccountID} }
