package entity

import "time"

// Incoming is money received by a user. Amounts are kept in cents.
type Incoming struct {
	ID          string
	UserID      string
	Description string
	AmountCents int64
	ReceivedOn  time.Time
	Status      Status
	CreatedAt   time.Time
}

func (Incoming) TableName() string      { return "incomings" }
func (i Incoming) PrimaryKey() string   { return i.ID }
func (i Incoming) References() []string { return []string{i.UserID} }

// Expense is money spent by a user, optionally paid to one of their favoreds.
type Expense struct {
	ID          string
	UserID      string
	FavoredID   string
	Description string
	AmountCents int64
	SpentOn     time.Time
	Status      Status
	CreatedAt   time.Time
}

func (Expense) TableName() string    { return "expenses" }
func (e Expense) PrimaryKey() string { return e.ID }

func (e Expense) References() []string {
	if e.FavoredID == "" {
		return []string{e.UserID}
	}
	return []string{e.UserID, e.FavoredID}
}
