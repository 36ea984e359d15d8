package favored

import "time"

// CreateFavored registers a payee for the user, optionally with a bank account.
type CreateFavored struct {
	BelongToUserID string        `json:"belongToUserId" validate:"required,uuid"`
	Name           string        `json:"name" validate:"required,max=120"`
	TaxNumber      string        `json:"taxNumber" validate:"required,taxnumber"`
	Account        *AccountInput `json:"account,omitempty"`
}

// AccountInput identifies a bank account. Codes are digit strings so leading zeros survive.
type AccountInput struct {
	Bank             string `json:"bank" validate:"required,numeric,max=10"`
	BankBranch       string `json:"bankBranch" validate:"required,numeric,max=10"`
	BankAccount      string `json:"bankAccount" validate:"required,numeric,max=20"`
	BankAccountDigit string `json:"bankAccountDigit" validate:"required,alphanum,max=2"`
}

type GetFavoredsByUserId struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

// SearchFavoreds is a free text search over the user's favoreds by name or tax number.
type SearchFavoreds struct {
	UserID string `json:"userId" validate:"required,uuid"`
	Query  string `json:"query" validate:"required,max=100"`
	Size   int    `json:"size" validate:"omitempty,gte=1,lte=50"`
}

// Registered is the payload of a successful CreateFavored.
type Registered struct {
	FavoredID string `json:"favoredId"`
	AccountID string `json:"accountId,omitempty"`
}

type AccountView struct {
	ID               string `json:"id"`
	Bank             string `json:"bank"`
	BankBranch       string `json:"bankBranch"`
	BankAccount      string `json:"bankAccount"`
	BankAccountDigit string `json:"bankAccountDigit"`
	Status           string `json:"status"`
}

type View struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	TaxNumber string        `json:"taxNumber"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	Accounts  []AccountView `json:"accounts"`
}

// Document is the searchable projection of a favored.
type Document struct {
	ID          string `json:"id"`
	OwnerUserID string `json:"owner_user_id"`
	Name        string `json:"name"`
	TaxNumber   string `json:"tax_number"`
}
