package finance

import "time"

const dateLayout = "2006-01-02"

type CreateIncoming struct {
	UserID      string `json:"userId" validate:"required,uuid"`
	Description string `json:"description" validate:"required,max=255"`
	AmountCents int64  `json:"amountCents" validate:"gt=0"`
	ReceivedOn  string `json:"receivedOn" validate:"required,isodate"`
}

type GetIncomingsByUserId struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

// CreateExpense records money spent, optionally paid to one of the user's favoreds.
type CreateExpense struct {
	UserID      string `json:"userId" validate:"required,uuid"`
	FavoredID   string `json:"favoredId" validate:"omitempty,uuid"`
	Description string `json:"description" validate:"required,max=255"`
	AmountCents int64  `json:"amountCents" validate:"gt=0"`
	SpentOn     string `json:"spentOn" validate:"required,isodate"`
}

type GetExpensesByUserId struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

type Created struct {
	ID string `json:"id"`
}

type IncomingView struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amountCents"`
	ReceivedOn  string    `json:"receivedOn"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ExpenseView struct {
	ID          string    `json:"id"`
	FavoredID   string    `json:"favoredId,omitempty"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amountCents"`
	SpentOn     string    `json:"spentOn"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
