package favored

import "github.com/oksasatya/go-finances/internal/domain/entity"

// Outcome is the verdict of the deduplication rules for a CreateFavored request.
type Outcome int

const (
	AllowFresh Outcome = iota
	AllowAdditionalAccount
	RejectDuplicate
	RejectDuplicateWithoutAccount
)

func (o Outcome) String() string {
	switch o {
	case AllowFresh:
		return "allow_fresh"
	case AllowAdditionalAccount:
		return "allow_additional_account"
	case RejectDuplicate:
		return "reject_duplicate"
	case RejectDuplicateWithoutAccount:
		return "reject_duplicate_without_account"
	}
	return "unknown"
}

type Decision struct {
	Outcome Outcome
	Reason  string
}

func (d Decision) Allowed() bool {
	return d.Outcome == AllowFresh || d.Outcome == AllowAdditionalAccount
}

const (
	reasonAccountTaken      = "this favored already has this account registered"
	reasonNeedsAccount      = "a favored with this tax number is already registered; provide a new bank account to add one"
	reasonNothingToAdd      = "a favored with this tax number is already registered without an account; nothing new to add"
	reasonFresh             = "favored is not registered yet"
	reasonAdditionalAccount = "favored is registered; the account is new"
)

// Decide applies the deduplication policy. existing is the active favored with the
// same (tax number, owner), or nil; linked are the accounts attached to it.
// Accounts match on bank account number only.
func Decide(existing *entity.Favored, linked []entity.Account, req CreateFavored) Decision {
	if existing == nil {
		return Decision{Outcome: AllowFresh, Reason: reasonFresh}
	}
	if req.Account == nil {
		if len(linked) == 0 {
			return Decision{Outcome: RejectDuplicateWithoutAccount, Reason: reasonNothingToAdd}
		}
		return Decision{Outcome: RejectDuplicateWithoutAccount, Reason: reasonNeedsAccount}
	}
	for _, a := range linked {
		if a.BankAccount == req.Account.BankAccount {
			return Decision{Outcome: RejectDuplicate, Reason: reasonAccountTaken}
		}
	}
	return Decision{Outcome: AllowAdditionalAccount, Reason: reasonAdditionalAccount}
}
