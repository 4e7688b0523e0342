package models

import (
	"time"

	"github.com/dmitrijs2005/ledgersync/internal/common"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a record arrives without a currency.
const DefaultCurrency = "USD"

// Account is a customer's bank account.
type Account struct {
	ID        string
	OwnerName string
	Number    string
	Type      AccountType
	Currency  string
	Balance   decimal.Decimal
	Status    AccountStatus
	OpenedAt  time.Time
}

func (a Account) EntityID() string { return a.ID }

// NewAccount returns an active account with a fresh ID and zero balance.
func NewAccount(owner, number string, t AccountType, currency string) Account {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Account{
		ID:        common.NewID(),
		OwnerName: owner,
		Number:    number,
		Type:      t,
		Currency:  currency,
		Balance:   decimal.Zero,
		Status:    AccountActive,
		OpenedAt:  Now(),
	}
}

// SavingsBook is a term deposit attached to an account.
type SavingsBook struct {
	ID         string
	AccountID  string
	Principal  decimal.Decimal
	Rate       decimal.Decimal
	TermMonths int
	OpenedAt   time.Time
	MaturesAt  time.Time
	AutoRenew  bool
	Status     SavingsStatus
}

func (s SavingsBook) EntityID() string { return s.ID }

// InterestRate is a published rate for a product and term.
type InterestRate struct {
	ID            string
	Product       RateProduct
	TermMonths    int
	Rate          decimal.Decimal
	EffectiveFrom time.Time
}

func (r InterestRate) EntityID() string { return r.ID }

// Now returns the current time truncated to the precision kept on the wire.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
