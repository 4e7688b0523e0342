package models

import (
	"time"

	"github.com/dmitrijs2005/ledgersync/internal/common"
	"github.com/shopspring/decimal"
)

// TransactionRecord is a single ledger movement on an account.
type TransactionRecord struct {
	ID           string
	AccountID    string
	Kind         TransactionKind
	Amount       decimal.Decimal
	Currency     string
	Counterparty string
	Description  string
	OccurredAt   time.Time
	Status       TransactionStatus
}

func (t TransactionRecord) EntityID() string { return t.ID }

// NewTransaction returns a pending record with a fresh ID stamped now.
func NewTransaction(accountID string, kind TransactionKind, amount decimal.Decimal, currency string) TransactionRecord {
	if currency == "" {
		currency = DefaultCurrency
	}
	return TransactionRecord{
		ID:         common.NewID(),
		AccountID:  accountID,
		Kind:       kind,
		Amount:     amount,
		Currency:   currency,
		OccurredAt: Now(),
		Status:     TxPending,
	}
}

// BillPayment is a payment to a biller; PaidAt is nil until it settles.
type BillPayment struct {
	ID          string
	AccountID   string
	Biller      string
	CustomerRef string
	Amount      decimal.Decimal
	DueAt       time.Time
	PaidAt      *time.Time
	Status      BillStatus
}

func (b BillPayment) EntityID() string { return b.ID }
