package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MortgageAccount is a home loan serviced from an account.
type MortgageAccount struct {
	ID              string
	AccountID       string
	PropertyAddress string
	Principal       decimal.Decimal
	Outstanding     decimal.Decimal
	Rate            decimal.Decimal
	TermMonths      int
	StartedAt       time.Time
	Status          MortgageStatus
}

func (m MortgageAccount) EntityID() string { return m.ID }

// MortgageSchedule is one installment of a mortgage; PaidAt is nil until paid.
type MortgageSchedule struct {
	ID           string
	MortgageID   string
	Installment  int
	DueAt        time.Time
	PrincipalDue decimal.Decimal
	InterestDue  decimal.Decimal
	Paid         bool
	PaidAt       *time.Time
}

func (s MortgageSchedule) EntityID() string { return s.ID }
