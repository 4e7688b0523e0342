package dto

import (
	"github.com/dmitrijs2005/ledgersync/internal/models"
	"github.com/dmitrijs2005/ledgersync/internal/wire"
)

type MortgageCodec struct{}

var Mortgages wire.Codec[models.MortgageAccount] = MortgageCodec{}

func (MortgageCodec) ToWire(m models.MortgageAccount) wire.Fields {
	f := wire.Fields{
		wire.IDKey:         m.ID,
		"account_id":       m.AccountID,
		"property_address": m.PropertyAddress,
		"term_months":      m.TermMonths,
		"status":           string(m.Status),
	}
	wire.PutDecimal(f, "principal", m.Principal)
	wire.PutDecimal(f, "outstanding", m.Outstanding)
	wire.PutDecimal(f, "rate", m.Rate)
	wire.PutTime(f, "started_at", m.StartedAt)
	return f
}

func (MortgageCodec) FromWire(f wire.Fields) models.MortgageAccount {
	st, _ := models.ParseMortgageStatus(wire.String(f, "status"))
	return models.MortgageAccount{
		ID:              wire.ID(f),
		AccountID:       wire.String(f, "account_id"),
		PropertyAddress: wire.String(f, "property_address"),
		Principal:       wire.Decimal(f, "principal"),
		Outstanding:     wire.Decimal(f, "outstanding"),
		Rate:            wire.Decimal(f, "rate"),
		TermMonths:      wire.Int(f, "term_months"),
		StartedAt:       wire.Time(f, "started_at"),
		Status:          st,
	}
}

type MortgageScheduleCodec struct{}

var MortgageSchedules wire.Codec[models.MortgageSchedule] = MortgageScheduleCodec{}

func (MortgageScheduleCodec) ToWire(s models.MortgageSchedule) wire.Fields {
	f := wire.Fields{
		wire.IDKey:    s.ID,
		"mortgage_id": s.MortgageID,
		"installment": s.Installment,
		"paid":        s.Paid,
	}
	wire.PutTime(f, "due_at", s.DueAt)
	wire.PutDecimal(f, "principal_due", s.PrincipalDue)
	wire.PutDecimal(f, "interest_due", s.InterestDue)
	wire.PutOptionalTime(f, "paid_at", s.PaidAt)
	return f
}

func (MortgageScheduleCodec) FromWire(f wire.Fields) models.MortgageSchedule {
	return models.MortgageSchedule{
		ID:           wire.ID(f),
		MortgageID:   wire.String(f, "mortgage_id"),
		Installment:  wire.Int(f, "installment"),
		DueAt:        wire.Time(f, "due_at"),
		PrincipalDue: wire.Decimal(f, "principal_due"),
		InterestDue:  wire.Decimal(f, "interest_due"),
		Paid:         wire.Bool(f, "paid"),
		PaidAt:       wire.OptionalTime(f, "paid_at"),
	}
}
