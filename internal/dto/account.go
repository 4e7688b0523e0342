package dto

import (
	"github.com/dmitrijs2005/ledgersync/internal/models"
	"github.com/dmitrijs2005/ledgersync/internal/wire"
)

type AccountCodec struct{}

var Accounts wire.Codec[models.Account] = AccountCodec{}

func (AccountCodec) ToWire(a models.Account) wire.Fields {
	f := wire.Fields{
		wire.IDKey:   a.ID,
		"owner_name": a.OwnerName,
		"number":     a.Number,
		"type":       string(a.Type),
		"currency":   a.Currency,
		"status":     string(a.Status),
	}
	wire.PutDecimal(f, "balance", a.Balance)
	wire.PutTime(f, "opened_at", a.OpenedAt)
	return f
}

func (AccountCodec) FromWire(f wire.Fields) models.Account {
	t, _ := models.ParseAccountType(wire.String(f, "type"))
	s, _ := models.ParseAccountStatus(wire.String(f, "status"))
	return models.Account{
		ID:        wire.ID(f),
		OwnerName: wire.String(f, "owner_name"),
		Number:    wire.String(f, "number"),
		Type:      t,
		Currency:  wire.StringOr(f, "currency", models.DefaultCurrency),
		Balance:   wire.Decimal(f, "balance"),
		Status:    s,
		OpenedAt:  wire.Time(f, "opened_at"),
	}
}

type SavingsBookCodec struct{}

var SavingsBooks wire.Codec[models.SavingsBook] = SavingsBookCodec{}

func (SavingsBookCodec) ToWire(s models.SavingsBook) wire.Fields {
	f := wire.Fields{
		wire.IDKey:    s.ID,
		"account_id":  s.AccountID,
		"term_months": s.TermMonths,
		"auto_renew":  s.AutoRenew,
		"status":      string(s.Status),
	}
	wire.PutDecimal(f, "principal", s.Principal)
	wire.PutDecimal(f, "rate", s.Rate)
	wire.PutTime(f, "opened_at", s.OpenedAt)
	wire.PutTime(f, "matures_at", s.MaturesAt)
	return f
}

func (SavingsBookCodec) FromWire(f wire.Fields) models.SavingsBook {
	st, _ := models.ParseSavingsStatus(wire.String(f, "status"))
	return models.SavingsBook{
		ID:         wire.ID(f),
		AccountID:  wire.String(f, "account_id"),
		Principal:  wire.Decimal(f, "principal"),
		Rate:       wire.Decimal(f, "rate"),
		TermMonths: wire.Int(f, "term_months"),
		OpenedAt:   wire.Time(f, "opened_at"),
		MaturesAt:  wire.Time(f, "matures_at"),
		AutoRenew:  wire.Bool(f, "auto_renew"),
		Status:     st,
	}
}

type InterestRateCodec struct{}

var InterestRates wire.Codec[models.InterestRate] = InterestRateCodec{}

func (InterestRateCodec) ToWire(r models.InterestRate) wire.Fields {
	f := wire.Fields{
		wire.IDKey:    r.ID,
		"product":     string(r.Product),
		"term_months": r.TermMonths,
	}
	wire.PutDecimal(f, "rate", r.Rate)
	wire.PutTime(f, "effective_from", r.EffectiveFrom)
	return f
}

func (InterestRateCodec) FromWire(f wire.Fields) models.InterestRate {
	p, _ := models.ParseRateProduct(wire.String(f, "product"))
	return models.InterestRate{
		ID:            wire.ID(f),
		Product:       p,
		TermMonths:    wire.Int(f, "term_months"),
		Rate:          wire.Decimal(f, "rate"),
		EffectiveFrom: wire.Time(f, "effective_from"),
	}
}
