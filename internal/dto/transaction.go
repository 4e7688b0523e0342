package dto

import (
	"github.com/dmitrijs2005/ledgersync/internal/models"
	"github.com/dmitrijs2005/ledgersync/internal/wire"
)

type TransactionCodec struct{}

var Transactions wire.Codec[models.TransactionRecord] = TransactionCodec{}

func (TransactionCodec) ToWire(t models.TransactionRecord) wire.Fields {
	f := wire.Fields{
		wire.IDKey:     t.ID,
		"account_id":   t.AccountID,
		"kind":         string(t.Kind),
		"currency":     t.Currency,
		"counterparty": t.Counterparty,
		"description":  t.Description,
		"status":       string(t.Status),
	}
	wire.PutDecimal(f, "amount", t.Amount)
	wire.PutTime(f, "occurred_at", t.OccurredAt)
	return f
}

func (TransactionCodec) FromWire(f wire.Fields) models.TransactionRecord {
	k, _ := models.ParseTransactionKind(wire.String(f, "kind"))
	st, _ := models.ParseTransactionStatus(wire.String(f, "status"))
	return models.TransactionRecord{
		ID:           wire.ID(f),
		AccountID:    wire.String(f, "account_id"),
		Kind:         k,
		Amount:       wire.Decimal(f, "amount"),
		Currency:     wire.StringOr(f, "currency", models.DefaultCurrency),
		Counterparty: wire.String(f, "counterparty"),
		Description:  wire.String(f, "description"),
		OccurredAt:   wire.Time(f, "occurred_at"),
		Status:       st,
	}
}

type BillPaymentCodec struct{}

var BillPayments wire.Codec[models.BillPayment] = BillPaymentCodec{}

func (BillPaymentCodec) ToWire(b models.BillPayment) wire.Fields {
	f := wire.Fields{
		wire.IDKey:     b.ID,
		"account_id":   b.AccountID,
		"biller":       b.Biller,
		"customer_ref": b.CustomerRef,
		"status":       string(b.Status),
	}
	wire.PutDecimal(f, "amount", b.Amount)
	wire.PutTime(f, "due_at", b.DueAt)
	wire.PutOptionalTime(f, "paid_at", b.PaidAt)
	return f
}

func (BillPaymentCodec) FromWire(f wire.Fields) models.BillPayment {
	st, _ := models.ParseBillStatus(wire.String(f, "status"))
	return models.BillPayment{
		ID:          wire.ID(f),
		AccountID:   wire.String(f, "account_id"),
		Biller:      wire.String(f, "biller"),
		CustomerRef: wire.String(f, "customer_ref"),
		Amount:      wire.Decimal(f, "amount"),
		DueAt:       wire.Time(f, "due_at"),
		PaidAt:      wire.OptionalTime(f, "paid_at"),
		Status:      st,
	}
}
