package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/ledgersync/internal/models"
	"github.com/dmitrijs2005/ledgersync/internal/wire"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0   = time.Date(2026, 1, 15, 9, 0, 0, 250_000_000, time.UTC)
	t1   = t0.AddDate(1, 0, 0)
	paid = t0.Add(36 * time.Hour)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// viaJSON pushes a record through encoding/json the way the gRPC transport
// does, so numbers come back as float64.
func viaJSON(t *testing.T, f wire.Fields) wire.Fields {
	t.Helper()
	b, err := json.Marshal(f)
	require.NoError(t, err)
	var out wire.Fields
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func checkRoundTrip[E any](t *testing.T, c wire.Codec[E], e E) {
	t.Helper()

	direct := c.FromWire(c.ToWire(e))
	require.Empty(t, cmp.Diff(e, direct), "direct round trip")

	transported := c.FromWire(viaJSON(t, c.ToWire(e)))
	require.Empty(t, cmp.Diff(e, transported), "round trip through JSON")

	for k, v := range c.ToWire(e) {
		require.NotNil(t, v, "field %q must not be nil on the wire", k)
	}
}

func TestRoundTrip_AllEntities(t *testing.T) {
	t.Run("account", func(t *testing.T) {
		checkRoundTrip(t, Accounts, models.Account{
			ID: "A1", OwnerName: "Ann Lee", Number: "4000-12", Type: models.AccountSavings,
			Currency: "EUR", Balance: dec("100.55"), Status: models.AccountFrozen, OpenedAt: t0,
		})
	})
	t.Run("savings book", func(t *testing.T) {
		checkRoundTrip(t, SavingsBooks, models.SavingsBook{
			ID: "S1", AccountID: "A1", Principal: dec("5000"), Rate: dec("4.35"), TermMonths: 12,
			OpenedAt: t0, MaturesAt: t1, AutoRenew: true, Status: models.SavingsMatured,
		})
	})
	t.Run("mortgage", func(t *testing.T) {
		checkRoundTrip(t, Mortgages, models.MortgageAccount{
			ID: "M1", AccountID: "A1", PropertyAddress: "1 Main St", Principal: dec("250000"),
			Outstanding: dec("249012.33"), Rate: dec("6.1"), TermMonths: 360, StartedAt: t0,
			Status: models.MortgageDefaulted,
		})
	})
	t.Run("mortgage schedule unpaid", func(t *testing.T) {
		checkRoundTrip(t, MortgageSchedules, models.MortgageSchedule{
			ID: "MS1", MortgageID: "M1", Installment: 3, DueAt: t1,
			PrincipalDue: dec("301.12"), InterestDue: dec("1270.88"),
		})
	})
	t.Run("mortgage schedule paid", func(t *testing.T) {
		checkRoundTrip(t, MortgageSchedules, models.MortgageSchedule{
			ID: "MS2", MortgageID: "M1", Installment: 4, DueAt: t1,
			PrincipalDue: dec("302"), InterestDue: dec("1270"), Paid: true, PaidAt: &paid,
		})
	})
	t.Run("interest rate", func(t *testing.T) {
		checkRoundTrip(t, InterestRates, models.InterestRate{
			ID: "R1", Product: models.RateMortgage, TermMonths: 240, Rate: dec("5.875"), EffectiveFrom: t0,
		})
	})
	t.Run("transaction", func(t *testing.T) {
		checkRoundTrip(t, Transactions, models.TransactionRecord{
			ID: "T1", AccountID: "A1", Kind: models.TxTransferOut, Amount: dec("12.01"), Currency: "USD",
			Counterparty: "A9", Description: "rent", OccurredAt: t0, Status: models.TxCompleted,
		})
	})
	t.Run("bill payment", func(t *testing.T) {
		checkRoundTrip(t, BillPayments, models.BillPayment{
			ID: "B1", AccountID: "A1", Biller: "City Water", CustomerRef: "CW-77", Amount: dec("41.2"),
			DueAt: t1, PaidAt: &paid, Status: models.BillPaid,
		})
	})
}

func TestToWire_ShapeConventions(t *testing.T) {
	f := Accounts.ToWire(models.Account{ID: "A1", Balance: dec("100"), OpenedAt: t0, Type: models.AccountChecking})

	assert.Equal(t, "A1", f["id"])
	assert.Equal(t, "100", f["balance"])
	assert.Equal(t, t0.UnixMilli(), f["opened_at"])
	assert.Equal(t, "checking", f["type"])

	s := MortgageSchedules.ToWire(models.MortgageSchedule{ID: "MS1"})
	assert.NotContains(t, s, "paid_at", "absent optional times are omitted")
}

func TestFromWire_EmptyRecordGetsDefaults(t *testing.T) {
	a := Accounts.FromWire(wire.Fields{})
	_, err := uuid.Parse(a.ID)
	require.NoError(t, err, "missing id must be synthesized")
	assert.Equal(t, models.AccountChecking, a.Type)
	assert.Equal(t, models.AccountActive, a.Status)
	assert.Equal(t, models.DefaultCurrency, a.Currency)
	assert.True(t, a.Balance.IsZero())
	assert.True(t, a.OpenedAt.IsZero())

	b := BillPayments.FromWire(wire.Fields{})
	assert.Equal(t, models.BillScheduled, b.Status)
	assert.Nil(t, b.PaidAt)

	r := InterestRates.FromWire(nil)
	assert.Equal(t, models.RateSavings, r.Product)
	assert.NotEmpty(t, r.ID)
}

func TestFromWire_CorruptFieldsDegradeIndividually(t *testing.T) {
	corrupt := wire.Fields{
		"id":          "S7",
		"account_id":  12345,
		"principal":   "a lot",
		"rate":        3.5,
		"term_months": "twelve",
		"opened_at":   "not a date",
		"matures_at":  t1.UnixMilli(),
		"auto_renew":  "yes please",
		"status":      "exploded",
		"unexpected":  []any{1, 2},
	}

	var got models.SavingsBook
	require.NotPanics(t, func() { got = SavingsBooks.FromWire(corrupt) })

	assert.Equal(t, "S7", got.ID)
	assert.Empty(t, got.AccountID)
	assert.True(t, got.Principal.IsZero())
	assert.True(t, got.Rate.Equal(dec("3.5")))
	assert.Zero(t, got.TermMonths)
	assert.True(t, got.OpenedAt.IsZero())
	assert.True(t, got.MaturesAt.Equal(t1))
	assert.False(t, got.AutoRenew)
	assert.Equal(t, models.SavingsOpen, got.Status)
}

func TestFromWire_CorruptIDIsReplaced(t *testing.T) {
	for _, id := range []any{nil, 17, "", true} {
		got := Transactions.FromWire(wire.Fields{"id": id, "amount": "9.99"})
		_, err := uuid.Parse(got.ID)
		require.NoError(t, err)
		assert.True(t, got.Amount.Equal(dec("9.99")))
	}
}
