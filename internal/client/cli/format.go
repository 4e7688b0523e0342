package cli

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/ledgersync/internal/models"
)

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDate(*t)
}

func formatAccount(a models.Account) string {
	return fmt.Sprintf("%s  %-12s %-9s %-7s %12s %s  %s", a.ID, a.Number, a.Type, a.Status, a.Balance.StringFixed(2), a.Currency, a.OwnerName)
}

func formatSavingsBook(s models.SavingsBook) string {
	return fmt.Sprintf("%s  account=%s principal=%s rate=%s%% term=%dm matures=%s %s", s.ID, s.AccountID, s.Principal.StringFixed(2), s.Rate.String(), s.TermMonths, formatDate(s.MaturesAt), s.Status)
}

func formatMortgage(m models.MortgageAccount) string {
	return fmt.Sprintf("%s  account=%s outstanding=%s/%s rate=%s%% term=%dm %s  %s", m.ID, m.AccountID, m.Outstanding.StringFixed(2), m.Principal.StringFixed(2), m.Rate.String(), m.TermMonths, m.Status, m.PropertyAddress)
}

func formatMortgageSchedule(s models.MortgageSchedule) string {
	paid := "due"
	if s.Paid {
		paid = "paid " + formatOptionalDate(s.PaidAt)
	}
	return fmt.Sprintf("%s  mortgage=%s #%d %s principal=%s interest=%s %s", s.ID, s.MortgageID, s.Installment, formatDate(s.DueAt), s.PrincipalDue.StringFixed(2), s.InterestDue.StringFixed(2), paid)
}

func formatInterestRate(r models.InterestRate) string {
	return fmt.Sprintf("%s  %s %dm %s%% from %s", r.ID, r.Product, r.TermMonths, r.Rate.String(), formatDate(r.EffectiveFrom))
}

func formatTransaction(t models.TransactionRecord) string {
	return fmt.Sprintf("%s  %s account=%s %-16s %12s %s %s %s", t.ID, formatDate(t.OccurredAt), t.AccountID, t.Kind, t.Amount.StringFixed(2), t.Currency, t.Status, t.Counterparty)
}

func formatBillPayment(b models.BillPayment) string {
	return fmt.Sprintf("%s  account=%s %s %s due=%s paid=%s %s", b.ID, b.AccountID, b.Biller, b.Amount.StringFixed(2), formatDate(b.DueAt), formatOptionalDate(b.PaidAt), b.Status)
}
