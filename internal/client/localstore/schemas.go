package localstore

import (
	"database/sql"

	"github.com/dmitrijs2005/ledgersync/internal/common"
	"github.com/dmitrijs2005/ledgersync/internal/models"
)

var AccountSchema = Schema[models.Account]{
	Table:   common.CollectionAccounts,
	Columns: []string{"id", "owner_name", "number", "type", "currency", "balance", "status", "opened_at"},
	Values: func(a models.Account) []any {
		return []any{a.ID, a.OwnerName, a.Number, string(a.Type), a.Currency, a.Balance, string(a.Status), toMillis(a.OpenedAt)}
	},
	Scan: func(r RowScanner) (models.Account, error) {
		var (
			a           models.Account
			typ, status string
			openedAt    int64
		)
		if err := r.Scan(&a.ID, &a.OwnerName, &a.Number, &typ, &a.Currency, &a.Balance, &status, &openedAt); err != nil {
			return a, err
		}
		a.Type, _ = models.ParseAccountType(typ)
		a.Status, _ = models.ParseAccountStatus(status)
		a.OpenedAt = fromMillis(openedAt)
		return a, nil
	},
}

var SavingsBookSchema = Schema[models.SavingsBook]{
	Table:   common.CollectionSavingsBooks,
	Columns: []string{"id", "account_id", "principal", "rate", "term_months", "opened_at", "matures_at", "auto_renew", "status"},
	Values: func(s models.SavingsBook) []any {
		return []any{s.ID, s.AccountID, s.Principal, s.Rate, s.TermMonths,
			toMillis(s.OpenedAt), toMillis(s.MaturesAt), s.AutoRenew, string(s.Status)}
	},
	Scan: func(r RowScanner) (models.SavingsBook, error) {
		var (
			s                   models.SavingsBook
			openedAt, maturesAt int64
			status              string
		)
		if err := r.Scan(&s.ID, &s.AccountID, &s.Principal, &s.Rate, &s.TermMonths,
			&openedAt, &maturesAt, &s.AutoRenew, &status); err != nil {
			return s, err
		}
		s.OpenedAt = fromMillis(openedAt)
		s.MaturesAt = fromMillis(maturesAt)
		s.Status, _ = models.ParseSavingsStatus(status)
		return s, nil
	},
}

var MortgageSchema = Schema[models.MortgageAccount]{
	Table: common.CollectionMortgages,
	Columns: []string{"id", "account_id", "property_address", "principal", "outstanding",
		"rate", "term_months", "started_at", "status"},
	Values: func(m models.MortgageAccount) []any {
		return []any{m.ID, m.AccountID, m.PropertyAddress, m.Principal, m.Outstanding,
			m.Rate, m.TermMonths, toMillis(m.StartedAt), string(m.Status)}
	},
	Scan: func(r RowScanner) (models.MortgageAccount, error) {
		var (
			m         models.MortgageAccount
			startedAt int64
			status    string
		)
		if err := r.Scan(&m.ID, &m.AccountID, &m.PropertyAddress, &m.Principal, &m.Outstanding,
			&m.Rate, &m.TermMonths, &startedAt, &status); err != nil {
			return m, err
		}
		m.StartedAt = fromMillis(startedAt)
		m.Status, _ = models.ParseMortgageStatus(status)
		return m, nil
	},
}

var MortgageScheduleSchema = Schema[models.MortgageSchedule]{
	Table: common.CollectionMortgageSchedules,
	Columns: []string{"id", "mortgage_id", "installment", "due_at", "principal_due",
		"interest_due", "paid", "paid_at"},
	Values: func(s models.MortgageSchedule) []any {
		return []any{s.ID, s.MortgageID, s.Installment, toMillis(s.DueAt), s.PrincipalDue,
			s.InterestDue, s.Paid, toNullMillis(s.PaidAt)}
	},
	Scan: func(r RowScanner) (models.MortgageSchedule, error) {
		var (
			s      models.MortgageSchedule
			dueAt  int64
			paidAt sql.NullInt64
		)
		if err := r.Scan(&s.ID, &s.MortgageID, &s.Installment, &dueAt, &s.PrincipalDue,
			&s.InterestDue, &s.Paid, &paidAt); err != nil {
			return s, err
		}
		s.DueAt = fromMillis(dueAt)
		s.PaidAt = fromNullMillis(paidAt)
		return s, nil
	},
}

var InterestRateSchema = Schema[models.InterestRate]{
	Table:   common.CollectionInterestRates,
	Columns: []string{"id", "product", "term_months", "rate", "effective_from"},
	Values: func(ir models.InterestRate) []any {
		return []any{ir.ID, string(ir.Product), ir.TermMonths, ir.Rate, toMillis(ir.EffectiveFrom)}
	},
	Scan: func(r RowScanner) (models.InterestRate, error) {
		var (
			ir            models.InterestRate
			product       string
			effectiveFrom int64
		)
		if err := r.Scan(&ir.ID, &product, &ir.TermMonths, &ir.Rate, &effectiveFrom); err != nil {
			return ir, err
		}
		ir.Product, _ = models.ParseRateProduct(product)
		ir.EffectiveFrom = fromMillis(effectiveFrom)
		return ir, nil
	},
}

var TransactionSchema = Schema[models.TransactionRecord]{
	Table: common.CollectionTransactions,
	Columns: []string{"id", "account_id", "kind", "amount", "currency", "counterparty",
		"description", "occurred_at", "status"},
	Values: func(t models.TransactionRecord) []any {
		return []any{t.ID, t.AccountID, string(t.Kind), t.Amount, t.Currency, t.Counterparty,
			t.Description, toMillis(t.OccurredAt), string(t.Status)}
	},
	Scan: func(r RowScanner) (models.TransactionRecord, error) {
		var (
			t            models.TransactionRecord
			kind, status string
			occurredAt   int64
		)
		if err := r.Scan(&t.ID, &t.AccountID, &kind, &t.Amount, &t.Currency, &t.Counterparty,
			&t.Description, &occurredAt, &status); err != nil {
			return t, err
		}
		t.Kind, _ = models.ParseTransactionKind(kind)
		t.Status, _ = models.ParseTransactionStatus(status)
		t.OccurredAt = fromMillis(occurredAt)
		return t, nil
	},
}

var BillPaymentSchema = Schema[models.BillPayment]{
	Table:   common.CollectionBillPayments,
	Columns: []string{"id", "account_id", "biller", "customer_ref", "amount", "due_at", "paid_at", "status"},
	Values: func(b models.BillPayment) []any {
		return []any{b.ID, b.AccountID, b.Biller, b.CustomerRef, b.Amount,
			toMillis(b.DueAt), toNullMillis(b.PaidAt), string(b.Status)}
	},
	Scan: func(r RowScanner) (models.BillPayment, error) {
		var (
			b      models.BillPayment
			dueAt  int64
			paidAt sql.NullInt64
			status string
		)
		if err := r.Scan(&b.ID, &b.AccountID, &b.Biller, &b.CustomerRef, &b.Amount,
			&dueAt, &paidAt, &status); err != nil {
			return b, err
		}
		b.DueAt = fromMillis(dueAt)
		b.PaidAt = fromNullMillis(paidAt)
		b.Status, _ = models.ParseBillStatus(status)
		return b, nil
	},
}
