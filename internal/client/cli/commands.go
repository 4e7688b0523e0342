package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ledgersync/internal/client/repository"
	"github.com/dmitrijs2005/ledgersync/internal/common"
	"github.com/dmitrijs2005/ledgersync/internal/models"
	"github.com/shopspring/decimal"
)

type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }

// view is the entity-independent handle the list, show and delete commands
// work through.
type view struct {
	list   func(ctx context.Context) error
	show   func(ctx context.Context, id string) error
	delete func(ctx context.Context, id string) error
}

func viewOf[E models.Entity](r *repository.Repository[E], format func(E) string) view {
	return view{
		list: func(ctx context.Context) error {
			items, err := r.GetAll(ctx)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				printlnFn("(empty)")
			}
			for _, e := range items {
				printlnFn(format(e))
			}
			return nil
		},
		show: func(ctx context.Context, id string) error {
			e, err := r.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			printlnFn(format(e))
			return nil
		},
		delete: func(ctx context.Context, id string) error {
			e, err := r.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			return r.Delete(ctx, e, repository.LocalOrigin)
		},
	}
}

func (a *App) view(collection string) (view, error) {
	r := a.repos
	switch collection {
	case common.CollectionAccounts:
		return viewOf(r.Accounts, formatAccount), nil
	case common.CollectionSavingsBooks:
		return viewOf(r.SavingsBooks, formatSavingsBook), nil
	case common.CollectionMortgages:
		return viewOf(r.Mortgages, formatMortgage), nil
	case common.CollectionMortgageSchedules:
		return viewOf(r.MortgageSchedules, formatMortgageSchedule), nil
	case common.CollectionInterestRates:
		return viewOf(r.InterestRates, formatInterestRate), nil
	case common.CollectionTransactions:
		return viewOf(r.Transactions, formatTransaction), nil
	case common.CollectionBillPayments:
		return viewOf(r.BillPayments, formatBillPayment), nil
	}
	return view{}, fmt.Errorf("%w %q (one of %s)", common.ErrUnknownCollection, collection, strings.Join(r.Collections(), ", "))
}

func (a *App) Accounts(ctx context.Context) error {
	return a.List(ctx, []string{common.CollectionAccounts})
}

func (a *App) List(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("list <collection>")
	}
	v, err := a.view(args[0])
	if err != nil {
		return err
	}
	return v.list(ctx)
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("show <collection> <id>")
	}
	v, err := a.view(args[0])
	if err != nil {
		return err
	}
	return v.show(ctx, args[1])
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("delete <collection> <id>")
	}
	v, err := a.view(args[0])
	if err != nil {
		return err
	}
	if err := v.delete(ctx, args[1]); err != nil {
		return err
	}
	printlnFn("Deleted", args[1])
	return nil
}

func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 4 {
		return usageError("open <owner> <number> [type] [currency]")
	}
	accType := models.AccountChecking
	if len(args) > 2 {
		t, ok := models.ParseAccountType(args[2])
		if !ok {
			return fmt.Errorf("unknown account type %q", args[2])
		}
		accType = t
	}
	currency := ""
	if len(args) > 3 {
		currency = strings.ToUpper(args[3])
	}

	acc := models.NewAccount(args[0], args[1], accType, currency)
	if err := a.repos.Accounts.Write(ctx, acc, repository.LocalOrigin); err != nil {
		return err
	}
	printlnFn("Opened", formatAccount(acc))
	return nil
}

func (a *App) Deposit(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("deposit <account-id> <amount>")
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	acc, err := a.activeAccount(ctx, args[0])
	if err != nil {
		return err
	}

	tx := models.NewTransaction(acc.ID, models.TxDeposit, amount, acc.Currency)
	tx.Status = models.TxCompleted
	acc.Balance = acc.Balance.Add(amount)
	return a.book(ctx, acc, tx)
}

func (a *App) Withdraw(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("withdraw <account-id> <amount>")
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	acc, err := a.debit(ctx, args[0], amount)
	if err != nil {
		return err
	}

	tx := models.NewTransaction(acc.ID, models.TxWithdrawal, amount, acc.Currency)
	tx.Status = models.TxCompleted
	return a.book(ctx, acc, tx)
}

func (a *App) PayBill(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usageError("paybill <account-id> <biller> <amount>")
	}
	amount, err := parseAmount(args[2])
	if err != nil {
		return err
	}
	acc, err := a.debit(ctx, args[0], amount)
	if err != nil {
		return err
	}

	now := models.Now()
	bill := models.BillPayment{
		ID:        common.NewID(),
		AccountID: acc.ID,
		Biller:    args[1],
		Amount:    amount,
		DueAt:     now,
		PaidAt:    &now,
		Status:    models.BillPaid,
	}
	if err := a.repos.BillPayments.Write(ctx, bill, repository.LocalOrigin); err != nil {
		return err
	}

	tx := models.NewTransaction(acc.ID, models.TxBillPayment, amount, acc.Currency)
	tx.Counterparty = bill.Biller
	tx.Description = "bill " + bill.ID
	tx.Status = models.TxCompleted
	return a.book(ctx, acc, tx)
}

func (a *App) Sync(ctx context.Context) error {
	counts := a.repos.Refresh(ctx)
	for _, c := range a.repos.Collections() {
		printlnFn(fmt.Sprintf("%-20s %d", c, counts[c]))
	}
	return nil
}

func (a *App) Stats(_ context.Context) error {
	stats := a.repos.Stats()
	printlnFn(fmt.Sprintf("%-20s %8s %8s %8s %8s %8s %8s", "collection", "writes", "deletes", "pushes", "failed", "applied", "pruned"))
	for _, c := range a.repos.Collections() {
		s := stats[c]
		printlnFn(fmt.Sprintf("%-20s %8d %8d %8d %8d %8d %8d", c,
			s.LocalWrites, s.LocalDeletes, s.PushesAttempted, s.PushesFailed, s.SnapshotsApplied, s.RemoteDeletesApplied))
	}
	return nil
}

func (a *App) activeAccount(ctx context.Context, id string) (models.Account, error) {
	acc, err := a.repos.Accounts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.Account{}, fmt.Errorf("account %s: %w", id, err)
		}
		return models.Account{}, err
	}
	if acc.Status != models.AccountActive {
		return models.Account{}, fmt.Errorf("account %s: %w", id, common.ErrAccountInactive)
	}
	return acc, nil
}

// debit returns the account with amount taken off. Only credit accounts may
// go below zero.
func (a *App) debit(ctx context.Context, id string, amount decimal.Decimal) (models.Account, error) {
	acc, err := a.activeAccount(ctx, id)
	if err != nil {
		return models.Account{}, err
	}
	if acc.Type != models.AccountCredit && acc.Balance.LessThan(amount) {
		return models.Account{}, fmt.Errorf("account %s: %w", id, common.ErrInsufficientFunds)
	}
	acc.Balance = acc.Balance.Sub(amount)
	return acc, nil
}

// book records tx, then stores the updated account.
func (a *App) book(ctx context.Context, acc models.Account, tx models.TransactionRecord) error {
	if err := a.repos.Transactions.Write(ctx, tx, repository.LocalOrigin); err != nil {
		return err
	}
	if err := a.repos.Accounts.Write(ctx, acc, repository.LocalOrigin); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%s %s %s; balance %s %s", tx.Kind, tx.Amount.StringFixed(2), acc.Currency, acc.Balance.StringFixed(2), acc.Currency))
	return nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q: %w", s, common.ErrInvalidAmount)
	}
	if !d.IsPositive() {
		return decimal.Zero, common.ErrInvalidAmount
	}
	return d, nil
}
