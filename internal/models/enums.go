package models

// AccountType classifies an account.
type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountCredit   AccountType = "credit"
)

func ParseAccountType(s string) (AccountType, bool) {
	switch v := AccountType(s); v {
	case AccountChecking, AccountSavings, AccountCredit:
		return v, true
	}
	return AccountChecking, false
}

type AccountStatus string

const (
	AccountActive AccountStatus = "active"
	AccountFrozen AccountStatus = "frozen"
	AccountClosed AccountStatus = "closed"
)

func ParseAccountStatus(s string) (AccountStatus, bool) {
	switch v := AccountStatus(s); v {
	case AccountActive, AccountFrozen, AccountClosed:
		return v, true
	}
	return AccountActive, false
}

type SavingsStatus string

const (
	SavingsOpen    SavingsStatus = "open"
	SavingsMatured SavingsStatus = "matured"
	SavingsClosed  SavingsStatus = "closed"
)

func ParseSavingsStatus(s string) (SavingsStatus, bool) {
	switch v := SavingsStatus(s); v {
	case SavingsOpen, SavingsMatured, SavingsClosed:
		return v, true
	}
	return SavingsOpen, false
}

type MortgageStatus string

const (
	MortgageActive    MortgageStatus = "active"
	MortgagePaidOff   MortgageStatus = "paid_off"
	MortgageDefaulted MortgageStatus = "defaulted"
)

func ParseMortgageStatus(s string) (MortgageStatus, bool) {
	switch v := MortgageStatus(s); v {
	case MortgageActive, MortgagePaidOff, MortgageDefaulted:
		return v, true
	}
	return MortgageActive, false
}

// RateProduct is the product an interest rate applies to.
type RateProduct string

const (
	RateSavings  RateProduct = "savings"
	RateMortgage RateProduct = "mortgage"
)

func ParseRateProduct(s string) (RateProduct, bool) {
	switch v := RateProduct(s); v {
	case RateSavings, RateMortgage:
		return v, true
	}
	return RateSavings, false
}

type TransactionKind string

const (
	TxDeposit         TransactionKind = "deposit"
	TxWithdrawal      TransactionKind = "withdrawal"
	TxTransferIn      TransactionKind = "transfer_in"
	TxTransferOut     TransactionKind = "transfer_out"
	TxBillPayment     TransactionKind = "bill_payment"
	TxMortgagePayment TransactionKind = "mortgage_payment"
)

func ParseTransactionKind(s string) (TransactionKind, bool) {
	switch v := TransactionKind(s); v {
	case TxDeposit, TxWithdrawal, TxTransferIn, TxTransferOut, TxBillPayment, TxMortgagePayment:
		return v, true
	}
	return TxDeposit, false
}

type TransactionStatus string

const (
	TxPending   TransactionStatus = "pending"
	TxCompleted TransactionStatus = "completed"
	TxFailed    TransactionStatus = "failed"
)

func ParseTransactionStatus(s string) (TransactionStatus, bool) {
	switch v := TransactionStatus(s); v {
	case TxPending, TxCompleted, TxFailed:
		return v, true
	}
	return TxPending, false
}

type BillStatus string

const (
	BillScheduled BillStatus = "scheduled"
	BillPaid      BillStatus = "paid"
	BillFailed    BillStatus = "failed"
	BillCancelled BillStatus = "cancelled"
)

func ParseBillStatus(s string) (BillStatus, bool) {
	switch v := BillStatus(s); v {
	case BillScheduled, BillPaid, BillFailed, BillCancelled:
		return v, true
	}
	return BillScheduled, false
}
