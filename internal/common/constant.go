// Package common contains shared constants and sentinel errors used across
// ledgersync components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// device access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// Collection names shared by the client repositories and the document server.
const (
	CollectionAccounts          = "accounts"
	CollectionSavingsBooks      = "savings_books"
	CollectionMortgages         = "mortgages"
	CollectionMortgageSchedules = "mortgage_schedules"
	CollectionInterestRates     = "interest_rates"
	CollectionTransactions      = "transactions"
	CollectionBillPayments      = "bill_payments"
)
