package model

import "time"

type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionTransfer   TransactionType = "transfer"
)

var TransactionTypes = []TransactionType{TransactionDeposit, TransactionWithdrawal, TransactionTransfer}

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is a stored money movement. Deposits carry only ToAccount,
// withdrawals only FromAccount, transfers both.
type Transaction struct {
	ID          string            `json:"id"`
	FromAccount string            `json:"fromAccount,omitempty"`
	ToAccount   string            `json:"toAccount,omitempty"`
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	Type        TransactionType   `json:"type"`
	Timestamp   time.Time         `json:"timestamp"`
	Status      TransactionStatus `json:"status"`
}

// Touches reports whether the transaction moves money in or out of account.
func (t *Transaction) Touches(account string) bool {
	return t.FromAccount == account || t.ToAccount == account
}

// CreateTransactionInput is the raw request body for a new transaction.
// Amount stays untyped so that non-numeric values can be reported instead of
// failing the whole decode.
type CreateTransactionInput struct {
	FromAccount string          `json:"fromAccount"`
	ToAccount   string          `json:"toAccount"`
	Amount      any             `json:"amount"`
	Currency    string          `json:"currency"`
	Type        TransactionType `json:"type"`
}

// TransactionQuery filters the transaction log. Zero values disable a filter.
type TransactionQuery struct {
	AccountID string
	Type      TransactionType
	From      *time.Time
	To        *time.Time
}

// Balance is the single-currency balance of one account.
type Balance struct {
	AccountID        string  `json:"accountId"`
	Balance          float64 `json:"balance"`
	Currency         string  `json:"currency"`
	TransactionCount int     `json:"transactionCount"`
}

// AccountSummary aggregates an account's activity per currency.
type AccountSummary struct {
	AccountID                 string             `json:"accountId"`
	TotalDeposits             map[string]float64 `json:"totalDeposits"`
	TotalWithdrawals          map[string]float64 `json:"totalWithdrawals"`
	TransactionCount          int                `json:"transactionCount"`
	MostRecentTransactionDate *time.Time         `json:"mostRecentTransactionDate"`
}
