package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/akave-ai/ledgerdesk/internal/model"
	"github.com/akave-ai/ledgerdesk/internal/validation"
)

// ErrMultiCurrency is returned by Balance for an account holding more than
// one currency.
var ErrMultiCurrency = errors.New("account has transactions in multiple currencies")

// DefaultCurrency is reported for an account with no transactions.
const DefaultCurrency = "USD"

// ExportHeader is the fixed first row of a transaction CSV export.
var ExportHeader = []string{"id", "fromAccount", "toAccount", "amount", "currency", "type", "timestamp", "status"}

// exportTimestamp matches the millisecond ISO-8601 form used in exports.
const exportTimestamp = "2006-01-02T15:04:05.000Z07:00"

// TransactionStore is the persistence the banking service needs.
// repository.TransactionRepository implements it.
type TransactionStore interface {
	Create(ctx context.Context, tx model.Transaction) error
	All(ctx context.Context) ([]model.Transaction, error)
	Get(ctx context.Context, id string) (*model.Transaction, error)
	ByAccount(ctx context.Context, account string) ([]model.Transaction, error)
}

// TransactionRecorder counts recorded transactions. metrics.Metrics implements it.
type TransactionRecorder interface {
	RecordTransaction(t model.TransactionType)
}

// BankingService records transactions and derives balances and summaries
// from the log.
type BankingService struct {
	store    TransactionStore
	logger   zerolog.Logger
	recorder TransactionRecorder
	now      func() time.Time
}

// NewBankingService returns a BankingService. recorder may be nil.
func NewBankingService(store TransactionStore, logger zerolog.Logger, recorder TransactionRecorder) *BankingService {
	return &BankingService{
		store:    store,
		logger:   logger,
		recorder: recorder,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateTransaction validates in and appends it as a completed transaction.
// A rule violation is returned as *validation.FieldError.
func (s *BankingService) CreateTransaction(ctx context.Context, in model.CreateTransactionInput) (*model.Transaction, error) {
	if fe := validation.ValidateTransaction(&in); fe != nil {
		return nil, fe
	}

	tx := model.Transaction{
		ID:          uuid.New().String(),
		FromAccount: in.FromAccount,
		ToAccount:   in.ToAccount,
		Amount:      in.Amount.(float64),
		Currency:    in.Currency,
		Type:        in.Type,
		Timestamp:   s.now(),
		Status:      model.TransactionCompleted,
	}
	if err := s.store.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	s.logger.Info().
		Str("transaction_id", tx.ID).
		Str("type", string(tx.Type)).
		Str("currency", tx.Currency).
		Msg("transaction recorded")
	if s.recorder != nil {
		s.recorder.RecordTransaction(tx.Type)
	}
	return &tx, nil
}

// Get returns one transaction. A missing id yields repository.ErrNotFound.
func (s *BankingService) Get(ctx context.Context, id string) (*model.Transaction, error) {
	return s.store.Get(ctx, id)
}

// List filters the log by account, then type, then the inclusive date range.
func (s *BankingService) List(ctx context.Context, q model.TransactionQuery) ([]model.Transaction, error) {
	var (
		txs []model.Transaction
		err error
	)
	if q.AccountID != "" {
		txs, err = s.store.ByAccount(ctx, q.AccountID)
	} else {
		txs, err = s.store.All(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if q.Type != "" && !strings.EqualFold(string(tx.Type), string(q.Type)) {
			continue
		}
		if q.From != nil && tx.Timestamp.Before(*q.From) {
			continue
		}
		if q.To != nil && tx.Timestamp.After(*q.To) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

// ExportCSV renders the filtered log as CSV and returns it with the download
// filename for today's date.
func (s *BankingService) ExportCSV(ctx context.Context, q model.TransactionQuery) (string, []byte, error) {
	txs, err := s.List(ctx, q)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ExportHeader); err != nil {
		return "", nil, err
	}
	for _, tx := range txs {
		row := []string{
			tx.ID,
			tx.FromAccount,
			tx.ToAccount,
			strconv.FormatFloat(tx.Amount, 'f', -1, 64),
			tx.Currency,
			string(tx.Type),
			tx.Timestamp.UTC().Format(exportTimestamp),
			string(tx.Status),
		}
		if err := w.Write(row); err != nil {
			return "", nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, err
	}

	filename := "transactions-" + s.now().Format("2006-01-02") + ".csv"
	return filename, buf.Bytes(), nil
}

// ledgerEffect splits tx into the amounts it moves into and out of account.
func ledgerEffect(tx model.Transaction, account string) (in, out decimal.Decimal) {
	amount := decimal.NewFromFloat(tx.Amount)
	switch tx.Type {
	case model.TransactionDeposit:
		if tx.ToAccount == account {
			in = amount
		}
	case model.TransactionWithdrawal:
		if tx.FromAccount == account {
			out = amount
		}
	case model.TransactionTransfer:
		if tx.FromAccount == account {
			out = amount
		}
		if tx.ToAccount == account {
			in = amount
		}
	}
	return in, out
}

// Balance sums the account's transactions in its single currency. Accounts
// spanning several currencies fail with ErrMultiCurrency.
func (s *BankingService) Balance(ctx context.Context, account string) (*model.Balance, error) {
	txs, err := s.store.ByAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return &model.Balance{AccountID: account, Balance: 0, Currency: DefaultCurrency}, nil
	}

	var currencies []string
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if _, seen := totals[tx.Currency]; !seen {
			currencies = append(currencies, tx.Currency)
		}
		in, out := ledgerEffect(tx, account)
		totals[tx.Currency] = totals[tx.Currency].Add(in).Sub(out)
	}
	if len(currencies) > 1 {
		return nil, fmt.Errorf("%w: account %s holds %s; use the summary endpoint", ErrMultiCurrency, account, strings.Join(currencies, ", "))
	}

	currency := currencies[0]
	return &model.Balance{
		AccountID:        account,
		Balance:          totals[currency].Round(2).InexactFloat64(),
		Currency:         currency,
		TransactionCount: len(txs),
	}, nil
}

// Summary totals deposits and withdrawals per currency and reports the most
// recent transaction time.
func (s *BankingService) Summary(ctx context.Context, account string) (*model.AccountSummary, error) {
	txs, err := s.store.ByAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	deposits := make(map[string]decimal.Decimal)
	withdrawals := make(map[string]decimal.Decimal)
	var latest *time.Time
	for i := range txs {
		tx := txs[i]
		if latest == nil || tx.Timestamp.After(*latest) {
			ts := tx.Timestamp
			latest = &ts
		}
		in, out := ledgerEffect(tx, account)
		if !in.IsZero() {
			deposits[tx.Currency] = deposits[tx.Currency].Add(in)
		}
		if !out.IsZero() {
			withdrawals[tx.Currency] = withdrawals[tx.Currency].Add(out)
		}
	}

	return &model.AccountSummary{
		AccountID:                 account,
		TotalDeposits:             rounded(deposits),
		TotalWithdrawals:          rounded(withdrawals),
		TransactionCount:          len(txs),
		MostRecentTransactionDate: latest,
	}, nil
}

func rounded(m map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v.Round(2).InexactFloat64()
	}
	return out
}
