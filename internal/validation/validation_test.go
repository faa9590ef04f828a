package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akave-ai/ledgerdesk/internal/model"
	"github.com/akave-ai/ledgerdesk/internal/validation"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  any
		wantErr string
	}{
		{name: "two decimals", amount: 10.00},
		{name: "integer", amount: float64(10)},
		{name: "one cent", amount: 0.01},
		{name: "large", amount: 1234567.89},
		{name: "cents with float error", amount: 0.29},
		{name: "more cents with float error", amount: 1.15},
		{name: "three decimals", amount: 10.001, wantErr: "maximum 2 decimal places"},
		{name: "zero", amount: float64(0), wantErr: "positive"},
		{name: "negative", amount: -5.0, wantErr: "positive"},
		{name: "string", amount: "100", wantErr: "must be a number, received: string"},
		{name: "missing", amount: nil, wantErr: "must be a number"},
		{name: "boolean", amount: true, wantErr: "received: boolean"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fe := validation.ValidateAmount(tc.amount)
			if tc.wantErr == "" {
				assert.Nil(t, fe)
				return
			}
			require.NotNil(t, fe)
			assert.Equal(t, "amount", fe.Field)
			assert.Contains(t, fe.Message, tc.wantErr)
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	assert.Nil(t, validation.ValidateCurrency("USD"))
	assert.Nil(t, validation.ValidateCurrency("JPY"))

	fe := validation.ValidateCurrency("usd")
	require.NotNil(t, fe)
	assert.Contains(t, fe.Message, "ISO 4217")

	fe = validation.ValidateCurrency("XYZ")
	require.NotNil(t, fe)
	assert.Equal(t, "currency", fe.Field)

	fe = validation.ValidateCurrency("")
	require.NotNil(t, fe)
	assert.Equal(t, "Currency is required", fe.Message)
}

func TestValidateAccount(t *testing.T) {
	assert.Nil(t, validation.ValidateAccount("ACC-12345", "toAccount"))
	assert.Nil(t, validation.ValidateAccount("ACC-aB3x9", "toAccount"))

	for _, bad := range []string{"acc-12345", "ACC-1234", "ACC-123456", "ACC-12_45", "ACC12345"} {
		fe := validation.ValidateAccount(bad, "fromAccount")
		require.NotNil(t, fe, bad)
		assert.Equal(t, "fromAccount", fe.Field)
		assert.Contains(t, fe.Message, "ACC-XXXXX")
		assert.Contains(t, fe.Message, bad)
	}

	fe := validation.ValidateAccount("", "toAccount")
	require.NotNil(t, fe)
	assert.Equal(t, "toAccount is required", fe.Message)
}

func TestValidateTransaction(t *testing.T) {
	tests := []struct {
		name      string
		in        model.CreateTransactionInput
		wantField string
		wantMsg   string
	}{
		{
			name: "valid deposit",
			in:   model.CreateTransactionInput{ToAccount: "ACC-00001", Amount: 50.5, Currency: "EUR", Type: model.TransactionDeposit},
		},
		{
			name: "valid transfer",
			in:   model.CreateTransactionInput{FromAccount: "ACC-00001", ToAccount: "ACC-00002", Amount: 1.0, Currency: "GBP", Type: model.TransactionTransfer},
		},
		{
			name:      "amount checked before currency",
			in:        model.CreateTransactionInput{ToAccount: "ACC-00001", Amount: -1.0, Currency: "NOPE", Type: model.TransactionDeposit},
			wantField: "amount",
		},
		{
			name:      "currency checked before type",
			in:        model.CreateTransactionInput{Amount: 1.0, Currency: "NOPE", Type: "swap"},
			wantField: "currency",
		},
		{
			name:      "unknown type",
			in:        model.CreateTransactionInput{Amount: 1.0, Currency: "USD", Type: "swap"},
			wantField: "type",
			wantMsg:   "Type must be one of: deposit, withdrawal, transfer",
		},
		{
			name:      "deposit with fromAccount",
			in:        model.CreateTransactionInput{FromAccount: "ACC-00001", ToAccount: "ACC-00002", Amount: 1.0, Currency: "USD", Type: model.TransactionDeposit},
			wantField: "fromAccount",
			wantMsg:   "Deposit should not have fromAccount",
		},
		{
			name:      "withdrawal without fromAccount",
			in:        model.CreateTransactionInput{Amount: 1.0, Currency: "USD", Type: model.TransactionWithdrawal},
			wantField: "fromAccount",
			wantMsg:   "Withdrawal requires fromAccount",
		},
		{
			name:      "transfer bad toAccount",
			in:        model.CreateTransactionInput{FromAccount: "ACC-00001", ToAccount: "ACC-2", Amount: 1.0, Currency: "USD", Type: model.TransactionTransfer},
			wantField: "toAccount",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fe := validation.ValidateTransaction(&tc.in)
			if tc.wantField == "" {
				assert.Nil(t, fe)
				return
			}
			require.NotNil(t, fe)
			assert.Equal(t, tc.wantField, fe.Field)
			if tc.wantMsg != "" {
				assert.Equal(t, tc.wantMsg, fe.Message)
			}
		})
	}
}

func validRecord() map[string]any {
	return map[string]any{
		"customer_id":    "CUST001",
		"customer_email": "jane@example.com",
		"customer_name":  "Jane Doe",
		"subject":        "Cannot log in",
		"description":    "I have been locked out of my account since yesterday.",
		"category":       "account_access",
		"priority":       "high",
	}
}

func TestDecodeTicketRecord_Defaults(t *testing.T) {
	in, err := validation.DecodeTicketRecord(validRecord())
	require.NoError(t, err)
	assert.Equal(t, model.StatusNew, in.Status)
	assert.Equal(t, []string{}, in.Tags)
	assert.Nil(t, in.Metadata)
	assert.Nil(t, in.AssignedTo)
}

func TestDecodeTicketRecord_Failures(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(map[string]any)
		wantField string
		wantMsg   string
	}{
		{
			name:      "bad email",
			mutate:    func(r map[string]any) { r["customer_email"] = "not-an-email" },
			wantField: "customer_email",
			wantMsg:   "Invalid email format",
		},
		{
			name:      "short description",
			mutate:    func(r map[string]any) { r["description"] = "too short" },
			wantField: "description",
			wantMsg:   "description must be at least 10 characters",
		},
		{
			name:      "empty subject",
			mutate:    func(r map[string]any) { r["subject"] = "" },
			wantField: "subject",
			wantMsg:   "subject must be at least 1 character",
		},
		{
			name:      "unknown category",
			mutate:    func(r map[string]any) { r["category"] = "Billing_Question" },
			wantField: "category",
		},
		{
			name:      "numeric customer id",
			mutate:    func(r map[string]any) { r["customer_id"] = float64(7) },
			wantField: "customer_id",
			wantMsg:   "Expected string, received number",
		},
		{
			name:      "tags not a list",
			mutate:    func(r map[string]any) { r["tags"] = "a|b" },
			wantField: "tags",
		},
		{
			name:      "metadata missing source",
			mutate:    func(r map[string]any) { r["metadata"] = map[string]any{"browser": "Firefox"} },
			wantField: "metadata.source",
			wantMsg:   "metadata.source is required",
		},
		{
			name:      "bad device type",
			mutate:    func(r map[string]any) { r["metadata"] = map[string]any{"source": "web_form", "device_type": "watch"} },
			wantField: "metadata.device_type",
		},
		{
			name:      "missing customer id",
			mutate:    func(r map[string]any) { delete(r, "customer_id") },
			wantField: "customer_id",
			wantMsg:   "customer_id is required",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecord()
			tc.mutate(rec)
			_, err := validation.DecodeTicketRecord(rec)
			require.Error(t, err)
			fe, ok := validation.AsFieldError(err)
			require.True(t, ok, "expected FieldError, got %T", err)
			assert.Equal(t, tc.wantField, fe.Field)
			if tc.wantMsg != "" {
				assert.Equal(t, tc.wantMsg, fe.Message)
			}
		})
	}
}

func TestDecodeTicketUpdate(t *testing.T) {
	u, err := validation.DecodeTicketUpdate(map[string]any{"status": "resolved", "assigned_to": nil})
	require.NoError(t, err)
	require.NotNil(t, u.Status)
	assert.Equal(t, model.StatusResolved, *u.Status)
	assert.True(t, u.AssignedToSet)
	assert.Nil(t, u.AssignedTo)
	assert.Nil(t, u.Subject)

	_, err = validation.DecodeTicketUpdate(map[string]any{"priority": "whenever"})
	require.Error(t, err)
}

func TestParseTransactionQuery(t *testing.T) {
	q, problems := validation.ParseTransactionQuery("ACC-00001", "DEPOSIT", "2024-01-01", "2024-01-31")
	require.Empty(t, problems)
	assert.Equal(t, model.TransactionDeposit, q.Type)
	require.NotNil(t, q.From)
	require.NotNil(t, q.To)
	assert.Equal(t, "2024-01-01T00:00:00Z", q.From.Format("2006-01-02T15:04:05Z07:00"))
	assert.Equal(t, 23, q.To.Hour())
	assert.Equal(t, 59, q.To.Minute())

	_, problems = validation.ParseTransactionQuery("", "loan", "yesterday", "")
	assert.Len(t, problems, 2)
}
