package validation

import (
	"fmt"
	"strings"

	"github.com/akave-ai/ledgerdesk/internal/model"
)

// ValidateAmount accepts only JSON numbers that are positive with at most two
// decimal places.
func ValidateAmount(amount any) *FieldError {
	f, ok := amount.(float64)
	if !ok {
		return &FieldError{Field: "amount", Message: "Amount must be a number, received: " + TypeName(amount)}
	}
	if fe := varError("amount", f, "gt=0"); fe != nil {
		return fe
	}
	return varError("amount", f, "amount2dp")
}

// ValidateCurrency requires an ISO 4217 alphabetic code, compared exactly.
func ValidateCurrency(currency string) *FieldError {
	if currency == "" {
		return &FieldError{Field: "currency", Message: "Currency is required"}
	}
	return varError("currency", currency, "iso4217")
}

// ValidateAccount checks the ACC-XXXXX format. field names the request field
// (fromAccount or toAccount) in the error.
func ValidateAccount(account, field string) *FieldError {
	if account == "" {
		return &FieldError{Field: field, Message: field + " is required"}
	}
	return varError(field, account, "account_number")
}

// ValidateTransaction is fail-fast: amount, currency, type, then the account
// rules for that type. The first failure is returned.
func ValidateTransaction(in *model.CreateTransactionInput) *FieldError {
	if fe := ValidateAmount(in.Amount); fe != nil {
		return fe
	}
	if fe := ValidateCurrency(in.Currency); fe != nil {
		return fe
	}

	switch in.Type {
	case model.TransactionDeposit:
		if in.ToAccount == "" {
			return &FieldError{Field: "toAccount", Message: "Deposit requires toAccount"}
		}
		if in.FromAccount != "" {
			return &FieldError{Field: "fromAccount", Message: "Deposit should not have fromAccount"}
		}
		return ValidateAccount(in.ToAccount, "toAccount")
	case model.TransactionWithdrawal:
		if in.FromAccount == "" {
			return &FieldError{Field: "fromAccount", Message: "Withdrawal requires fromAccount"}
		}
		if in.ToAccount != "" {
			return &FieldError{Field: "toAccount", Message: "Withdrawal should not have toAccount"}
		}
		return ValidateAccount(in.FromAccount, "fromAccount")
	case model.TransactionTransfer:
		if in.FromAccount == "" {
			return &FieldError{Field: "fromAccount", Message: "Transfer requires fromAccount"}
		}
		if in.ToAccount == "" {
			return &FieldError{Field: "toAccount", Message: "Transfer requires toAccount"}
		}
		if fe := ValidateAccount(in.FromAccount, "fromAccount"); fe != nil {
			return fe
		}
		return ValidateAccount(in.ToAccount, "toAccount")
	}
	return &FieldError{Field: "type", Message: "Type must be one of: " + joinTypes()}
}

func joinTypes() string {
	names := make([]string, len(model.TransactionTypes))
	for i, t := range model.TransactionTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// ParseTransactionType matches case-insensitively. Empty input means no filter.
func ParseTransactionType(s string) (model.TransactionType, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	for _, t := range model.TransactionTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("Invalid transaction type: %s. Expected one of: %s", s, joinTypes())
}
