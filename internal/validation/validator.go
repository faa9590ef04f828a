// Package validation holds the field rules shared by every ticket and
// transaction entry point. Parsers, handlers and services all go through the
// same validator instance so that no path can accept a record another would
// reject.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// AccountNumberPattern is the fixed account format: ACC- followed by exactly
// five case-sensitive alphanumerics.
var AccountNumberPattern = regexp.MustCompile(`^ACC-[A-Za-z0-9]{5}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("account_number", func(fl validator.FieldLevel) bool {
		return AccountNumberPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("amount2dp", func(fl validator.FieldLevel) bool {
		return hasAtMostTwoDecimals(fl.Field().Float())
	}); err != nil {
		panic(err)
	}
	return v
}

// hasAtMostTwoDecimals uses the shortest decimal representation of f, so 10.00
// and 0.01 pass while 10.001 does not.
func hasAtMostTwoDecimals(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return decimal.NewFromFloat(f).Exponent() >= -2
}

// FieldError is a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// AsFieldError unwraps err into a FieldError when it carries one.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// firstFieldError converts the first validator failure into a FieldError.
// Non-validation errors (invalid arguments to the validator) pass through.
func firstFieldError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := fieldPath(fe.Namespace())
	return &FieldError{Field: field, Message: messageFor(field, fe)}
}

// fieldPath drops the struct type prefix: "TicketInput.metadata.source" -> "metadata.source".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func messageFor(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s %s", field, fe.Param(), plural(fe.Param(), "character"))
	case "max":
		return fmt.Sprintf("%s must be at most %s %s", field, fe.Param(), plural(fe.Param(), "character"))
	case "oneof":
		opts := strings.Fields(fe.Param())
		for i, o := range opts {
			opts[i] = "'" + o + "'"
		}
		return fmt.Sprintf("Invalid enum value. Expected %s, received '%v'", strings.Join(opts, " | "), fe.Value())
	case "iso4217":
		return fmt.Sprintf("Invalid currency code (ISO 4217), received: %v", fe.Value())
	case "account_number":
		return fmt.Sprintf("%s must follow format ACC-XXXXX (5 alphanumeric characters), received: %v", field, fe.Value())
	case "gt":
		return fmt.Sprintf("Amount must be a positive number, received: %v", fe.Value())
	case "amount2dp":
		return fmt.Sprintf("Amount must have maximum 2 decimal places, received: %v", fe.Value())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}

func plural(n, word string) string {
	if n == "1" {
		return word
	}
	return word + "s"
}

// varError validates a single value and names it field on failure.
func varError(field string, value any, tag string) *FieldError {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{Field: field, Message: messageFor(field, verrs[0])}
	}
	return &FieldError{Field: field, Message: err.Error()}
}
