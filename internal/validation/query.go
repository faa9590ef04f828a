package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/akave-ai/ledgerdesk/internal/model"
)

const dateOnly = "2006-01-02"

// datetimeLayouts are tried in order after the bare date. Values without a
// zone are read as UTC.
var datetimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04"}

// ParseFromDate parses a lower date bound. A bare date means the start of that
// day (UTC). Empty input means no bound.
func ParseFromDate(s string) (*time.Time, error) {
	return parseBound(s, false)
}

// ParseToDate parses an upper date bound. A bare date means the last
// nanosecond of that day (UTC).
func ParseToDate(s string) (*time.Time, error) {
	return parseBound(s, true)
}

func parseBound(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, nil
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("Invalid date format: %s. Expected YYYY-MM-DD or ISO datetime format.", s)
}

// ParseTransactionQuery validates every filter parameter and collects all
// problems instead of stopping at the first.
func ParseTransactionQuery(accountID, txType, from, to string) (model.TransactionQuery, []string) {
	q := model.TransactionQuery{AccountID: strings.TrimSpace(accountID)}
	var problems []string

	var err error
	if q.From, err = ParseFromDate(from); err != nil {
		problems = append(problems, err.Error())
	}
	if q.To, err = ParseToDate(to); err != nil {
		problems = append(problems, err.Error())
	}
	if q.Type, err = ParseTransactionType(txType); err != nil {
		problems = append(problems, err.Error())
	}
	return q, problems
}
