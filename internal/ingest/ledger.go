package ingest

import (
	"fmt"

	"github.com/akave-ai/ledgerdesk/internal/model"
	"github.com/akave-ai/ledgerdesk/internal/validation"
)

// Success is a record that passed validation, with its source line.
type Success struct {
	Input model.TicketInput
	Line  int
}

// Failure is a record that could not be imported. Line 0 with a nil Record is
// a structural failure covering the whole batch.
type Failure struct {
	Line   int    `json:"line"`
	Record any    `json:"record"`
	Reason string `json:"reason"`
}

// Result is the ledger of one parsed batch. Each input record lands in
// exactly one of the two lists; both keep input order.
type Result struct {
	Successes []Success
	Failures  []Failure
}

// Total is the number of ledger entries.
func (r Result) Total() int {
	return len(r.Successes) + len(r.Failures)
}

// structural returns a batch-level failure: one line-0 entry, no successes.
func structural(format string, args ...any) Result {
	return Result{Failures: []Failure{{Line: 0, Record: nil, Reason: fmt.Sprintf(format, args...)}}}
}

// add decodes one candidate record and appends the outcome at line.
func (r *Result) add(line int, raw any, candidate map[string]any) {
	in, err := validation.DecodeTicketRecord(candidate)
	if err != nil {
		r.fail(line, raw, err.Error())
		return
	}
	r.Successes = append(r.Successes, Success{Input: in, Line: line})
}

func (r *Result) fail(line int, raw any, reason string) {
	if reason == "" {
		reason = "Validation failed"
	}
	r.Failures = append(r.Failures, Failure{Line: line, Record: raw, Reason: reason})
}
