// Package wallet drives the add/subtract-funds flow: amount entry,
// explicit confirmation showing the computed new balance, a single
// submission, then reset. Balances stay decimal end to end.
package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Op string

const (
	OpAdd      Op = "add"
	OpSubtract Op = "subtract"
)

type State int

const (
	StateIdle State = iota
	StateAmountEntry
	StateConfirmation
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAmountEntry:
		return "amount_entry"
	case StateConfirmation:
		return "confirmation"
	case StateSubmitting:
		return "submitting"
	}
	return "unknown"
}

// ErrTransition is returned when a step is attempted out of order.
var ErrTransition = errors.New("wallet: invalid workflow transition")

// ValidationErrors maps field name to message, mirroring the form's inline
// error slots.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	return fmt.Sprintf("wallet: validation failed (%d fields)", len(v))
}

// Preview is what the confirmation step shows before anything is sent.
type Preview struct {
	Op         Op              `json:"type"`
	Current    decimal.Decimal `json:"current_balance"`
	Amount     decimal.Decimal `json:"amount"`
	NewBalance decimal.Decimal `json:"new_balance"`
	Reason     string          `json:"reason"`
}

// Workflow is one wallet adjustment for one user. Zero value is Idle.
type Workflow struct {
	state   State
	userID  int64
	current decimal.Decimal
	preview Preview
}

func New() *Workflow {
	return &Workflow{state: StateIdle}
}

func (w *Workflow) State() State { return w.state }

// Begin selects the target user. The balance string comes straight off the
// wire; a balance that fails to parse aborts before amount entry.
func (w *Workflow) Begin(userID int64, balance string) error {
	if w.state != StateIdle {
		return ErrTransition
	}
	cur, err := decimal.NewFromString(balance)
	if err != nil {
		return fmt.Errorf("wallet: bad current balance %q: %w", balance, err)
	}
	w.userID = userID
	w.current = cur
	w.state = StateAmountEntry
	return nil
}

// Enter validates the operator's input and, when clean, advances to the
// confirmation step with the computed new balance.
func (w *Workflow) Enter(op Op, amount, reason string) (Preview, error) {
	if w.state != StateAmountEntry {
		return Preview{}, ErrTransition
	}

	errs := Validate(op, amount, reason, w.current)
	if len(errs) > 0 {
		return Preview{}, errs
	}

	amt, _ := decimal.NewFromString(amount)
	newBalance := w.current.Add(amt)
	if op == OpSubtract {
		newBalance = w.current.Sub(amt)
	}

	w.preview = Preview{
		Op:         op,
		Current:    w.current,
		Amount:     amt,
		NewBalance: newBalance,
		Reason:     reason,
	}
	w.state = StateConfirmation
	return w.preview, nil
}

// Confirm locks the workflow for submission and hands back the reviewed
// preview; the caller dispatches the actual request.
func (w *Workflow) Confirm() (Preview, error) {
	if w.state != StateConfirmation {
		return Preview{}, ErrTransition
	}
	w.state = StateSubmitting
	return w.preview, nil
}

// Resolve ends the flow on either outcome: state returns to Idle and all
// transient input is cleared. Failures do not retry.
func (w *Workflow) Resolve() {
	*w = Workflow{state: StateIdle}
}

// Validate applies the amount-entry rules: the amount must parse as a
// positive decimal, the reason must be non-empty, and a subtraction may
// not exceed the current balance.
func Validate(op Op, amount, reason string, current decimal.Decimal) ValidationErrors {
	errs := ValidationErrors{}

	amt, err := decimal.NewFromString(amount)
	switch {
	case amount == "" || err != nil:
		errs["amount"] = "Please enter a valid amount greater than 0"
	case !amt.IsPositive():
		errs["amount"] = "Please enter a valid amount greater than 0"
	case op == OpSubtract && amt.GreaterThan(current):
		errs["amount"] = "Cannot subtract more than current balance"
	}

	if strings.TrimSpace(reason) == "" {
		errs["reason"] = "Please provide a reason for this transaction"
	}

	if op != OpAdd && op != OpSubtract {
		errs["type"] = "Unknown adjustment type"
	}
	return errs
}
