package wallet

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func begin(t *testing.T, balance string) *Workflow {
	t.Helper()
	w := New()
	if err := w.Begin(7, balance); err != nil {
		t.Fatalf("begin: %v", err)
	}
	return w
}

func TestAddComputesNewBalance(t *testing.T) {
	w := begin(t, "1500.50")
	preview, err := w.Enter(OpAdd, "250.25", "promo credit")
	if err != nil {
		t.Fatalf("enter: %v", err)
	}
	if preview.NewBalance.String() != "1750.75" {
		t.Fatalf("new balance = %s, want 1750.75", preview.NewBalance)
	}
	if w.State() != StateConfirmation {
		t.Fatalf("state = %s, want confirmation", w.State())
	}
}

func TestSubtractComputesNewBalance(t *testing.T) {
	w := begin(t, "100")
	preview, err := w.Enter(OpSubtract, "40", "chargeback")
	if err != nil {
		t.Fatalf("enter: %v", err)
	}
	if preview.NewBalance.String() != "60" {
		t.Fatalf("new balance = %s, want 60", preview.NewBalance)
	}
}

func TestEnterRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		op     Op
		amount string
		reason string
		field  string
	}{
		{"zero amount", OpAdd, "0", "x", "amount"},
		{"negative amount", OpAdd, "-5", "x", "amount"},
		{"non-numeric amount", OpAdd, "abc", "x", "amount"},
		{"empty amount", OpAdd, "", "x", "amount"},
		{"empty reason", OpAdd, "10", "", "reason"},
		{"blank reason", OpAdd, "10", "   ", "reason"},
		{"overdraw", OpSubtract, "101", "x", "amount"},
		{"unknown op", Op("transfer"), "10", "x", "type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := begin(t, "100")
			_, err := w.Enter(tc.op, tc.amount, tc.reason)
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected validation errors, got %v", err)
			}
			if _, ok := verrs[tc.field]; !ok {
				t.Fatalf("expected error on field %q, got %v", tc.field, verrs)
			}
			if w.State() != StateAmountEntry {
				t.Fatalf("failed validation must stay in amount entry, got %s", w.State())
			}
		})
	}
}

func TestSubtractUpToExactBalanceAllowed(t *testing.T) {
	w := begin(t, "100")
	preview, err := w.Enter(OpSubtract, "100", "close account")
	if err != nil {
		t.Fatalf("enter: %v", err)
	}
	if !preview.NewBalance.Equal(decimal.Zero) {
		t.Fatalf("new balance = %s, want 0", preview.NewBalance)
	}
}

func TestBeginRejectsUnparseableBalance(t *testing.T) {
	w := New()
	if err := w.Begin(1, "not-a-number"); err == nil {
		t.Fatal("expected error for bad balance")
	}
	if w.State() != StateIdle {
		t.Fatalf("state = %s, want idle", w.State())
	}
}

func TestTransitionOrderEnforced(t *testing.T) {
	w := New()
	if _, err := w.Enter(OpAdd, "1", "x"); !errors.Is(err, ErrTransition) {
		t.Fatalf("enter before begin: %v", err)
	}
	if _, err := w.Confirm(); !errors.Is(err, ErrTransition) {
		t.Fatalf("confirm before begin: %v", err)
	}

	w = begin(t, "10")
	if _, err := w.Confirm(); !errors.Is(err, ErrTransition) {
		t.Fatalf("confirm before enter: %v", err)
	}
	if err := w.Begin(2, "20"); !errors.Is(err, ErrTransition) {
		t.Fatalf("double begin: %v", err)
	}
}

func TestResolveResetsEverything(t *testing.T) {
	w := begin(t, "10")
	if _, err := w.Enter(OpAdd, "5", "gift"); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if _, err := w.Confirm(); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if w.State() != StateSubmitting {
		t.Fatalf("state = %s, want submitting", w.State())
	}

	w.Resolve()
	if w.State() != StateIdle {
		t.Fatalf("state after resolve = %s, want idle", w.State())
	}
	// A fresh flow must start cleanly on the same value.
	if err := w.Begin(3, "1"); err != nil {
		t.Fatalf("begin after resolve: %v", err)
	}
}
