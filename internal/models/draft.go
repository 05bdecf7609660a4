package models

import (
	"time"
)

// Kind is the direction of a transaction.
type Kind string

const (
	KindExpense Kind = "Expense"
	KindIncome  Kind = "Income"
)

// PaymentMethod is a closed set. MethodPending is a real state, not a zero
// value: it means the user still has to be asked.
type PaymentMethod string

const (
	MethodPix     PaymentMethod = "Pix"
	MethodDebit   PaymentMethod = "Debit"
	MethodCredit  PaymentMethod = "Credit"
	MethodCash    PaymentMethod = "Cash"
	MethodPending PaymentMethod = "Pending"
)

// InstallmentState tracks whether the credit-installment question has been
// asked and answered for a draft.
type InstallmentState string

const (
	InstallmentNotApplicable InstallmentState = ""
	InstallmentPending       InstallmentState = "Pending"
	InstallmentResolved      InstallmentState = "Resolved"
)

// Draft is an in-progress transaction record. It is mutated across
// conversation turns until complete, then handed to the ledger.
type Draft struct {
	Kind             Kind             `json:"kind"`
	Amount           float64          `json:"amount"` // 0 means not yet extracted
	Category         string           `json:"category"`
	Subcategory      string           `json:"subcategory"`
	PaymentMethod    PaymentMethod    `json:"paymentMethod"`
	Installments     int              `json:"installments"` // 1 = not installment
	InstallmentState InstallmentState `json:"installmentState"`
	Description      string           `json:"description"` // original text, never rewritten
	PurchaseDate     time.Time        `json:"purchaseDate"`
}

// Complete reports whether the draft can be persisted.
func (d *Draft) Complete() bool {
	return d.Amount > 0 &&
		d.PaymentMethod != MethodPending &&
		d.PaymentMethod != "" &&
		d.InstallmentState != InstallmentPending
}
