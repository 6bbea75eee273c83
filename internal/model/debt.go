package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Debt statuses, a pure function of paidAmount vs totalAmount
const (
	DebtPending = "pending"
	DebtPartial = "partial"
	DebtPaid    = "paid"
)

// Aging buckets, counted in whole days since the debt was created
const (
	Aging0To30  = "0-30"
	Aging31To60 = "31-60"
	Aging60Plus = "60+"
)

// DebtItem is a snapshot of a sold line carried over from the originating
// transaction (or typed in for manual utang entries).
type DebtItem struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	DebtID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    float64   `gorm:"not null" json:"quantity"`
	UnitPrice   float64   `gorm:"not null" json:"unit_price"`
	Subtotal    float64   `gorm:"not null" json:"subtotal"`
}

// DebtPayment is one payment applied to a debt. Amount is the effective
// (possibly clamped) amount actually credited against the balance.
type DebtPayment struct {
	ID           uint       `gorm:"primaryKey" json:"-"`
	DebtID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	Amount       float64    `gorm:"not null" json:"amount"`
	PaidAt       time.Time  `gorm:"not null" json:"paid_at"`
	ReceivedByID *uuid.UUID `gorm:"type:uuid" json:"received_by_id"`
	ReceivedBy   *User      `gorm:"foreignKey:ReceivedByID" json:"received_by,omitempty"`
	Method       string     `gorm:"type:varchar(20);default:'cash'" json:"method"`
	Notes        string     `gorm:"type:text" json:"notes"`
}

// Debt is one customer's owed balance, either spawned by a credit/split sale
// (TransactionID set) or entered manually by staff (TransactionID nil). The
// transaction reference is identity only: deleting either side leaves the
// other untouched.
type Debt struct {
	BaseModel
	CustomerID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer      *User         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	TransactionID *uuid.UUID    `gorm:"type:uuid" json:"transaction_id"`
	Items         []DebtItem    `gorm:"foreignKey:DebtID" json:"items"`
	Description   string        `gorm:"type:text" json:"description"`
	TotalAmount   float64       `gorm:"not null" json:"total_amount"`
	PaidAmount    float64       `gorm:"default:0" json:"paid_amount"`
	Status        string        `gorm:"type:varchar(10);default:'pending';index" json:"status"`
	DueDate       *time.Time    `json:"due_date"`
	Notes         string        `gorm:"type:text" json:"notes"`
	CreatedByID   *uuid.UUID    `gorm:"type:uuid" json:"created_by_id"`
	Payments      []DebtPayment `gorm:"foreignKey:DebtID" json:"payments"`
}

// DebtStatus derives the status from amounts: paid when fully covered,
// partial when anything has been paid, pending otherwise.
func DebtStatus(paidAmount, totalAmount float64) string {
	switch {
	case paidAmount >= totalAmount:
		return DebtPaid
	case paidAmount > 0:
		return DebtPartial
	default:
		return DebtPending
	}
}

// RecomputeStatus refreshes Status from the stored amounts
func (d *Debt) RecomputeStatus() {
	d.Status = DebtStatus(d.PaidAmount, d.TotalAmount)
}

// RemainingBalance is the amount still owed. Derived, never stored.
func (d *Debt) RemainingBalance() float64 {
	return d.TotalAmount - d.PaidAmount
}

// DaysOverdue counts whole days past the due date, 0 when there is no due
// date or the debt is settled.
func (d *Debt) DaysOverdue(now time.Time) int {
	if d.DueDate == nil || d.Status == DebtPaid {
		return 0
	}
	diff := now.Sub(*d.DueDate)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// AgeDays counts whole days (ceiling) since the debt was created
func (d *Debt) AgeDays(now time.Time) int {
	return int(math.Ceil(now.Sub(d.CreatedAt).Hours() / 24))
}

// AgingCategory buckets the debt's age: exactly 30 days still lands in 0-30
func (d *Debt) AgingCategory(now time.Time) string {
	days := d.AgeDays(now)
	switch {
	case days <= 30:
		return Aging0To30
	case days <= 60:
		return Aging31To60
	default:
		return Aging60Plus
	}
}

// DebtRequest is the payload for POST /debts (manual utang entry)
type DebtRequest struct {
	CustomerID  uuid.UUID         `json:"customer_id" validate:"uuid_required"`
	Items       []DebtItemRequest `json:"items"`
	Description string            `json:"description"`
	TotalAmount float64           `json:"total_amount" validate:"required,gt=0"`
	DueDate     *time.Time        `json:"due_date"`
	Notes       string            `json:"notes"`
}

// DebtItemRequest is one snapshot line of a manual debt entry
type DebtItemRequest struct {
	ProductName string  `json:"product_name" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	Subtotal    float64 `json:"subtotal" validate:"gte=0"`
}

// PaymentRequest is the payload for POST /debts/:id/pay
type PaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method"`
	Notes  string  `json:"notes"`
}

// DebtFilter narrows debt listings
type DebtFilter struct {
	Status     string
	CustomerID *uuid.UUID
	Aging      string
	Search     string
}

// CustomerDebtSummary aggregates one customer's non-paid debts
type CustomerDebtSummary struct {
	Customer         UserResponse `json:"customer"`
	TotalDebt        float64      `json:"total_debt"`
	TotalPaid        float64      `json:"total_paid"`
	RemainingBalance float64      `json:"remaining_balance"`
	DebtCount        int          `json:"debt_count"`
	OldestDebt       time.Time    `json:"oldest_debt"`
}

// CustomerDebtDetail is the per-customer debts view with running totals
type CustomerDebtDetail struct {
	Debts            []Debt  `json:"debts"`
	TotalDebt        float64 `json:"total_debt"`
	TotalPaid        float64 `json:"total_paid"`
	RemainingBalance float64 `json:"remaining_balance"`
}
