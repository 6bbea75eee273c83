package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Payment methods accepted at the counter
const (
	PaymentCash   = "cash"
	PaymentCredit = "credit"
	PaymentSplit  = "split"
)

// TransactionItem is a line of a sale. Product name and price are snapshots
// taken at sale time so the receipt stays stable if the product changes later.
type TransactionItem struct {
	ID            uint       `gorm:"primaryKey" json:"-"`
	TransactionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	ProductID     *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	ProductName   string     `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity      float64    `gorm:"not null" json:"quantity"`
	UnitPrice     float64    `gorm:"not null" json:"unit_price"`
	Subtotal      float64    `gorm:"not null" json:"subtotal"`
	IsTingi       bool       `gorm:"default:false" json:"is_tingi"`
}

// Transaction is an immutable record of one sale. It is created once and
// never updated or deleted; credit and split sales spawn a Debt that lives
// independently afterwards.
type Transaction struct {
	BaseModel
	ReceiptNumber string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"receipt_number"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	Customer      *User      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CustomerName  string     `gorm:"type:varchar(200);default:'Walk-in'" json:"customer_name"`
	StaffID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"staff_id"`
	Staff         *User      `gorm:"foreignKey:StaffID" json:"staff,omitempty"`

	Items []TransactionItem `gorm:"foreignKey:TransactionID" json:"items"`

	TotalAmount   float64 `gorm:"not null" json:"total_amount"`
	PaymentMethod string  `gorm:"type:varchar(10);not null" json:"payment_method"`
	CashReceived  float64 `gorm:"default:0" json:"cash_received"`
	ChangeAmount  float64 `gorm:"default:0" json:"change_amount"`
	CreditAmount  float64 `gorm:"default:0" json:"credit_amount"`
	Notes         string  `gorm:"type:text" json:"notes"`
}

// ReceiptNumber formats the daily-scoped receipt sequence, e.g.
// RCT-20250831-0007 for the 7th sale of August 31.
func ReceiptNumber(day time.Time, sequence int) string {
	return fmt.Sprintf("RCT-%s-%04d", day.Format("20060102"), sequence)
}

// SaleItemRequest is one cart line submitted to POST /transactions
type SaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  float64   `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64   `json:"unit_price" validate:"gte=0"`
	IsTingi   bool      `json:"is_tingi"`
}

// SaleRequest is the payload for POST /transactions
type SaleRequest struct {
	Items         []SaleItemRequest `json:"items"`
	CustomerID    *uuid.UUID        `json:"customer_id"`
	CustomerName  string            `json:"customer_name"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash credit split"`
	CashReceived  float64           `json:"cash_received" validate:"gte=0"`
	CreditAmount  float64           `json:"credit_amount" validate:"gte=0"`
	Notes         string            `json:"notes"`
}

// TransactionFilter narrows transaction listings
type TransactionFilter struct {
	Receipt       string
	Date          *time.Time
	StartDate     *time.Time
	EndDate       *time.Time
	PaymentMethod string
	StaffID       *uuid.UUID
	CustomerID    *uuid.UUID
	Limit         int
}
