package repository

import (
	"time"

	"go-saristore-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockDeduction is a precomputed pack-equivalent quantity to remove from a
// product's stock as part of a sale.
type StockDeduction struct {
	ProductID uuid.UUID
	Quantity  float64
}

// SalesTotals aggregates transactions over a period for reporting
type SalesTotals struct {
	Count       int64   `json:"count"`
	Revenue     float64 `json:"revenue"`
	CashSales   float64 `json:"cash_sales"`
	CreditSales float64 `json:"credit_sales"`
}

// DailySalesRow is one day of the period sales report
type DailySalesRow struct {
	Date    string  `json:"date"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

// TopProductRow ranks products by quantity sold over a period
type TopProductRow struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

type TransactionRepository interface {
	// CreateSale persists a sale atomically: receipt numbering, the
	// transaction with its line items, clamped stock deductions, and the
	// spawned debt (nil for pure cash sales) all commit or roll back
	// together.
	CreateSale(sale *model.Transaction, deductions []StockDeduction, debt *model.Debt) error
	FindAll(filter model.TransactionFilter) ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	Totals(start, end time.Time) (*SalesTotals, error)
	DailySales(start, end time.Time) ([]DailySalesRow, error)
	TopProducts(start, end time.Time, limit int) ([]TopProductRow, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) CreateSale(sale *model.Transaction, deductions []StockDeduction, debt *model.Debt) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Daily-scoped receipt sequence: count today's sales inside the
		// transaction. The unique index on receipt_number catches the
		// rare same-instant collision.
		now := time.Now()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		var todayCount int64
		if err := tx.Model(&model.Transaction{}).
			Where("created_at >= ? AND created_at < ?", dayStart, dayStart.AddDate(0, 0, 1)).
			Count(&todayCount).Error; err != nil {
			return err
		}
		sale.ReceiptNumber = model.ReceiptNumber(now, int(todayCount)+1)

		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		for _, d := range deductions {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&model.Product{}, "id = ?", d.ProductID).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Product{}).
				Where("id = ?", d.ProductID).
				Update("stock", gorm.Expr("GREATEST(stock - ?, 0)", d.Quantity)).Error; err != nil {
				return err
			}
		}

		if debt != nil {
			debt.TransactionID = &sale.ID
			if err := tx.Create(debt).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *transactionRepo) FindAll(filter model.TransactionFilter) ([]model.Transaction, error) {
	var transactions []model.Transaction
	q := r.db.Preload("Items").Preload("Customer").Preload("Staff").
		Order("created_at DESC")

	// Receipt search takes precedence over date filters
	if filter.Receipt != "" {
		q = q.Where("receipt_number ILIKE ?", "%"+filter.Receipt+"%")
	} else if filter.Date != nil {
		d := *filter.Date
		dayStart := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		q = q.Where("created_at >= ? AND created_at < ?", dayStart, dayStart.AddDate(0, 0, 1))
	} else if filter.StartDate != nil && filter.EndDate != nil {
		end := filter.EndDate.AddDate(0, 0, 1)
		q = q.Where("created_at >= ? AND created_at < ?", *filter.StartDate, end)
	}

	if filter.PaymentMethod != "" {
		q = q.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.StaffID != nil {
		q = q.Where("staff_id = ?", *filter.StaffID)
	}
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	err := q.Limit(limit).Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Items").Preload("Customer").Preload("Staff").
		First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *transactionRepo) Totals(start, end time.Time) (*SalesTotals, error) {
	var totals SalesTotals
	err := r.db.Model(&model.Transaction{}).
		Select(`
			COUNT(*) as count,
			COALESCE(SUM(total_amount), 0) as revenue,
			COALESCE(SUM(CASE WHEN payment_method = 'cash' THEN total_amount ELSE 0 END), 0) as cash_sales,
			COALESCE(SUM(CASE WHEN payment_method = 'credit' THEN total_amount ELSE 0 END), 0) as credit_sales
		`).
		Where("created_at >= ? AND created_at < ?", start, end).
		Scan(&totals).Error
	return &totals, err
}

func (r *transactionRepo) DailySales(start, end time.Time) ([]DailySalesRow, error) {
	var results []DailySalesRow
	rows, err := r.db.Model(&model.Transaction{}).
		Select("DATE(created_at) as date, COUNT(*) as count, COALESCE(SUM(total_amount), 0) as revenue").
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row DailySalesRow
		if err := rows.Scan(&row.Date, &row.Count, &row.Revenue); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *transactionRepo) TopProducts(start, end time.Time, limit int) ([]TopProductRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var results []TopProductRow
	err := r.db.Model(&model.TransactionItem{}).
		Select(`
			transaction_items.product_name,
			COALESCE(SUM(transaction_items.quantity), 0) as quantity,
			COALESCE(SUM(transaction_items.subtotal), 0) as revenue
		`).
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Where("transactions.created_at >= ? AND transactions.created_at < ?", start, end).
		Group("transaction_items.product_name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}
