package service

import (
	"errors"
	"fmt"
	"time"

	"go-saristore-pos/internal/model"
	"go-saristore-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Debts spawned by credit sales and manual entries fall due after 30 days
// unless the caller picks a date.
const defaultDebtTermDays = 30

type SaleService interface {
	CreateSale(req *model.SaleRequest, actor Actor) (*model.Transaction, error)
	GetTransactions(filter model.TransactionFilter, actor Actor) ([]model.Transaction, error)
	GetTransaction(id uuid.UUID) (*model.Transaction, error)
	GetCustomerTransactions(customerID uuid.UUID) ([]model.Transaction, error)
}

type saleService struct {
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
	activity        ActivityLogger
}

func NewSaleService(transactionRepo repository.TransactionRepository, productRepo repository.ProductRepository, activity ActivityLogger) SaleService {
	return &saleService{
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		activity:        activity,
	}
}

// CreateSale validates the cart, computes totals and payment fields, then
// commits the transaction record, the clamped stock deductions and the
// spawned debt (credit/split sales) in one storage transaction. All
// validation failures happen before anything is written.
//
// The credit limit is deliberately not consulted here: a credit sale always
// goes through, matching how the store actually hands goods over the
// counter. Only manual utang entries are gated (see DebtService).
func (s *saleService) CreateSale(req *model.SaleRequest, actor Actor) (*model.Transaction, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := firstValidationError(req); err != nil {
		return nil, err
	}

	var totalAmount float64
	items := make([]model.TransactionItem, 0, len(req.Items))
	deductions := make([]repository.StockDeduction, 0, len(req.Items))

	for _, line := range req.Items {
		product, err := s.productRepo.FindByID(line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
			}
			return nil, err
		}

		// Whole-pack lines are blocked when stock runs short. Tingi
		// lines are exempt: pieces can still be sold off an open pack
		// even when the pack count reads low.
		if !line.IsTingi && product.Stock < line.Quantity {
			return nil, &InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   line.Quantity,
			}
		}

		subtotal := line.UnitPrice * line.Quantity
		totalAmount += subtotal

		pid := product.ID
		items = append(items, model.TransactionItem{
			ProductID:   &pid,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    subtotal,
			IsTingi:     line.IsTingi,
		})
		deductions = append(deductions, repository.StockDeduction{
			ProductID: product.ID,
			Quantity:  product.PackEquivalent(line.Quantity, line.IsTingi),
		})
	}

	sale := &model.Transaction{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		StaffID:       actor.ID,
		Items:         items,
		TotalAmount:   totalAmount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if sale.CustomerName == "" {
		sale.CustomerName = "Walk-in"
	}
	sale.CreatedBy = actor.ID.String()
	sale.UpdatedBy = actor.ID.String()

	switch req.PaymentMethod {
	case model.PaymentCash:
		sale.CashReceived = req.CashReceived
		sale.ChangeAmount = maxFloat(0, req.CashReceived-totalAmount)
	case model.PaymentCredit:
		sale.CreditAmount = totalAmount
	case model.PaymentSplit:
		// Caller supplies both portions; no arithmetic cross-check
		sale.CashReceived = req.CashReceived
		sale.CreditAmount = req.CreditAmount
	}

	var debt *model.Debt
	if req.PaymentMethod == model.PaymentCredit ||
		(req.PaymentMethod == model.PaymentSplit && sale.CreditAmount > 0) {
		if req.CustomerID == nil {
			return nil, &ValidationError{Field: "customer_id", Tag: "required_for_credit"}
		}
		debtItems := make([]model.DebtItem, 0, len(items))
		for _, it := range items {
			debtItems = append(debtItems, model.DebtItem{
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				Subtotal:    it.Subtotal,
			})
		}
		dueDate := time.Now().AddDate(0, 0, defaultDebtTermDays)
		actorID := actor.ID
		debt = &model.Debt{
			CustomerID:  *req.CustomerID,
			Items:       debtItems,
			TotalAmount: sale.CreditAmount,
			Status:      model.DebtPending,
			DueDate:     &dueDate,
			CreatedByID: &actorID,
		}
		debt.CreatedBy = actor.ID.String()
	}

	if err := s.transactionRepo.CreateSale(sale, deductions, debt); err != nil {
		return nil, err
	}

	s.activity.Log(actor.ID, actor.Name, "Nag-process ng benta",
		fmt.Sprintf("Receipt: %s - ₱%.2f (%s)", sale.ReceiptNumber, totalAmount, req.PaymentMethod),
		model.ActivitySale)

	return s.transactionRepo.FindByID(sale.ID)
}

func (s *saleService) GetTransactions(filter model.TransactionFilter, actor Actor) ([]model.Transaction, error) {
	// Staff only ever see their own sales
	if actor.Role == model.RoleStaff {
		staffID := actor.ID
		filter.StaffID = &staffID
	}
	return s.transactionRepo.FindAll(filter)
}

func (s *saleService) GetTransaction(id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

func (s *saleService) GetCustomerTransactions(customerID uuid.UUID) ([]model.Transaction, error) {
	id := customerID
	return s.transactionRepo.FindAll(model.TransactionFilter{CustomerID: &id, Limit: 200})
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
