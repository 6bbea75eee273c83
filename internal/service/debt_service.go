package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-saristore-pos/internal/model"
	"go-saristore-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DebtService interface {
	// CreateManual records an utang entered at the counter without a sale.
	// This is the only path that consults the credit limit.
	CreateManual(req *model.DebtRequest, actor Actor) (*model.Debt, error)
	RecordPayment(debtID uuid.UUID, req *model.PaymentRequest, actor Actor) (*model.Debt, error)
	GetDebts(filter model.DebtFilter) ([]model.Debt, error)
	GetDebt(id uuid.UUID) (*model.Debt, error)
	GetCustomerDebts(customerID uuid.UUID) (*model.CustomerDebtDetail, error)
	Summary() ([]model.CustomerDebtSummary, error)
	Delete(id uuid.UUID, actor Actor) error
}

type debtService struct {
	debtRepo repository.DebtRepository
	userRepo repository.UserRepository
	activity ActivityLogger
}

func NewDebtService(debtRepo repository.DebtRepository, userRepo repository.UserRepository, activity ActivityLogger) DebtService {
	return &debtService{
		debtRepo: debtRepo,
		userRepo: userRepo,
		activity: activity,
	}
}

// checkCreditLimit approves when the customer has no limit set (0 =
// unlimited) or when the new amount still fits under it. Outstanding is the
// unpaid remainder summed over all non-paid debts.
func (s *debtService) checkCreditLimit(customer *model.User, amount float64) error {
	if customer.CreditLimit <= 0 {
		return nil
	}
	debts, err := s.debtRepo.FindUnpaidByCustomer(customer.ID)
	if err != nil {
		return err
	}
	var outstanding float64
	for _, d := range debts {
		outstanding += d.TotalAmount - d.PaidAmount
	}
	if outstanding+amount > customer.CreditLimit {
		return &CreditLimitError{
			CustomerName: customer.FirstName,
			Limit:        customer.CreditLimit,
			Outstanding:  outstanding,
		}
	}
	return nil
}

func (s *debtService) CreateManual(req *model.DebtRequest, actor Actor) (*model.Debt, error) {
	if err := firstValidationError(req); err != nil {
		return nil, err
	}

	customer, err := s.userRepo.FindByID(req.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	if err := s.checkCreditLimit(customer, req.TotalAmount); err != nil {
		return nil, err
	}

	items := make([]model.DebtItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.DebtItem{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}

	dueDate := req.DueDate
	if dueDate == nil {
		d := time.Now().AddDate(0, 0, defaultDebtTermDays)
		dueDate = &d
	}

	actorID := actor.ID
	debt := &model.Debt{
		CustomerID:  req.CustomerID,
		Items:       items,
		Description: req.Description,
		TotalAmount: req.TotalAmount,
		Status:      model.DebtPending,
		DueDate:     dueDate,
		Notes:       req.Notes,
		CreatedByID: &actorID,
	}
	debt.CreatedBy = actor.ID.String()

	if err := s.debtRepo.Create(debt); err != nil {
		return nil, err
	}

	s.activity.Log(actor.ID, actor.Name, "Nagdagdag ng utang",
		fmt.Sprintf("%s - ₱%.2f", customer.FullName(), req.TotalAmount),
		model.ActivityDebt)

	return s.debtRepo.FindByID(debt.ID)
}

// RecordPayment applies a payment under a row lock so two simultaneous
// payments against the same debt serialize instead of both reading a stale
// balance. Overpayment is clamped to the remaining balance, never rejected;
// the excess is handed back at the counter and does not enter the ledger.
func (s *debtService) RecordPayment(debtID uuid.UUID, req *model.PaymentRequest, actor Actor) (*model.Debt, error) {
	if err := firstValidationError(req); err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = model.PaymentCash
	}

	var effective float64
	updated, err := s.debtRepo.UpdateWithLock(debtID, func(debt *model.Debt) error {
		if debt.Status == model.DebtPaid {
			return ErrDebtAlreadyPaid
		}

		effective = req.Amount
		if remaining := debt.RemainingBalance(); effective > remaining {
			effective = remaining
		}

		actorID := actor.ID
		debt.Payments = append(debt.Payments, model.DebtPayment{
			DebtID:       debt.ID,
			Amount:       effective,
			PaidAt:       time.Now(),
			ReceivedByID: &actorID,
			Method:       method,
			Notes:        req.Notes,
		})
		debt.PaidAmount += effective
		debt.RecomputeStatus()
		debt.UpdatedBy = actor.ID.String()
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDebtNotFound
		}
		return nil, err
	}

	settled := "partial"
	if updated.Status == model.DebtPaid {
		settled = "FULLY PAID"
	}
	customerName := ""
	if updated.Customer != nil {
		customerName = updated.Customer.FullName()
	}
	s.activity.Log(actor.ID, actor.Name, "Tumanggap ng bayad",
		fmt.Sprintf("%s - ₱%.2f (%s)", customerName, effective, settled),
		model.ActivityPayment)

	return updated, nil
}

// GetDebts filters by status and customer in the database; aging and
// customer-name search are applied in memory because both derive from
// fields computed at read time.
func (s *debtService) GetDebts(filter model.DebtFilter) ([]model.Debt, error) {
	debts, err := s.debtRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		matched := make([]model.Debt, 0, len(debts))
		for _, d := range debts {
			if d.Customer == nil {
				continue
			}
			if strings.Contains(strings.ToLower(d.Customer.FullName()), needle) {
				matched = append(matched, d)
			}
		}
		debts = matched
	}

	if filter.Aging != "" {
		now := time.Now()
		matched := make([]model.Debt, 0, len(debts))
		for _, d := range debts {
			if d.AgingCategory(now) == filter.Aging {
				matched = append(matched, d)
			}
		}
		debts = matched
	}

	return debts, nil
}

func (s *debtService) GetDebt(id uuid.UUID) (*model.Debt, error) {
	debt, err := s.debtRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDebtNotFound
		}
		return nil, err
	}
	return debt, nil
}

func (s *debtService) GetCustomerDebts(customerID uuid.UUID) (*model.CustomerDebtDetail, error) {
	debts, err := s.debtRepo.FindByCustomer(customerID)
	if err != nil {
		return nil, err
	}

	detail := &model.CustomerDebtDetail{Debts: debts}
	for _, d := range debts {
		detail.TotalDebt += d.TotalAmount
		detail.TotalPaid += d.PaidAmount
	}
	detail.RemainingBalance = detail.TotalDebt - detail.TotalPaid
	return detail, nil
}

// Summary groups all non-paid debts by customer, sorted by remaining
// balance so the biggest utang shows first.
func (s *debtService) Summary() ([]model.CustomerDebtSummary, error) {
	debts, err := s.debtRepo.FindUnpaid()
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[uuid.UUID]*model.CustomerDebtSummary)
	for _, d := range debts {
		if d.Customer == nil {
			continue
		}
		entry, ok := byCustomer[d.CustomerID]
		if !ok {
			entry = &model.CustomerDebtSummary{
				Customer:   d.Customer.ToResponse(),
				OldestDebt: d.CreatedAt,
			}
			byCustomer[d.CustomerID] = entry
		}
		entry.TotalDebt += d.TotalAmount
		entry.TotalPaid += d.PaidAmount
		entry.DebtCount++
		if d.CreatedAt.Before(entry.OldestDebt) {
			entry.OldestDebt = d.CreatedAt
		}
	}

	summary := make([]model.CustomerDebtSummary, 0, len(byCustomer))
	for _, entry := range byCustomer {
		entry.RemainingBalance = entry.TotalDebt - entry.TotalPaid
		summary = append(summary, *entry)
	}
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].RemainingBalance > summary[j].RemainingBalance
	})
	return summary, nil
}

// Delete hard-removes a debt record. Admin only, no state restrictions, and
// no cascade to the originating transaction.
func (s *debtService) Delete(id uuid.UUID, actor Actor) error {
	debt, err := s.debtRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDebtNotFound
		}
		return err
	}

	if err := s.debtRepo.Delete(id); err != nil {
		return err
	}

	s.activity.Log(actor.ID, actor.Name, "Nag-delete ng utang record",
		fmt.Sprintf("₱%.2f", debt.TotalAmount), model.ActivityDebt)
	return nil
}
