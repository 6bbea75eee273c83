package repository

import (
	"go-saristore-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DebtRepository interface {
	Create(debt *model.Debt) error
	FindAll(filter model.DebtFilter) ([]model.Debt, error)
	FindByID(id uuid.UUID) (*model.Debt, error)
	FindByCustomer(customerID uuid.UUID) ([]model.Debt, error)
	// FindUnpaid returns all debts whose status is not 'paid', with the
	// customer preloaded. Feeds the summary view and the credit policy.
	FindUnpaid() ([]model.Debt, error)
	FindUnpaidByCustomer(customerID uuid.UUID) ([]model.Debt, error)
	// UpdateWithLock re-reads the debt under a row lock, applies fn to it
	// and saves the result in one transaction. Serializes concurrent
	// payments against the same debt.
	UpdateWithLock(id uuid.UUID, fn func(*model.Debt) error) (*model.Debt, error)
	Delete(id uuid.UUID) error
}

type debtRepo struct {
	db *gorm.DB
}

func NewDebtRepo(db *gorm.DB) DebtRepository {
	return &debtRepo{db}
}

func (r *debtRepo) preloaded() *gorm.DB {
	return r.db.Preload("Items").Preload("Payments").Preload("Payments.ReceivedBy").Preload("Customer")
}

func (r *debtRepo) Create(debt *model.Debt) error {
	return r.db.Create(debt).Error
}

func (r *debtRepo) FindAll(filter model.DebtFilter) ([]model.Debt, error) {
	var debts []model.Debt
	q := r.preloaded().Order("created_at DESC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	err := q.Find(&debts).Error
	return debts, err
}

func (r *debtRepo) FindByID(id uuid.UUID) (*model.Debt, error) {
	var debt model.Debt
	err := r.preloaded().First(&debt, "id = ?", id).Error
	return &debt, err
}

func (r *debtRepo) FindByCustomer(customerID uuid.UUID) ([]model.Debt, error) {
	var debts []model.Debt
	err := r.preloaded().
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&debts).Error
	return debts, err
}

func (r *debtRepo) FindUnpaid() ([]model.Debt, error) {
	var debts []model.Debt
	err := r.db.Preload("Customer").
		Where("status <> ?", model.DebtPaid).
		Find(&debts).Error
	return debts, err
}

func (r *debtRepo) FindUnpaidByCustomer(customerID uuid.UUID) ([]model.Debt, error) {
	var debts []model.Debt
	err := r.db.
		Where("customer_id = ? AND status <> ?", customerID, model.DebtPaid).
		Find(&debts).Error
	return debts, err
}

func (r *debtRepo) UpdateWithLock(id uuid.UUID, fn func(*model.Debt) error) (*model.Debt, error) {
	var debt model.Debt
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&debt, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&debt).Association("Payments").Find(&debt.Payments); err != nil {
			return err
		}
		if err := tx.Model(&debt).Association("Items").Find(&debt.Items); err != nil {
			return err
		}
		if err := fn(&debt); err != nil {
			return err
		}
		return tx.Save(&debt).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

// Delete removes the debt record permanently, payments and item snapshots
// included. The originating transaction is left untouched.
func (r *debtRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("debt_id = ?", id).Delete(&model.DebtPayment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("debt_id = ?", id).Delete(&model.DebtItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Debt{}, "id = ?", id).Error
	})
}
