package repository

import (
	"go-saristore-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(activeOnly bool) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByBarcode(barcode string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	// AdjustStock applies a signed delta clamped at zero and returns the
	// updated product. Runs in its own transaction with a row lock.
	AdjustStock(id uuid.UUID, delta float64, updatedBy string) (*model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(activeOnly bool) ([]model.Product, error) {
	var products []model.Product
	q := r.db.Preload("Category").Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByBarcode(barcode string) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "barcode = ?", barcode).Error
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) AdjustStock(id uuid.UUID, delta float64, updatedBy string) (*model.Product, error) {
	var product model.Product
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", id).Error; err != nil {
			return err
		}
		// Stock is clamped at zero, never negative
		if err := tx.Model(&model.Product{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"stock":      gorm.Expr("GREATEST(stock + ?, 0)", delta),
				"updated_by": updatedBy,
			}).Error; err != nil {
			return err
		}
		return tx.Preload("Category").First(&product, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}
