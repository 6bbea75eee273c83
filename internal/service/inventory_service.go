package service

import (
	"errors"
	"fmt"

	"go-saristore-pos/internal/model"
	"go-saristore-pos/internal/repository"
	"go-saristore-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryService interface {
	CreateProduct(req *model.Product, actor Actor) error
	UpdateProduct(id uuid.UUID, req *model.Product, actor Actor) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor Actor) error
	GetProducts(activeOnly bool) ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetProductByBarcode(barcode string) (*model.Product, error)
	AdjustStock(id uuid.UUID, req *model.StockAdjustmentRequest, actor Actor) (*model.Product, error)
	LowStockProducts() ([]model.Product, error)
	NearExpiryProducts() ([]model.Product, error)
}

type inventoryService struct {
	productRepo repository.ProductRepository
	activity    ActivityLogger
}

func NewInventoryService(productRepo repository.ProductRepository, activity ActivityLogger) InventoryService {
	return &inventoryService{
		productRepo: productRepo,
		activity:    activity,
	}
}

func firstValidationError(data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag}
	}
	return nil
}

func (s *inventoryService) CreateProduct(req *model.Product, actor Actor) error {
	if err := firstValidationError(req); err != nil {
		return err
	}

	req.CreatedBy = actor.ID.String()
	req.UpdatedBy = actor.ID.String()

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.activity.Log(actor.ID, actor.Name, "Nagdagdag ng produkto",
		fmt.Sprintf("%s - ₱%.2f (stock: %g)", req.Name, req.UnitPrice, req.Stock),
		model.ActivityInventory)
	return nil
}

func (s *inventoryService) UpdateProduct(id uuid.UUID, req *model.Product, actor Actor) (*model.Product, error) {
	if err := firstValidationError(req); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	existing.Name = req.Name
	existing.Barcode = req.Barcode
	existing.CategoryID = req.CategoryID
	existing.Brand = req.Brand
	existing.Description = req.Description
	existing.UnitPrice = req.UnitPrice
	existing.CostPrice = req.CostPrice
	existing.TingiPrice = req.TingiPrice
	existing.TingiPerPack = req.TingiPerPack
	existing.TingiUnit = req.TingiUnit
	existing.Stock = req.Stock
	existing.ReorderLevel = req.ReorderLevel
	existing.MaxStock = req.MaxStock
	existing.Unit = req.Unit
	existing.ExpiryDate = req.ExpiryDate
	existing.IsActive = req.IsActive
	existing.UpdatedBy = actor.ID.String()

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	s.activity.Log(actor.ID, actor.Name, "Nag-update ng produkto", existing.Name, model.ActivityInventory)
	return existing, nil
}

func (s *inventoryService) DeleteProduct(id uuid.UUID, actor Actor) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.activity.Log(actor.ID, actor.Name, "Nag-delete ng produkto", product.Name, model.ActivityInventory)
	return nil
}

func (s *inventoryService) GetProducts(activeOnly bool) ([]model.Product, error) {
	return s.productRepo.FindAll(activeOnly)
}

func (s *inventoryService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// GetProductByBarcode resolves a scanned barcode at the counter
func (s *inventoryService) GetProductByBarcode(barcode string) (*model.Product, error) {
	product, err := s.productRepo.FindByBarcode(barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *inventoryService) AdjustStock(id uuid.UUID, req *model.StockAdjustmentRequest, actor Actor) (*model.Product, error) {
	if err := firstValidationError(req); err != nil {
		return nil, err
	}

	before, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	oldStock := before.Stock

	product, err := s.productRepo.AdjustStock(id, req.Adjustment, actor.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	direction := "Nagdagdag"
	if req.Adjustment < 0 {
		direction = "Nagbawas"
	}
	reason := req.Reason
	if reason == "" {
		reason = "No reason"
	}
	s.activity.Log(actor.ID, actor.Name, direction+" ng stock",
		fmt.Sprintf("%s: %g → %g (%s)", product.Name, oldStock, product.Stock, reason),
		model.ActivityInventory)

	return product, nil
}

func (s *inventoryService) LowStockProducts() ([]model.Product, error) {
	products, err := s.productRepo.FindAll(true)
	if err != nil {
		return nil, err
	}
	low := make([]model.Product, 0)
	for _, p := range products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}

func (s *inventoryService) NearExpiryProducts() ([]model.Product, error) {
	products, err := s.productRepo.FindAll(true)
	if err != nil {
		return nil, err
	}
	near := make([]model.Product, 0)
	for _, p := range products {
		if p.IsNearExpiry() {
			near = append(near, p)
		}
	}
	return near, nil
}
