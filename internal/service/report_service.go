package service

import (
	"time"

	"go-saristore-pos/internal/model"
	"go-saristore-pos/internal/repository"

	"github.com/google/uuid"
)

// DashboardStats is the admin dashboard overview
type DashboardStats struct {
	Today struct {
		TotalSales  int64   `json:"total_sales"`
		Revenue     float64 `json:"revenue"`
		CashSales   float64 `json:"cash_sales"`
		CreditSales float64 `json:"credit_sales"`
	} `json:"today"`
	Inventory struct {
		TotalProducts   int `json:"total_products"`
		LowStockCount   int `json:"low_stock_count"`
		NearExpiryCount int `json:"near_expiry_count"`
	} `json:"inventory"`
	Debts struct {
		TotalOutstanding  float64 `json:"total_outstanding"`
		CustomersWithDebt int     `json:"customers_with_debt"`
		PendingCount      int     `json:"pending_count"`
	} `json:"debts"`
	Customers struct {
		Total int64 `json:"total"`
	} `json:"customers"`
}

// SalesReport is the period sales breakdown
type SalesReport struct {
	Start       time.Time                  `json:"start"`
	End         time.Time                  `json:"end"`
	Totals      repository.SalesTotals     `json:"totals"`
	Daily       []repository.DailySalesRow `json:"daily"`
	TopProducts []repository.TopProductRow `json:"top_products"`
}

type ReportService interface {
	Dashboard() (*DashboardStats, error)
	Sales(start, end time.Time) (*SalesReport, error)
}

type reportService struct {
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
	debtRepo        repository.DebtRepository
	userRepo        repository.UserRepository
}

func NewReportService(
	transactionRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	debtRepo repository.DebtRepository,
	userRepo repository.UserRepository,
) ReportService {
	return &reportService{
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		debtRepo:        debtRepo,
		userRepo:        userRepo,
	}
}

func (s *reportService) Dashboard() (*DashboardStats, error) {
	stats := &DashboardStats{}
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	totals, err := s.transactionRepo.Totals(dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	stats.Today.TotalSales = totals.Count
	stats.Today.Revenue = totals.Revenue
	stats.Today.CashSales = totals.CashSales
	stats.Today.CreditSales = totals.CreditSales

	products, err := s.productRepo.FindAll(true)
	if err != nil {
		return nil, err
	}
	stats.Inventory.TotalProducts = len(products)
	for _, p := range products {
		if p.IsLowStock() {
			stats.Inventory.LowStockCount++
		}
		if p.IsNearExpiry() {
			stats.Inventory.NearExpiryCount++
		}
	}

	unpaid, err := s.debtRepo.FindUnpaid()
	if err != nil {
		return nil, err
	}
	debtors := make(map[uuid.UUID]struct{})
	for _, d := range unpaid {
		stats.Debts.TotalOutstanding += d.TotalAmount - d.PaidAmount
		debtors[d.CustomerID] = struct{}{}
	}
	stats.Debts.CustomersWithDebt = len(debtors)
	stats.Debts.PendingCount = len(unpaid)

	customerCount, err := s.userRepo.CountByRole(model.RoleCustomer)
	if err != nil {
		return nil, err
	}
	stats.Customers.Total = customerCount

	return stats, nil
}

func (s *reportService) Sales(start, end time.Time) (*SalesReport, error) {
	report := &SalesReport{Start: start, End: end}

	totals, err := s.transactionRepo.Totals(start, end)
	if err != nil {
		return nil, err
	}
	report.Totals = *totals

	daily, err := s.transactionRepo.DailySales(start, end)
	if err != nil {
		return nil, err
	}
	report.Daily = daily

	top, err := s.transactionRepo.TopProducts(start, end, 10)
	if err != nil {
		return nil, err
	}
	report.TopProducts = top

	return report, nil
}
