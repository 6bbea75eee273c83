package service

import (
	"strings"
	"sync"
	"time"

	"go-saristore-pos/internal/model"
	"go-saristore-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// recorderActivity captures activity calls so tests can assert on them
// without touching a database or websocket.
type recorderActivity struct {
	mu      sync.Mutex
	entries []string
}

func (a *recorderActivity) Log(actorID uuid.UUID, actorName, action, details, kind string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, action+": "+details)
}

func (a *recorderActivity) Recent(limit int) ([]model.ActivityLog, error) {
	return nil, nil
}

type memoryProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newMemoryProductRepo() *memoryProductRepo {
	return &memoryProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *memoryProductRepo) add(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return p
}

func (r *memoryProductRepo) Create(product *model.Product) error {
	r.add(product)
	return nil
}

func (r *memoryProductRepo) FindAll(activeOnly bool) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *memoryProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memoryProductRepo) FindByBarcode(barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryProductRepo) Update(product *model.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *memoryProductRepo) Delete(id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *memoryProductRepo) AdjustStock(id uuid.UUID, delta float64, updatedBy string) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
	p.UpdatedBy = updatedBy
	cp := *p
	return &cp, nil
}

type memoryTransactionRepo struct {
	products *memoryProductRepo
	sales    map[uuid.UUID]*model.Transaction
	order    []uuid.UUID
	debts    []*model.Debt
}

func newMemoryTransactionRepo(products *memoryProductRepo) *memoryTransactionRepo {
	return &memoryTransactionRepo{
		products: products,
		sales:    make(map[uuid.UUID]*model.Transaction),
	}
}

func (r *memoryTransactionRepo) CreateSale(sale *model.Transaction, deductions []repository.StockDeduction, debt *model.Debt) error {
	now := time.Now()
	sale.ID = uuid.New()
	sale.CreatedAt = now
	sale.ReceiptNumber = model.ReceiptNumber(now, r.countForDay(now)+1)

	for _, d := range deductions {
		if p, ok := r.products.products[d.ProductID]; ok {
			p.Stock -= d.Quantity
			if p.Stock < 0 {
				p.Stock = 0
			}
		}
	}

	if debt != nil {
		debt.ID = uuid.New()
		debt.CreatedAt = now
		debt.TransactionID = &sale.ID
		r.debts = append(r.debts, debt)
	}

	r.sales[sale.ID] = sale
	r.order = append(r.order, sale.ID)
	return nil
}

func (r *memoryTransactionRepo) countForDay(day time.Time) int {
	count := 0
	for _, s := range r.sales {
		if s.CreatedAt.YearDay() == day.YearDay() && s.CreatedAt.Year() == day.Year() {
			count++
		}
	}
	return count
}

func (r *memoryTransactionRepo) FindAll(filter model.TransactionFilter) ([]model.Transaction, error) {
	var out []model.Transaction
	for i := len(r.order) - 1; i >= 0; i-- {
		s := r.sales[r.order[i]]
		if filter.StaffID != nil && s.StaffID != *filter.StaffID {
			continue
		}
		if filter.CustomerID != nil && (s.CustomerID == nil || *s.CustomerID != *filter.CustomerID) {
			continue
		}
		if filter.PaymentMethod != "" && s.PaymentMethod != filter.PaymentMethod {
			continue
		}
		if filter.Receipt != "" && !strings.Contains(s.ReceiptNumber, filter.Receipt) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *memoryTransactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memoryTransactionRepo) Totals(start, end time.Time) (*repository.SalesTotals, error) {
	totals := &repository.SalesTotals{}
	for _, s := range r.sales {
		if s.CreatedAt.Before(start) || !s.CreatedAt.Before(end) {
			continue
		}
		totals.Count++
		totals.Revenue += s.TotalAmount
		switch s.PaymentMethod {
		case model.PaymentCash:
			totals.CashSales += s.TotalAmount
		case model.PaymentCredit:
			totals.CreditSales += s.TotalAmount
		}
	}
	return totals, nil
}

func (r *memoryTransactionRepo) DailySales(start, end time.Time) ([]repository.DailySalesRow, error) {
	return nil, nil
}

func (r *memoryTransactionRepo) TopProducts(start, end time.Time, limit int) ([]repository.TopProductRow, error) {
	return nil, nil
}

type memoryDebtRepo struct {
	mu    sync.Mutex // stands in for the row lock of the real repo
	debts map[uuid.UUID]*model.Debt
	order []uuid.UUID
}

func newMemoryDebtRepo() *memoryDebtRepo {
	return &memoryDebtRepo{debts: make(map[uuid.UUID]*model.Debt)}
}

func (r *memoryDebtRepo) add(d *model.Debt) *model.Debt {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	r.debts[d.ID] = d
	r.order = append(r.order, d.ID)
	return d
}

func (r *memoryDebtRepo) Create(debt *model.Debt) error {
	r.add(debt)
	return nil
}

func (r *memoryDebtRepo) FindAll(filter model.DebtFilter) ([]model.Debt, error) {
	var out []model.Debt
	for i := len(r.order) - 1; i >= 0; i-- {
		d, ok := r.debts[r.order[i]]
		if !ok {
			continue
		}
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		if filter.CustomerID != nil && d.CustomerID != *filter.CustomerID {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (r *memoryDebtRepo) FindByID(id uuid.UUID) (*model.Debt, error) {
	d, ok := r.debts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memoryDebtRepo) FindByCustomer(customerID uuid.UUID) ([]model.Debt, error) {
	id := customerID
	return r.FindAll(model.DebtFilter{CustomerID: &id})
}

func (r *memoryDebtRepo) FindUnpaid() ([]model.Debt, error) {
	var out []model.Debt
	for _, id := range r.order {
		d, ok := r.debts[id]
		if !ok || d.Status == model.DebtPaid {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (r *memoryDebtRepo) FindUnpaidByCustomer(customerID uuid.UUID) ([]model.Debt, error) {
	all, _ := r.FindUnpaid()
	var out []model.Debt
	for _, d := range all {
		if d.CustomerID == customerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memoryDebtRepo) UpdateWithLock(id uuid.UUID, fn func(*model.Debt) error) (*model.Debt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.debts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	cp := *d
	return &cp, nil
}

func (r *memoryDebtRepo) Delete(id uuid.UUID) error {
	delete(r.debts, id)
	return nil
}

type memoryUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *memoryUserRepo) add(u *model.User) *model.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u
}

func (r *memoryUserRepo) Create(user *model.User) error {
	r.add(user)
	return nil
}

func (r *memoryUserRepo) FindAll(role string) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *memoryUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepo) Update(user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) Delete(id uuid.UUID, deletedBy string) error {
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepo) CountByRole(role string) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}
