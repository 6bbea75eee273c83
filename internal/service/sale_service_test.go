package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"go-saristore-pos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newSaleFixture() (*memoryProductRepo, *memoryTransactionRepo, SaleService) {
	products := newMemoryProductRepo()
	transactions := newMemoryTransactionRepo(products)
	svc := NewSaleService(transactions, products, &recorderActivity{})
	return products, transactions, svc
}

func staffActor() Actor {
	return Actor{ID: uuid.New(), Name: "Aling Nena", Role: model.RoleStaff}
}

func TestCreateSaleCash(t *testing.T) {
	products, _, svc := newSaleFixture()
	p := products.add(&model.Product{Name: "Lucky Me Pancit Canton", UnitPrice: 50, Stock: 10, TingiPerPack: 1, IsActive: true})

	sale, err := svc.CreateSale(&model.SaleRequest{
		Items: []model.SaleItemRequest{
			{ProductID: p.ID, Quantity: 2, UnitPrice: 50},
		},
		PaymentMethod: model.PaymentCash,
		CashReceived:  150,
	}, staffActor())
	require.NoError(t, err)

	require.Equal(t, 100.0, sale.TotalAmount)
	require.Equal(t, 150.0, sale.CashReceived)
	require.Equal(t, 50.0, sale.ChangeAmount)
	require.Equal(t, 0.0, sale.CreditAmount)
	require.Equal(t, 8.0, products.products[p.ID].Stock)

	require.Len(t, sale.Items, 1)
	require.Equal(t, 100.0, sale.Items[0].Subtotal)
	require.Equal(t, "Lucky Me Pancit Canton", sale.Items[0].ProductName)
}

func TestCreateSaleCashShortNeverNegativeChange(t *testing.T) {
	products, _, svc := newSaleFixture()
	p := products.add(&model.Product{Name: "Lucky Me Pancit Canton", UnitPrice: 50, Stock: 10, TingiPerPack: 1, IsActive: true})

	// Short cash is not rejected; change just clamps at zero and the
	// counter settles the difference off the books.
	sale, err := svc.CreateSale(&model.SaleRequest{
		Items: []model.SaleItemRequest{
			{ProductID: p.ID, Quantity: 2, UnitPrice: 50},
		},
		PaymentMethod: model.PaymentCash,
		CashReceived:  80,
	}, staffActor())
	require.NoError(t, err)

	require.Equal(t, 100.0, sale.TotalAmount)
	require.Equal(t, 80.0, sale.CashReceived)
	require.Equal(t, 0.0, sale.ChangeAmount)
	require.Equal(t, 8.0, products.products[p.ID].Stock)
}

func TestCreateSaleTotalsMatchLineSubtotals(t *testing.T) {
	products, _, svc := newSaleFixture()
	a := products.add(&model.Product{Name: "Coke Sakto", UnitPrice: 15, Stock: 24, TingiPerPack: 1, IsActive: true})
	b := products.add(&model.Product{Name: "Sky Flakes", UnitPrice: 8, Stock: 30, TingiPerPack: 1, IsActive: true})

	sale, err := svc.CreateSale(&model.SaleRequest{
		Items: []model.SaleItemRequest{
			{ProductID: a.ID, Quantity: 3, UnitPrice: 15},
			{ProductID: b.ID, Quantity: 5, UnitPrice: 8},
		},
		PaymentMethod: model.PaymentCash,
		CashReceived:  100,
	}, staffActor())
	require.NoError(t, err)

	var sum float64
	for _, it := range sale.Items {
		require.Equal(t, it.Quantity*it.UnitPrice, it.Subtotal)
		sum += it.Subtotal
	}
	require.Equal(t, sum, sale.TotalAmount)
	require.Equal(t, 85.0, sale.TotalAmount)
	require.Equal(t, 15.0, sale.ChangeAmount)
}

func TestCreateSaleEmptyCart(t *testing.T) {
	_, _, svc := newSaleFixture()
	_, err := svc.CreateSale(&model.SaleRequest{PaymentMethod: model.PaymentCash}, staffActor())
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateSaleProductNotFound(t *testing.T) {
	_, _, svc := newSaleFixture()
	_, err := svc.CreateSale(&model.SaleRequest{
		Items:         []model.SaleItemRequest{{ProductID: uuid.New(), Quantity: 1, UnitPrice: 10}},
		PaymentMethod: model.PaymentCash,
		CashReceived:  10,
	}, staffActor())
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	products, transactions, svc := newSaleFixture()
	p := products.add(&model.Product{Name: "Bear Brand", UnitPrice: 12, Stock: 3, TingiPerPack: 1, IsActive: true})

	_, err := svc.CreateSale(&model.SaleRequest{
		Items:         []model.SaleItemRequest{{ProductID: p.ID, Quantity: 5, UnitPrice: 12}},
		PaymentMethod: model.PaymentCash,
		CashReceived:  60,
	}, staffActor())

	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	require.Equal(t, "Bear Brand", stockErr.ProductName)
	require.Equal(t, 3.0, stockErr.Available)

	// Whole cart rejected, nothing written
	require.Empty(t, transactions.sales)
	require.Equal(t, 3.0, products.products[p.ID].Stock)
}

func TestCreateSaleTingiExemptFromStockCheck(t *testing.T) {
	products, _, svc := newSaleFixture()
	p := products.add(&model.Product{
		Name: "Marlboro", UnitPrice: 145, TingiPrice: 9,
		Stock: 10, TingiPerPack: 5, IsActive: true,
	})

	// 12 pieces exceed the 10-pack stock reading, but tingi lines are
	// never blocked; deduction is the fractional pack equivalent 12/5.
	sale, err := svc.CreateSale(&model.SaleRequest{
		Items:         []model.SaleItemRequest{{ProductID: p.ID, Quantity: 12, UnitPrice: 9, IsTingi: true}},
		PaymentMethod: model.PaymentCash,
		CashReceived:  108,
	}, staffActor())
	require.NoError(t, err)
	require.Equal(t, 108.0, sale.TotalAmount)
	require.InDelta(t, 7.6, products.products[p.ID].Stock, 1e-9)
}

func TestCreateSaleStockClampedAtZero(t *testing.T) {
	products, _, svc := newSaleFixture()
	p := products.add(&model.Product{
		Name: "Kopiko", UnitPrice: 60, TingiPrice: 6,
		Stock: 0.5, TingiPerPack: 10, IsActive: true,
	})

	_, err := svc.CreateSale(&model.SaleRequest{
		Items:         []model.SaleItemRequest{{ProductID: p.ID, Quantity: 20, UnitPrice: 6, IsTingi: true}},
		PaymentMethod: model.PaymentCash,
		CashReceived:  120,
	}, staffActor())
	require.NoError(t, err)
	require.Equal(t, 0.0, products.products[p.ID].Stock)
}

func TestCreateSaleCreditSpawnsDebt(t *testing.T) {
	products, transactions, svc := newSaleFixture()
	p := products.add(&model.Product{Name: "Bigas 1kg", UnitPrice: 60, Stock: 50, TingiPerPack: 1, IsActive: true})
	// creditLimit 0 means unlimited, but the sale path never checks it
	// either way; the sale must succeed regardless
	customerID := uuid.New()

	sale, err := svc.CreateSale(&model.SaleRequest{
		Items:         []model.SaleItemRequest{{ProductID: p.ID, Quantity: 5, UnitPrice: 60}},
		CustomerID:    &customerID,
		CustomerName:  "Mang Tomas",
		PaymentMethod: model.PaymentCredit,
	}, staffActor())
	require.NoError(t, err)

	require.Equal(t, 300.0, sale.TotalAmount)
	require.Equal(t, 300.0, sale.CreditAmount)
	require.Equal(t, 0.0, sale.CashReceived)
	require.Equal(t, 0.0, sale.ChangeAmount)

	require.Len(t, transactions.debts, 1)
	debt := transactions.debts[0]
	require.Equal(t, customerID, debt.CustomerID)
	require.Equal(t, 300.0, debt.TotalAmount)
	require.Equal(t, model.DebtPending, debt.Status)
	require.Equal(t, sale.ID, *debt.TransactionID)
	require.Len(t, debt.Items, 1)
	require.Equal(t, "Bigas 1kg", debt.Items[0].ProductName)

	require.NotNil(t, debt.DueDate)
	require.WithinDuration(t, time.Now().AddDate(0, 0, 30), *debt.DueDate, time.Minute)
}

func TestCreateSaleSplitSpawnsDebtForCreditPortion(t *testing.T) {
	products, transactions, svc := newSaleFixture()
	p := products.add(&model.Product{Name: "Asukal 1kg", UnitPrice: 80, Stock: 20, TingiPerPack: 1, IsActive: true})
	customerID := uuid.New()

	sale, err := svc.CreateSale(&model.SaleRequest{
		Items:         []model.SaleItemRequest{{ProductID: p.ID, Quantity: 2, UnitPrice: 80}},
		CustomerID:    &customerID,
		PaymentMethod: model.PaymentSplit,
		CashReceived:  100,
		CreditAmount:  60,
	}, staffActor())
	require.NoError(t, err)

	require.Equal(t, 160.0, sale.TotalAmount)
	require.Equal(t, 100.0, sale.CashReceived)
	require.Equal(t, 60.0, sale.CreditAmount)

	require.Len(t, transactions.debts, 1)
	require.Equal(t, 60.0, transactions.debts[0].TotalAmount)
}

func TestCreateSaleSplitWithoutCreditPortion(t *testing.T) {
	products, transactions, svc := newSaleFixture()
	p := products.add(&model.Product{Name: "Suka", UnitPrice: 25, Stock: 10, TingiPerPack: 1, IsActive: true})

	_, err := svc.CreateSale(&model.SaleRequest{
		Items:         []model.SaleItemRequest{{ProductID: p.ID, Quantity: 1, UnitPrice: 25}},
		PaymentMethod: model.PaymentSplit,
		CashReceived:  25,
		CreditAmount:  0,
	}, staffActor())
	require.NoError(t, err)
	require.Empty(t, transactions.debts)
}

func TestCreateSaleCreditRequiresCustomer(t *testing.T) {
	products, _, svc := newSaleFixture()
	p := products.add(&model.Product{Name: "Toyo", UnitPrice: 20, Stock: 10, TingiPerPack: 1, IsActive: true})

	_, err := svc.CreateSale(&model.SaleRequest{
		Items:         []model.SaleItemRequest{{ProductID: p.ID, Quantity: 1, UnitPrice: 20}},
		PaymentMethod: model.PaymentCredit,
	}, staffActor())

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
}

func TestReceiptNumbersSequentialWithinDay(t *testing.T) {
	products, _, svc := newSaleFixture()
	p := products.add(&model.Product{Name: "Itlog", UnitPrice: 9, Stock: 100, TingiPerPack: 1, IsActive: true})
	actor := staffActor()

	datePart := time.Now().Format("20060102")
	for i := 1; i <= 3; i++ {
		sale, err := svc.CreateSale(&model.SaleRequest{
			Items:         []model.SaleItemRequest{{ProductID: p.ID, Quantity: 1, UnitPrice: 9}},
			PaymentMethod: model.PaymentCash,
			CashReceived:  9,
		}, actor)
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("RCT-%s-%04d", datePart, i), sale.ReceiptNumber)
	}
}

func TestGetTransactionsStaffSeesOwnOnly(t *testing.T) {
	products, _, svc := newSaleFixture()
	p := products.add(&model.Product{Name: "Tinapay", UnitPrice: 5, Stock: 100, TingiPerPack: 1, IsActive: true})

	staffA := staffActor()
	staffB := staffActor()
	for _, actor := range []Actor{staffA, staffA, staffB} {
		_, err := svc.CreateSale(&model.SaleRequest{
			Items:         []model.SaleItemRequest{{ProductID: p.ID, Quantity: 1, UnitPrice: 5}},
			PaymentMethod: model.PaymentCash,
			CashReceived:  5,
		}, actor)
		require.NoError(t, err)
	}

	mine, err := svc.GetTransactions(model.TransactionFilter{}, staffA)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	admin := Actor{ID: uuid.New(), Role: model.RoleAdmin}
	all, err := svc.GetTransactions(model.TransactionFilter{}, admin)
	require.NoError(t, err)
	require.Len(t, all, 3)
}
