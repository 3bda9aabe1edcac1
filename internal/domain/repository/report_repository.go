package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesByDay agrega vendas por dia para o relatório de período.
type SalesByDay struct {
	Day   time.Time
	Total decimal.Decimal
	Count int64
}

// SalesByPaymentMethod agrega vendas por forma de pagamento.
type SalesByPaymentMethod struct {
	Method string
	Total  decimal.Decimal
	Count  int64
}

// TopProduct agrega a quantidade e o faturamento por produto no período.
type TopProduct struct {
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	Total       decimal.Decimal
}

// ReportRepository define consultas de agregação para relatórios (SQL puro,
// sem passar pelas entidades).
type ReportRepository interface {
	SalesByDay(storeID string, from, to time.Time) ([]SalesByDay, error)
	SalesByPaymentMethod(storeID string, from, to time.Time) ([]SalesByPaymentMethod, error)
	TopProducts(storeID string, from, to time.Time, limit int) ([]TopProduct, error)
	SalesTotals(storeID string, from, to time.Time) (total decimal.Decimal, count int64, err error)
}
