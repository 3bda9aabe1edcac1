package dto

import "github.com/shopspring/decimal"

// SalesReportDay vendas agregadas de um dia.
type SalesReportDay struct {
	Day   string          `json:"day"` // YYYY-MM-DD
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

// SalesReportPayment vendas agregadas por forma de pagamento.
type SalesReportPayment struct {
	Method string          `json:"method"`
	Total  decimal.Decimal `json:"total"`
	Count  int64           `json:"count"`
}

// SalesReportProduct produto mais vendido no período.
type SalesReportProduct struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// SalesReportResponse relatório de vendas do período.
type SalesReportResponse struct {
	From          string               `json:"from"`
	To            string               `json:"to"`
	Total         decimal.Decimal      `json:"total"`
	Count         int64                `json:"count"`
	AverageTicket decimal.Decimal      `json:"average_ticket"`
	ByDay         []SalesReportDay     `json:"by_day"`
	ByPayment     []SalesReportPayment `json:"by_payment"`
	TopProducts   []SalesReportProduct `json:"top_products"`
}
