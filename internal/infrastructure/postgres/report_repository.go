package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/in100tiva/PDV/internal/domain/entity"
	"github.com/in100tiva/PDV/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregação para relatórios, direto em SQL.
// Só vendas finalizadas entram nos números.
type ReportRepo struct {
	q Querier
}

// NewReportRepository constrói o adaptador de relatórios.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesTotals devolve faturamento e contagem de vendas do período.
func (r *ReportRepo) SalesTotals(storeID string, from, to time.Time) (decimal.Decimal, int64, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM vendas
		WHERE loja_id = $1 AND status = $2 AND criado_em >= $3 AND criado_em < $4`
	var total decimal.Decimal
	var count int64
	err := r.q.QueryRow(context.Background(), query, storeID, entity.SaleFinalizada, from, to).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("totais de vendas: %w", err)
	}
	return total, count, nil
}

// SalesByDay agrega vendas por dia do período.
func (r *ReportRepo) SalesByDay(storeID string, from, to time.Time) ([]repository.SalesByDay, error) {
	query := `
		SELECT date_trunc('day', criado_em) AS dia, COALESCE(SUM(total), 0), COUNT(*)
		FROM vendas
		WHERE loja_id = $1 AND status = $2 AND criado_em >= $3 AND criado_em < $4
		GROUP BY dia
		ORDER BY dia`
	rows, err := r.q.Query(context.Background(), query, storeID, entity.SaleFinalizada, from, to)
	if err != nil {
		return nil, fmt.Errorf("vendas por dia: %w", err)
	}
	defer rows.Close()

	var out []repository.SalesByDay
	for rows.Next() {
		var d repository.SalesByDay
		if err := rows.Scan(&d.Day, &d.Total, &d.Count); err != nil {
			return nil, fmt.Errorf("scan vendas por dia: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// SalesByPaymentMethod agrega vendas por forma de pagamento no período.
func (r *ReportRepo) SalesByPaymentMethod(storeID string, from, to time.Time) ([]repository.SalesByPaymentMethod, error) {
	query := `
		SELECT p.forma, COALESCE(SUM(v.total), 0), COUNT(*)
		FROM vendas v
		JOIN pagamentos p ON p.venda_id = v.id
		WHERE v.loja_id = $1 AND v.status = $2 AND v.criado_em >= $3 AND v.criado_em < $4
		GROUP BY p.forma
		ORDER BY SUM(v.total) DESC`
	rows, err := r.q.Query(context.Background(), query, storeID, entity.SaleFinalizada, from, to)
	if err != nil {
		return nil, fmt.Errorf("vendas por forma de pagamento: %w", err)
	}
	defer rows.Close()

	var out []repository.SalesByPaymentMethod
	for rows.Next() {
		var m repository.SalesByPaymentMethod
		if err := rows.Scan(&m.Method, &m.Total, &m.Count); err != nil {
			return nil, fmt.Errorf("scan vendas por forma: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// TopProducts lista os produtos mais vendidos do período por quantidade.
func (r *ReportRepo) TopProducts(storeID string, from, to time.Time, limit int) ([]repository.TopProduct, error) {
	query := `
		SELECT i.produto_id, p.nome, COALESCE(SUM(i.quantidade), 0), COALESCE(SUM(i.subtotal), 0)
		FROM itens_venda i
		JOIN vendas v ON v.id = i.venda_id
		JOIN produtos p ON p.id = i.produto_id
		WHERE v.loja_id = $1 AND v.status = $2 AND v.criado_em >= $3 AND v.criado_em < $4
		GROUP BY i.produto_id, p.nome
		ORDER BY SUM(i.quantidade) DESC
		LIMIT $5`
	rows, err := r.q.Query(context.Background(), query, storeID, entity.SaleFinalizada, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("produtos mais vendidos: %w", err)
	}
	defer rows.Close()

	var out []repository.TopProduct
	for rows.Next() {
		var t repository.TopProduct
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.Quantity, &t.Total); err != nil {
			return nil, fmt.Errorf("scan produto mais vendido: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
