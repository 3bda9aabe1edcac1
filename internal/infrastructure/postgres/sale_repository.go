package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/entity"
	"github.com/in100tiva/PDV/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementação de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository constrói o adaptador de vendas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, loja_id, usuario_id, COALESCE(cliente_id, ''), numero, status, subtotal, COALESCE(tipo_desconto, ''), valor_desconto, total, COALESCE(observacoes, ''), criado_em, atualizado_em`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.StoreID, &s.UserID, &s.CustomerID, &s.Number, &s.Status,
		&s.Subtotal, &s.DiscountKind, &s.DiscountValue, &s.Total, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create insere a venda.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO vendas
			(id, loja_id, usuario_id, cliente_id, numero, status, subtotal,
			 tipo_desconto, valor_desconto, total, observacoes, criado_em, atualizado_em)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, NULLIF($8, ''), $9, $10, NULLIF($11, ''), $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.StoreID, s.UserID, s.CustomerID, s.Number, s.Status, s.Subtotal,
		s.DiscountKind, s.DiscountValue, s.Total, s.Notes, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("criar venda: %w", err)
	}
	return nil
}

// CreateItem insere um item da venda.
func (r *SaleRepo) CreateItem(i *entity.SaleItem) error {
	query := `
		INSERT INTO itens_venda
			(id, venda_id, produto_id, variante_id, quantidade, preco_unitario,
			 preco_custo, tipo_desconto, valor_desconto, subtotal, criado_em)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, NULLIF($8, ''), $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		i.ID, i.SaleID, i.ProductID, i.VariantID, i.Quantity, i.UnitPrice,
		i.CostPrice, i.DiscountKind, i.DiscountValue, i.Subtotal, i.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("criar item da venda: %w", err)
	}
	return nil
}

// CreatePayment insere o pagamento da venda.
func (r *SaleRepo) CreatePayment(p *entity.Payment) error {
	query := `
		INSERT INTO pagamentos (id, venda_id, forma, valor, troco, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SaleID, p.Method, p.Amount, p.Change, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("criar pagamento: %w", err)
	}
	return nil
}

// NextNumber devolve o próximo consecutivo de venda da loja. O UPSERT
// bloqueia a linha da loja, então vendas concorrentes serializam aqui e
// nunca repetem número.
func (r *SaleRepo) NextNumber(storeID string) (int64, error) {
	query := `
		INSERT INTO numeracao_vendas (loja_id, ultimo)
		VALUES ($1, 1)
		ON CONFLICT (loja_id)
		DO UPDATE SET ultimo = numeracao_vendas.ultimo + 1
		RETURNING ultimo`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, storeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("próximo número de venda: %w", err)
	}
	return n, nil
}

// GetByID obtém uma venda por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM vendas WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venda: %w", err)
	}
	return s, nil
}

// GetItems lista os itens da venda.
func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, venda_id, produto_id, COALESCE(variante_id, ''), quantidade, preco_unitario,
			preco_custo, COALESCE(tipo_desconto, ''), valor_desconto, subtotal, criado_em
		FROM itens_venda WHERE venda_id = $1 ORDER BY criado_em`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("listar itens da venda: %w", err)
	}
	defer rows.Close()

	var out []*entity.SaleItem
	for rows.Next() {
		var i entity.SaleItem
		if err := rows.Scan(
			&i.ID, &i.SaleID, &i.ProductID, &i.VariantID, &i.Quantity, &i.UnitPrice,
			&i.CostPrice, &i.DiscountKind, &i.DiscountValue, &i.Subtotal, &i.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item da venda: %w", err)
		}
		out = append(out, &i)
	}
	return out, rows.Err()
}

// GetPayments lista os pagamentos da venda.
func (r *SaleRepo) GetPayments(saleID string) ([]*entity.Payment, error) {
	query := `SELECT id, venda_id, forma, valor, troco, criado_em FROM pagamentos WHERE venda_id = $1 ORDER BY criado_em`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("listar pagamentos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Method, &p.Amount, &p.Change, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pagamento: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// ListByStore lista vendas da loja no período, mais recentes primeiro.
func (r *SaleRepo) ListByStore(storeID string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM vendas
		WHERE loja_id = $1
			AND ($2::timestamptz IS NULL OR criado_em >= $2)
			AND ($3::timestamptz IS NULL OR criado_em < $3)
		ORDER BY criado_em DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, storeID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar vendas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venda: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
