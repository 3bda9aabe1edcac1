package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/entity"
	"github.com/in100tiva/PDV/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementação de StockRepository sobre PostgreSQL (usável com pool ou tx).
// variante_id NULL no banco equivale a string vazia na entidade; a comparação
// usa IS NOT DISTINCT FROM para casar os dois casos com a mesma query.
type StockRepo struct {
	q Querier
}

// NewStockRepository constrói o adaptador de estoque. Passar pool ou tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, loja_id, produto_id, COALESCE(variante_id, ''), quantidade, quantidade_minima, quantidade_maxima, atualizado_em`

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	err := row.Scan(&s.ID, &s.StoreID, &s.ProductID, &s.VariantID, &s.Quantity, &s.MinQuantity, &s.MaxQuantity, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get obtém o registro de estoque de um item na loja.
func (r *StockRepo) Get(storeID, productID, variantID string) (*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM estoque
		WHERE loja_id = $1 AND produto_id = $2 AND variante_id IS NOT DISTINCT FROM NULLIF($3, '')`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, storeID, productID, variantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get estoque: %w", err)
	}
	return s, nil
}

// GetForUpdate obtém o registro e bloqueia a linha (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(storeID, productID, variantID string) (*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM estoque
		WHERE loja_id = $1 AND produto_id = $2 AND variante_id IS NOT DISTINCT FROM NULLIF($3, '')
		FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, storeID, productID, variantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get estoque for update: %w", err)
	}
	return s, nil
}

// Upsert insere ou atualiza a quantidade do item (por loja, produto e variação).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO estoque (id, loja_id, produto_id, variante_id, quantidade, quantidade_minima, quantidade_maxima, atualizado_em)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, now())
		ON CONFLICT (loja_id, produto_id, variante_id)
		DO UPDATE SET quantidade = EXCLUDED.quantidade, atualizado_em = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.StoreID, stock.ProductID, stock.VariantID,
		stock.Quantity, stock.MinQuantity, stock.MaxQuantity,
	)
	if err != nil {
		return fmt.Errorf("upsert estoque: %w", err)
	}
	return nil
}

// SetThresholds define os limites mínimo/máximo do item; cria o registro com
// quantidade zero se ainda não existe.
func (r *StockRepo) SetThresholds(storeID, productID, variantID string, min, max *decimal.Decimal) error {
	query := `
		INSERT INTO estoque (id, loja_id, produto_id, variante_id, quantidade, quantidade_minima, quantidade_maxima, atualizado_em)
		VALUES (gen_random_uuid(), $1, $2, NULLIF($3, ''), 0, $4, $5, now())
		ON CONFLICT (loja_id, produto_id, variante_id)
		DO UPDATE SET quantidade_minima = EXCLUDED.quantidade_minima, quantidade_maxima = EXCLUDED.quantidade_maxima, atualizado_em = now()`
	_, err := r.q.Exec(context.Background(), query, storeID, productID, variantID, min, max)
	if err != nil {
		return fmt.Errorf("set limites de estoque: %w", err)
	}
	return nil
}

// ListByStore lista os registros de estoque da loja.
func (r *StockRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM estoque
		WHERE loja_id = $1
		ORDER BY produto_id, variante_id NULLS FIRST
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar estoque: %w", err)
	}
	defer rows.Close()
	return collectStock(rows)
}

// ListBelowMinimum lista itens com quantidade abaixo do mínimo configurado.
func (r *StockRepo) ListBelowMinimum(storeID string) ([]*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM estoque
		WHERE loja_id = $1 AND quantidade_minima IS NOT NULL AND quantidade < quantidade_minima`
	rows, err := r.q.Query(context.Background(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("listar estoque abaixo do mínimo: %w", err)
	}
	defer rows.Close()
	return collectStock(rows)
}

// ListZeroed lista itens com quantidade zero.
func (r *StockRepo) ListZeroed(storeID string) ([]*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM estoque
		WHERE loja_id = $1 AND quantidade = 0`
	rows, err := r.q.Query(context.Background(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("listar estoque zerado: %w", err)
	}
	defer rows.Close()
	return collectStock(rows)
}

func collectStock(rows pgx.Rows) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan estoque: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
