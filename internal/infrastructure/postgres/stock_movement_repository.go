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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementação de StockMovementRepository sobre PostgreSQL.
// Movimentações são imutáveis: sem UPDATE nem DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, loja_id, produto_id, COALESCE(variante_id, ''), usuario_id, tipo, quantidade, quantidade_anterior, quantidade_posterior, COALESCE(motivo, ''), referencia_tipo, COALESCE(referencia_id, ''), criado_em`

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.StoreID, &m.ProductID, &m.VariantID, &m.UserID,
		&m.Type, &m.Quantity, &m.QuantityBefore, &m.QuantityAfter,
		&m.Reason, &m.ReferenceKind, &m.ReferenceID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create insere a movimentação no livro-razão.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO movimentacoes_estoque
			(id, loja_id, produto_id, variante_id, usuario_id, tipo, quantidade,
			 quantidade_anterior, quantidade_posterior, motivo, referencia_tipo, referencia_id, criado_em)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, NULLIF($10, ''), $11, NULLIF($12, ''), $13)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.StoreID, m.ProductID, m.VariantID, m.UserID, m.Type, m.Quantity,
		m.QuantityBefore, m.QuantityAfter, m.Reason, m.ReferenceKind, m.ReferenceID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("criar movimentação: %w", err)
	}
	return nil
}

// GetByID obtém uma movimentação por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimentacoes_estoque WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get movimentação: %w", err)
	}
	return m, nil
}

// ListByStore lista movimentações da loja, mais recentes primeiro.
func (r *StockMovementRepo) ListByStore(storeID string, since *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movimentacoes_estoque
		WHERE loja_id = $1 AND ($2::timestamptz IS NULL OR criado_em >= $2)
		ORDER BY criado_em DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, storeID, since, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar movimentações: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByProduct lista as movimentações de um item específico, mais recentes primeiro.
func (r *StockMovementRepo) ListByProduct(storeID, productID, variantID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movimentacoes_estoque
		WHERE loja_id = $1 AND produto_id = $2 AND variante_id IS NOT DISTINCT FROM NULLIF($3, '')
		ORDER BY criado_em DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, storeID, productID, variantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar movimentações do item: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimentação: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
