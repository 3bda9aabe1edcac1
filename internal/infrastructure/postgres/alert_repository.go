package postgres

import (
	"context"
	"fmt"

	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/entity"
	"github.com/in100tiva/PDV/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*AlertRepo)(nil)

// AlertRepo implementação de StockAlertRepository sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository constrói o adaptador de alertas de estoque.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Create insere um alerta.
func (r *AlertRepo) Create(a *entity.StockAlert) error {
	query := `
		INSERT INTO alertas_estoque (id, loja_id, produto_id, variante_id, tipo, quantidade, quantidade_minima, lido, criado_em)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, false, $8)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.StoreID, a.ProductID, a.VariantID, a.Type, a.Quantity, a.MinQuantity, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("criar alerta: %w", err)
	}
	return nil
}

// HasOpenAlert informa se há alerta não lido do mesmo tipo para o item.
func (r *AlertRepo) HasOpenAlert(storeID, productID, variantID, alertType string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM alertas_estoque
			WHERE loja_id = $1 AND produto_id = $2
				AND variante_id IS NOT DISTINCT FROM NULLIF($3, '')
				AND tipo = $4 AND NOT lido)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, storeID, productID, variantID, alertType).Scan(&exists); err != nil {
		return false, fmt.Errorf("verificar alerta aberto: %w", err)
	}
	return exists, nil
}

// ListUnread lista os alertas não lidos da loja, mais recentes primeiro.
func (r *AlertRepo) ListUnread(storeID string, limit int) ([]*entity.StockAlert, error) {
	query := `
		SELECT id, loja_id, produto_id, COALESCE(variante_id, ''), tipo, quantidade, quantidade_minima, lido, criado_em
		FROM alertas_estoque
		WHERE loja_id = $1 AND NOT lido
		ORDER BY criado_em DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("listar alertas: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockAlert
	for rows.Next() {
		var a entity.StockAlert
		if err := rows.Scan(&a.ID, &a.StoreID, &a.ProductID, &a.VariantID, &a.Type, &a.Quantity, &a.MinQuantity, &a.Read, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alerta: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// MarkRead marca um alerta como lido.
func (r *AlertRepo) MarkRead(id string) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE alertas_estoque SET lido = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("marcar alerta lido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
