package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/entity"
	"github.com/in100tiva/PDV/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementação de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository constrói o adaptador de categorias.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, empresa_id, nome, COALESCE(descricao, ''), COALESCE(cor, ''), ordem, ativo, criado_em, atualizado_em`

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Description, &c.Color, &c.SortOrder, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create insere uma categoria.
func (r *CategoryRepo) Create(c *entity.Category) error {
	query := `
		INSERT INTO categorias (id, empresa_id, nome, descricao, cor, ordem, ativo, criado_em, atualizado_em)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.CompanyID, c.Name, c.Description, c.Color, c.SortOrder, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("criar categoria: %w", err)
	}
	return nil
}

// GetByID obtém uma categoria por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categorias WHERE id = $1`
	c, err := scanCategory(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return c, nil
}

// Update atualiza uma categoria.
func (r *CategoryRepo) Update(c *entity.Category) error {
	query := `
		UPDATE categorias SET
			nome = $2, descricao = NULLIF($3, ''), cor = NULLIF($4, ''), ordem = $5, ativo = $6, atualizado_em = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Description, c.Color, c.SortOrder, c.Active, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("atualizar categoria: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove uma categoria. Produtos associados ficam sem categoria
// (FK com ON DELETE SET NULL).
func (r *CategoryRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("excluir categoria: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista as categorias da empresa por ordem de exibição.
func (r *CategoryRepo) ListByCompany(companyID string) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categorias WHERE empresa_id = $1 ORDER BY ordem, nome`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar categorias: %w", err)
	}
	defer rows.Close()

	var out []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
