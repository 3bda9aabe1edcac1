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

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementação de StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository constrói o adaptador de lojas.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

const storeColumns = `id, empresa_id, nome, codigo, COALESCE(telefone, ''), ativo, criado_em, atualizado_em`

func scanStore(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	err := row.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Code, &s.Phone, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create insere uma loja.
func (r *StoreRepo) Create(s *entity.Store) error {
	query := `
		INSERT INTO lojas (id, empresa_id, nome, codigo, telefone, ativo, criado_em, atualizado_em)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.CompanyID, s.Name, s.Code, s.Phone, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("criar loja: %w", err)
	}
	return nil
}

// GetByID obtém uma loja por ID.
func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM lojas WHERE id = $1`
	s, err := scanStore(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get loja: %w", err)
	}
	return s, nil
}

// ListByCompany lista as lojas da empresa.
func (r *StoreRepo) ListByCompany(companyID string) ([]*entity.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM lojas WHERE empresa_id = $1 ORDER BY nome`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar lojas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loja: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
