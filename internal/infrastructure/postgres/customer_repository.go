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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementação de CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository constrói o adaptador de clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, empresa_id, nome, COALESCE(tipo_documento, ''), COALESCE(documento, ''), COALESCE(email, ''), COALESCE(telefone, ''), limite_credito, COALESCE(observacoes, ''), ativo, criado_em, atualizado_em`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.DocumentType, &c.Document,
		&c.Email, &c.Phone, &c.CreditLimit, &c.Notes, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create insere um cliente.
func (r *CustomerRepo) Create(c *entity.Customer) error {
	query := `
		INSERT INTO clientes
			(id, empresa_id, nome, tipo_documento, documento, email, telefone, limite_credito, observacoes, ativo, criado_em, atualizado_em)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, NULLIF($9, ''), $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.CompanyID, c.Name, c.DocumentType, c.Document, c.Email, c.Phone,
		c.CreditLimit, c.Notes, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("criar cliente: %w", err)
	}
	return nil
}

// GetByID obtém um cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// GetByCompanyAndDocument obtém um cliente pelo documento (CPF/CNPJ) na empresa.
func (r *CustomerRepo) GetByCompanyAndDocument(companyID, document string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes WHERE empresa_id = $1 AND documento = $2`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, companyID, document))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get cliente por documento: %w", err)
	}
	return c, nil
}

// Update atualiza um cliente.
func (r *CustomerRepo) Update(c *entity.Customer) error {
	query := `
		UPDATE clientes SET
			nome = $2, email = NULLIF($3, ''), telefone = NULLIF($4, ''),
			limite_credito = $5, observacoes = NULLIF($6, ''), ativo = $7, atualizado_em = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Email, c.Phone, c.CreditLimit, c.Notes, c.Active, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("atualizar cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista clientes da empresa; a busca casa nome (sem acentos) ou documento.
func (r *CustomerRepo) ListByCompany(companyID, search string, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM clientes
		WHERE empresa_id = $1
			AND ($2 = '' OR lower(unaccent(nome)) LIKE '%' || lower(unaccent($2)) || '%' OR documento = $2)
		ORDER BY nome
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
