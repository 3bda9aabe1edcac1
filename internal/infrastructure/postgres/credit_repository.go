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

var _ repository.CreditRepository = (*CreditRepo)(nil)

// CreditRepo implementação de CreditRepository sobre PostgreSQL.
type CreditRepo struct {
	q Querier
}

// NewCreditRepository constrói o adaptador de fiado.
func NewCreditRepository(q Querier) *CreditRepo {
	return &CreditRepo{q: q}
}

const creditColumns = `id, loja_id, cliente_id, venda_id, total, pago, saldo, vencimento, status, COALESCE(observacoes, ''), criado_em, atualizado_em`

func scanCredit(row pgx.Row) (*entity.CreditSale, error) {
	var c entity.CreditSale
	err := row.Scan(
		&c.ID, &c.StoreID, &c.CustomerID, &c.SaleID, &c.Total, &c.Paid,
		&c.Remaining, &c.DueDate, &c.Status, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create insere um fiado.
func (r *CreditRepo) Create(c *entity.CreditSale) error {
	query := `
		INSERT INTO vendas_fiado
			(id, loja_id, cliente_id, venda_id, total, pago, saldo, vencimento, status, observacoes, criado_em, atualizado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.StoreID, c.CustomerID, c.SaleID, c.Total, c.Paid, c.Remaining,
		c.DueDate, c.Status, c.Notes, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("criar fiado: %w", err)
	}
	return nil
}

// GetByID obtém um fiado por ID.
func (r *CreditRepo) GetByID(id string) (*entity.CreditSale, error) {
	query := `SELECT ` + creditColumns + ` FROM vendas_fiado WHERE id = $1`
	c, err := scanCredit(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get fiado: %w", err)
	}
	return c, nil
}

// Update atualiza o saldo e o status do fiado.
func (r *CreditRepo) Update(c *entity.CreditSale) error {
	query := `
		UPDATE vendas_fiado SET pago = $2, saldo = $3, status = $4, atualizado_em = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, c.ID, c.Paid, c.Remaining, c.Status, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("atualizar fiado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreatePayment insere um abatimento do fiado.
func (r *CreditRepo) CreatePayment(p *entity.CreditPayment) error {
	query := `
		INSERT INTO pagamentos_fiado (id, fiado_id, usuario_id, valor, forma, observacoes, criado_em)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CreditID, p.UserID, p.Amount, p.Method, p.Notes, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("criar abatimento: %w", err)
	}
	return nil
}

// ListByCustomer lista os fiados do cliente, mais recentes primeiro.
func (r *CreditRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.CreditSale, error) {
	query := `
		SELECT ` + creditColumns + `
		FROM vendas_fiado
		WHERE cliente_id = $1
		ORDER BY criado_em DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar fiados do cliente: %w", err)
	}
	defer rows.Close()
	return collectCredits(rows)
}

// ListByStore lista os fiados da loja, com filtro opcional por status.
func (r *CreditRepo) ListByStore(storeID, status string, limit, offset int) ([]*entity.CreditSale, error) {
	query := `
		SELECT ` + creditColumns + `
		FROM vendas_fiado
		WHERE loja_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY criado_em DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, storeID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar fiados da loja: %w", err)
	}
	defer rows.Close()
	return collectCredits(rows)
}

// ListPayments lista os abatimentos do fiado, mais antigos primeiro.
func (r *CreditRepo) ListPayments(creditID string) ([]*entity.CreditPayment, error) {
	query := `
		SELECT id, fiado_id, usuario_id, valor, forma, COALESCE(observacoes, ''), criado_em
		FROM pagamentos_fiado WHERE fiado_id = $1 ORDER BY criado_em`
	rows, err := r.q.Query(context.Background(), query, creditID)
	if err != nil {
		return nil, fmt.Errorf("listar abatimentos: %w", err)
	}
	defer rows.Close()

	var out []*entity.CreditPayment
	for rows.Next() {
		var p entity.CreditPayment
		if err := rows.Scan(&p.ID, &p.CreditID, &p.UserID, &p.Amount, &p.Method, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan abatimento: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func collectCredits(rows pgx.Rows) ([]*entity.CreditSale, error) {
	var out []*entity.CreditSale
	for rows.Next() {
		c, err := scanCredit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fiado: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
