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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementação de ProductRepository sobre PostgreSQL. A coluna
// nome_normalizado guarda o nome sem acentos e em minúsculas para a busca.
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador de produtos. Passar pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, empresa_id, COALESCE(categoria_id, ''), nome, COALESCE(descricao, ''), COALESCE(codigo_interno, ''), COALESCE(codigo_barras, ''), unidade_medida, preco_custo, preco_venda, ativo, criado_em, atualizado_em`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.CategoryID, &p.Name, &p.Description,
		&p.InternalCode, &p.Barcode, &p.UnitMeasure, &p.CostPrice, &p.SalePrice,
		&p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create insere um produto.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO produtos
			(id, empresa_id, categoria_id, nome, nome_normalizado, descricao, codigo_interno,
			 codigo_barras, unidade_medida, preco_custo, preco_venda, ativo, criado_em, atualizado_em)
		VALUES ($1, $2, NULLIF($3, ''), $4, lower(unaccent($4)), NULLIF($5, ''), NULLIF($6, ''),
			NULLIF($7, ''), $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CompanyID, p.CategoryID, p.Name, p.Description, p.InternalCode,
		p.Barcode, p.UnitMeasure, p.CostPrice, p.SalePrice, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("criar produto: %w", err)
	}
	return nil
}

// GetByID obtém um produto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM produtos WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return p, nil
}

// GetByBarcode obtém um produto pelo código de barras dentro da empresa.
func (r *ProductRepo) GetByBarcode(companyID, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM produtos WHERE empresa_id = $1 AND codigo_barras = $2`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get produto por código de barras: %w", err)
	}
	return p, nil
}

// Update atualiza um produto.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE produtos SET
			categoria_id = NULLIF($2, ''), nome = $3, nome_normalizado = lower(unaccent($3)),
			descricao = NULLIF($4, ''), codigo_barras = NULLIF($5, ''), unidade_medida = $6,
			preco_custo = $7, preco_venda = $8, ativo = $9, atualizado_em = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		p.ID, p.CategoryID, p.Name, p.Description, p.Barcode, p.UnitMeasure,
		p.CostPrice, p.SalePrice, p.Active, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("atualizar produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove um produto.
func (r *ProductRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM produtos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("excluir produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista produtos da empresa com filtro por categoria e busca
// sobre o nome normalizado (o termo chega já normalizado do caso de uso).
func (r *ProductRepo) ListByCompany(companyID, categoryID, search string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM produtos
		WHERE empresa_id = $1
			AND ($2 = '' OR categoria_id = $2)
			AND ($3 = '' OR nome_normalizado LIKE '%' || $3 || '%' OR codigo_barras = $3 OR codigo_interno = $3)
		ORDER BY nome
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, companyID, categoryID, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar produtos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const variantColumns = `id, produto_id, nome, COALESCE(sku, ''), COALESCE(codigo_barras, ''), preco_custo, preco_venda, ativo, criado_em, atualizado_em`

func scanVariant(row pgx.Row) (*entity.ProductVariant, error) {
	var v entity.ProductVariant
	err := row.Scan(
		&v.ID, &v.ProductID, &v.Name, &v.SKU, &v.Barcode,
		&v.CostPrice, &v.SalePrice, &v.Active, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateVariant insere uma variação do produto.
func (r *ProductRepo) CreateVariant(v *entity.ProductVariant) error {
	query := `
		INSERT INTO variacoes_produto
			(id, produto_id, nome, sku, codigo_barras, preco_custo, preco_venda, ativo, criado_em, atualizado_em)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.ProductID, v.Name, v.SKU, v.Barcode, v.CostPrice, v.SalePrice,
		v.Active, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("criar variação: %w", err)
	}
	return nil
}

// GetVariantByID obtém uma variação por ID.
func (r *ProductRepo) GetVariantByID(id string) (*entity.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM variacoes_produto WHERE id = $1`
	v, err := scanVariant(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get variação: %w", err)
	}
	return v, nil
}

// GetVariantByBarcode obtém uma variação pelo código de barras dentro da empresa.
func (r *ProductRepo) GetVariantByBarcode(companyID, code string) (*entity.ProductVariant, error) {
	query := `
		SELECT v.id, v.produto_id, v.nome, COALESCE(v.sku, ''), COALESCE(v.codigo_barras, ''),
			v.preco_custo, v.preco_venda, v.ativo, v.criado_em, v.atualizado_em
		FROM variacoes_produto v
		JOIN produtos p ON p.id = v.produto_id
		WHERE p.empresa_id = $1 AND v.codigo_barras = $2`
	v, err := scanVariant(r.q.QueryRow(context.Background(), query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get variação por código de barras: %w", err)
	}
	return v, nil
}

// ListVariantsByProduct lista as variações do produto.
func (r *ProductRepo) ListVariantsByProduct(productID string) ([]*entity.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM variacoes_produto WHERE produto_id = $1 ORDER BY nome`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("listar variações: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variação: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
