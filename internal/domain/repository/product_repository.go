package repository

import "github.com/in100tiva/PDV/internal/domain/entity"

// ProductRepository define o porto de persistência para produtos e variações.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(companyID, code string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	// ListByCompany filtra por categoria e termo de busca (já normalizado
	// pelo caso de uso; o repositório compara contra name_normalized).
	ListByCompany(companyID, categoryID, search string, limit, offset int) ([]*entity.Product, error)

	CreateVariant(variant *entity.ProductVariant) error
	GetVariantByID(id string) (*entity.ProductVariant, error)
	GetVariantByBarcode(companyID, code string) (*entity.ProductVariant, error)
	ListVariantsByProduct(productID string) ([]*entity.ProductVariant, error)
}
