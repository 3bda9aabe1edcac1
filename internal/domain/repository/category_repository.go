package repository

import "github.com/in100tiva/PDV/internal/domain/entity"

// CategoryRepository define o porto de persistência para categorias.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
	ListByCompany(companyID string) ([]*entity.Category, error)
}
