package repository

import "github.com/in100tiva/PDV/internal/domain/entity"

// StoreRepository define o porto de persistência para lojas.
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	ListByCompany(companyID string) ([]*entity.Store, error)
}
