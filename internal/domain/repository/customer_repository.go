package repository

import "github.com/in100tiva/PDV/internal/domain/entity"

// CustomerRepository define o porto de persistência para clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByCompanyAndDocument(companyID, document string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	ListByCompany(companyID, search string, limit, offset int) ([]*entity.Customer, error)
}
