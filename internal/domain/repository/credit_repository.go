package repository

import "github.com/in100tiva/PDV/internal/domain/entity"

// CreditRepository define o porto de persistência para fiado (crediário).
type CreditRepository interface {
	Create(credit *entity.CreditSale) error
	GetByID(id string) (*entity.CreditSale, error)
	Update(credit *entity.CreditSale) error
	CreatePayment(payment *entity.CreditPayment) error
	ListByCustomer(customerID string, limit, offset int) ([]*entity.CreditSale, error)
	ListByStore(storeID, status string, limit, offset int) ([]*entity.CreditSale, error)
	ListPayments(creditID string) ([]*entity.CreditPayment, error)
}
