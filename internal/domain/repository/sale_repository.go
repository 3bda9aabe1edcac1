package repository

import (
	"time"

	"github.com/in100tiva/PDV/internal/domain/entity"
)

// SaleRepository define o porto de persistência para vendas, itens e
// pagamentos. NextNumber só faz sentido dentro da transação de checkout.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	CreatePayment(payment *entity.Payment) error
	// NextNumber devolve o próximo consecutivo de venda da loja.
	NextNumber(storeID string) (int64, error)
	GetByID(id string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	GetPayments(saleID string) ([]*entity.Payment, error)
	ListByStore(storeID string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error)
}
