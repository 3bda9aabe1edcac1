package repository

import (
	"github.com/shopspring/decimal"

	"github.com/in100tiva/PDV/internal/domain/entity"
)

// StockRepository define o porto para consultar/atualizar o estoque por
// (loja, produto, variação). Get e GetForUpdate devolvem domain.ErrNotFound
// quando o item ainda não tem registro; o chamador trata ausência como
// quantidade zero.
type StockRepository interface {
	Get(storeID, productID, variantID string) (*entity.Stock, error)
	// GetForUpdate bloqueia a linha (SELECT FOR UPDATE) para a mutação
	// ler-modificar-gravar sem corrida entre terminais.
	GetForUpdate(storeID, productID, variantID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	SetThresholds(storeID, productID, variantID string, min, max *decimal.Decimal) error
	ListByStore(storeID string, limit, offset int) ([]*entity.Stock, error)
	ListBelowMinimum(storeID string) ([]*entity.Stock, error)
	ListZeroed(storeID string) ([]*entity.Stock, error)
}
