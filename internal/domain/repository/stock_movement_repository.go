package repository

import (
	"time"

	"github.com/in100tiva/PDV/internal/domain/entity"
)

// StockMovementRepository define o porto de persistência do livro-razão de
// estoque. Movimentações são imutáveis: apenas criação e leitura.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByStore lista movimentações da loja, mais recentes primeiro.
	ListByStore(storeID string, since *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByProduct(storeID, productID, variantID string, limit, offset int) ([]*entity.StockMovement, error)
}
