package stock

import (
	"context"

	"github.com/in100tiva/PDV/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de banco, passando
// repositórios atados a essa transação. Garante que atualização do registro
// de estoque e gravação da movimentação aconteçam juntas ou nenhuma.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
