package checkout

import (
	"context"

	"github.com/in100tiva/PDV/internal/domain/cart"
	"github.com/in100tiva/PDV/internal/domain/repository"
)

// TxRunner abre a transação única do checkout: venda, itens, baixa de
// estoque, pagamento e fiado gravam nela, tudo ou nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
		creditRepo repository.CreditRepository,
	) error) error
}

// CartSessions é a visão do serviço de sessões de PDV exposta ao checkout:
// ler uma cópia do carrinho e esvaziá-lo após o commit.
type CartSessions interface {
	Snapshot(sessionID string) *cart.Cart
	Clear(sessionID string)
}
