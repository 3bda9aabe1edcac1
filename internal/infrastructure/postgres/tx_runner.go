package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/in100tiva/PDV/internal/application/checkout"
	"github.com/in100tiva/PDV/internal/application/stock"
	"github.com/in100tiva/PDV/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)
var _ checkout.TxRunner = (*CheckoutTxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL com os
// repositórios de estoque atados a ela.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repos atados à tx e faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockRepository(tx)
	movementRepo := NewStockMovementRepository(tx)

	if err := fn(stockRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// CheckoutTxRunner abre a transação única do checkout, com os repositórios
// de venda, estoque e fiado atados a ela.
type CheckoutTxRunner struct {
	pool *pgxpool.Pool
}

// NewCheckoutTxRunner constrói o runner de checkout com o pool.
func NewCheckoutTxRunner(pool *pgxpool.Pool) *CheckoutTxRunner {
	return &CheckoutTxRunner{pool: pool}
}

// Run inicia a transação do checkout, executa fn e faz Commit ou Rollback.
func (r *CheckoutTxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	creditRepo repository.CreditRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	saleRepo := NewSaleRepository(tx)
	stockRepo := NewStockRepository(tx)
	movementRepo := NewStockMovementRepository(tx)
	creditRepo := NewCreditRepository(tx)

	if err := fn(saleRepo, stockRepo, movementRepo, creditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
