package alerts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/in100tiva/PDV/internal/domain"
	"github.com/in100tiva/PDV/internal/domain/entity"
	"github.com/in100tiva/PDV/internal/domain/repository"
	"github.com/in100tiva/PDV/pkg/logger"
)

// UseCase varre o estoque das lojas e gera alertas de estoque baixo e
// zerado. Rodado pelo scheduler em intervalo configurável.
type UseCase struct {
	storeRepo repository.StoreRepository
	stockRepo repository.StockRepository
	alertRepo repository.StockAlertRepository
	log       *logger.Logger
}

// NewUseCase constrói o caso de uso de alertas.
func NewUseCase(storeRepo repository.StoreRepository, stockRepo repository.StockRepository, alertRepo repository.StockAlertRepository, log *logger.Logger) *UseCase {
	return &UseCase{storeRepo: storeRepo, stockRepo: stockRepo, alertRepo: alertRepo, log: log}
}

// ScanCompany varre todas as lojas da empresa. Erros por loja são logados e
// não interrompem a varredura das demais.
func (uc *UseCase) ScanCompany(ctx context.Context, companyID string) {
	stores, err := uc.storeRepo.ListByCompany(companyID)
	if err != nil {
		uc.log.Error().Err(err).Msg("varredura de estoque: listar lojas")
		return
	}
	for _, store := range stores {
		if !store.Active {
			continue
		}
		if err := uc.ScanStore(ctx, store.ID); err != nil {
			uc.log.Error().Err(err).Str("loja_id", store.ID).Msg("varredura de estoque")
		}
	}
}

// ScanStore gera alertas para os itens da loja abaixo do mínimo ou zerados.
// Item com alerta aberto do mesmo tipo não gera duplicata.
func (uc *UseCase) ScanStore(ctx context.Context, storeID string) error {
	if storeID == "" {
		return domain.ErrInvalidInput
	}
	zeroed, err := uc.stockRepo.ListZeroed(storeID)
	if err != nil {
		return err
	}
	for _, s := range zeroed {
		if err := uc.raise(s, entity.AlertEstoqueZerado); err != nil {
			return err
		}
	}
	below, err := uc.stockRepo.ListBelowMinimum(storeID)
	if err != nil {
		return err
	}
	for _, s := range below {
		if s.Quantity.IsZero() {
			continue // já coberto pelo alerta de zerado
		}
		if err := uc.raise(s, entity.AlertEstoqueBaixo); err != nil {
			return err
		}
	}
	return nil
}

func (uc *UseCase) raise(s *entity.Stock, alertType string) error {
	open, err := uc.alertRepo.HasOpenAlert(s.StoreID, s.ProductID, s.VariantID, alertType)
	if err != nil {
		return err
	}
	if open {
		return nil
	}
	alert := &entity.StockAlert{
		ID:          uuid.New().String(),
		StoreID:     s.StoreID,
		ProductID:   s.ProductID,
		VariantID:   s.VariantID,
		Type:        alertType,
		Quantity:    s.Quantity,
		MinQuantity: s.MinQuantity,
		CreatedAt:   time.Now(),
	}
	if err := uc.alertRepo.Create(alert); err != nil {
		return err
	}
	uc.log.Warn().
		Str("loja_id", s.StoreID).
		Str("produto_id", s.ProductID).
		Str("tipo", alertType).
		Str("quantidade", s.Quantity.String()).
		Msg("alerta de estoque gerado")
	return nil
}

// ListUnread lista os alertas não lidos da loja.
func (uc *UseCase) ListUnread(ctx context.Context, storeID string, limit int) ([]*entity.StockAlert, error) {
	if storeID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.alertRepo.ListUnread(storeID, limit)
}

// MarkRead marca um alerta como lido.
func (uc *UseCase) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.alertRepo.MarkRead(id)
}
