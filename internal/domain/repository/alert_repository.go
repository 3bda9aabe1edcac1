package repository

import "github.com/in100tiva/PDV/internal/domain/entity"

// StockAlertRepository define o porto de persistência para alertas de estoque.
type StockAlertRepository interface {
	Create(alert *entity.StockAlert) error
	// HasOpenAlert evita duplicar alerta não lido para o mesmo item.
	HasOpenAlert(storeID, productID, variantID, alertType string) (bool, error)
	ListUnread(storeID string, limit int) ([]*entity.StockAlert, error)
	MarkRead(id string) error
}
