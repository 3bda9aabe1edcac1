// Package scheduler agenda as varreduras periódicas de estoque.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/in100tiva/PDV/internal/application/alerts"
	"github.com/in100tiva/PDV/pkg/logger"
)

// Scheduler roda a varredura de alertas de estoque na expressão cron
// configurada.
type Scheduler struct {
	cron      *cron.Cron
	alerts    *alerts.UseCase
	companyID string
	log       *logger.Logger
}

// New constrói o agendador sem iniciá-lo.
func New(alertsUC *alerts.UseCase, companyID string, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		alerts:    alertsUC,
		companyID: companyID,
		log:       log,
	}
}

// Start registra a varredura na expressão dada e inicia o cron.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.log.Debug().Msg("scheduler: varredura de estoque iniciada")
		s.alerts.ScanCompany(context.Background(), s.companyID)
	})
	if err != nil {
		return fmt.Errorf("scheduler: expressão cron inválida %q: %w", spec, err)
	}
	s.cron.Start()
	s.log.Info().Str("cron", spec).Msg("scheduler: varredura de estoque agendada")
	return nil
}

// Stop para o cron e espera os jobs em andamento terminarem.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
