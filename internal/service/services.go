package service

import (
	"github.com/ivkonovalov/shopdesk/internal/logger"
	"github.com/ivkonovalov/shopdesk/internal/store"
)

// Services aggregates all business-logic services consumed by the
// transport layer.
type Services struct {
	CatalogService CatalogService
	RecordService  RecordService
}

// NewServices wires the services on top of the repositories.
func NewServices(repos *store.Repositories, logger *logger.Logger) *Services {
	return &Services{
		CatalogService: NewCatalogService(repos.EntityRepository, logger),
		RecordService:  NewRecordService(repos.EntityRepository, repos.RecordRepository, logger),
	}
}
