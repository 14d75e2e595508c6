package http

import (
	"github.com/ivkonovalov/shopdesk/internal/config"
	"github.com/ivkonovalov/shopdesk/internal/logger"
	"github.com/ivkonovalov/shopdesk/internal/service"
)

type Handler struct {
	services *service.Services
	config   config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		config:   cfg,
		logger:   logger,
	}
}
