package handler

import (
	"github.com/MKhiriev/go-agro-keeper/internal/config"
	"github.com/MKhiriev/go-agro-keeper/internal/handler/http"
	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/internal/service"
)

// Handlers aggregates the transport handlers of the server.
type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the handlers for every configured transport.
func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
