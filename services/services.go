package services

import (
	"log/slog"

	"github.com/blogem/reqsink/models"
	"github.com/blogem/reqsink/render"
)

// Services holds all service instances
type Services struct {
	Sink     SinkService
	Dispatch DispatchService
}

// NewServices creates and initializes all service instances
func NewServices(capacity int, archiver Archiver, routes models.RouteTable, engine render.Engine, logger *slog.Logger) *Services {
	return &Services{
		Sink:     NewSinkService(capacity, archiver, logger),
		Dispatch: NewDispatchService(routes, engine, logger),
	}
}
