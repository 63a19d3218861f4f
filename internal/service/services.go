package service

import (
	"github.com/content-publisher/internal/config"
	"github.com/rs/zerolog"
)

// Services holds the application services
type Services struct {
	Publisher *Publisher
	Exporter  *Exporter
}

// NewServices creates all services backed by the configured store
func NewServices(cfg *config.Config, log zerolog.Logger) *Services {
	exporter := NewExporter(cfg.Export.Indent, log)
	opener := DatabaseOpener(&cfg.Store, log)

	return &Services{
		Publisher: NewPublisher(opener, exporter, cfg.Export.Path, log),
		Exporter:  exporter,
	}
}
