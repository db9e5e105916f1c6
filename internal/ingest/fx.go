package ingest

import (
	"github.com/C-P-WAZARIYO/Field-Pro/internal/ingest/repository"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/ingest/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ingest.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
