package cases

import (
	"github.com/C-P-WAZARIYO/Field-Pro/internal/cases/repository"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/cases/service"
	"go.uber.org/fx"
)

var Module = fx.Module("cases.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
