package audit

import (
	"github.com/C-P-WAZARIYO/Field-Pro/internal/audit/repository"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
