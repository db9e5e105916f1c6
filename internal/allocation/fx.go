package allocation

import (
	"github.com/C-P-WAZARIYO/Field-Pro/internal/allocation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("allocation.service",
	fx.Provide(service.New),
)
