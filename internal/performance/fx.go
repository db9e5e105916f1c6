package performance

import (
	"github.com/C-P-WAZARIYO/Field-Pro/internal/performance/service"
	"go.uber.org/fx"
)

var Module = fx.Module("performance.service",
	fx.Provide(service.New),
)
