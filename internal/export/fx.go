package export

import (
	"github.com/C-P-WAZARIYO/Field-Pro/internal/export/service"
	"go.uber.org/fx"
)

var Module = fx.Module("export.service",
	fx.Provide(service.New),
)
