package feedback

import (
	"github.com/C-P-WAZARIYO/Field-Pro/internal/feedback/repository"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/feedback/service"
	"go.uber.org/fx"
)

var Module = fx.Module("feedback.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
