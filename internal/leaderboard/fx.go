package leaderboard

import (
	"github.com/C-P-WAZARIYO/Field-Pro/internal/leaderboard/service"
	"go.uber.org/fx"
)

var Module = fx.Module("leaderboard.service",
	fx.Provide(service.New),
)
