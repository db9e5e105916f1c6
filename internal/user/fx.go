package user

import (
	"github.com/C-P-WAZARIYO/Field-Pro/internal/user/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("user.repository",
	fx.Provide(repository.Provide),
)
