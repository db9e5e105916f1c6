package migration

import (
	auditdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/audit/domain"
	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/config"
	feedbackdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/feedback/domain"
	ingestdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/ingest/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/seed"
	userdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/user/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite installs derive the schema from the models directly.
			if err := conn.AutoMigrate(
				&userdomain.User{},
				&casesdomain.Case{},
				&feedbackdomain.Feedback{},
				&ingestdomain.CaseUpload{},
				&auditdomain.AuditLog{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedDefaultUsers {
			return seed.EnsureDefaultUsers(conn)
		}
		return nil
	}),
)
