package service

import (
	"context"
	"strings"
	"time"

	auditdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/audit/domain"
	auditcontext "github.com/C-P-WAZARIYO/Field-Pro/internal/auditcontext"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  auditdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  auditdomain.Repository
}

func NewService(p Params) auditdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, entry auditdomain.Entry) {
	action := strings.TrimSpace(entry.Action)
	if action == "" {
		s.log.Warn("audit entry dropped", zap.Error(auditdomain.ErrInvalidAction))
		return
	}

	entityType := strings.TrimSpace(entry.EntityType)
	if entityType == "" {
		entityType = "unknown"
	}

	record := auditdomain.AuditLog{
		ID:         s.genID.Generate(),
		ActorID:    s.resolveActor(ctx),
		Action:     action,
		EntityType: entityType,
		EntityID:   entry.EntityID,
		Detail:     entry.Detail,
		IPAddress:  auditcontext.IPAddressFromContext(ctx),
		UserAgent:  auditcontext.UserAgentFromContext(ctx),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &record); err != nil {
		s.log.Error("failed to persist audit entry",
			zap.String("action", action),
			zap.String("entity_id", entry.EntityID),
			zap.Error(err),
		)
	}
}

func (s *Service) List(ctx context.Context, action string, limit int) ([]*auditdomain.AuditLog, error) {
	return s.repo.List(ctx, s.db, strings.TrimSpace(action), limit)
}

func (s *Service) resolveActor(ctx context.Context) *snowflake.ID {
	raw := auditcontext.ActorFromContext(ctx)
	if raw == "" {
		return nil
	}
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return nil
	}
	return &id
}
