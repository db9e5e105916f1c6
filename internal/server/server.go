package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/C-P-WAZARIYO/Field-Pro/internal/allocation"
	allocationdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/allocation/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/audit"
	auditdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/audit/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/cases"
	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/config"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/export"
	exportdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/export/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/feedback"
	feedbackdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/feedback/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/ingest"
	ingestdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/ingest/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/leaderboard"
	leaderboarddomain "github.com/C-P-WAZARIYO/Field-Pro/internal/leaderboard/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/observability/metrics"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/performance"
	performancedomain "github.com/C-P-WAZARIYO/Field-Pro/internal/performance/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/user"
	userdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/user/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	audit.Module,
	user.Module,
	cases.Module,
	feedback.Module,
	ingest.Module,
	allocation.Module,
	performance.Module,
	leaderboard.Module,
	export.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.Middleware())
	r.Use(AuditContext())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin() *gin.Engine {
	return NewEngine()
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	db             *gorm.DB
	genID          *snowflake.Node
	auditSvc       auditdomain.Service
	userRepo       userdomain.Repository
	caseSvc        casesdomain.Service
	feedbackSvc    feedbackdomain.Service
	ingestSvc      ingestdomain.Service
	allocationSvc  allocationdomain.Service
	performanceSvc performancedomain.Service
	leaderboardSvc leaderboarddomain.Service
	exportSvc      exportdomain.Service
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	DB             *gorm.DB
	GenID          *snowflake.Node
	AuditSvc       auditdomain.Service
	UserRepo       userdomain.Repository
	CaseSvc        casesdomain.Service
	FeedbackSvc    feedbackdomain.Service
	IngestSvc      ingestdomain.Service
	AllocationSvc  allocationdomain.Service
	PerformanceSvc performancedomain.Service
	LeaderboardSvc leaderboarddomain.Service
	ExportSvc      exportdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		db:             p.DB,
		genID:          p.GenID,
		auditSvc:       p.AuditSvc,
		userRepo:       p.UserRepo,
		caseSvc:        p.CaseSvc,
		feedbackSvc:    p.FeedbackSvc,
		ingestSvc:      p.IngestSvc,
		allocationSvc:  p.AllocationSvc,
		performanceSvc: p.PerformanceSvc,
		leaderboardSvc: p.LeaderboardSvc,
		exportSvc:      p.ExportSvc,
	}

	svc.registerCaseRoutes()
	svc.registerFeedbackRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerCaseRoutes() {
	api := s.engine.Group("/api/cases")

	api.POST("/upload", s.UploadCases)
	api.GET("/uploads", s.ListUploads)
	api.GET("/uploads/audit", s.UploadAuditLogs)

	api.POST("", s.CreateCase)
	api.GET("", s.ListCases)
	api.GET("/lookup", s.LookupCase)

	api.POST("/allocate", s.AllocateCases)
	api.POST("/allocate/bulk", s.BulkAllocateCases)
	api.POST("/allocate-by-empid", s.AllocateByEmpID)
	api.GET("/allocation-status", s.AllocationStatus)

	api.GET("/performance/:executiveId", s.ExecutivePerformance)
	api.GET("/leaderboard", s.Leaderboard)

	api.GET("/visited", s.VisitedCases)
	api.GET("/visited/export", s.ExportVisitedCases)

	api.GET("/:id", s.GetCase)
	api.PATCH("/:id/status", s.UpdateCaseStatus)
}

func (s *Server) registerFeedbackRoutes() {
	api := s.engine.Group("/api/feedback")

	api.POST("", s.SubmitFeedback)
	api.POST("/:id/fake", s.MarkFeedbackFake)
	api.POST("/:id/reject", s.RejectFeedback)

	api.GET("/audit/fake-visits", s.FakeVisitSummary)
	api.GET("/alerts/ptp", s.PTPAlerts)
	api.POST("/check-broken-ptp", s.CheckBrokenPTP)
}
