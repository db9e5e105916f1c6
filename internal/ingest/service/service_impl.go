package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	auditdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/audit/domain"
	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/config"
	domain "github.com/C-P-WAZARIYO/Field-Pro/internal/ingest/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/observability/metrics"
	userdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/user/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const sampleLimit = 100

type Params struct {
	fx.In

	Cfg   config.Config
	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Cases casesdomain.Repository
	Users userdomain.Repository
	Audit auditdomain.Service
}

type Service struct {
	cfg   config.Config
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	cases casesdomain.Repository
	users userdomain.Repository
	audit auditdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		cfg:   p.Cfg,
		db:    p.DB,
		log:   p.Log.Named("ingest.service"),
		genID: p.GenID,
		repo:  p.Repo,
		cases: p.Cases,
		users: p.Users,
		audit: p.Audit,
	}
}

func (s *Service) Upload(ctx context.Context, req domain.UploadRequest) (domain.UploadResult, error) {
	rows, err := ParseSpreadsheet(req.Reader, req.Filename)
	if err != nil {
		return domain.UploadResult{}, err
	}

	drafts, skipped := NormalizeRows(rows)
	metrics.UploadRowsProcessed.WithLabelValues("skipped").Add(float64(len(skipped)))

	resolution, err := s.resolveEmployees(ctx, drafts)
	if err != nil {
		return domain.UploadResult{}, err
	}

	uploadMode := normalizeUploadMode(req.UploadMode)
	upload := domain.CaseUpload{
		ID:           s.genID.Generate(),
		SupervisorID: parseSnowflake(req.SupervisorID),
		Filename:     req.Filename,
		UploadMode:   uploadMode,
		TotalCases:   len(drafts),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &upload); err != nil {
		return domain.UploadResult{}, err
	}

	created, failed := s.persistDrafts(ctx, drafts, resolution, uploadMode)

	stats := buildAllocationStats(drafts, resolution)
	overloaded := overloadedExecutives(drafts, resolution, s.cfg.OverloadThreshold)

	sample, err := s.cases.Sample(ctx, s.db, uploadMode, sampleLimit)
	if err != nil {
		s.log.Warn("sample query failed after upload", zap.Error(err))
		sample = nil
	}

	s.audit.Record(ctx, auditdomain.Entry{
		Action:     auditdomain.ActionCaseUpload,
		EntityType: "case_upload",
		EntityID:   upload.ID.String(),
		Detail: fmt.Sprintf("file=%s mode=%s rows=%d created=%d failed=%d skipped=%d",
			req.Filename, uploadMode, len(rows), created, failed, len(skipped)),
	})

	s.log.Info("bulk upload complete",
		zap.String("upload_id", upload.ID.String()),
		zap.String("upload_mode", uploadMode),
		zap.Int("total_rows", len(rows)),
		zap.Int("created", created),
		zap.Int("failed", failed),
		zap.Int("skipped", len(skipped)),
		zap.Int("unallocated", stats.Unallocated),
	)

	result := domain.UploadResult{
		Upload:            upload,
		Created:           created,
		Failed:            failed,
		TotalRows:         len(rows),
		SkippedRows:       len(skipped),
		SkippedRowDetails: skipped,
		AllocationStats:   stats,
		Overloaded:        overloaded,
	}
	for _, c := range sample {
		result.SampleCases = append(result.SampleCases, *c)
	}
	return result, nil
}

func (s *Service) ListUploads(ctx context.Context, limit int) ([]domain.CaseUpload, error) {
	uploads, err := s.repo.List(ctx, s.db, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CaseUpload, 0, len(uploads))
	for _, u := range uploads {
		out = append(out, *u)
	}
	return out, nil
}

// resolveEmployees resolves every distinct employee identifier on the upload
// in a single query. Unresolved identifiers leave their cases unallocated.
func (s *Service) resolveEmployees(ctx context.Context, drafts []domain.CaseDraft) (domain.Resolution, error) {
	empIDs := DistinctEmpIDs(drafts)
	resolution := domain.Resolution{ExecutiveByEmpID: map[string]snowflake.ID{}}
	if len(empIDs) == 0 {
		return resolution, nil
	}

	users, err := s.users.FindByEmpIDs(ctx, s.db, empIDs)
	if err != nil {
		return resolution, err
	}

	for _, u := range users {
		if u.EmpID == nil {
			continue
		}
		resolution.ExecutiveByEmpID[strings.TrimSpace(*u.EmpID)] = u.ID
		resolution.Found = append(resolution.Found, domain.ResolvedEmployee{
			EmpID: strings.TrimSpace(*u.EmpID),
			Name:  u.FullName(),
		})
	}
	for _, id := range empIDs {
		if _, ok := resolution.ExecutiveByEmpID[id]; !ok {
			resolution.NotFound = append(resolution.NotFound, id)
		}
	}
	return resolution, nil
}

// persistDrafts upserts drafts in fixed-size batches. Rows within a batch run
// concurrently; batches run in order. One row's failure never aborts the rest.
func (s *Service) persistDrafts(ctx context.Context, drafts []domain.CaseDraft, resolution domain.Resolution, uploadMode string) (int, int) {
	batchSize := s.cfg.UploadBatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	now := time.Now().UTC()
	month, year := int(now.Month()), now.Year()

	var created, failed atomic.Int64
	for start := 0; start < len(drafts); start += batchSize {
		end := start + batchSize
		if end > len(drafts) {
			end = len(drafts)
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, draft := range drafts[start:end] {
			draft := draft
			g.Go(func() error {
				c := s.buildCase(draft, resolution, uploadMode, month, year, now)
				if err := s.cases.Upsert(gctx, s.db, c); err != nil {
					failed.Add(1)
					s.log.Debug("case upsert failed",
						zap.String("acc_id", draft.AccountID),
						zap.Int("row", draft.RowNumber),
						zap.Error(err),
					)
					return nil
				}
				created.Add(1)
				return nil
			})
		}
		_ = g.Wait() // closures never return an error
		metrics.UploadBatches.Inc()
	}

	metrics.UploadRowsProcessed.WithLabelValues("created").Add(float64(created.Load()))
	metrics.UploadRowsProcessed.WithLabelValues("failed").Add(float64(failed.Load()))
	return int(created.Load()), int(failed.Load())
}

func (s *Service) buildCase(draft domain.CaseDraft, resolution domain.Resolution, uploadMode string, month, year int, now time.Time) *casesdomain.Case {
	c := &casesdomain.Case{
		ID:               s.genID.Generate(),
		AccountID:        draft.AccountID,
		CustomerID:       draft.CustomerID,
		CustomerName:     draft.CustomerName,
		PhoneNumber:      draft.PhoneNumber,
		Address:          draft.Address,
		Pincode:          draft.Pincode,
		Lat:              draft.Lat,
		Lng:              draft.Lng,
		POSAmount:        draft.POSAmount,
		OverdueAmount:    draft.OverdueAmount,
		CollectionAmount: draft.Collection,
		TossAmount:       draft.TossAmount,
		EMIAmount:        draft.EMIAmount,
		Interest:         draft.Interest,
		DPD:              draft.DPD,
		BKT:              draft.BKT,
		ProductType:      draft.ProductType,
		SubProductName:   draft.SubProductName,
		BankName:         draft.BankName,
		NPAStatus:        draft.NPAStatus,
		Priority:         draft.Priority,
		Performance:      draft.Performance,
		EmpID:            draft.EmpID,
		Month:            month,
		Year:             year,
		UploadMode:       uploadMode,
		Status:           casesdomain.StatusOpen,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if draft.EmpID != nil {
		if execID, ok := resolution.ExecutiveByEmpID[strings.TrimSpace(*draft.EmpID)]; ok {
			c.ExecutiveID = &execID
		}
	}
	return c
}

func buildAllocationStats(drafts []domain.CaseDraft, resolution domain.Resolution) domain.AllocationStats {
	stats := domain.AllocationStats{
		Total:             len(drafts),
		FoundEmployees:    len(resolution.Found),
		NotFoundEmployees: len(resolution.NotFound),
		NotFoundEmpIDs:    resolution.NotFound,
	}
	for _, d := range drafts {
		if d.EmpID != nil {
			if _, ok := resolution.ExecutiveByEmpID[strings.TrimSpace(*d.EmpID)]; ok {
				stats.Allocated++
				continue
			}
		}
		stats.Unallocated++
	}
	return stats
}

// overloadedExecutives flags any allocation bucket receiving more cases from
// this upload than the threshold allows. Resolved rows key by executive id,
// unresolved rows by their sheet emp_id, and rows without an emp_id share one
// "unassigned" bucket. Advisory only.
func overloadedExecutives(drafts []domain.CaseDraft, resolution domain.Resolution, threshold int) []domain.OverloadedExecutive {
	if threshold <= 0 {
		return nil
	}

	counts := map[string]int{}
	for _, d := range drafts {
		key := "unassigned"
		if d.EmpID != nil {
			if empID := strings.TrimSpace(*d.EmpID); empID != "" {
				key = empID
				if executiveID, ok := resolution.ExecutiveByEmpID[empID]; ok {
					key = executiveID.String()
				}
			}
		}
		counts[key]++
	}

	var out []domain.OverloadedExecutive
	for key, count := range counts {
		if count > threshold {
			out = append(out, domain.OverloadedExecutive{ID: key, Count: count})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func normalizeUploadMode(mode string) string {
	if strings.EqualFold(strings.TrimSpace(mode), casesdomain.UploadModeRevised) {
		return casesdomain.UploadModeRevised
	}
	return casesdomain.UploadModeOriginal
}

func parseSnowflake(raw string) *snowflake.ID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return nil
	}
	return &id
}
