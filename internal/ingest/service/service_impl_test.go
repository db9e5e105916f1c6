package service

import (
	"context"
	"strings"
	"testing"
	"time"

	auditdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/audit/domain"
	auditrepository "github.com/C-P-WAZARIYO/Field-Pro/internal/audit/repository"
	auditservice "github.com/C-P-WAZARIYO/Field-Pro/internal/audit/service"
	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	casesrepository "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/repository"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/config"
	domain "github.com/C-P-WAZARIYO/Field-Pro/internal/ingest/domain"
	ingestrepository "github.com/C-P-WAZARIYO/Field-Pro/internal/ingest/repository"
	userdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/user/domain"
	userrepository "github.com/C-P-WAZARIYO/Field-Pro/internal/user/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// countingUserRepo verifies the batched employee resolution issues exactly
// one lookup per upload.
type countingUserRepo struct {
	userdomain.Repository
	lookups int
}

func (c *countingUserRepo) FindByEmpIDs(ctx context.Context, db *gorm.DB, empIDs []string) ([]*userdomain.User, error) {
	c.lookups++
	return c.Repository.FindByEmpIDs(ctx, db, empIDs)
}

func newUploadFixture(t *testing.T) (*Service, *countingUserRepo, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// concurrent batch upserts serialize at the pool instead of hitting
	// sqlite write locks
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&userdomain.User{},
		&casesdomain.Case{},
		&domain.CaseUpload{},
		&auditdomain.AuditLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	users := &countingUserRepo{Repository: userrepository.Provide()}
	auditSvc := auditservice.NewService(auditservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  auditrepository.Provide(),
	})

	svc := New(Params{
		Cfg:   config.Config{UploadBatchSize: 2, OverloadThreshold: 100},
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  ingestrepository.Provide(),
		Cases: casesrepository.Provide(),
		Users: users,
		Audit: auditSvc,
	}).(*Service)

	return svc, users, db, node
}

func seedExecutive(t *testing.T, db *gorm.DB, node *snowflake.Node, empID, email string) userdomain.User {
	t.Helper()
	now := time.Now().UTC()
	u := userdomain.User{
		ID:        node.Generate(),
		EmpID:     &empID,
		FirstName: "Test",
		LastName:  "Executive",
		Email:     email,
		Role:      userdomain.RoleExecutive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

const uploadCSV = `Acc_No,Emp_ID,Acc_holder_name,Bank_name,Product_name,BKT,POS_amount,Performance
ACC-1,EMP001,Asha One,HDFC,PL,X1,1000,FLOW
ACC-2,EMP001,Asha Two,HDFC,PL,X2,2000,RB
,EMP001,No Account,HDFC,PL,X1,500,FLOW
ACC-3,EMP404,Ghost Exec,ICICI,BL,X3,3000,NORM
ACC-4,,Unassigned,ICICI,BL,X1,1500,STAB
`

func TestUpload_EndToEnd(t *testing.T) {
	svc, users, db, node := newUploadFixture(t)
	exec := seedExecutive(t, db, node, "EMP001", "exec1@fieldpro.local")

	result, err := svc.Upload(context.Background(), domain.UploadRequest{
		Reader:     strings.NewReader(uploadCSV),
		Filename:   "cases.csv",
		UploadMode: "original",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalRows)
	assert.Equal(t, 4, result.Created)
	assert.Zero(t, result.Failed)
	assert.Equal(t, 1, result.SkippedRows)
	require.Len(t, result.SkippedRowDetails, 1)
	assert.Equal(t, 4, result.SkippedRowDetails[0].RowNumber)
	assert.Equal(t, "missing account number", result.SkippedRowDetails[0].Reason)

	// one batched lookup regardless of row count
	assert.Equal(t, 1, users.lookups)

	stats := result.AllocationStats
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Allocated)
	assert.Equal(t, 2, stats.Unallocated)
	assert.Equal(t, 1, stats.FoundEmployees)
	assert.Equal(t, []string{"EMP404"}, stats.NotFoundEmpIDs)

	var total int64
	require.NoError(t, db.Model(&casesdomain.Case{}).Count(&total).Error)
	assert.EqualValues(t, 4, total)

	var allocated casesdomain.Case
	require.NoError(t, db.Where("acc_id = ?", "ACC-1").First(&allocated).Error)
	require.NotNil(t, allocated.ExecutiveID)
	assert.Equal(t, exec.ID, *allocated.ExecutiveID)
	assert.Equal(t, casesdomain.UploadModeOriginal, allocated.UploadMode)
	assert.Equal(t, casesdomain.StatusOpen, allocated.Status)

	var ghost casesdomain.Case
	require.NoError(t, db.Where("acc_id = ?", "ACC-3").First(&ghost).Error)
	assert.Nil(t, ghost.ExecutiveID)
	require.NotNil(t, ghost.EmpID)
	assert.Equal(t, "EMP404", *ghost.EmpID)

	uploads, err := svc.ListUploads(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	assert.Equal(t, "cases.csv", uploads[0].Filename)
	assert.Equal(t, 4, uploads[0].TotalCases)
}

func TestUpload_ReuploadIsIdempotentAndReassigns(t *testing.T) {
	svc, _, db, node := newUploadFixture(t)
	seedExecutive(t, db, node, "EMP001", "exec1@fieldpro.local")
	second := seedExecutive(t, db, node, "EMP002", "exec2@fieldpro.local")

	first := "Acc_No,Emp_ID,POS_amount\nACC-10,EMP001,1000\n"
	_, err := svc.Upload(context.Background(), domain.UploadRequest{
		Reader:   strings.NewReader(first),
		Filename: "first.csv",
	})
	require.NoError(t, err)

	revised := "Acc_No,Emp_ID,POS_amount\nACC-10,EMP002,2500\n"
	result, err := svc.Upload(context.Background(), domain.UploadRequest{
		Reader:     strings.NewReader(revised),
		Filename:   "revised.csv",
		UploadMode: "REVISED",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	var total int64
	require.NoError(t, db.Model(&casesdomain.Case{}).Where("acc_id = ?", "ACC-10").Count(&total).Error)
	assert.EqualValues(t, 1, total)

	var c casesdomain.Case
	require.NoError(t, db.Where("acc_id = ?", "ACC-10").First(&c).Error)
	assert.Equal(t, 2500.0, c.POSAmount)
	assert.Equal(t, casesdomain.UploadModeRevised, c.UploadMode)
	require.NotNil(t, c.ExecutiveID)
	assert.Equal(t, second.ID, *c.ExecutiveID)
}

func TestUpload_MalformedAndEmptyFiles(t *testing.T) {
	svc, _, _, _ := newUploadFixture(t)

	_, err := svc.Upload(context.Background(), domain.UploadRequest{
		Reader:   strings.NewReader("Acc_No,Emp_ID\n"),
		Filename: "empty.csv",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyFile)

	_, err = svc.Upload(context.Background(), domain.UploadRequest{
		Reader:   strings.NewReader("not an xlsx payload"),
		Filename: "cases.xlsx",
	})
	assert.ErrorIs(t, err, domain.ErrMalformedFile)
}

func TestOverloadedExecutives(t *testing.T) {
	resolved, unresolved := "EMP001", "EMP404"
	resolution := domain.Resolution{ExecutiveByEmpID: map[string]snowflake.ID{resolved: 42}}

	var drafts []domain.CaseDraft
	for i := 0; i < 5; i++ {
		drafts = append(drafts, domain.CaseDraft{AccountID: "A", EmpID: &resolved})
	}
	for i := 0; i < 4; i++ {
		drafts = append(drafts, domain.CaseDraft{AccountID: "B", EmpID: &unresolved})
	}
	for i := 0; i < 4; i++ {
		drafts = append(drafts, domain.CaseDraft{AccountID: "C"})
	}

	// resolved rows bucket by executive id, unresolved by their sheet emp_id,
	// emp-less rows under "unassigned"
	flagged := overloadedExecutives(drafts, resolution, 3)
	require.Len(t, flagged, 3)
	assert.Equal(t, domain.OverloadedExecutive{ID: snowflake.ID(42).String(), Count: 5}, flagged[0])
	assert.Equal(t, domain.OverloadedExecutive{ID: "EMP404", Count: 4}, flagged[1])
	assert.Equal(t, domain.OverloadedExecutive{ID: "unassigned", Count: 4}, flagged[2])

	assert.Empty(t, overloadedExecutives(drafts, resolution, 5))
}
