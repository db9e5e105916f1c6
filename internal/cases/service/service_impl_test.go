package service

import (
	"context"
	"testing"
	"time"

	"github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	casesrepository "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/repository"
	feedbackdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/feedback/domain"
	feedbackrepository "github.com/C-P-WAZARIYO/Field-Pro/internal/feedback/repository"
	userdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/user/domain"
	userrepository "github.com/C-P-WAZARIYO/Field-Pro/internal/user/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newCaseFixture(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userdomain.User{}, &domain.Case{}, &feedbackdomain.Feedback{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         casesrepository.Provide(),
		FeedbackRepo: feedbackrepository.Provide(),
		UserRepo:     userrepository.Provide(),
	}).(*Service)

	return svc, db, node
}

func seedExecutive(t *testing.T, db *gorm.DB, node *snowflake.Node, empID, email string) userdomain.User {
	t.Helper()
	now := time.Now().UTC()
	u := userdomain.User{
		ID:        node.Generate(),
		EmpID:     &empID,
		FirstName: "Ravi",
		LastName:  "Kumar",
		Email:     email,
		Role:      userdomain.RoleExecutive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedFeedback(t *testing.T, db *gorm.DB, node *snowflake.Node, caseID, executiveID snowflake.ID, createdAt time.Time) feedbackdomain.Feedback {
	t.Helper()
	fb := feedbackdomain.Feedback{
		ID:          node.Generate(),
		CaseID:      caseID,
		ExecutiveID: executiveID,
		VisitCode:   "ANF",
		WhoMet:      "Customer",
		Status:      feedbackdomain.StatusVisited,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, db.Create(&fb).Error)
	return fb
}

func TestCreate_DefaultsAndValidation(t *testing.T) {
	svc, db, _ := newCaseFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCaseRequest{
		AccountID:    "  ACC-1001  ",
		CustomerName: " Sunita Devi ",
		POSAmount:    12500,
		ProductType:  "PL",
		BankName:     "HDFC",
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	assert.Equal(t, "ACC-1001", created.AccountID)
	assert.Equal(t, "Sunita Devi", created.CustomerName)
	assert.Equal(t, int(now.Month()), created.Month)
	assert.Equal(t, now.Year(), created.Year)
	assert.Equal(t, domain.UploadModeOriginal, created.UploadMode)
	assert.Equal(t, domain.StatusOpen, created.Status)
	assert.Nil(t, created.BKT)
	assert.Nil(t, created.EmpID)

	var stored domain.Case
	require.NoError(t, db.Where("acc_id = ?", "ACC-1001").First(&stored).Error)
	assert.Equal(t, created.ID, stored.ID)

	withRefs, err := svc.Create(ctx, domain.CreateCaseRequest{
		AccountID: "ACC-1002",
		BKT:       " X2 ",
		EmpID:     " EMP001 ",
		Month:     3,
		Year:      2025,
	})
	require.NoError(t, err)
	require.NotNil(t, withRefs.BKT)
	assert.Equal(t, "X2", *withRefs.BKT)
	require.NotNil(t, withRefs.EmpID)
	assert.Equal(t, "EMP001", *withRefs.EmpID)
	assert.Equal(t, 3, withRefs.Month)
	assert.Equal(t, 2025, withRefs.Year)

	_, err = svc.Create(ctx, domain.CreateCaseRequest{AccountID: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidAccountID)
}

func TestGetByID(t *testing.T) {
	svc, db, node := newCaseFixture(t)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "not-a-snowflake")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	_, err = svc.GetByID(ctx, "0")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByID(ctx, node.Generate().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	exec := seedExecutive(t, db, node, "EMP001", "ravi@fieldpro.test")
	created, err := svc.Create(ctx, domain.CreateCaseRequest{AccountID: "ACC-2001", BankName: "ICICI"})
	require.NoError(t, err)
	require.NoError(t, db.Model(&domain.Case{}).Where("id = ?", created.ID).Update("executive_id", exec.ID).Error)
	seedFeedback(t, db, node, created.ID, exec.ID, time.Now().UTC())

	view, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "ACC-2001", view.AccountID)
	require.Len(t, view.Feedbacks, 1)
	require.NotNil(t, view.Executive)
	assert.Equal(t, exec.ID.String(), view.Executive.ID)
	assert.Equal(t, "Ravi", view.Executive.FirstName)
	require.NotNil(t, view.Executive.EmpID)
	assert.Equal(t, "EMP001", *view.Executive.EmpID)
}

func TestGetByAccountID(t *testing.T) {
	svc, _, _ := newCaseFixture(t)
	ctx := context.Background()

	_, err := svc.GetByAccountID(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidAccountID)
	_, err = svc.GetByAccountID(ctx, "ACC-MISSING")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created, err := svc.Create(ctx, domain.CreateCaseRequest{AccountID: "ACC-3001"})
	require.NoError(t, err)

	view, err := svc.GetByAccountID(ctx, " ACC-3001 ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, view.ID)
	assert.Empty(t, view.Feedbacks)
	assert.Nil(t, view.Executive)
}

func TestUpdateStatus(t *testing.T) {
	svc, _, node := newCaseFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCaseRequest{AccountID: "ACC-4001"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, domain.UpdateStatusRequest{ID: created.ID.String(), Status: " paid "})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, updated.Status)

	_, err = svc.UpdateStatus(ctx, domain.UpdateStatusRequest{ID: created.ID.String(), Status: "ARCHIVED"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, domain.UpdateStatusRequest{ID: "garbage", Status: domain.StatusClosed})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.UpdateStatus(ctx, domain.UpdateStatusRequest{ID: node.Generate().String(), Status: domain.StatusClosed})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVisitedCases(t *testing.T) {
	svc, db, node := newCaseFixture(t)
	ctx := context.Background()

	exec := seedExecutive(t, db, node, "EMP001", "ravi@fieldpro.test")

	visited, err := svc.Create(ctx, domain.CreateCaseRequest{AccountID: "ACC-5001"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateCaseRequest{AccountID: "ACC-5002"})
	require.NoError(t, err)

	older := time.Now().UTC().Add(-2 * time.Hour)
	newest := time.Now().UTC().Add(-5 * time.Minute)
	seedFeedback(t, db, node, visited.ID, exec.ID, older)
	seedFeedback(t, db, node, visited.ID, exec.ID, newest)

	resp, err := svc.VisitedCases(ctx, domain.ListCasesRequest{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Cases, 1)

	vc := resp.Cases[0]
	assert.Equal(t, "ACC-5001", vc.AccountID)
	assert.Equal(t, 2, vc.Visits)
	require.NotNil(t, vc.LastVisitAt)
	assert.WithinDuration(t, newest, *vc.LastVisitAt, time.Second)
	require.Len(t, vc.Feedbacks, 2)
	// newest visit first
	assert.WithinDuration(t, newest, vc.Feedbacks[0].CreatedAt, time.Second)
}
