package server

import (
	"net/http"
	"strings"

	auditdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/audit/domain"
	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type createCaseRequest struct {
	AccountID    string  `json:"acc_id"`
	CustomerName string  `json:"customer_name"`
	POSAmount    float64 `json:"pos_amount"`
	BKT          string  `json:"bkt"`
	ProductType  string  `json:"product_type"`
	BankName     string  `json:"bank_name"`
	EmpID        string  `json:"emp_id"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
}

func (s *Server) CreateCase(c *gin.Context) {
	var req createCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.caseSvc.Create(c.Request.Context(), casesdomain.CreateCaseRequest{
		AccountID:    strings.TrimSpace(req.AccountID),
		CustomerName: strings.TrimSpace(req.CustomerName),
		POSAmount:    req.POSAmount,
		BKT:          strings.TrimSpace(req.BKT),
		ProductType:  strings.TrimSpace(req.ProductType),
		BankName:     strings.TrimSpace(req.BankName),
		EmpID:        strings.TrimSpace(req.EmpID),
		Month:        req.Month,
		Year:         req.Year,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		Action:     auditdomain.ActionCaseCreate,
		EntityType: "case",
		EntityID:   created.ID.String(),
	})

	c.JSON(http.StatusOK, gin.H{"data": created})
}

type listCasesQuery struct {
	pagination.Pagination
	ExecutiveID string `form:"executive_id"`
	Month       int    `form:"month"`
	Year        int    `form:"year"`
	Bank        string `form:"bank"`
	Product     string `form:"product"`
	BKT         string `form:"bkt"`
	NPAStatus   string `form:"npa_status"`
	Priority    string `form:"priority"`
	Status      string `form:"status"`
}

func (q listCasesQuery) filter() (casesdomain.Filter, error) {
	executiveID, err := parseOptionalSnowflakeID(q.ExecutiveID)
	if err != nil {
		return casesdomain.Filter{}, newValidationError("executive_id", "invalid_executive_id", "invalid executive_id")
	}
	return casesdomain.Filter{
		ExecutiveID: executiveID,
		Month:       q.Month,
		Year:        q.Year,
		BankName:    strings.TrimSpace(q.Bank),
		ProductType: strings.TrimSpace(q.Product),
		BKT:         strings.TrimSpace(q.BKT),
		NPAStatus:   strings.TrimSpace(q.NPAStatus),
		Priority:    strings.TrimSpace(q.Priority),
		Status:      strings.TrimSpace(q.Status),
	}, nil
}

func (s *Server) ListCases(c *gin.Context) {
	var query listCasesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	filter, err := query.filter()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.caseSvc.List(c.Request.Context(), casesdomain.ListCasesRequest{
		Filter: filter,
		Page:   query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCase(c *gin.Context) {
	resp, err := s.caseSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) LookupCase(c *gin.Context) {
	accountID := strings.TrimSpace(c.Query("acc_id"))
	if accountID == "" {
		AbortWithError(c, newValidationError("acc_id", "invalid_acc_id", "acc_id is required"))
		return
	}

	resp, err := s.caseSvc.GetByAccountID(c.Request.Context(), accountID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateCaseStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) UpdateCaseStatus(c *gin.Context) {
	var req updateCaseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.caseSvc.UpdateStatus(c.Request.Context(), casesdomain.UpdateStatusRequest{
		ID:     strings.TrimSpace(c.Param("id")),
		Status: strings.TrimSpace(req.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		Action:     auditdomain.ActionCaseStatus,
		EntityType: "case",
		EntityID:   updated.ID.String(),
		Detail:     "status=" + updated.Status,
	})

	c.JSON(http.StatusOK, gin.H{"data": updated})
}
