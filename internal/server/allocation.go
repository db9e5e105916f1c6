package server

import (
	"net/http"
	"strconv"
	"strings"

	allocationdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/allocation/domain"
	auditdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/audit/domain"
	"github.com/gin-gonic/gin"
)

type allocateRequest struct {
	EmpID       string `json:"emp_id"`
	ExecutiveID string `json:"executive_id"`
}

func (s *Server) AllocateCases(c *gin.Context) {
	var req allocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	executiveID, err := parseSnowflakeID(req.ExecutiveID)
	if err != nil {
		AbortWithError(c, newValidationError("executive_id", "invalid_executive_id", "invalid executive_id"))
		return
	}

	allocated, err := s.allocationSvc.Allocate(c.Request.Context(), allocationdomain.Assignment{
		EmpID:       strings.TrimSpace(req.EmpID),
		ExecutiveID: executiveID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		Action:     auditdomain.ActionCaseAllocate,
		EntityType: "case",
		EntityID:   executiveID.String(),
		Detail:     "emp_id=" + strings.TrimSpace(req.EmpID) + " allocated=" + strconv.FormatInt(allocated, 10),
	})

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"allocated": allocated}})
}

type bulkAllocateRequest struct {
	Assignments []allocateRequest `json:"assignments"`
}

func (s *Server) BulkAllocateCases(c *gin.Context) {
	var req bulkAllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(req.Assignments) == 0 {
		AbortWithError(c, newValidationError("assignments", "invalid_assignments", "assignments are required"))
		return
	}

	assignments := make([]allocationdomain.Assignment, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		executiveID, err := parseSnowflakeID(a.ExecutiveID)
		if err != nil {
			AbortWithError(c, newValidationError("executive_id", "invalid_executive_id", "invalid executive_id"))
			return
		}
		assignments = append(assignments, allocationdomain.Assignment{
			EmpID:       strings.TrimSpace(a.EmpID),
			ExecutiveID: executiveID,
		})
	}

	result, err := s.allocationSvc.BulkAllocate(c.Request.Context(), assignments)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		Action:     auditdomain.ActionCaseAllocate,
		EntityType: "case",
		Detail:     "bulk allocated=" + strconv.FormatInt(result.TotalAllocated, 10),
	})

	c.JSON(http.StatusOK, gin.H{"data": result})
}

type allocateByEmpIDRequest struct {
	EmpID       string `json:"emp_id"`
	ExecutiveID string `json:"executive_id"`
}

func (s *Server) AllocateByEmpID(c *gin.Context) {
	var req allocateByEmpIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	executiveID, err := parseSnowflakeID(req.ExecutiveID)
	if err != nil {
		AbortWithError(c, newValidationError("executive_id", "invalid_executive_id", "invalid executive_id"))
		return
	}

	result, err := s.allocationSvc.AllocateByEmpID(c.Request.Context(), strings.TrimSpace(req.EmpID), executiveID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		Action:     auditdomain.ActionCaseAllocate,
		EntityType: "case",
		EntityID:   result.ExecutiveID.String(),
		Detail:     "emp_id=" + result.EmpID + " allocated=" + strconv.FormatInt(result.Allocated, 10),
	})

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) AllocationStatus(c *gin.Context) {
	status, err := s.allocationSvc.Status(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": status})
}
