package server

import (
	"net/http"
	"strings"

	auditdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/audit/domain"
	ingestdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/ingest/domain"
	"github.com/gin-gonic/gin"
)

// UploadCases ingests a spreadsheet of cases. Row problems surface in the
// response summary; only an unreadable file fails the request outright.
func (s *Server) UploadCases(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "missing_file", "spreadsheet file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		AbortWithError(c, ingestdomain.ErrMalformedFile)
		return
	}
	defer file.Close()

	result, err := s.ingestSvc.Upload(c.Request.Context(), ingestdomain.UploadRequest{
		Reader:       file,
		Filename:     fileHeader.Filename,
		SupervisorID: strings.TrimSpace(c.PostForm("supervisor_id")),
		UploadMode:   strings.TrimSpace(c.PostForm("upload_mode")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) ListUploads(c *gin.Context) {
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}

	uploads, err := s.ingestSvc.ListUploads(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": uploads})
}

// UploadAuditLogs returns the audit trail of spreadsheet uploads, newest first.
func (s *Server) UploadAuditLogs(c *gin.Context) {
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}

	logs, err := s.auditSvc.List(c.Request.Context(), auditdomain.ActionCaseUpload, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"logs": logs, "count": len(logs)}})
}
