package server

import (
	"net/http"
	"strings"

	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	exportdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/export/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) VisitedCases(c *gin.Context) {
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

	resp, err := s.caseSvc.VisitedCases(c.Request.Context(), casesdomain.ListCasesRequest{
		Filter: filter,
		Page:   query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ExportVisitedCases streams the visited-case sheet as CSV or xlsx.
func (s *Server) ExportVisitedCases(c *gin.Context) {
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

	file, err := s.exportSvc.VisitedCases(c.Request.Context(), exportdomain.Request{
		Filter: filter,
		Page:   query.Pagination,
		Format: strings.TrimSpace(c.Query("format")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
