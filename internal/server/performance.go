package server

import (
	"net/http"
	"strings"

	performancedomain "github.com/C-P-WAZARIYO/Field-Pro/internal/performance/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ExecutivePerformance(c *gin.Context) {
	executiveID, err := parseSnowflakeID(c.Param("executiveId"))
	if err != nil {
		AbortWithError(c, newValidationError("executiveId", "invalid_executive_id", "invalid executive id"))
		return
	}

	month, err := parseOptionalInt(c.Query("month"))
	if err != nil {
		AbortWithError(c, newValidationError("month", "invalid_month", "invalid month"))
		return
	}
	year, err := parseOptionalInt(c.Query("year"))
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
		return
	}

	summary, err := s.performanceSvc.ExecutivePerformance(c.Request.Context(), performancedomain.Query{
		ExecutiveID: executiveID,
		Month:       month,
		Year:        year,
		Bank:        strings.TrimSpace(c.Query("bank")),
		Product:     strings.TrimSpace(c.Query("product")),
		BKT:         strings.TrimSpace(c.Query("bkt")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}
