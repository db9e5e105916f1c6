package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	auditdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/audit/domain"
	feedbackdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/feedback/domain"
	"github.com/gin-gonic/gin"
)

type submitFeedbackRequest struct {
	CaseID      string `json:"case_id"`
	ExecutiveID string `json:"executive_id"`

	VisitCode    string `json:"visit_code"`
	WhoMet       string `json:"who_met"`
	Relation     string `json:"relation"`
	MetName      string `json:"met_name"`
	MeetingPlace string `json:"meeting_place"`
	Remarks      string `json:"remarks"`
	AssetStatus  string `json:"asset_status"`

	PhotoURL            string   `json:"photo_url"`
	Lat                 *float64 `json:"lat"`
	Lng                 *float64 `json:"lng"`
	DeviceInfo          string   `json:"device_info"`
	DistanceFromAddress *float64 `json:"distance_from_address"`

	PTPDate string `json:"ptp_date"`
}

func (s *Server) SubmitFeedback(c *gin.Context) {
	var req submitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var ptpDate *time.Time
	if trimmed := strings.TrimSpace(req.PTPDate); trimmed != "" {
		parsed, err := time.Parse(time.RFC3339, trimmed)
		if err != nil {
			AbortWithError(c, newValidationError("ptp_date", "invalid_ptp_date", "invalid ptp_date"))
			return
		}
		ptpDate = &parsed
	}

	created, err := s.feedbackSvc.Submit(c.Request.Context(), feedbackdomain.SubmitFeedbackRequest{
		CaseID:              strings.TrimSpace(req.CaseID),
		ExecutiveID:         strings.TrimSpace(req.ExecutiveID),
		VisitCode:           strings.TrimSpace(req.VisitCode),
		WhoMet:              strings.TrimSpace(req.WhoMet),
		Relation:            strings.TrimSpace(req.Relation),
		MetName:             strings.TrimSpace(req.MetName),
		MeetingPlace:        strings.TrimSpace(req.MeetingPlace),
		Remarks:             strings.TrimSpace(req.Remarks),
		AssetStatus:         strings.TrimSpace(req.AssetStatus),
		PhotoURL:            strings.TrimSpace(req.PhotoURL),
		Lat:                 req.Lat,
		Lng:                 req.Lng,
		DeviceInfo:          strings.TrimSpace(req.DeviceInfo),
		DistanceFromAddress: req.DistanceFromAddress,
		PTPDate:             ptpDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		Action:     auditdomain.ActionFeedbackSubmit,
		EntityType: "feedback",
		EntityID:   created.ID.String(),
	})

	c.JSON(http.StatusOK, gin.H{"data": created})
}

type markFakeRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) MarkFeedbackFake(c *gin.Context) {
	var req markFakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.feedbackSvc.MarkFake(c.Request.Context(), feedbackdomain.MarkFakeRequest{
		ID:     strings.TrimSpace(c.Param("id")),
		Reason: strings.TrimSpace(req.Reason),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		Action:     auditdomain.ActionFeedbackFake,
		EntityType: "feedback",
		EntityID:   updated.ID.String(),
	})

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// CheckBrokenPTP flags promises whose date passed while the case stayed open.
// Endpoint-triggered; typically hit from an external scheduler.
func (s *Server) CheckBrokenPTP(c *gin.Context) {
	flagged, err := s.feedbackSvc.CheckBrokenPTP(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if flagged > 0 {
		s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
			Action:     auditdomain.ActionPTPCheck,
			EntityType: "feedback",
			Detail:     "flagged=" + strconv.FormatInt(flagged, 10),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"flagged": flagged}})
}

func (s *Server) PTPAlerts(c *gin.Context) {
	days, err := parseOptionalInt(c.Query("within_days"))
	if err != nil || days < 0 {
		AbortWithError(c, newValidationError("within_days", "invalid_within_days", "invalid within_days"))
		return
	}

	alerts, err := s.feedbackSvc.PTPAlerts(c.Request.Context(), time.Duration(days)*24*time.Hour)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"alerts": alerts, "count": len(alerts)}})
}

func (s *Server) FakeVisitSummary(c *gin.Context) {
	summary, err := s.feedbackSvc.FakeVisitSummary(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

func (s *Server) RejectFeedback(c *gin.Context) {
	updated, err := s.feedbackSvc.Reject(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		Action:     auditdomain.ActionFeedbackReject,
		EntityType: "feedback",
		EntityID:   updated.ID.String(),
	})

	c.JSON(http.StatusOK, gin.H{"data": updated})
}
