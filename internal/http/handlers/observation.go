package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/okulpusula/pusula-backend/internal/http/response"
	"github.com/okulpusula/pusula-backend/internal/requestdata"
	"github.com/okulpusula/pusula-backend/internal/services"
)

type ObservationHandler struct {
	fusionService services.FusionService
}

func NewObservationHandler(fusionService services.FusionService) *ObservationHandler {
	return &ObservationHandler{fusionService: fusionService}
}

// Process runs one observation through extraction, conflict resolution
// and the profile merge. The response always carries the full outcome,
// including rejected or queued observations.
func (oh *ObservationHandler) Process(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}
	var req struct {
		Source   string `json:"source"`
		SourceID string `json:"source_id"`
		RawData  string `json:"raw_data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	processedBy := ""
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		processedBy = rd.CounselorName
	}
	result, err := oh.fusionService.ProcessObservation(c.Request.Context(), services.ObservationInput{
		StudentID:   studentID,
		Source:      req.Source,
		SourceID:    req.SourceID,
		RawData:     req.RawData,
		ProcessedBy: processedBy,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (oh *ObservationHandler) ListSyncLogs(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	logs, err := oh.fusionService.ListSyncLogs(c.Request.Context(), studentID, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"sync_logs": logs})
}
