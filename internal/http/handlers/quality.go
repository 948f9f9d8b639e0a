package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/okulpusula/pusula-backend/internal/http/response"
	"github.com/okulpusula/pusula-backend/internal/services"
)

type QualityHandler struct {
	qualityService services.QualityService
}

func NewQualityHandler(qualityService services.QualityService) *QualityHandler {
	return &QualityHandler{qualityService: qualityService}
}

func (qh *QualityHandler) Report(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}
	report, err := qh.qualityService.GenerateStudentQualityReport(c.Request.Context(), studentID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, report)
}
