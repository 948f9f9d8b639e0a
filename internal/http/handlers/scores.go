package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/okulpusula/pusula-backend/internal/http/response"
	"github.com/okulpusula/pusula-backend/internal/services"
)

type ScoresHandler struct {
	scoringService services.ScoringService
}

func NewScoresHandler(scoringService services.ScoringService) *ScoresHandler {
	return &ScoresHandler{scoringService: scoringService}
}

func (sh *ScoresHandler) Get(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}
	scores, err := sh.scoringService.CalculateUnifiedScores(c.Request.Context(), studentID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, scores)
}

// Save recomputes, persists and returns the aggregate score row.
func (sh *ScoresHandler) Save(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}
	scores, err := sh.scoringService.SaveAggregateScores(c.Request.Context(), studentID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, scores)
}

func (sh *ScoresHandler) Completeness(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}
	report, err := sh.scoringService.CalculateProfileCompleteness(c.Request.Context(), studentID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, report)
}

func (sh *ScoresHandler) Compare(c *gin.Context) {
	var req struct {
		StudentIDs []string `json:"student_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ids := make([]uuid.UUID, 0, len(req.StudentIDs))
	for _, raw := range req.StudentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_student_id", errors.New("invalid student id: "+raw))
			return
		}
		ids = append(ids, id)
	}
	comparisons, err := sh.scoringService.CompareStudents(c.Request.Context(), ids)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"comparisons": comparisons})
}
