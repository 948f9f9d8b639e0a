package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/okulpusula/pusula-backend/internal/http/response"
	"github.com/okulpusula/pusula-backend/internal/services"
)

type SuggestionHandler struct {
	suggestionService services.SuggestionService
}

func NewSuggestionHandler(suggestionService services.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

func (sh *SuggestionHandler) ListPending(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}
	suggestions, err := sh.suggestionService.ListPending(c.Request.Context(), studentID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"suggestions": suggestions})
}

func (sh *SuggestionHandler) Review(c *gin.Context) {
	id, err := uuid.Parse(c.Param("suggestionID"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_suggestion_id", err)
		return
	}
	var req struct {
		Approve bool `json:"approve"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	suggestion, err := sh.suggestionService.Review(c.Request.Context(), id, req.Approve)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, suggestion)
}
