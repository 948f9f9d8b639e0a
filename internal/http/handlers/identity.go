package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/okulpusula/pusula-backend/internal/http/response"
	"github.com/okulpusula/pusula-backend/internal/services"
)

type IdentityHandler struct {
	identityService services.IdentityService
}

func NewIdentityHandler(identityService services.IdentityService) *IdentityHandler {
	return &IdentityHandler{identityService: identityService}
}

func (ih *IdentityHandler) Get(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}
	identity, err := ih.identityService.Get(c.Request.Context(), studentID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, identity)
}

func (ih *IdentityHandler) Refresh(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}
	identity, err := ih.identityService.Refresh(c.Request.Context(), studentID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, identity)
}
