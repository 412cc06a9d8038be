package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yash-kumarsharma/vellum/internal/application"
	"github.com/yash-kumarsharma/vellum/internal/domain/form"
	"github.com/yash-kumarsharma/vellum/pkg/response"
	"github.com/yash-kumarsharma/vellum/pkg/utils"
)

type CollaboratorHandler struct {
	service *application.CollaboratorService
}

func NewCollaboratorHandler(service *application.CollaboratorService) *CollaboratorHandler {
	return &CollaboratorHandler{service: service}
}

func (h *CollaboratorHandler) AddCollaborator(c *gin.Context) {
	formID, err := utils.ParseIDParam(c, "formId")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form id"})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input form.AddCollaboratorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input: " + err.Error()})
		return
	}

	collab, err := h.service.AddCollaborator(formID, userID, input)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrFormNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, application.ErrUserNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, application.ErrCollaboratorExists):
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, application.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, response.SuccessResponse{Data: collab})
}

func (h *CollaboratorHandler) ListCollaborators(c *gin.Context) {
	formID, err := utils.ParseIDParam(c, "formId")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form id"})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	collabs, err := h.service.ListCollaborators(formID, userID)
	if err != nil {
		if errors.Is(err, application.ErrFormNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: collabs})
}
