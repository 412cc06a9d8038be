package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yash-kumarsharma/vellum/internal/application"
	"github.com/yash-kumarsharma/vellum/internal/domain/submission"
	"github.com/yash-kumarsharma/vellum/pkg/response"
	"github.com/yash-kumarsharma/vellum/pkg/utils"
)

type SubmissionHandler struct {
	service *application.SubmissionService
}

func NewSubmissionHandler(service *application.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// Submit accepts an anonymous response against a public form. The
// :formId parameter accepts a numeric id or a public share id.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var answers submission.AnswerMap
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input: " + err.Error()})
		return
	}

	sub, err := h.service.Submit(c.Param("formId"), answers)
	if err != nil {
		if errors.Is(err, application.ErrFormNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, response.SuccessResponse{Data: sub})
}

func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
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

	// Pagination is optional; without page/limit the full set returns.
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	subs, total, err := h.service.List(formID, userID, page, limit)
	if err != nil {
		if errors.Is(err, application.ErrFormNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": subs, "total": total})
}
