package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yash-kumarsharma/vellum/internal/application"
	"github.com/yash-kumarsharma/vellum/pkg/response"
	"github.com/yash-kumarsharma/vellum/pkg/utils"
)

type ExportHandler struct {
	service *application.ExportService
}

func NewExportHandler(service *application.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

func (h *ExportHandler) exportIDs(c *gin.Context) (uint, uint, bool) {
	formID, err := utils.ParseIDParam(c, "formId")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form id"})
		return 0, 0, false
	}
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return 0, 0, false
	}
	return formID, userID, true
}

func (h *ExportHandler) ExportExcel(c *gin.Context) {
	formID, userID, ok := h.exportIDs(c)
	if !ok {
		return
	}

	f, data, err := h.service.ExportXLSX(formID, userID)
	if err != nil {
		if errors.Is(err, application.ErrFormNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Title+".xlsx"))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *ExportHandler) ExportCSV(c *gin.Context) {
	formID, userID, ok := h.exportIDs(c)
	if !ok {
		return
	}

	f, data, err := h.service.ExportCSV(formID, userID)
	if err != nil {
		if errors.Is(err, application.ErrFormNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Title+".csv"))
	c.Data(http.StatusOK, "text/csv", data)
}

type AnalyticsHandler struct {
	service *application.AnalyticsService
}

func NewAnalyticsHandler(service *application.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) Summary(c *gin.Context) {
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

	summary, err := h.service.Summary(formID, userID)
	if err != nil {
		if errors.Is(err, application.ErrFormNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: summary})
}
