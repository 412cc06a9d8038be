package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yash-kumarsharma/vellum/internal/application"
	"github.com/yash-kumarsharma/vellum/pkg/response"
	"github.com/yash-kumarsharma/vellum/pkg/storage"
)

type UploadHandler struct {
	forms   *application.FormService
	uploads *storage.UploadStore
}

func NewUploadHandler(forms *application.FormService, uploads *storage.UploadStore) *UploadHandler {
	return &UploadHandler{forms: forms, uploads: uploads}
}

// Upload stores a file for a FILE_UPLOAD answer and returns the object
// key the client should submit as that question's value. Same trust
// model as form submission: no auth, public forms only.
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.uploads == nil {
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: "File uploads are not enabled"})
		return
	}

	f, err := h.forms.GetPublicForm(c.Param("formId"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Missing file field"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Failed to read file"})
		return
	}
	defer src.Close()

	key := fmt.Sprintf("forms/%d/%s%s", f.ID, uuid.NewString(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.uploads.Put(c.Request.Context(), key, src, fileHeader.Size, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Failed to store file: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.SuccessResponse{Data: gin.H{"key": key}})
}
