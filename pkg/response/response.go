package response

import (
	"github.com/yash-kumarsharma/vellum/internal/domain/form"
	"github.com/yash-kumarsharma/vellum/internal/domain/user"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SuccessResponse struct {
	Data interface{} `json:"data"`
}

type TokenResponse struct {
	Token string          `json:"token"`
	User  user.PublicUser `json:"user"`
}

type FormListResponse struct {
	Forms      []form.FormSummary `json:"forms"`
	Pagination form.Pagination    `json:"pagination"`
}
