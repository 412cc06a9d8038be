package handlers

import (
	"github.com/yash-kumarsharma/vellum/internal/application"
	"github.com/yash-kumarsharma/vellum/internal/realtime"
	"github.com/yash-kumarsharma/vellum/pkg/storage"
)

type Handlers struct {
	User         *UserHandler
	Form         *FormHandler
	Collaborator *CollaboratorHandler
	Submission   *SubmissionHandler
	Export       *ExportHandler
	Analytics    *AnalyticsHandler
	Upload       *UploadHandler
	WS           *WSHandler
}

func New(svc *application.Services, hub *realtime.Hub, uploads *storage.UploadStore) *Handlers {
	return &Handlers{
		User:         NewUserHandler(svc.User),
		Form:         NewFormHandler(svc.Form),
		Collaborator: NewCollaboratorHandler(svc.Collaborator),
		Submission:   NewSubmissionHandler(svc.Submission),
		Export:       NewExportHandler(svc.Export),
		Analytics:    NewAnalyticsHandler(svc.Analytics),
		Upload:       NewUploadHandler(svc.Form, uploads),
		WS:           NewWSHandler(hub),
	}
}
