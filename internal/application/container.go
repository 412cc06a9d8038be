package application

import (
	"github.com/yash-kumarsharma/vellum/internal/repository"
)

type Services struct {
	User         *UserService
	Form         *FormService
	Collaborator *CollaboratorService
	Submission   *SubmissionService
	Export       *ExportService
	Analytics    *AnalyticsService
}

func New(repos *repository.Repos, notifier Notifier) *Services {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &Services{
		User:         NewUserService(repos),
		Form:         NewFormService(repos, notifier),
		Collaborator: NewCollaboratorService(repos),
		Submission:   NewSubmissionService(repos, notifier),
		Export:       NewExportService(repos),
		Analytics:    NewAnalyticsService(repos),
	}
}
