package application

import (
	"github.com/yash-kumarsharma/vellum/internal/domain/submission"
	"github.com/yash-kumarsharma/vellum/internal/repository"
)

type SubmissionService struct {
	Repos    *repository.Repos
	notifier Notifier
}

func NewSubmissionService(repos *repository.Repos, notifier Notifier) *SubmissionService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &SubmissionService{Repos: repos, notifier: notifier}
}

// Submit stores an anonymous response against a public form. Answer
// keys are persisted as sent, without checking them against the form's
// question set. The realtime notification runs after the row is
// committed and its outcome never affects the submission.
func (s *SubmissionService) Submit(formRef string, answers submission.AnswerMap) (*submission.Submission, error) {
	f, err := s.Repos.Form.GetPublicForm(formRef)
	if err != nil {
		return nil, ErrFormNotFound
	}

	raw, err := answers.Encode()
	if err != nil {
		return nil, err
	}
	sub := &submission.Submission{
		FormID:  f.ID,
		Answers: raw,
	}
	if err := s.Repos.Submission.CreateSubmission(sub); err != nil {
		return nil, err
	}

	s.notifier.ResponseReceived(f.ID, sub.ID)
	return sub, nil
}

// List returns a form's submissions newest-first. Only the form owner
// may read them.
func (s *SubmissionService) List(formID, ownerID uint, page, limit int) ([]submission.Submission, int64, error) {
	f, err := s.Repos.Form.GetOwnedForm(formID, ownerID)
	if err != nil {
		return nil, 0, ErrFormNotFound
	}

	total, err := s.Repos.Submission.CountByFormID(f.ID)
	if err != nil {
		return nil, 0, err
	}

	offset := 0
	if page > 1 && limit > 0 {
		offset = (page - 1) * limit
	}
	subs, err := s.Repos.Submission.ListByFormID(f.ID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}
