package application

import (
	"errors"
	"math"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/yash-kumarsharma/vellum/internal/domain/form"
	"github.com/yash-kumarsharma/vellum/internal/repository"
	"gorm.io/datatypes"
)

var (
	// ErrFormNotFound covers both a missing form and a form owned by
	// someone else, so callers cannot probe for existence.
	ErrFormNotFound = errors.New("form not found")
)

const defaultFormTitle = "Untitled Form"

type FormService struct {
	Repos    *repository.Repos
	notifier Notifier
}

func NewFormService(repos *repository.Repos, notifier Notifier) *FormService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &FormService{Repos: repos, notifier: notifier}
}

func buildQuestions(formID uint, inputs []form.QuestionInput) []*form.Question {
	qs := make([]*form.Question, 0, len(inputs))
	for i, in := range inputs {
		qs = append(qs, &form.Question{
			FormID:   formID,
			Type:     in.Type,
			Label:    in.Label,
			Required: in.Required,
			Options:  datatypes.JSONSlice[string](in.Options),
			Position: i,
		})
	}
	return qs
}

func (s *FormService) CreateForm(ownerID uint, input form.CreateFormInput) (*form.Form, error) {
	title := input.Title
	if title == "" {
		title = defaultFormTitle
	}
	publicID, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	f := &form.Form{
		OwnerID:     ownerID,
		PublicID:    publicID,
		Title:       title,
		Description: input.Description,
		IsPublic:    input.IsPublic,
	}

	tx := s.Repos.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := s.Repos.Form.WithTx(tx).CreateForm(f); err != nil {
		tx.Rollback()
		return nil, err
	}
	questions := buildQuestions(f.ID, input.Questions)
	if err := s.Repos.Question.WithTx(tx).CreateQuestions(questions); err != nil {
		tx.Rollback()
		return nil, err
	}
	if res := tx.Commit(); res.Error != nil {
		return nil, res.Error
	}

	for _, q := range questions {
		f.Questions = append(f.Questions, *q)
	}
	return f, nil
}

func (s *FormService) ListForms(ownerID uint, q form.ListQuery) ([]form.FormSummary, form.Pagination, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	rows, total, err := s.Repos.Form.ListByOwner(ownerID, q)
	if err != nil {
		return nil, form.Pagination{}, err
	}
	pagination := form.Pagination{
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(q.Limit))),
	}
	return rows, pagination, nil
}

func (s *FormService) GetForm(id, ownerID uint) (*form.Form, error) {
	f, err := s.Repos.Form.GetOwnedForm(id, ownerID)
	if err != nil {
		return nil, ErrFormNotFound
	}
	return f, nil
}

func (s *FormService) GetPublicForm(ref string) (*form.Form, error) {
	f, err := s.Repos.Form.GetPublicForm(ref)
	if err != nil {
		return nil, ErrFormNotFound
	}
	return f, nil
}

// UpdateForm applies field edits and, when a question list is supplied,
// replaces the entire question set in one transaction: either the new
// list lands in full or the original set stays intact.
func (s *FormService) UpdateForm(id, ownerID uint, input form.UpdateFormInput) (*form.Form, error) {
	f, err := s.Repos.Form.GetOwnedForm(id, ownerID)
	if err != nil {
		return nil, ErrFormNotFound
	}

	if input.Title != nil {
		f.Title = *input.Title
		if f.Title == "" {
			f.Title = defaultFormTitle
		}
	}
	if input.Description != nil {
		f.Description = *input.Description
	}
	if input.IsPublic != nil {
		f.IsPublic = *input.IsPublic
	}

	tx := s.Repos.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := s.Repos.Form.WithTx(tx).SaveForm(f); err != nil {
		tx.Rollback()
		return nil, err
	}

	var created []*form.Question
	if input.Questions != nil {
		if err := s.Repos.Question.WithTx(tx).DeleteByFormID(f.ID); err != nil {
			tx.Rollback()
			return nil, err
		}
		created = buildQuestions(f.ID, *input.Questions)
		if err := s.Repos.Question.WithTx(tx).CreateQuestions(created); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if res := tx.Commit(); res.Error != nil {
		return nil, res.Error
	}

	if input.Questions != nil {
		f.Questions = f.Questions[:0]
		for _, q := range created {
			f.Questions = append(f.Questions, *q)
			s.notifier.QuestionAdded(f.ID, q)
		}
	}
	return f, nil
}

func (s *FormService) DeleteForm(id, ownerID uint) error {
	f, err := s.Repos.Form.GetOwnedForm(id, ownerID)
	if err != nil {
		return ErrFormNotFound
	}
	return s.Repos.Form.DeleteForm(f.ID)
}
