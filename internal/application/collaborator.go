package application

import (
	"errors"

	"github.com/yash-kumarsharma/vellum/internal/domain/form"
	"github.com/yash-kumarsharma/vellum/internal/repository"
)

var (
	ErrCollaboratorExists = errors.New("user is already a collaborator on this form")
	ErrInvalidRole        = errors.New("role must be viewer or editor")
)

type CollaboratorService struct {
	Repos *repository.Repos
}

func NewCollaboratorService(repos *repository.Repos) *CollaboratorService {
	return &CollaboratorService{Repos: repos}
}

func (s *CollaboratorService) AddCollaborator(formID, ownerID uint, input form.AddCollaboratorInput) (*form.Collaborator, error) {
	f, err := s.Repos.Form.GetOwnedForm(formID, ownerID)
	if err != nil {
		return nil, ErrFormNotFound
	}

	role := input.Role
	if role == "" {
		role = form.RoleViewer
	}
	if !form.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	if _, err := s.Repos.User.GetUserByID(input.UserID); err != nil {
		return nil, ErrUserNotFound
	}

	exists, err := s.Repos.Collaborator.ExistsByFormAndUser(f.ID, input.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCollaboratorExists
	}

	collab := &form.Collaborator{
		FormID: f.ID,
		UserID: input.UserID,
		Role:   role,
	}
	if err := s.Repos.Collaborator.CreateCollaborator(collab); err != nil {
		return nil, err
	}
	return collab, nil
}

func (s *CollaboratorService) ListCollaborators(formID, ownerID uint) ([]form.Collaborator, error) {
	f, err := s.Repos.Form.GetOwnedForm(formID, ownerID)
	if err != nil {
		return nil, ErrFormNotFound
	}
	return s.Repos.Collaborator.ListByFormID(f.ID)
}
