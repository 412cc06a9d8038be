package repository

import (
	"errors"

	"github.com/yash-kumarsharma/vellum/internal/domain/form"
	"gorm.io/gorm"
)

type CollaboratorRepo interface {
	CreateCollaborator(c *form.Collaborator) error
	ListByFormID(formID uint) ([]form.Collaborator, error)
	ExistsByFormAndUser(formID, userID uint) (bool, error)
	WithTx(tx *gorm.DB) CollaboratorRepo
}

type DBCollaboratorRepo struct {
	db *gorm.DB
}

func NewCollaboratorRepo(db *gorm.DB) *DBCollaboratorRepo {
	return &DBCollaboratorRepo{db: db}
}

func (r *DBCollaboratorRepo) CreateCollaborator(c *form.Collaborator) error {
	return r.db.Create(c).Error
}

func (r *DBCollaboratorRepo) ListByFormID(formID uint) ([]form.Collaborator, error) {
	var collabs []form.Collaborator
	err := r.db.Where("form_id = ?", formID).Preload("User").Order("created_at asc").Find(&collabs).Error
	return collabs, err
}

func (r *DBCollaboratorRepo) ExistsByFormAndUser(formID, userID uint) (bool, error) {
	var c form.Collaborator
	err := r.db.Where("form_id = ? AND user_id = ?", formID, userID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *DBCollaboratorRepo) WithTx(tx *gorm.DB) CollaboratorRepo {
	return &DBCollaboratorRepo{db: tx}
}
