package repository

import (
	"github.com/yash-kumarsharma/vellum/internal/domain/form"
	"gorm.io/gorm"
)

type QuestionRepo interface {
	CreateQuestions(qs []*form.Question) error
	ListByFormID(formID uint) ([]form.Question, error)
	DeleteByFormID(formID uint) error
	WithTx(tx *gorm.DB) QuestionRepo
}

type DBQuestionRepo struct {
	db *gorm.DB
}

func NewQuestionRepo(db *gorm.DB) *DBQuestionRepo {
	return &DBQuestionRepo{db: db}
}

func (r *DBQuestionRepo) CreateQuestions(qs []*form.Question) error {
	if len(qs) == 0 {
		return nil
	}
	return r.db.Create(qs).Error
}

func (r *DBQuestionRepo) ListByFormID(formID uint) ([]form.Question, error) {
	var qs []form.Question
	err := r.db.Where("form_id = ?", formID).Order("position asc").Find(&qs).Error
	return qs, err
}

func (r *DBQuestionRepo) DeleteByFormID(formID uint) error {
	return r.db.Where("form_id = ?", formID).Delete(&form.Question{}).Error
}

func (r *DBQuestionRepo) WithTx(tx *gorm.DB) QuestionRepo {
	return &DBQuestionRepo{db: tx}
}
