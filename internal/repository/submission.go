package repository

import (
	"github.com/yash-kumarsharma/vellum/internal/domain/submission"
	"gorm.io/gorm"
)

type SubmissionRepo interface {
	CreateSubmission(s *submission.Submission) error
	// ListByFormID returns submissions newest-first. A limit below 1
	// returns the full set.
	ListByFormID(formID uint, offset, limit int) ([]submission.Submission, error)
	CountByFormID(formID uint) (int64, error)
	WithTx(tx *gorm.DB) SubmissionRepo
}

type DBSubmissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) *DBSubmissionRepo {
	return &DBSubmissionRepo{db: db}
}

func (r *DBSubmissionRepo) CreateSubmission(s *submission.Submission) error {
	return r.db.Create(s).Error
}

func (r *DBSubmissionRepo) ListByFormID(formID uint, offset, limit int) ([]submission.Submission, error) {
	subs := []submission.Submission{}
	query := r.db.Where("form_id = ?", formID).Order("submitted_at desc, id desc")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}
	err := query.Find(&subs).Error
	return subs, err
}

func (r *DBSubmissionRepo) CountByFormID(formID uint) (int64, error) {
	var count int64
	err := r.db.Model(&submission.Submission{}).Where("form_id = ?", formID).Count(&count).Error
	return count, err
}

func (r *DBSubmissionRepo) WithTx(tx *gorm.DB) SubmissionRepo {
	return &DBSubmissionRepo{db: tx}
}
