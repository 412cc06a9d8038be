package repository

import (
	"strconv"
	"strings"

	"github.com/yash-kumarsharma/vellum/internal/domain/form"
	"gorm.io/gorm"
)

type FormRepo interface {
	CreateForm(f *form.Form) error
	ListByOwner(ownerID uint, q form.ListQuery) ([]form.FormSummary, int64, error)
	GetOwnedForm(id, ownerID uint) (*form.Form, error)
	GetPublicForm(ref string) (*form.Form, error)
	SaveForm(f *form.Form) error
	DeleteForm(id uint) error
	WithTx(tx *gorm.DB) FormRepo
}

type DBFormRepo struct {
	db *gorm.DB
}

func NewFormRepo(db *gorm.DB) *DBFormRepo {
	return &DBFormRepo{db: db}
}

func (r *DBFormRepo) CreateForm(f *form.Form) error {
	return r.db.Create(f).Error
}

// scopeOwned applies the owner, search and status filters shared by the
// count and page queries. Soft-deleted forms are excluded by gorm.
func scopeOwned(db *gorm.DB, ownerID uint, q form.ListQuery) *gorm.DB {
	scoped := db.Model(&form.Form{}).Where("owner_id = ?", ownerID)
	if q.Search != "" {
		term := "%" + strings.ToLower(q.Search) + "%"
		scoped = scoped.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}
	switch q.Status {
	case "public":
		scoped = scoped.Where("is_public = ?", true)
	case "private":
		scoped = scoped.Where("is_public = ?", false)
	}
	return scoped
}

func orderClause(sort string) string {
	switch sort {
	case "oldest":
		return "created_at asc"
	case "az":
		return "title asc"
	case "za":
		return "title desc"
	default:
		return "created_at desc"
	}
}

func (r *DBFormRepo) ListByOwner(ownerID uint, q form.ListQuery) ([]form.FormSummary, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	var total int64
	if err := scopeOwned(r.db, ownerID, q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	rows := []form.FormSummary{}
	err := scopeOwned(r.db, ownerID, q).
		Select("forms.*, (SELECT count(*) FROM submissions s WHERE s.form_id = forms.id) AS response_count").
		Order(orderClause(q.Sort)).
		Offset(offset).
		Limit(q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *DBFormRepo) GetOwnedForm(id, ownerID uint) (*form.Form, error) {
	var f form.Form
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetPublicForm resolves either a numeric id or a public share id, and
// only returns forms flagged public.
func (r *DBFormRepo) GetPublicForm(ref string) (*form.Form, error) {
	query := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("is_public = ?", true)

	var f form.Form
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		query = query.Where("id = ?", uint(id))
	} else {
		query = query.Where("public_id = ?", ref)
	}
	if err := query.First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *DBFormRepo) SaveForm(f *form.Form) error {
	return r.db.Omit("Questions").Save(f).Error
}

func (r *DBFormRepo) DeleteForm(id uint) error {
	return r.db.Delete(&form.Form{}, id).Error
}

func (r *DBFormRepo) WithTx(tx *gorm.DB) FormRepo {
	return &DBFormRepo{db: tx}
}
