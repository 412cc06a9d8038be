package form

import (
	"time"

	"github.com/yash-kumarsharma/vellum/internal/domain/user"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionTypeText           QuestionType = "TEXT"
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeCheckbox       QuestionType = "CHECKBOX"
	QuestionTypeDropdown       QuestionType = "DROPDOWN"
	QuestionTypeDate           QuestionType = "DATE"
	QuestionTypeParagraph      QuestionType = "PARAGRAPH"
	QuestionTypeFileUpload     QuestionType = "FILE_UPLOAD"
	QuestionTypeLinearScale    QuestionType = "LINEAR_SCALE"
	QuestionTypeRating         QuestionType = "RATING"
	QuestionTypeSection        QuestionType = "SECTION"
)

type CollaboratorRole string

const (
	RoleViewer CollaboratorRole = "viewer"
	RoleEditor CollaboratorRole = "editor"
)

// Form owns an ordered question set. Deletion is a soft delete via
// gorm.DeletedAt, so a deleted form drops out of every query path.
type Form struct {
	gorm.Model
	OwnerID     uint       `json:"owner_id" gorm:"index;not null"`
	PublicID    string     `json:"public_id" gorm:"size:100;uniqueIndex"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text"`
	IsPublic    bool       `json:"is_public" gorm:"default:false"`
	Owner       user.User  `json:"-" gorm:"foreignKey:OwnerID"`
	Questions   []Question `json:"questions" gorm:"foreignKey:FormID"`
}

// Question positions are dense and zero-based within a form. Updates
// replace the whole set, so positions always mirror the input order.
type Question struct {
	ID        uint                        `json:"id" gorm:"primaryKey"`
	FormID    uint                        `json:"form_id" gorm:"index;not null"`
	Type      QuestionType                `json:"type" gorm:"size:32;not null"`
	Label     string                      `json:"label" gorm:"type:text"`
	Required  bool                        `json:"required"`
	Options   datatypes.JSONSlice[string] `json:"options"`
	Position  int                         `json:"position" gorm:"not null"`
	CreatedAt time.Time                   `json:"created_at"`
}

type Collaborator struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	FormID    uint             `json:"form_id" gorm:"not null;uniqueIndex:idx_collab_form_user"`
	UserID    uint             `json:"user_id" gorm:"not null;uniqueIndex:idx_collab_form_user"`
	Role      CollaboratorRole `json:"role" gorm:"size:16;not null;default:'viewer'"`
	CreatedAt time.Time        `json:"created_at"`
	User      user.User        `json:"user" gorm:"foreignKey:UserID"`
}

func ValidRole(r CollaboratorRole) bool {
	return r == RoleViewer || r == RoleEditor
}
