package submission

import (
	"time"

	"gorm.io/datatypes"
)

// Submission is one response against a form. Answers is the raw JSON
// mapping of question id to answer value, stored verbatim. Answer keys
// are client supplied and are not validated against the form's current
// question set; readers treat unknown keys as absent.
type Submission struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	FormID      uint           `json:"form_id" gorm:"index;not null"`
	Answers     datatypes.JSON `json:"answers"`
	SubmittedAt time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
}
