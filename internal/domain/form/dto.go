package form

type QuestionInput struct {
	Type     QuestionType `json:"type" binding:"required,oneof=TEXT MULTIPLE_CHOICE CHECKBOX DROPDOWN DATE PARAGRAPH FILE_UPLOAD LINEAR_SCALE RATING SECTION"`
	Label    string       `json:"label"`
	Required bool         `json:"required"`
	Options  []string     `json:"options"`
}

type CreateFormInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	IsPublic    bool            `json:"is_public"`
	Questions   []QuestionInput `json:"questions"`
}

// UpdateFormInput replaces the whole question set when Questions is
// non-nil. A nil slice leaves the existing questions untouched.
type UpdateFormInput struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	IsPublic    *bool            `json:"is_public"`
	Questions   *[]QuestionInput `json:"questions"`
}

type ListQuery struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
	Search string `form:"search"`
	Sort   string `form:"sort,default=newest" binding:"omitempty,oneof=newest oldest az za"`
	Status string `form:"status,default=all" binding:"omitempty,oneof=all public private"`
}

type AddCollaboratorInput struct {
	UserID uint             `json:"user_id" binding:"required"`
	Role   CollaboratorRole `json:"role" binding:"omitempty,oneof=viewer editor"`
}

// FormSummary is a listing row: the form plus its response count.
type FormSummary struct {
	Form
	ResponseCount int64 `json:"response_count"`
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}
