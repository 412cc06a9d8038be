package repository

import (
	"gorm.io/gorm"
)

type Repos struct {
	User         UserRepo
	Form         FormRepo
	Question     QuestionRepo
	Submission   SubmissionRepo
	Collaborator CollaboratorRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		User:         NewUserRepo(db),
		Form:         NewFormRepo(db),
		Question:     NewQuestionRepo(db),
		Submission:   NewSubmissionRepo(db),
		Collaborator: NewCollaboratorRepo(db),
		db:           db,
	}
}

func (r *Repos) Begin() *gorm.DB {
	return r.db.Begin()
}
