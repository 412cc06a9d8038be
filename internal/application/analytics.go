package application

import (
	"sort"
	"strconv"

	"github.com/yash-kumarsharma/vellum/internal/domain/form"
	"github.com/yash-kumarsharma/vellum/internal/domain/submission"
	"github.com/yash-kumarsharma/vellum/internal/repository"
)

type QuestionAggregate struct {
	QuestionID uint              `json:"question_id"`
	Label      string            `json:"label"`
	Type       form.QuestionType `json:"type"`
	// Counts maps each distinct answer value to its occurrence count.
	// Multi answers contribute one count per element.
	Counts   map[string]int `json:"counts"`
	Answered int            `json:"answered"`
	// Texts keeps the raw answer list for free-text questions.
	Texts []string `json:"texts,omitempty"`
}

type AnalyticsSummary struct {
	FormID         uint                `json:"form_id"`
	TotalResponses int                 `json:"total_responses"`
	Questions      []QuestionAggregate `json:"questions"`
}

func freeText(t form.QuestionType) bool {
	return t == form.QuestionTypeText || t == form.QuestionTypeParagraph
}

// Aggregate reduces submissions into per-question summaries. It is a
// pure function of its inputs and touches no storage.
func Aggregate(formID uint, questions []form.Question, subs []submission.Submission) (AnalyticsSummary, error) {
	ordered := make([]form.Question, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	aggs := make([]QuestionAggregate, len(ordered))
	index := make(map[string]int, len(ordered))
	for i, q := range ordered {
		aggs[i] = QuestionAggregate{
			QuestionID: q.ID,
			Label:      q.Label,
			Type:       q.Type,
			Counts:     map[string]int{},
		}
		index[strconv.FormatUint(uint64(q.ID), 10)] = i
	}

	for _, sub := range subs {
		answers, err := submission.DecodeAnswers(sub.Answers)
		if err != nil {
			return AnalyticsSummary{}, err
		}
		for key, value := range answers {
			i, ok := index[key]
			if !ok || value.Kind == submission.AnswerAbsent {
				continue
			}
			aggs[i].Answered++
			switch value.Kind {
			case submission.AnswerScalar:
				aggs[i].Counts[value.Scalar]++
				if freeText(aggs[i].Type) {
					aggs[i].Texts = append(aggs[i].Texts, value.Scalar)
				}
			case submission.AnswerMulti:
				for _, v := range value.Multi {
					aggs[i].Counts[v]++
				}
			}
		}
	}

	return AnalyticsSummary{
		FormID:         formID,
		TotalResponses: len(subs),
		Questions:      aggs,
	}, nil
}

type AnalyticsService struct {
	Repos *repository.Repos
}

func NewAnalyticsService(repos *repository.Repos) *AnalyticsService {
	return &AnalyticsService{Repos: repos}
}

func (s *AnalyticsService) Summary(formID, ownerID uint) (AnalyticsSummary, error) {
	f, err := s.Repos.Form.GetOwnedForm(formID, ownerID)
	if err != nil {
		return AnalyticsSummary{}, ErrFormNotFound
	}
	subs, err := s.Repos.Submission.ListByFormID(f.ID, 0, 0)
	if err != nil {
		return AnalyticsSummary{}, err
	}
	return Aggregate(f.ID, f.Questions, subs)
}
