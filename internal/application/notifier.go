package application

import "github.com/yash-kumarsharma/vellum/internal/domain/form"

// Notifier fans out store events to live viewers. Delivery is
// best-effort: implementations must never return control-flow errors
// back into the write path.
type Notifier interface {
	QuestionAdded(formID uint, q *form.Question)
	ResponseReceived(formID, submissionID uint)
}

type NoopNotifier struct{}

func (NoopNotifier) QuestionAdded(uint, *form.Question) {}
func (NoopNotifier) ResponseReceived(uint, uint)        {}
