package model

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID mints an identifier that will not collide within an editing
// session. Also used for forms and responses when the caller does not
// supply one.
func NewID() string {
	return uuid.NewString()
}

// NewQuestion returns a fresh question of the given type with a newly
// minted id, empty text, and required unset. Option-bearing variants are
// seeded with a single empty option so the builder has a first editable
// row; fileUpload starts with no categories selected.
func NewQuestion(t QuestionType) (Question, error) {
	q := Question{
		ID:   NewID(),
		Type: t,
	}
	switch t {
	case TypeText, TypeShortAnswer, TypeEmail:
	case TypeMultipleChoice, TypeCheckbox:
		q.Options = []string{""}
	case TypeFileUpload:
		q.FileTypes = []string{}
	default:
		return Question{}, fmt.Errorf("model: unhandled question type %q", t)
	}
	return q, nil
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	out := q
	if q.Options != nil {
		out.Options = append([]string{}, q.Options...)
	}
	if q.FileTypes != nil {
		out.FileTypes = append([]string{}, q.FileTypes...)
	}
	return out
}

// HasFileType reports whether the category tag is currently selected.
func (q Question) HasFileType(tag string) bool {
	for _, existing := range q.FileTypes {
		if existing == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the form, questions included.
func (f Form) Clone() Form {
	out := f
	if f.Questions != nil {
		out.Questions = make([]Question, len(f.Questions))
		for i, q := range f.Questions {
			out.Questions[i] = q.Clone()
		}
	}
	return out
}

// Question returns the question with the given id, if present.
func (f Form) Question(id string) (Question, bool) {
	for _, q := range f.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// QuestionIDs returns the ids of the question sequence in display order.
func (f Form) QuestionIDs() []string {
	ids := make([]string, len(f.Questions))
	for i, q := range f.Questions {
		ids[i] = q.ID
	}
	return ids
}

// Clone returns a deep copy of the response.
func (r Response) Clone() Response {
	out := r
	out.Answers = r.Answers.Clone()
	return out
}
