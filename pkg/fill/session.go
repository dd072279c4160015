// Package fill implements the fill-time side of the engine: a sparse
// answer map keyed by question id, checkbox toggle semantics, file upload
// handling, required-field validation, and submission.
package fill

import (
	"context"
	"fmt"
	"io"

	"github.com/goliatone/go-formbuilder/pkg/fault"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/storage"
)

// RequiredMessage is the inline message attached to unanswered required
// questions.
const RequiredMessage = "This field is required"

// Session collects answers for one form from one filler. It is not safe
// for concurrent use.
type Session struct {
	form    model.Form
	answers model.AnswerMap
	blobs   storage.BlobStore
}

// Option configures a Session.
type Option func(*Session)

// WithBlobStore wires the upload collaborator used by AttachFile.
func WithBlobStore(blobs storage.BlobStore) Option {
	return func(s *Session) {
		s.blobs = blobs
	}
}

// NewSession starts a fill session against a persisted schema.
func NewSession(form model.Form, options ...Option) *Session {
	s := &Session{
		form:    form.Clone(),
		answers: make(model.AnswerMap),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Form returns the schema being filled.
func (s *Session) Form() model.Form {
	return s.form.Clone()
}

// Answers returns a snapshot of the current answer map.
func (s *Session) Answers() model.AnswerMap {
	return s.answers.Clone()
}

// SetAnswer replaces the value recorded for the question id. Other ids are
// untouched. Checkbox option toggling goes through ToggleOption instead so
// selections merge rather than replace.
func (s *Session) SetAnswer(questionID string, value any) {
	s.answers[questionID] = value
}

// ClearAnswer removes the recorded value for the question id.
func (s *Session) ClearAnswer(questionID string) {
	delete(s.answers, questionID)
}

// ToggleOption merges one checkbox option into the existing selection for
// the question: absent options are added, present options removed. When
// the selection empties the key is dropped, so toggling the same option
// twice restores the original answer set.
func (s *Session) ToggleOption(questionID, option string) {
	current, _ := model.ListValue(s.answers[questionID])
	for i, existing := range current {
		if existing == option {
			current = append(current[:i], current[i+1:]...)
			if len(current) == 0 {
				delete(s.answers, questionID)
			} else {
				s.answers[questionID] = current
			}
			return
		}
	}
	s.answers[questionID] = append(current, option)
}

// AttachFile uploads the file contents for a fileUpload question and
// records the resulting public URL as the answer. The upload happens
// before the answer map is touched: on failure the map is left as it was
// and a storage fault is returned.
func (s *Session) AttachFile(ctx context.Context, questionID, filename string, contents io.Reader) (string, error) {
	question, ok := s.form.Question(questionID)
	if !ok {
		return "", fault.New(fault.NotFound, fmt.Sprintf("question %s is not part of this form", questionID))
	}
	if !question.Type.AcceptsFiles() {
		return "", fault.Validationf("question %s does not accept file uploads", questionID)
	}
	if s.blobs == nil {
		return "", fault.New(fault.Storage, "no upload storage configured")
	}

	url, err := s.blobs.Upload(ctx, UploadPath(questionID, filename), contents)
	if err != nil {
		return "", fault.Wrap(fault.Storage, "upload file", err)
	}
	s.answers[questionID] = url
	return url, nil
}

// Validate checks every required question and reports all violations
// together: a mapping from offending question id to a human-readable
// message. Submission may proceed only when the mapping is empty.
func (s *Session) Validate() map[string]string {
	return Validate(s.form, s.answers)
}

// Validate checks the answer map against the schema's required questions.
// Absent values, empty strings, and empty sequences all count as
// unanswered.
func Validate(form model.Form, answers model.AnswerMap) map[string]string {
	violations := make(map[string]string)
	for _, question := range form.Questions {
		if !question.Required {
			continue
		}
		if model.IsEmptyAnswer(answers[question.ID]) {
			violations[question.ID] = RequiredMessage
		}
	}
	return violations
}

// Submit validates and persists one response carrying the full current
// answer map. The store assigns the id and timestamp. On failure the
// answer map is retained so the filler can retry without re-entering
// data.
func (s *Session) Submit(ctx context.Context, store storage.ResponseStore) (model.Response, error) {
	if violations := s.Validate(); len(violations) > 0 {
		return model.Response{}, fault.Validationf("%d required question(s) unanswered", len(violations))
	}

	response := model.Response{
		FormID:  s.form.ID,
		Answers: s.answers.Clone(),
	}
	saved, err := store.SubmitResponse(ctx, response)
	if err != nil {
		return model.Response{}, fault.Wrap(fault.Storage, "submit response", err)
	}
	return saved, nil
}
