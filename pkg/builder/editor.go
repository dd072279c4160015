// Package builder implements the form schema editor: ordered-list CRUD and
// reordering over the question sequence, per-type field mutation, a notice
// transcript, and the save gate. Sequence edits never fail; operations
// addressed at an absent question id are no-ops.
package builder

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/fault"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/storage"
)

// Editor holds one editing session over a form schema. It is not safe for
// concurrent use; callers serialize operations.
type Editor struct {
	form     model.Form
	notices  []Notice
	notifier Notifier
}

// Option configures an Editor.
type Option func(*Editor)

// WithNotifier forwards notices to fn as they are emitted, in addition to
// the transcript kept on the editor.
func WithNotifier(fn Notifier) Option {
	return func(e *Editor) {
		e.notifier = fn
	}
}

// New starts an editing session over the given form. An empty form starts
// a create flow; a fetched form starts an update flow.
func New(form model.Form, options ...Option) *Editor {
	e := &Editor{form: form.Clone()}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Form returns a snapshot of the schema being edited. The snapshot is a
// deep copy; mutating it does not affect the session.
func (e *Editor) Form() model.Form {
	return e.form.Clone()
}

// Questions returns a snapshot of the question sequence in display order.
func (e *Editor) Questions() []model.Question {
	return e.form.Clone().Questions
}

// Notices returns the transcript of notifications emitted so far.
func (e *Editor) Notices() []Notice {
	return append([]Notice(nil), e.notices...)
}

// SetTitle replaces the form title.
func (e *Editor) SetTitle(title string) {
	e.form.Title = title
}

// SetDescription replaces the form description.
func (e *Editor) SetDescription(description string) {
	e.form.Description = description
}

// AddQuestion appends a new question of the given type with a fresh id,
// empty text, and required unset. It fails only for an unknown type.
func (e *Editor) AddQuestion(t model.QuestionType) (model.Question, error) {
	q, err := model.NewQuestion(t)
	if err != nil {
		e.emit(errorNotice("Unknown question type."))
		return model.Question{}, err
	}
	e.form.Questions = append(e.form.Questions, q)
	e.emit(successNotice("Question added successfully!"))
	return q.Clone(), nil
}

// DeleteQuestion removes the question with the given id. Deleting an
// absent id is a no-op; a notice is emitted either way, so the operation
// is idempotent from the caller's perspective.
func (e *Editor) DeleteQuestion(id string) {
	kept := e.form.Questions[:0]
	for _, q := range e.form.Questions {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	e.form.Questions = kept
	e.emit(successNotice("Question deleted successfully!"))
}

// DuplicateQuestion appends a copy of the question with the given id at
// the end of the sequence, under a newly minted id. No-op if the source id
// is absent.
func (e *Editor) DuplicateQuestion(id string) {
	source, ok := e.form.Question(id)
	if !ok {
		return
	}
	duplicate := source.Clone()
	duplicate.ID = model.NewID()
	e.form.Questions = append(e.form.Questions, duplicate)
	e.emit(successNotice("Question duplicated successfully!"))
}

// Move removes the question at from and reinserts it at to, shifting the
// elements in between. It reports false and leaves the sequence untouched
// when either index is out of bounds, which covers drags dropped outside a
// valid target.
func (e *Editor) Move(from, to int) bool {
	length := len(e.form.Questions)
	if from < 0 || from >= length || to < 0 || to >= length {
		return false
	}
	if from == to {
		return true
	}
	moved := e.form.Questions[from]
	rest := append(e.form.Questions[:from], e.form.Questions[from+1:]...)
	rest = append(rest, model.Question{})
	copy(rest[to+1:], rest[to:])
	rest[to] = moved
	e.form.Questions = rest
	return true
}

// UpdateQuestionText replaces the question text for the given id,
// preserving every other field. No-op if the id is absent.
func (e *Editor) UpdateQuestionText(id, text string) {
	e.mutate(id, func(q *model.Question) {
		q.QuestionText = text
	})
}

// UpdateQuestionOptions replaces the option list for the given id. The
// slice is copied so the caller keeps ownership of its argument. No-op if
// the id is absent.
func (e *Editor) UpdateQuestionOptions(id string, options []string) {
	e.mutate(id, func(q *model.Question) {
		q.Options = append([]string{}, options...)
	})
}

// ToggleFileType adds the category tag to the question's accepted file
// types if absent and removes it if present. No-op if the id is absent.
func (e *Editor) ToggleFileType(id, tag string) {
	e.mutate(id, func(q *model.Question) {
		for i, existing := range q.FileTypes {
			if existing == tag {
				q.FileTypes = append(q.FileTypes[:i], q.FileTypes[i+1:]...)
				return
			}
		}
		q.FileTypes = append(q.FileTypes, tag)
	})
}

// ToggleRequired flips the required flag. No-op if the id is absent.
func (e *Editor) ToggleRequired(id string) {
	e.mutate(id, func(q *model.Question) {
		q.Required = !q.Required
	})
}

// Save validates the draft and transmits the full schema to the store,
// creating on first save and updating thereafter. On success the stored
// form (with its assigned id) replaces the session state and is returned;
// on failure the session state is left untouched so the user can retry.
func (e *Editor) Save(ctx context.Context, store storage.FormStore) (model.Form, error) {
	if err := ValidateDraft(e.form.Title, e.form.Description, e.form.Questions); err != nil {
		e.emit(errorNotice(fault.Message(err)))
		return model.Form{}, err
	}

	var (
		saved model.Form
		err   error
	)
	if e.form.ID == "" {
		saved, err = store.CreateForm(ctx, e.form.Clone())
	} else {
		saved, err = store.UpdateForm(ctx, e.form.Clone())
	}
	if err != nil {
		e.emit(errorNotice("Error saving form. Please try again."))
		return model.Form{}, fault.Wrap(fault.Storage, "save form", err)
	}

	e.form = saved.Clone()
	e.emit(successNotice("Form saved successfully!"))
	return saved, nil
}

func (e *Editor) mutate(id string, apply func(*model.Question)) {
	for i := range e.form.Questions {
		if e.form.Questions[i].ID == id {
			apply(&e.form.Questions[i])
			return
		}
	}
}

func (e *Editor) emit(n Notice) {
	e.notices = append(e.notices, n)
	if e.notifier != nil {
		e.notifier(n)
	}
}
