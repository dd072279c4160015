package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/fault"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/storage"
)

// BuilderFlow runs the interactive schema editing loop on top of a
// builder.Editor, the terminal counterpart of the form builder page.
type BuilderFlow struct {
	driver PromptDriver
}

// NewBuilderFlow constructs a flow over the given driver.
func NewBuilderFlow(driver PromptDriver) *BuilderFlow {
	return &BuilderFlow{driver: driver}
}

const (
	actionAddQuestion  = "Add question"
	actionEditQuestion = "Edit question"
	actionDuplicate    = "Duplicate question"
	actionDelete       = "Delete question"
	actionMove         = "Move question"
	actionDetails      = "Edit title & description"
	actionSave         = "Save and finish"
	actionQuit         = "Quit without saving"
)

// Run drives the editing loop until the user saves or quits. A saved form
// is returned; quitting returns ErrAborted.
func (f *BuilderFlow) Run(ctx context.Context, editor *builder.Editor, store storage.FormStore) (model.Form, error) {
	for {
		action, err := f.driver.Select(ctx, SelectConfig{
			Message: "Form builder",
			Options: []string{
				actionAddQuestion, actionEditQuestion, actionDuplicate,
				actionDelete, actionMove, actionDetails, actionSave, actionQuit,
			},
			PageSize: 8,
		})
		if err != nil {
			return model.Form{}, err
		}

		options := []string{
			actionAddQuestion, actionEditQuestion, actionDuplicate,
			actionDelete, actionMove, actionDetails, actionSave, actionQuit,
		}
		if action < 0 || action >= len(options) {
			continue
		}

		switch options[action] {
		case actionAddQuestion:
			if err := f.addQuestion(ctx, editor); err != nil {
				return model.Form{}, err
			}
		case actionEditQuestion:
			if err := f.editQuestion(ctx, editor); err != nil {
				return model.Form{}, err
			}
		case actionDuplicate:
			id, err := f.pickQuestion(ctx, editor, "Duplicate which question?")
			if err != nil {
				return model.Form{}, err
			}
			if id != "" {
				editor.DuplicateQuestion(id)
			}
		case actionDelete:
			id, err := f.pickQuestion(ctx, editor, "Delete which question?")
			if err != nil {
				return model.Form{}, err
			}
			if id != "" {
				editor.DeleteQuestion(id)
			}
		case actionMove:
			if err := f.moveQuestion(ctx, editor); err != nil {
				return model.Form{}, err
			}
		case actionDetails:
			if err := f.editDetails(ctx, editor); err != nil {
				return model.Form{}, err
			}
		case actionSave:
			saved, err := editor.Save(ctx, store)
			if err != nil {
				if fault.IsValidation(err) {
					if infoErr := f.driver.Info(ctx, fault.Message(err)); infoErr != nil {
						return model.Form{}, infoErr
					}
					continue
				}
				if infoErr := f.driver.Info(ctx, "Error saving form. Please try again."); infoErr != nil {
					return model.Form{}, infoErr
				}
				continue
			}
			return saved, nil
		case actionQuit:
			return model.Form{}, ErrAborted
		}
	}
}

func (f *BuilderFlow) addQuestion(ctx context.Context, editor *builder.Editor) error {
	types := model.Types()
	labels := make([]string, len(types))
	for i, t := range types {
		labels[i] = string(t)
	}
	idx, err := f.driver.Select(ctx, SelectConfig{Message: "Question type", Options: labels})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(types) {
		return nil
	}
	question, err := editor.AddQuestion(types[idx])
	if err != nil {
		return err
	}
	text, err := f.driver.Input(ctx, InputConfig{Message: "Question text"})
	if err != nil {
		return err
	}
	editor.UpdateQuestionText(question.ID, text)
	return f.configureQuestion(ctx, editor, question.ID)
}

func (f *BuilderFlow) editQuestion(ctx context.Context, editor *builder.Editor) error {
	id, err := f.pickQuestion(ctx, editor, "Edit which question?")
	if err != nil || id == "" {
		return err
	}
	question, _ := editor.Form().Question(id)
	text, err := f.driver.Input(ctx, InputConfig{Message: "Question text", Default: question.QuestionText})
	if err != nil {
		return err
	}
	editor.UpdateQuestionText(id, text)
	return f.configureQuestion(ctx, editor, id)
}

// configureQuestion handles the per-type fields: options for choice
// variants, file categories for uploads, and the required flag.
func (f *BuilderFlow) configureQuestion(ctx context.Context, editor *builder.Editor, id string) error {
	question, ok := editor.Form().Question(id)
	if !ok {
		return nil
	}

	if question.Type.HasOptions() {
		options, err := f.editOptions(ctx, question.Options)
		if err != nil {
			return err
		}
		editor.UpdateQuestionOptions(id, options)
	}

	if question.Type.AcceptsFiles() {
		tags := model.FileTypeTags()
		var defaults []int
		for i, tag := range tags {
			if question.HasFileType(tag) {
				defaults = append(defaults, i)
			}
		}
		picked, err := f.driver.MultiSelect(ctx, SelectConfig{
			Message:  "Accepted file types",
			Options:  tags,
			Defaults: defaults,
		})
		if err != nil {
			return err
		}
		selected := make(map[string]bool, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(tags) {
				selected[tags[idx]] = true
			}
		}
		for _, tag := range tags {
			if selected[tag] != question.HasFileType(tag) {
				editor.ToggleFileType(id, tag)
			}
		}
	}

	required, err := f.driver.Confirm(ctx, ConfirmConfig{Message: "Required?", Default: question.Required})
	if err != nil {
		return err
	}
	if required != question.Required {
		editor.ToggleRequired(id)
	}
	return nil
}

func (f *BuilderFlow) editOptions(ctx context.Context, current []string) ([]string, error) {
	options := append([]string(nil), current...)
	for {
		labels := make([]string, 0, len(options)+2)
		for i, option := range options {
			label := option
			if label == "" {
				label = "(empty)"
			}
			labels = append(labels, fmt.Sprintf("Option %d: %s", i+1, label))
		}
		labels = append(labels, "Add option", "Done")

		idx, err := f.driver.Select(ctx, SelectConfig{Message: "Options", Options: labels, PageSize: 10})
		if err != nil {
			return nil, err
		}
		switch {
		case idx >= 0 && idx < len(options):
			value, err := f.driver.Input(ctx, InputConfig{Message: "Option text", Default: options[idx]})
			if err != nil {
				return nil, err
			}
			options[idx] = value
		case idx == len(options): // Add option
			options = append(options, "")
		default:
			return options, nil
		}
	}
}

func (f *BuilderFlow) moveQuestion(ctx context.Context, editor *builder.Editor) error {
	questions := editor.Questions()
	if len(questions) < 2 {
		return f.driver.Info(ctx, "Nothing to reorder.")
	}
	from, err := f.driver.Select(ctx, SelectConfig{
		Message: "Move which question?",
		Options: questionLabels(questions),
	})
	if err != nil {
		return err
	}
	to, err := f.driver.Select(ctx, SelectConfig{
		Message: "New position",
		Options: positionLabels(len(questions)),
	})
	if err != nil {
		return err
	}
	if !editor.Move(from, to) {
		return f.driver.Info(ctx, "Invalid move.")
	}
	return nil
}

func (f *BuilderFlow) editDetails(ctx context.Context, editor *builder.Editor) error {
	form := editor.Form()
	title, err := f.driver.Input(ctx, InputConfig{Message: "Form title", Default: form.Title})
	if err != nil {
		return err
	}
	editor.SetTitle(title)
	description, err := f.driver.TextArea(ctx, TextAreaConfig{Message: "Form description", Default: form.Description})
	if err != nil {
		return err
	}
	editor.SetDescription(description)
	return nil
}

// pickQuestion prompts for one of the current questions and returns its
// id, or "" when there are none.
func (f *BuilderFlow) pickQuestion(ctx context.Context, editor *builder.Editor, message string) (string, error) {
	questions := editor.Questions()
	if len(questions) == 0 {
		return "", f.driver.Info(ctx, "No questions yet.")
	}
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:  message,
		Options:  questionLabels(questions),
		PageSize: 10,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(questions) {
		return "", nil
	}
	return questions[idx].ID, nil
}

func questionLabels(questions []model.Question) []string {
	labels := make([]string, len(questions))
	for i, q := range questions {
		text := q.QuestionText
		if text == "" {
			text = "(untitled)"
		}
		labels[i] = fmt.Sprintf("%d. [%s] %s", i+1, q.Type, text)
	}
	return labels
}

func positionLabels(count int) []string {
	labels := make([]string, count)
	for i := range labels {
		labels[i] = fmt.Sprintf("Position %d", i+1)
	}
	return labels
}
