package tui

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-formbuilder/pkg/fault"
	"github.com/goliatone/go-formbuilder/pkg/fill"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/storage"
)

const skipLabel = "(skip)"

// FillFlow walks a filler through a form in the terminal, collecting
// answers into a fill.Session and submitting when validation passes.
type FillFlow struct {
	driver PromptDriver
}

// NewFillFlow constructs a flow over the given driver.
func NewFillFlow(driver PromptDriver) *FillFlow {
	return &FillFlow{driver: driver}
}

// Run prompts for every question in display order, re-prompts required
// questions left unanswered, and submits the response. Upload failures are
// reported and leave the answer untouched; the filler may point at
// another file or skip. On a submit failure the collected answers are
// retained so the caller can retry.
func (f *FillFlow) Run(ctx context.Context, session *fill.Session, store storage.ResponseStore) (model.Response, error) {
	form := session.Form()
	if err := f.driver.Info(ctx, form.Title); err != nil {
		return model.Response{}, err
	}

	for i, question := range form.Questions {
		if err := f.ask(ctx, session, question, i+1); err != nil {
			return model.Response{}, err
		}
	}

	for {
		violations := session.Validate()
		if len(violations) == 0 {
			break
		}
		for i, question := range form.Questions {
			message, offending := violations[question.ID]
			if !offending {
				continue
			}
			if err := f.driver.Info(ctx, fmt.Sprintf("%q: %s", question.QuestionText, message)); err != nil {
				return model.Response{}, err
			}
			if err := f.ask(ctx, session, question, i+1); err != nil {
				return model.Response{}, err
			}
		}
	}

	response, err := session.Submit(ctx, store)
	if err != nil {
		if infoErr := f.driver.Info(ctx, "Something went wrong submitting your response. Please try again."); infoErr != nil {
			return model.Response{}, infoErr
		}
		return model.Response{}, err
	}
	if err := f.driver.Info(ctx, "Thanks! Your response has been recorded."); err != nil {
		return model.Response{}, err
	}
	return response, nil
}

func (f *FillFlow) ask(ctx context.Context, session *fill.Session, question model.Question, number int) error {
	label := fmt.Sprintf("%d. %s", number, question.QuestionText)
	if question.Required {
		label += " *"
	}

	switch question.Type {
	case model.TypeText:
		value, err := f.driver.TextArea(ctx, TextAreaConfig{Message: label})
		if err != nil {
			return err
		}
		f.record(session, question.ID, value)
	case model.TypeShortAnswer, model.TypeEmail:
		value, err := f.driver.Input(ctx, InputConfig{Message: label})
		if err != nil {
			return err
		}
		f.record(session, question.ID, value)
	case model.TypeMultipleChoice:
		options := question.Options
		if !question.Required {
			options = append([]string{skipLabel}, options...)
		}
		idx, err := f.driver.Select(ctx, SelectConfig{Message: label, Options: options, PageSize: 10})
		if err != nil {
			return err
		}
		if idx < 0 || options[idx] == skipLabel {
			return nil
		}
		session.SetAnswer(question.ID, options[idx])
	case model.TypeCheckbox:
		picked, err := f.driver.MultiSelect(ctx, SelectConfig{Message: label, Options: question.Options, PageSize: 10})
		if err != nil {
			return err
		}
		selected := make(map[string]bool, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(question.Options) {
				selected[question.Options[idx]] = true
			}
		}
		current, _ := model.ListValue(session.Answers()[question.ID])
		present := make(map[string]bool, len(current))
		for _, option := range current {
			present[option] = true
		}
		for _, option := range question.Options {
			if selected[option] != present[option] {
				session.ToggleOption(question.ID, option)
			}
		}
	case model.TypeFileUpload:
		path, err := f.driver.Input(ctx, InputConfig{
			Message: label,
			Help:    "Path to the file to upload; leave empty to skip",
		})
		if err != nil {
			return err
		}
		if path == "" {
			return nil
		}
		if err := f.upload(ctx, session, question.ID, path); err != nil {
			return err
		}
	default:
		return fmt.Errorf("tui: unhandled question type %q", question.Type)
	}
	return nil
}

// record stores scalar answers, dropping empty input so optional blanks
// stay absent from the answer map.
func (f *FillFlow) record(session *fill.Session, questionID, value string) {
	if value == "" {
		session.ClearAnswer(questionID)
		return
	}
	session.SetAnswer(questionID, value)
}

func (f *FillFlow) upload(ctx context.Context, session *fill.Session, questionID, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return f.driver.Info(ctx, fmt.Sprintf("Could not read %s: %v", path, err))
	}
	defer file.Close()

	if _, err := session.AttachFile(ctx, questionID, path, file); err != nil {
		return f.driver.Info(ctx, fmt.Sprintf("Upload failed: %s", fault.Message(err)))
	}
	return nil
}
