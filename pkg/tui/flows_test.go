package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/fill"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// scriptDriver replays queued answers for each prompt kind and records the
// informational messages the flow emits.
type scriptDriver struct {
	t        *testing.T
	inputs   []string
	confirms []bool
	selects  []int
	multis   [][]int
	areas    []string
	infos    []string
}

func (d *scriptDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		d.t.Fatalf("unexpected Input prompt: %q", cfg.Message)
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	return out, nil
}

func (d *scriptDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		d.t.Fatalf("unexpected Confirm prompt: %q", cfg.Message)
	}
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *scriptDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		d.t.Fatalf("unexpected Select prompt: %q", cfg.Message)
	}
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

func (d *scriptDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	if len(d.multis) == 0 {
		d.t.Fatalf("unexpected MultiSelect prompt: %q", cfg.Message)
	}
	out := d.multis[0]
	d.multis = d.multis[1:]
	return out, nil
}

func (d *scriptDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if len(d.areas) == 0 {
		d.t.Fatalf("unexpected TextArea prompt: %q", cfg.Message)
	}
	out := d.areas[0]
	d.areas = d.areas[1:]
	return out, nil
}

func (d *scriptDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

type memoryStore struct {
	forms     []model.Form
	responses []model.Response
	fail      error
}

func (s *memoryStore) CreateForm(_ context.Context, form model.Form) (model.Form, error) {
	if s.fail != nil {
		return model.Form{}, s.fail
	}
	form.ID = "form-1"
	s.forms = append(s.forms, form)
	return form, nil
}

func (s *memoryStore) UpdateForm(_ context.Context, form model.Form) (model.Form, error) {
	if s.fail != nil {
		return model.Form{}, s.fail
	}
	s.forms = append(s.forms, form)
	return form, nil
}

func (s *memoryStore) FetchForm(context.Context, string) (model.Form, error) {
	return model.Form{}, errors.New("not implemented")
}

func (s *memoryStore) DeleteForm(context.Context, string) error { return nil }

func (s *memoryStore) ListForms(context.Context) ([]model.Form, error) { return nil, nil }

func (s *memoryStore) SubmitResponse(_ context.Context, response model.Response) (model.Response, error) {
	if s.fail != nil {
		return model.Response{}, s.fail
	}
	response.ID = "resp-1"
	s.responses = append(s.responses, response)
	return response, nil
}

func (s *memoryStore) ListResponses(context.Context, string) ([]model.Response, error) {
	return nil, nil
}

func selectIndex(t *testing.T, options []string, label string) int {
	t.Helper()
	for i, option := range options {
		if option == label {
			return i
		}
	}
	t.Fatalf("label %q not offered in %v", label, options)
	return -1
}

func typeIndex(t *testing.T, qt model.QuestionType) int {
	t.Helper()
	for i, candidate := range model.Types() {
		if candidate == qt {
			return i
		}
	}
	t.Fatalf("unknown type %s", qt)
	return -1
}

func builderMenu(t *testing.T, label string) int {
	return selectIndex(t, []string{
		actionAddQuestion, actionEditQuestion, actionDuplicate,
		actionDelete, actionMove, actionDetails, actionSave, actionQuit,
	}, label)
}

func TestBuilderFlow_BuildAndSave(t *testing.T) {
	driver := &scriptDriver{
		t: t,
		selects: []int{
			builderMenu(t, actionAddQuestion),
			typeIndex(t, model.TypeShortAnswer),
			builderMenu(t, actionDetails),
			builderMenu(t, actionSave),
		},
		inputs:   []string{"Your name", "Lunch order"},
		confirms: []bool{true},
		areas:    []string{"Pick your meal"},
	}
	store := &memoryStore{}

	saved, err := NewBuilderFlow(driver).Run(context.Background(), builder.New(model.Form{}), store)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if saved.ID != "form-1" || saved.Title != "Lunch order" {
		t.Fatalf("unexpected saved form: %+v", saved)
	}
	if len(saved.Questions) != 1 {
		t.Fatalf("expected one question, got %d", len(saved.Questions))
	}
	question := saved.Questions[0]
	if question.Type != model.TypeShortAnswer || question.QuestionText != "Your name" || !question.Required {
		t.Fatalf("question not configured: %+v", question)
	}
	if len(store.forms) != 1 {
		t.Fatalf("form never reached the store")
	}
}

func TestBuilderFlow_ValidationKeepsLoopAlive(t *testing.T) {
	driver := &scriptDriver{
		t: t,
		selects: []int{
			builderMenu(t, actionSave),
			builderMenu(t, actionQuit),
		},
	}
	store := &memoryStore{}
	editor := builder.New(model.Form{Title: "T", Description: "D"})

	_, err := NewBuilderFlow(driver).Run(context.Background(), editor, store)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted after quit, got %v", err)
	}
	if len(store.forms) != 0 {
		t.Fatalf("invalid draft must not be stored")
	}
	if len(driver.infos) != 1 || !strings.Contains(driver.infos[0], "question") {
		t.Fatalf("validation message not surfaced: %v", driver.infos)
	}
}

func TestBuilderFlow_StorageFailureRetries(t *testing.T) {
	store := &memoryStore{fail: errors.New("disk full")}
	driver := &scriptDriver{
		t: t,
		selects: []int{
			builderMenu(t, actionAddQuestion),
			typeIndex(t, model.TypeText),
			builderMenu(t, actionSave),
			builderMenu(t, actionQuit),
		},
		inputs:   []string{"Notes"},
		confirms: []bool{false},
	}
	editor := builder.New(model.Form{Title: "T", Description: "D"})

	_, err := NewBuilderFlow(driver).Run(context.Background(), editor, store)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted after quit, got %v", err)
	}
	if len(driver.infos) == 0 || !strings.Contains(driver.infos[0], "Error saving") {
		t.Fatalf("storage failure not surfaced: %v", driver.infos)
	}
	// The draft survives the failed save for the next attempt.
	if len(editor.Questions()) != 1 {
		t.Fatalf("draft lost after failed save")
	}
}

func TestBuilderFlow_ChoiceQuestionOptions(t *testing.T) {
	// Add a multipleChoice question, fill its two seeded/added options,
	// then save.
	driver := &scriptDriver{
		t: t,
		selects: []int{
			builderMenu(t, actionAddQuestion),
			typeIndex(t, model.TypeMultipleChoice),
			0, // edit option 1
			1, // add option
			1, // edit option 2
			3, // done
			builderMenu(t, actionSave),
		},
		inputs:   []string{"Pick one", "ham", "cheese"},
		confirms: []bool{false},
	}
	store := &memoryStore{}
	editor := builder.New(model.Form{Title: "T", Description: "D"})

	saved, err := NewBuilderFlow(driver).Run(context.Background(), editor, store)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"ham", "cheese"}, saved.Questions[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func fillForm() model.Form {
	return model.Form{
		ID:    "f1",
		Title: "Lunch order",
		Questions: []model.Question{
			{ID: "name", Type: model.TypeShortAnswer, QuestionText: "Your name", Required: true},
			{ID: "toppings", Type: model.TypeCheckbox, QuestionText: "Toppings", Options: []string{"ham", "cheese"}},
		},
	}
}

func TestFillFlow_SubmitsAnswers(t *testing.T) {
	driver := &scriptDriver{
		t:      t,
		inputs: []string{"Ada"},
		multis: [][]int{{0}},
	}
	store := &memoryStore{}
	session := fill.NewSession(fillForm())

	response, err := NewFillFlow(driver).Run(context.Background(), session, store)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if response.ID != "resp-1" || response.FormID != "f1" {
		t.Fatalf("unexpected response identity: %+v", response)
	}
	want := model.AnswerMap{"name": "Ada", "toppings": []string{"ham"}}
	if diff := cmp.Diff(want, store.responses[0].Answers); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}
	last := driver.infos[len(driver.infos)-1]
	if !strings.Contains(last, "recorded") {
		t.Fatalf("confirmation message missing: %v", driver.infos)
	}
}

func TestFillFlow_RepromptsRequired(t *testing.T) {
	driver := &scriptDriver{
		t:      t,
		inputs: []string{"", "Ada"},
		multis: [][]int{{}},
	}
	store := &memoryStore{}
	session := fill.NewSession(fillForm())

	if _, err := NewFillFlow(driver).Run(context.Background(), session, store); err != nil {
		t.Fatalf("run: %v", err)
	}
	if store.responses[0].Answers["name"] != "Ada" {
		t.Fatalf("re-prompted answer not recorded: %v", store.responses[0].Answers)
	}

	var sawViolation bool
	for _, msg := range driver.infos {
		if strings.Contains(msg, fill.RequiredMessage) {
			sawViolation = true
		}
	}
	if !sawViolation {
		t.Fatalf("required-field message never shown: %v", driver.infos)
	}
}

func TestFillFlow_SubmitFailureRetainsAnswers(t *testing.T) {
	driver := &scriptDriver{
		t:      t,
		inputs: []string{"Ada"},
		multis: [][]int{{}},
	}
	store := &memoryStore{fail: errors.New("disk full")}
	session := fill.NewSession(fillForm())

	_, err := NewFillFlow(driver).Run(context.Background(), session, store)
	if err == nil {
		t.Fatalf("expected submit failure to propagate")
	}
	if session.Answers()["name"] != "Ada" {
		t.Fatalf("answers lost after failed submit: %v", session.Answers())
	}
	var sawFailure bool
	for _, msg := range driver.infos {
		if strings.Contains(msg, "went wrong") {
			sawFailure = true
		}
	}
	if !sawFailure {
		t.Fatalf("failure message never shown: %v", driver.infos)
	}
}

func TestFillFlow_OptionalMultipleChoiceSkip(t *testing.T) {
	form := model.Form{
		ID:    "f1",
		Title: "T",
		Questions: []model.Question{
			{ID: "size", Type: model.TypeMultipleChoice, QuestionText: "Size", Options: []string{"S", "M"}},
		},
	}
	// Optional selects get a "(skip)" entry prepended at index 0.
	driver := &scriptDriver{t: t, selects: []int{0}}
	store := &memoryStore{}
	session := fill.NewSession(form)

	if _, err := NewFillFlow(driver).Run(context.Background(), session, store); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(store.responses[0].Answers) != 0 {
		t.Fatalf("skipped question should leave no answer: %v", store.responses[0].Answers)
	}
}

func TestDriverIndexHelpers(t *testing.T) {
	options := []string{"a", "b", "c"}

	if got := indexOf(options, "b"); got != 1 {
		t.Fatalf("indexOf = %d", got)
	}
	if got := indexOf(options, "z"); got != -1 {
		t.Fatalf("indexOf missing = %d", got)
	}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"c", "a"})); diff != "" {
		t.Fatalf("indicesOf mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "c"}, defaultsFromIndices(options, []int{0, 2, 9})); diff != "" {
		t.Fatalf("defaultsFromIndices mismatch (-want +got):\n%s", diff)
	}
}
