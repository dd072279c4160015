package fill

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/fault"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

func sampleForm() model.Form {
	return model.Form{
		ID:          "f1",
		Title:       "Lunch order",
		Description: "Pick your meal",
		Questions: []model.Question{
			{ID: "name", Type: model.TypeShortAnswer, QuestionText: "Your name", Required: true},
			{ID: "toppings", Type: model.TypeCheckbox, QuestionText: "Toppings", Options: []string{"ham", "cheese", "olives"}},
			{ID: "notes", Type: model.TypeText, QuestionText: "Notes"},
			{ID: "receipt", Type: model.TypeFileUpload, QuestionText: "Receipt", FileTypes: []string{model.FileTypePDF}},
		},
	}
}

func TestSetAnswer_Replaces(t *testing.T) {
	session := NewSession(sampleForm())

	session.SetAnswer("name", "Ada")
	session.SetAnswer("name", "Grace")

	got := session.Answers()
	if got["name"] != "Grace" {
		t.Fatalf("expected replacement, got %v", got["name"])
	}
	if len(got) != 1 {
		t.Fatalf("other keys should be untouched: %v", got)
	}
}

func TestClearAnswer(t *testing.T) {
	session := NewSession(sampleForm())
	session.SetAnswer("name", "Ada")
	session.ClearAnswer("name")

	if _, ok := session.Answers()["name"]; ok {
		t.Fatalf("cleared answer still present")
	}
}

func TestToggleOption_MergesSelections(t *testing.T) {
	session := NewSession(sampleForm())

	session.ToggleOption("toppings", "ham")
	session.ToggleOption("toppings", "cheese")

	got, _ := model.ListValue(session.Answers()["toppings"])
	if diff := cmp.Diff([]string{"ham", "cheese"}, got); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}

	session.ToggleOption("toppings", "ham")
	got, _ = model.ListValue(session.Answers()["toppings"])
	if diff := cmp.Diff([]string{"cheese"}, got); diff != "" {
		t.Fatalf("removal mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleOption_DoubleToggleRestores(t *testing.T) {
	session := NewSession(sampleForm())
	session.ToggleOption("toppings", "ham")
	before := session.Answers()

	session.ToggleOption("toppings", "olives")
	session.ToggleOption("toppings", "olives")

	if diff := cmp.Diff(before, session.Answers()); diff != "" {
		t.Fatalf("double toggle did not restore the answer map (-want +got):\n%s", diff)
	}

	// Emptying the selection drops the key entirely.
	session.ToggleOption("toppings", "ham")
	if _, ok := session.Answers()["toppings"]; ok {
		t.Fatalf("empty selection should remove the key")
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	form := sampleForm()
	form.Questions[1].Required = true
	form.Questions[2].Required = true
	session := NewSession(form)
	session.SetAnswer("notes", "")

	violations := session.Validate()
	want := map[string]string{
		"name":     RequiredMessage,
		"toppings": RequiredMessage,
		"notes":    RequiredMessage,
	}
	if diff := cmp.Diff(want, violations); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RequiredThenAnswered(t *testing.T) {
	form := model.Form{
		ID: "f", Questions: []model.Question{
			{ID: "q", Type: model.TypeShortAnswer, Required: true},
		},
	}
	session := NewSession(form)

	if v := session.Validate(); len(v) != 1 || v["q"] != RequiredMessage {
		t.Fatalf("expected one violation for empty required answer, got %v", v)
	}

	session.SetAnswer("q", "hello")
	if v := session.Validate(); len(v) != 0 {
		t.Fatalf("expected no violations after answering, got %v", v)
	}
}

func TestValidate_DecodedSequenceCounts(t *testing.T) {
	form := sampleForm()
	form.Questions[1].Required = true
	session := NewSession(form)
	session.SetAnswer("name", "Ada")
	session.SetAnswer("toppings", []any{"ham"})

	if v := session.Validate(); len(v) != 0 {
		t.Fatalf("decoded sequence should satisfy the requirement, got %v", v)
	}
}

type fakeResponseStore struct {
	submitted []model.Response
	fail      error
}

func (s *fakeResponseStore) SubmitResponse(_ context.Context, response model.Response) (model.Response, error) {
	if s.fail != nil {
		return model.Response{}, s.fail
	}
	response.ID = "resp-1"
	s.submitted = append(s.submitted, response)
	return response, nil
}

func (s *fakeResponseStore) ListResponses(context.Context, string) ([]model.Response, error) {
	return nil, nil
}

func TestSubmit_CarriesAnswerMap(t *testing.T) {
	store := &fakeResponseStore{}
	session := NewSession(sampleForm())
	session.SetAnswer("name", "Ada")
	session.ToggleOption("toppings", "ham")

	saved, err := session.Submit(context.Background(), store)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if saved.ID != "resp-1" || saved.FormID != "f1" {
		t.Fatalf("unexpected response identity: %+v", saved)
	}
	want := model.AnswerMap{"name": "Ada", "toppings": []string{"ham"}}
	if diff := cmp.Diff(want, store.submitted[0].Answers); diff != "" {
		t.Fatalf("answer map mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_RevalidatesFirst(t *testing.T) {
	store := &fakeResponseStore{}
	session := NewSession(sampleForm())

	_, err := session.Submit(context.Background(), store)
	if !fault.IsValidation(err) {
		t.Fatalf("expected validation fault, got %v", err)
	}
	if len(store.submitted) != 0 {
		t.Fatalf("invalid submission must not reach the store")
	}
}

func TestSubmit_FailureRetainsAnswers(t *testing.T) {
	store := &fakeResponseStore{fail: errors.New("disk full")}
	session := NewSession(sampleForm())
	session.SetAnswer("name", "Ada")
	before := session.Answers()

	_, err := session.Submit(context.Background(), store)
	if !fault.IsStorage(err) {
		t.Fatalf("expected storage fault, got %v", err)
	}
	if diff := cmp.Diff(before, session.Answers()); diff != "" {
		t.Fatalf("failed submit mutated the answer map (-want +got):\n%s", diff)
	}
}

type fakeBlobStore struct {
	paths []string
	fail  error
}

func (s *fakeBlobStore) Upload(_ context.Context, path string, contents io.Reader) (string, error) {
	if s.fail != nil {
		return "", s.fail
	}
	if _, err := io.ReadAll(contents); err != nil {
		return "", err
	}
	s.paths = append(s.paths, path)
	return "https://files.example/" + path, nil
}

func TestAttachFile_RecordsURL(t *testing.T) {
	blobs := &fakeBlobStore{}
	session := NewSession(sampleForm(), WithBlobStore(blobs))

	url, err := session.AttachFile(context.Background(), "receipt", "receipt.PDF", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if session.Answers()["receipt"] != url {
		t.Fatalf("answer should record the upload URL")
	}
	if len(blobs.paths) != 1 {
		t.Fatalf("expected one upload, got %d", len(blobs.paths))
	}
	if !strings.HasPrefix(blobs.paths[0], "uploads/receipt/") {
		t.Fatalf("path not scoped to the question: %s", blobs.paths[0])
	}
	if !strings.HasSuffix(blobs.paths[0], ".pdf") {
		t.Fatalf("extension should be preserved in lowercase: %s", blobs.paths[0])
	}
}

func TestAttachFile_Faults(t *testing.T) {
	cases := []struct {
		name       string
		questionID string
		options    []Option
		wantKind   fault.Kind
	}{
		{name: "unknown question", questionID: "missing", options: []Option{WithBlobStore(&fakeBlobStore{})}, wantKind: fault.NotFound},
		{name: "not an upload question", questionID: "name", options: []Option{WithBlobStore(&fakeBlobStore{})}, wantKind: fault.Validation},
		{name: "no blob store", questionID: "receipt", wantKind: fault.Storage},
		{name: "upload failure", questionID: "receipt", options: []Option{WithBlobStore(&fakeBlobStore{fail: errors.New("refused")})}, wantKind: fault.Storage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			session := NewSession(sampleForm(), tc.options...)
			_, err := session.AttachFile(context.Background(), tc.questionID, "a.pdf", strings.NewReader("x"))
			if kind, ok := fault.KindOf(err); !ok || kind != tc.wantKind {
				t.Fatalf("expected %v fault, got %v", tc.wantKind, err)
			}
			if len(session.Answers()) != 0 {
				t.Fatalf("failed attach mutated the answer map: %v", session.Answers())
			}
		})
	}
}

func TestUploadPath_Shape(t *testing.T) {
	first := UploadPath("q1", "Photo.JPG")
	second := UploadPath("q1", "Photo.JPG")

	if !strings.HasPrefix(first, "uploads/q1/") {
		t.Fatalf("path should be scoped under the question id: %s", first)
	}
	if !strings.HasSuffix(first, ".jpg") {
		t.Fatalf("extension should be lowercased: %s", first)
	}
	if first == second {
		t.Fatalf("two uploads of the same file should not collide")
	}

	bare := UploadPath("q1", "README")
	if strings.Contains(bare, ".") {
		t.Fatalf("extensionless names should stay extensionless: %s", bare)
	}
}
