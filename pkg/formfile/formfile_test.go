package formfile

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

const sampleDoc = `
title: Lunch order
description: Pick your meal
questions:
  - id: name
    type: shortAnswer
    questionText: Your name
    required: true
  - id: toppings
    type: checkbox
    questionText: Toppings
    options: [ham, cheese]
  - id: receipt
    type: fileUpload
    questionText: Receipt
    fileTypes: [pdf]
`

func TestParse(t *testing.T) {
	form, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := model.Form{
		Title:       "Lunch order",
		Description: "Pick your meal",
		Questions: []model.Question{
			{ID: "name", Type: model.TypeShortAnswer, QuestionText: "Your name", Required: true},
			{ID: "toppings", Type: model.TypeCheckbox, QuestionText: "Toppings", Options: []string{"ham", "cheese"}},
			{ID: "receipt", Type: model.TypeFileUpload, QuestionText: "Receipt", FileTypes: []string{"pdf"}},
		},
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_MintsMissingIDs(t *testing.T) {
	doc := `
title: T
description: D
questions:
  - type: text
    questionText: First
  - type: text
    questionText: Second
`
	form, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if form.Questions[0].ID == "" || form.Questions[1].ID == "" {
		t.Fatalf("questions without ids should get one minted")
	}
	if form.Questions[0].ID == form.Questions[1].ID {
		t.Fatalf("minted ids must be distinct")
	}
}

func TestParse_Rejections(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{name: "unknown type", doc: "questions:\n  - type: ranking\n    questionText: Q\n"},
		{name: "duplicate id", doc: "questions:\n  - id: a\n    type: text\n  - id: a\n    type: email\n"},
		{name: "not yaml", doc: ":\n  - ][\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.doc)); err == nil {
				t.Fatalf("expected parse failure")
			}
		})
	}
}

func TestParse_NormalisesFieldPresence(t *testing.T) {
	doc := `
questions:
  - id: a
    type: text
    options: [stray]
  - id: b
    type: multipleChoice
  - id: c
    type: fileUpload
`
	form, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if form.Questions[0].Options != nil {
		t.Fatalf("text questions never carry options")
	}
	if form.Questions[2].FileTypes == nil {
		t.Fatalf("fileUpload should carry an empty tag set, not nil")
	}
}

func TestParse_AcceptsJSON(t *testing.T) {
	doc := `{"title":"T","description":"D","questions":[{"id":"a","type":"email","questionText":"Email"}]}`
	form, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if form.Questions[0].Type != model.TypeEmail {
		t.Fatalf("json document not decoded: %+v", form)
	}
}

func TestFileRoundTrip(t *testing.T) {
	form, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	form.ID = "f1"

	path := filepath.Join(t.TempDir(), "form.yaml")
	if err := WriteFile(path, form); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(form, loaded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
