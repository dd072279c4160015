// Package preview renders the read-only projection of a form schema used
// by the builder-side preview and the standalone preview page. Rendering
// is a pure function of the schema: no mutation, every control disabled.
package preview

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Renderer produces the preview HTML for a schema.
type Renderer struct {
	templates *template.Template
	policy    *bluemonday.Policy
}

// New constructs a Renderer with the embedded templates and a UGC
// sanitizer for rich-text descriptions.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(TemplatesFS(), "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("preview: parse templates: %w", err)
	}
	return &Renderer{
		templates: tmpl,
		policy:    bluemonday.UGCPolicy(),
	}, nil
}

type questionView struct {
	Number    int
	Text      string
	Required  bool
	Kind      model.QuestionType
	IsText    bool
	IsEmail   bool
	IsChoice  bool
	IsUpload  bool
	Options   []string
	Accept    string
	FileTypes string
}

type formView struct {
	Title       string
	Description template.HTML
	Questions   []questionView
}

// Render returns the preview HTML for the schema. An empty question list
// renders nothing below the title and description.
func (r *Renderer) Render(form model.Form) ([]byte, error) {
	view := formView{
		Title:       form.Title,
		Description: template.HTML(r.policy.Sanitize(form.Description)),
	}

	for i, question := range form.Questions {
		qv := questionView{
			Number:   i + 1,
			Text:     question.QuestionText,
			Required: question.Required,
			Kind:     question.Type,
		}
		switch question.Type {
		case model.TypeText, model.TypeShortAnswer:
			qv.IsText = true
		case model.TypeEmail:
			qv.IsEmail = true
		case model.TypeMultipleChoice, model.TypeCheckbox:
			qv.IsChoice = true
			qv.Options = append([]string(nil), question.Options...)
		case model.TypeFileUpload:
			qv.IsUpload = true
			qv.Accept = AcceptAttribute(question.FileTypes)
			qv.FileTypes = strings.Join(question.FileTypes, ", ")
		default:
			return nil, fmt.Errorf("preview: unhandled question type %q", question.Type)
		}
		view.Questions = append(view.Questions, qv)
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "preview.tmpl", view); err != nil {
		return nil, fmt.Errorf("preview: execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// HTML renders the schema with a default Renderer. Convenience for
// callers that do not hold one.
func HTML(form model.Form) ([]byte, error) {
	r, err := New()
	if err != nil {
		return nil, err
	}
	return r.Render(form)
}

// AcceptAttribute maps the selected file category tags onto the accept
// attribute hint a file input would carry.
func AcceptAttribute(tags []string) string {
	var parts []string
	for _, tag := range tags {
		switch tag {
		case model.FileTypePDF:
			parts = append(parts, ".pdf")
		case model.FileTypeImage:
			parts = append(parts, "image/*")
		case model.FileTypeDocument:
			parts = append(parts, ".doc,.docx,.txt")
		}
	}
	return strings.Join(parts, ",")
}
