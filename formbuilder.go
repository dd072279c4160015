// Package formbuilder is the façade over the form schema and response
// engine: authoring an ordered, heterogeneous question list, collecting
// validated responses from fillers, and exporting the collected answers
// as a spreadsheet.
package formbuilder

import (
	"io"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/export"
	"github.com/goliatone/go-formbuilder/pkg/fill"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/preview"
)

// Core schema and response types, re-exported for convenience.
type (
	Form         = model.Form
	Question     = model.Question
	QuestionType = model.QuestionType
	Response     = model.Response
	AnswerMap    = model.AnswerMap
)

// The six question variants.
const (
	TypeText           = model.TypeText
	TypeShortAnswer    = model.TypeShortAnswer
	TypeEmail          = model.TypeEmail
	TypeMultipleChoice = model.TypeMultipleChoice
	TypeCheckbox       = model.TypeCheckbox
	TypeFileUpload     = model.TypeFileUpload
)

// NewEditor starts an editing session over a form schema. Pass an empty
// Form to begin a create flow.
func NewEditor(form Form, options ...builder.Option) *builder.Editor {
	return builder.New(form, options...)
}

// NewSession starts a fill session against a persisted schema.
func NewSession(form Form, options ...fill.Option) *fill.Session {
	return fill.NewSession(form, options...)
}

// ExportResponses writes the spreadsheet artifact for a form and its
// responses: one "Responses" sheet, question texts as the header row, one
// row per response.
func ExportResponses(w io.Writer, form Form, responses []Response) error {
	return export.Responses(w, form, responses)
}

// PreviewHTML renders the read-only projection of a schema.
func PreviewHTML(form Form) ([]byte, error) {
	return preview.HTML(form)
}
