package export

import "github.com/goliatone/go-formbuilder/pkg/model"

// DetailRow pairs one question with the answer a single response gave it,
// for per-response review views.
type DetailRow struct {
	QuestionText string
	Answer       string
}

// Details projects one response onto the schema in display order, using
// the same cell computation as the spreadsheet export. Questions the
// response did not answer yield an empty Answer.
func Details(form model.Form, response model.Response) []DetailRow {
	rows := make([]DetailRow, len(form.Questions))
	for i, question := range form.Questions {
		rows[i] = DetailRow{
			QuestionText: question.QuestionText,
			Answer:       Cell(response.Answers[question.ID]),
		}
	}
	return rows
}
