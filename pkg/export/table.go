// Package export reconciles a form schema against a collection of stored
// responses and produces the dense tabular representation used for
// spreadsheet export and response review.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Table is the rectangular export shape: one header cell per question in
// schema order and one row per response with the same column order.
type Table struct {
	Header []string
	Rows   [][]string
}

// BuildTable maps every response onto the schema's question columns.
// Column identity is resolved through the question id, not the position,
// so responses collected before a reorder still align. Answers keyed by
// ids no longer present in the schema contribute no column and are
// dropped. An empty response collection yields a header-only table, and a
// schema with no questions yields an empty header with no data rows.
func BuildTable(form model.Form, responses []model.Response) Table {
	table := Table{
		Header: make([]string, len(form.Questions)),
		Rows:   make([][]string, 0, len(responses)),
	}
	for i, question := range form.Questions {
		table.Header[i] = question.QuestionText
	}

	for _, response := range responses {
		row := make([]string, len(form.Questions))
		for i, question := range form.Questions {
			row[i] = Cell(response.Answers[question.ID])
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// Cell computes one export cell from a stored answer value: sequences are
// joined with ", " in original order, other structured values serialize to
// canonical JSON, scalars print as-is, and absent values become the empty
// string.
func Cell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = scalarString(item)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		return canonicalJSON(v)
	default:
		return scalarString(v)
	}
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool, int, int64, float64:
		return fmt.Sprint(v)
	default:
		return canonicalJSON(v)
	}
}

func canonicalJSON(value any) string {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(payload)
}
