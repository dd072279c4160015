package builder

import (
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/fault"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ValidateDraft is the schema-level save gate: the title and description
// must be non-empty and the form must carry at least one question.
// Per-question required-ness is a fill-time concern and is not checked
// here.
func ValidateDraft(title, description string, questions []model.Question) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return fault.New(fault.Validation, "Title and description are required.")
	}
	if len(questions) == 0 {
		return fault.New(fault.Validation, "Add at least one question.")
	}
	return nil
}
