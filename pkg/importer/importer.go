// Package importer derives a draft form schema from an OpenAPI operation,
// mapping the request body's properties onto question variants. The result
// is a starting point for the builder, not a finished form: texts come
// from property titles and the draft still passes through the editor and
// its save validation.
package importer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// FromDocument loads an OpenAPI document and builds a draft form from the
// operation with the given id.
func FromDocument(ctx context.Context, data []byte, operationID string) (model.Form, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return model.Form{}, fmt.Errorf("importer: load document: %w", err)
	}
	operation := findOperation(doc, operationID)
	if operation == nil {
		return model.Form{}, fmt.Errorf("importer: operation %q not found", operationID)
	}
	return fromOperation(operation, operationID)
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func fromOperation(operation *openapi3.Operation, operationID string) (model.Form, error) {
	form := model.Form{
		Title:       operation.Summary,
		Description: operation.Description,
	}
	if form.Title == "" {
		form.Title = labelFor(operationID)
	}

	schema := requestSchema(operation)
	if schema == nil || len(schema.Properties) == 0 {
		return model.Form{}, fmt.Errorf("importer: operation %q has no request body properties", operationID)
	}

	requiredSet := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		requiredSet[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		question, ok := questionFromProperty(name, ref.Value)
		if !ok {
			continue
		}
		_, question.Required = requiredSet[name]
		form.Questions = append(form.Questions, question)
	}

	if len(form.Questions) == 0 {
		return model.Form{}, fmt.Errorf("importer: operation %q yields no questions", operationID)
	}
	return form, nil
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// questionFromProperty maps one request-body property onto a question
// variant. Properties with no sensible form rendering (nested objects,
// arrays of non-strings) are skipped.
func questionFromProperty(name string, schema *openapi3.Schema) (model.Question, bool) {
	text := schema.Title
	if text == "" {
		text = labelFor(name)
	}

	var question model.Question
	switch schemaType(schema) {
	case "string":
		switch {
		case len(schema.Enum) > 0:
			question = mustQuestion(model.TypeMultipleChoice)
			question.Options = enumOptions(schema.Enum)
		case schema.Format == "email":
			question = mustQuestion(model.TypeEmail)
		case schema.Format == "binary":
			question = mustQuestion(model.TypeFileUpload)
		case schema.Format == "textarea":
			question = mustQuestion(model.TypeText)
		default:
			question = mustQuestion(model.TypeShortAnswer)
		}
	case "boolean":
		question = mustQuestion(model.TypeMultipleChoice)
		question.Options = []string{"Yes", "No"}
	case "integer", "number":
		question = mustQuestion(model.TypeShortAnswer)
	case "array":
		if schema.Items == nil || schema.Items.Value == nil || schemaType(schema.Items.Value) != "string" {
			return model.Question{}, false
		}
		question = mustQuestion(model.TypeCheckbox)
		question.Options = enumOptions(schema.Items.Value.Enum)
	default:
		return model.Question{}, false
	}

	question.QuestionText = text
	return question, true
}

func mustQuestion(t model.QuestionType) model.Question {
	q, err := model.NewQuestion(t)
	if err != nil {
		panic(err) // t is always one of the six known variants here
	}
	if q.Options != nil {
		q.Options = q.Options[:0]
	}
	return q
}

func enumOptions(enum []any) []string {
	options := make([]string, 0, len(enum))
	for _, value := range enum {
		if s, ok := value.(string); ok {
			options = append(options, s)
		}
	}
	return options
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type == nil || len(*schema.Type) == 0 {
		return ""
	}
	return (*schema.Type)[0]
}

// labelFor humanises a property or operation name: snake/kebab separators
// become spaces, camelCase words split, and the first letter uppercases.
func labelFor(name string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(strings.TrimSpace(name))
	var builder strings.Builder
	var prev rune
	for i, r := range cleaned {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(prev) {
			builder.WriteByte(' ')
		}
		builder.WriteRune(r)
		prev = r
	}
	words := strings.Fields(builder.String())
	for i, word := range words {
		if i == 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		} else {
			words[i] = strings.ToLower(word)
		}
	}
	return strings.Join(words, " ")
}
