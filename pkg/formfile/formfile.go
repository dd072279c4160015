// Package formfile reads and writes form schemas as YAML documents (JSON
// is accepted on read, being a YAML subset). Used for seeding, fixtures,
// and CLI round-trips; the persisted source of truth stays in storage.
package formfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

type questionDoc struct {
	ID           string   `yaml:"id,omitempty"`
	Type         string   `yaml:"type"`
	QuestionText string   `yaml:"questionText"`
	Required     bool     `yaml:"required,omitempty"`
	Options      []string `yaml:"options,omitempty"`
	FileTypes    []string `yaml:"fileTypes,omitempty"`
}

type formDoc struct {
	ID          string        `yaml:"id,omitempty"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Questions   []questionDoc `yaml:"questions"`
}

// Parse decodes a schema document. Question types are checked against the
// known variants, option/fileTypes presence is normalised to the type, and
// questions without an id get one minted so the document can omit ids.
func Parse(data []byte) (model.Form, error) {
	var doc formDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return model.Form{}, fmt.Errorf("formfile: decode document: %w", err)
	}

	form := model.Form{
		ID:          doc.ID,
		Title:       doc.Title,
		Description: doc.Description,
	}

	seen := make(map[string]struct{}, len(doc.Questions))
	for i, qd := range doc.Questions {
		qt := model.QuestionType(qd.Type)
		if !qt.Valid() {
			return model.Form{}, fmt.Errorf("formfile: question %d has unknown type %q", i+1, qd.Type)
		}
		question := model.Question{
			ID:           qd.ID,
			Type:         qt,
			QuestionText: qd.QuestionText,
			Required:     qd.Required,
		}
		if question.ID == "" {
			question.ID = model.NewID()
		}
		if _, dup := seen[question.ID]; dup {
			return model.Form{}, fmt.Errorf("formfile: duplicate question id %q", question.ID)
		}
		seen[question.ID] = struct{}{}

		if qt.HasOptions() {
			question.Options = append([]string(nil), qd.Options...)
		}
		if qt.AcceptsFiles() {
			question.FileTypes = append([]string{}, qd.FileTypes...)
		}
		form.Questions = append(form.Questions, question)
	}

	return form, nil
}

// Marshal encodes the schema as a YAML document.
func Marshal(form model.Form) ([]byte, error) {
	doc := formDoc{
		ID:          form.ID,
		Title:       form.Title,
		Description: form.Description,
	}
	for _, q := range form.Questions {
		doc.Questions = append(doc.Questions, questionDoc{
			ID:           q.ID,
			Type:         string(q.Type),
			QuestionText: q.QuestionText,
			Required:     q.Required,
			Options:      q.Options,
			FileTypes:    q.FileTypes,
		})
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("formfile: encode document: %w", err)
	}
	return data, nil
}

// LoadFile reads and parses a schema document from disk.
func LoadFile(path string) (model.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Form{}, fmt.Errorf("formfile: read %s: %w", path, err)
	}
	return Parse(data)
}

// WriteFile encodes the schema and writes it to disk.
func WriteFile(path string, form model.Form) error {
	data, err := Marshal(form)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("formfile: write %s: %w", path, err)
	}
	return nil
}
