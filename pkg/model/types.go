package model

import "time"

// QuestionType is the enum for the six question variants a form can carry.
type QuestionType string

const (
	TypeText           QuestionType = "text"
	TypeShortAnswer    QuestionType = "shortAnswer"
	TypeEmail          QuestionType = "email"
	TypeMultipleChoice QuestionType = "multipleChoice"
	TypeCheckbox       QuestionType = "checkbox"
	TypeFileUpload     QuestionType = "fileUpload"
)

// Types lists every valid question type in a stable order.
func Types() []QuestionType {
	return []QuestionType{
		TypeText,
		TypeShortAnswer,
		TypeEmail,
		TypeMultipleChoice,
		TypeCheckbox,
		TypeFileUpload,
	}
}

// Valid reports whether t is one of the six known variants.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeText, TypeShortAnswer, TypeEmail, TypeMultipleChoice, TypeCheckbox, TypeFileUpload:
		return true
	default:
		return false
	}
}

// HasOptions reports whether the variant carries an editable option list.
// Only multipleChoice and checkbox questions do.
func (t QuestionType) HasOptions() bool {
	return t == TypeMultipleChoice || t == TypeCheckbox
}

// AcceptsFiles reports whether the variant collects an uploaded file.
func (t QuestionType) AcceptsFiles() bool {
	return t == TypeFileUpload
}

// File type category tags selectable on fileUpload questions.
const (
	FileTypePDF      = "pdf"
	FileTypeImage    = "image"
	FileTypeDocument = "document"
)

// FileTypeTags lists the selectable upload categories in display order.
func FileTypeTags() []string {
	return []string{FileTypePDF, FileTypeImage, FileTypeDocument}
}

// Question models one form field. Options is present only for
// multipleChoice/checkbox variants and FileTypes only for fileUpload; that
// pairing is established by NewQuestion and preserved by every editor
// operation.
type Question struct {
	ID           string       `json:"id"`
	Type         QuestionType `json:"type"`
	QuestionText string       `json:"questionText"`
	Required     bool         `json:"required"`
	Options      []string     `json:"options,omitempty"`
	FileTypes    []string     `json:"fileTypes,omitempty"`
}

// Form is the schema a filler sees: title, description, and the ordered
// question sequence. Ordering is the display and fill order.
type Form struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// Response is one submission against a form. Answers is sparse: optional
// questions left blank contribute no key, and keys may reference question
// ids that were removed from the schema after submission. Responses are
// immutable once stored.
type Response struct {
	ID        string    `json:"id"`
	FormID    string    `json:"formId"`
	Answers   AnswerMap `json:"answers"`
	CreatedAt time.Time `json:"createdAt"`
}
