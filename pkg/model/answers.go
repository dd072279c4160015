package model

// AnswerMap is the sparse mapping from question id to that question's
// submitted value. Values are strings for text/shortAnswer/email questions
// and fileUpload URLs, a single selected option string for multipleChoice,
// and a string sequence for checkbox. Maps decoded from stored JSON may
// surface sequences as []any; the helpers below normalise both shapes.
type AnswerMap map[string]any

// Clone returns a copy of the map. Sequence values are copied so the
// clone can be mutated independently.
func (m AnswerMap) Clone() AnswerMap {
	if m == nil {
		return nil
	}
	out := make(AnswerMap, len(m))
	for key, value := range m {
		switch v := value.(type) {
		case []string:
			out[key] = append([]string(nil), v...)
		case []any:
			out[key] = append([]any(nil), v...)
		default:
			out[key] = value
		}
	}
	return out
}

// StringValue coerces a scalar answer to a string. It reports false for
// absent values and sequences.
func StringValue(value any) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

// ListValue coerces a sequence answer to a string slice, handling both the
// native []string shape and the []any shape produced by JSON decoding.
// Non-string elements are skipped.
func ListValue(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...), true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}

// IsEmptyAnswer reports whether the value counts as "not answered" for
// required-field validation: absent, empty string, or empty sequence.
func IsEmptyAnswer(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}
