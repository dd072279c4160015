// Package sqlite provides the SQLite-backed form and response stores.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/storage"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS forms (
  id          TEXT PRIMARY KEY,
  title       TEXT NOT NULL,
  description TEXT NOT NULL,
  questions   TEXT NOT NULL,
  created_at  INTEGER NOT NULL,
  updated_at  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS responses (
  id         TEXT PRIMARY KEY,
  form_id    TEXT NOT NULL,
  answers    TEXT NOT NULL,
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS responses_form_id ON responses (form_id);
`

// Store persists forms and responses in SQLite. Question sequences and
// answer maps are stored as JSON documents; a save always rewrites the
// whole schema, so last write wins with no merge semantics.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens (creating if needed) the SQLite database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite: storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite: ping db: %w", err)
	}
	if _, err := sqlDB.Exec(schemaDDL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// CreateForm inserts a new form, minting an id when the caller supplied
// none, and returns the stored schema.
func (s *Store) CreateForm(ctx context.Context, form model.Form) (model.Form, error) {
	if err := ctx.Err(); err != nil {
		return model.Form{}, err
	}
	if form.ID == "" {
		form.ID = model.NewID()
	}
	questions, err := json.Marshal(form.Questions)
	if err != nil {
		return model.Form{}, fmt.Errorf("sqlite: encode questions: %w", err)
	}
	now := toMillis(s.now())
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO forms (id, title, description, questions, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		form.ID, form.Title, form.Description, string(questions), now, now,
	)
	if err != nil {
		return model.Form{}, fmt.Errorf("sqlite: create form: %w", err)
	}
	return form, nil
}

// UpdateForm overwrites the stored schema for the form's id. The entire
// question sequence is transmitted on every save.
func (s *Store) UpdateForm(ctx context.Context, form model.Form) (model.Form, error) {
	if err := ctx.Err(); err != nil {
		return model.Form{}, err
	}
	if form.ID == "" {
		return model.Form{}, fmt.Errorf("sqlite: form id is required")
	}
	questions, err := json.Marshal(form.Questions)
	if err != nil {
		return model.Form{}, fmt.Errorf("sqlite: encode questions: %w", err)
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE forms SET title = ?, description = ?, questions = ?, updated_at = ?
		  WHERE id = ?`,
		form.Title, form.Description, string(questions), toMillis(s.now()), form.ID,
	)
	if err != nil {
		return model.Form{}, fmt.Errorf("sqlite: update form: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return model.Form{}, fmt.Errorf("sqlite: update form: %w", err)
	}
	if affected == 0 {
		return model.Form{}, storage.ErrNotFound
	}
	return form, nil
}

// FetchForm returns the form with the given id, or storage.ErrNotFound.
func (s *Store) FetchForm(ctx context.Context, id string) (model.Form, error) {
	if err := ctx.Err(); err != nil {
		return model.Form{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, title, description, questions FROM forms WHERE id = ?`,
		id,
	)
	return scanForm(row.Scan)
}

// DeleteForm removes the form. Responses referencing it are kept; they
// hold a non-owning back-reference.
func (s *Store) DeleteForm(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM forms WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: delete form: %w", err)
	}
	return nil
}

// ListForms returns every stored form, newest first.
func (s *Store) ListForms(ctx context.Context) ([]model.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, title, description, questions FROM forms ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list forms: %w", err)
	}
	defer rows.Close()

	var forms []model.Form
	for rows.Next() {
		form, err := scanForm(rows.Scan)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list forms: %w", err)
	}
	return forms, nil
}

// SubmitResponse inserts one immutable response, assigning the id and the
// server-side creation timestamp.
func (s *Store) SubmitResponse(ctx context.Context, response model.Response) (model.Response, error) {
	if err := ctx.Err(); err != nil {
		return model.Response{}, err
	}
	if response.FormID == "" {
		return model.Response{}, fmt.Errorf("sqlite: response form id is required")
	}
	response.ID = model.NewID()
	response.CreatedAt = s.now().UTC()
	answers, err := json.Marshal(response.Answers)
	if err != nil {
		return model.Response{}, fmt.Errorf("sqlite: encode answers: %w", err)
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO responses (id, form_id, answers, created_at) VALUES (?, ?, ?, ?)`,
		response.ID, response.FormID, string(answers), toMillis(response.CreatedAt),
	)
	if err != nil {
		return model.Response{}, fmt.Errorf("sqlite: submit response: %w", err)
	}
	return response, nil
}

// ListResponses returns every response for the form in submission order.
func (s *Store) ListResponses(ctx context.Context, formID string) ([]model.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, form_id, answers, created_at FROM responses
		  WHERE form_id = ? ORDER BY created_at ASC`,
		formID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list responses: %w", err)
	}
	defer rows.Close()

	var responses []model.Response
	for rows.Next() {
		var (
			response  model.Response
			answers   string
			createdAt int64
		)
		if err := rows.Scan(&response.ID, &response.FormID, &answers, &createdAt); err != nil {
			return nil, fmt.Errorf("sqlite: list responses: %w", err)
		}
		if err := json.Unmarshal([]byte(answers), &response.Answers); err != nil {
			return nil, fmt.Errorf("sqlite: decode answers: %w", err)
		}
		response.CreatedAt = fromMillis(createdAt)
		responses = append(responses, response)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list responses: %w", err)
	}
	return responses, nil
}

func scanForm(scan func(...any) error) (model.Form, error) {
	var (
		form      model.Form
		questions string
	)
	if err := scan(&form.ID, &form.Title, &form.Description, &questions); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Form{}, storage.ErrNotFound
		}
		return model.Form{}, fmt.Errorf("sqlite: scan form: %w", err)
	}
	if err := json.Unmarshal([]byte(questions), &form.Questions); err != nil {
		return model.Form{}, fmt.Errorf("sqlite: decode questions: %w", err)
	}
	return form, nil
}

var (
	_ storage.FormStore     = (*Store)(nil)
	_ storage.ResponseStore = (*Store)(nil)
)
