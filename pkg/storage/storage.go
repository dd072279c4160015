// Package storage declares the collaborator interfaces the form engine
// persists through. The core never talks to a concrete backend directly;
// implementations live in subpackages (sqlite, blob) and callers may
// substitute their own.
package storage

import (
	"context"
	"errors"
	"io"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrNotFound is returned by stores when the referenced record does not
// exist. Callers translate it into a fault.NotFound at the operation
// boundary.
var ErrNotFound = errors.New("storage: record not found")

// FormStore persists form schemas. A save always transmits the whole
// schema; there is no partial update or versioning.
type FormStore interface {
	CreateForm(ctx context.Context, form model.Form) (model.Form, error)
	UpdateForm(ctx context.Context, form model.Form) (model.Form, error)
	FetchForm(ctx context.Context, id string) (model.Form, error)
	DeleteForm(ctx context.Context, id string) error
	ListForms(ctx context.Context) ([]model.Form, error)
}

// ResponseStore persists submissions. Responses are created and read,
// never updated; the store assigns the id and creation timestamp.
type ResponseStore interface {
	SubmitResponse(ctx context.Context, response model.Response) (model.Response, error)
	ListResponses(ctx context.Context, formID string) ([]model.Response, error)
}

// BlobStore uploads file contents and returns a public URL. Each upload is
// an independent request; uploads for distinct paths may run concurrently.
type BlobStore interface {
	Upload(ctx context.Context, path string, contents io.Reader) (string, error)
}

// Store bundles the persistence collaborators one backend usually
// provides together.
type Store interface {
	FormStore
	ResponseStore
}
