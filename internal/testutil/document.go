package testutil

import (
	"github.com/dennisdenk/vergabe.ai/internal/form"
)

// FieldOption customizes a field built by TextField and friends.
type FieldOption func(*form.Field)

func WithDescription(d string) FieldOption {
	return func(f *form.Field) { f.Description = d }
}

func WithValue(v string) FieldOption {
	return func(f *form.Field) { f.Value = v }
}

// TextField returns a text field named name. An empty name leaves the
// field unnamed.
func TextField(name string, opts ...FieldOption) form.Field {
	f := form.Field{Name: name, Type: form.FieldText}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// TypedField returns a field of type t.
func TypedField(name string, t form.FieldType, opts ...FieldOption) form.Field {
	f := TextField(name, opts...)
	f.Type = t
	return f
}

// NewTestDocument builds an in-memory document from fields.
func NewTestDocument(fields ...form.Field) *form.YAMLDocument {
	return form.NewYAMLDocument(form.Layout{Title: "test", Fields: fields})
}

// FailingDocument wraps a Document and injects errors into writes.
type FailingDocument struct {
	form.Document

	// FailSetOn makes SetFieldText for this index return SetErr.
	FailSetOn int
	SetErr    error

	SaveErr error
	Saved   []string
}

func (d *FailingDocument) SetFieldText(i int, text string) error {
	if d.SetErr != nil && i == d.FailSetOn {
		return d.SetErr
	}
	return d.Document.SetFieldText(i, text)
}

func (d *FailingDocument) Save(path string) error {
	d.Saved = append(d.Saved, path)
	if d.SaveErr != nil {
		return d.SaveErr
	}
	return d.Document.Save(path)
}
