// Package form gives indexed read/write access to the fields of a form
// document. Backends exist for PDF AcroForms and for YAML/JSON form
// descriptions; both write filled copies and never touch the source file.
package form

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// FieldType is the category of a form field.
type FieldType string

const (
	FieldText      FieldType = "text"
	FieldCheckbox  FieldType = "checkbox"
	FieldRadio     FieldType = "radio"
	FieldChoice    FieldType = "choice"
	FieldDate      FieldType = "date"
	FieldSignature FieldType = "signature"
	FieldReadOnly  FieldType = "readonly"
	FieldUnknown   FieldType = "unknown"
)

var knownFieldTypes = map[FieldType]bool{
	FieldText: true, FieldCheckbox: true, FieldRadio: true, FieldChoice: true,
	FieldDate: true, FieldSignature: true, FieldReadOnly: true, FieldUnknown: true,
}

var (
	// ErrFieldIndex indicates an index outside 0..FieldCount()-1.
	ErrFieldIndex = errors.New("field index out of range")

	// ErrNotText indicates a text write to a non-text field.
	ErrNotText = errors.New("field is not a text field")

	// ErrUnsupportedFormat indicates a document extension with no backend.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrSameFile indicates an attempt to save over the source document.
	ErrSameFile = errors.New("output path is the source document")
)

// Document is an indexed view over a form's fields. Indexes are stable for
// the document's lifetime.
type Document interface {
	FieldCount() int
	FieldType(i int) FieldType
	FieldName(i int) *string
	FieldDescription(i int) *string
	FieldText(i int) (string, error)
	SetFieldText(i int, text string) error
	Save(path string) error
}

// Open loads a document, choosing the backend by file extension.
func Open(path string) (Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		doc, err := OpenPDF(path)
		if err != nil {
			return nil, err
		}
		return doc, nil
	case ".yaml", ".yml", ".json":
		doc, err := OpenYAML(path)
		if err != nil {
			return nil, err
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// OutputPath returns the fixed filename a filled copy of source is written
// to: "filled" plus the source's extension, in the working directory.
func OutputPath(source string) string {
	ext := strings.ToLower(filepath.Ext(source))
	if ext == "" {
		ext = ".pdf"
	}
	return "." + string(filepath.Separator) + "filled" + ext
}

func checkIndex(i, count int) error {
	if i < 0 || i >= count {
		return fmt.Errorf("%w: %d (document has %d fields)", ErrFieldIndex, i, count)
	}
	return nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
