package form

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field is one entry of a YAML/JSON form description.
type Field struct {
	Name        string    `yaml:"name,omitempty" json:"name,omitempty"`
	Type        FieldType `yaml:"type,omitempty" json:"type,omitempty"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Value       string    `yaml:"value,omitempty" json:"value,omitempty"`
}

// Layout is the on-disk layout of a YAML/JSON form:
//
//	title: Eigenerklärung
//	fields:
//	  - name: ceo
//	    type: text
//	    description: Name des Geschäftsführers
type Layout struct {
	Title  string  `yaml:"title,omitempty" json:"title,omitempty"`
	Fields []Field `yaml:"fields" json:"fields"`
}

// YAMLDocument is a Document backed by a form description file.
type YAMLDocument struct {
	source string
	form   Layout
}

// OpenYAML reads a YAML or JSON form description. Fields with an empty
// type are text fields; unknown types are kept as FieldUnknown.
func OpenYAML(path string) (*YAMLDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading form %s: %w", path, err)
	}

	var desc Layout
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parsing form %s: %w", path, err)
	}

	doc := NewYAMLDocument(desc)
	doc.source = path
	return doc, nil
}

// NewYAMLDocument builds an in-memory document from a layout.
func NewYAMLDocument(desc Layout) *YAMLDocument {
	desc.Fields = append([]Field(nil), desc.Fields...)
	return &YAMLDocument{form: desc}
}

// kind normalizes the declared type; the declared spelling is what gets
// saved back.
func (f Field) kind() FieldType {
	t := FieldType(strings.ToLower(string(f.Type)))
	switch {
	case t == "":
		return FieldText
	case knownFieldTypes[t]:
		return t
	default:
		return FieldUnknown
	}
}

func (d *YAMLDocument) FieldCount() int { return len(d.form.Fields) }

func (d *YAMLDocument) FieldType(i int) FieldType {
	if checkIndex(i, d.FieldCount()) != nil {
		return FieldUnknown
	}
	return d.form.Fields[i].kind()
}

func (d *YAMLDocument) FieldName(i int) *string {
	if checkIndex(i, d.FieldCount()) != nil {
		return nil
	}
	return optional(d.form.Fields[i].Name)
}

func (d *YAMLDocument) FieldDescription(i int) *string {
	if checkIndex(i, d.FieldCount()) != nil {
		return nil
	}
	return optional(d.form.Fields[i].Description)
}

func (d *YAMLDocument) FieldText(i int) (string, error) {
	if err := checkIndex(i, d.FieldCount()); err != nil {
		return "", err
	}
	return d.form.Fields[i].Value, nil
}

func (d *YAMLDocument) SetFieldText(i int, text string) error {
	if err := checkIndex(i, d.FieldCount()); err != nil {
		return err
	}
	if kind := d.form.Fields[i].kind(); kind != FieldText {
		return fmt.Errorf("%w: field %d is %s", ErrNotText, i, kind)
	}
	d.form.Fields[i].Value = text
	return nil
}

// Save writes the description to path, as JSON when path ends in .json
// and as YAML otherwise.
func (d *YAMLDocument) Save(path string) error {
	if d.source != "" && sameFile(d.source, path) {
		return fmt.Errorf("%w: %s", ErrSameFile, path)
	}

	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(d.form, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(d.form)
	}
	if err != nil {
		return fmt.Errorf("encoding form: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing form %s: %w", path, err)
	}
	return nil
}
