// Package facts loads and validates the fact sheet sent to the assistant
// ahead of any FILL turn.
package facts

import (
	"errors"
	"fmt"
	"os"

	"github.com/dennisdenk/vergabe.ai/internal/protocol"
	"gopkg.in/yaml.v3"
)

// Sheet is an ordered list of facts. Order is preserved from the source
// and duplicates are kept.
type Sheet []protocol.Fact

// Default returns the built-in sample sheet for a small heating company.
func Default() Sheet {
	return Sheet{
		{Key: "mitarbeiter", Value: "7"},
		{Key: "name", Value: "Huber Heizungsbau GmbH"},
		{Key: "ceo", Value: "Hans Huber"},
		{Key: "gruendung", Value: "17.10.2007"},
		{Key: "ort", Value: "Ingolstadt"},
		{Key: "datum-heute", Value: "10.11.2023"},
		{Key: "kompetenzen", Value: "Heizungsbau, Rohrverlegung, Wärmepumpem, Gasheizungen, Ölheizungen, Dämmung, Gerüstbau"},
	}
}

// Encode renders the sheet as newline-joined INFO lines.
func (s Sheet) Encode() string {
	return protocol.EncodeFactSheet(s)
}

// Keys returns the fact keys in order.
func (s Sheet) Keys() []string {
	keys := make([]string, len(s))
	for i, f := range s {
		keys[i] = f.Key
	}
	return keys
}

// Load reads a fact sheet from a YAML file. Two layouts are accepted, a
// plain mapping:
//
//	ceo: Hans Huber
//	ort: Ingolstadt
//
// or an explicit list, which allows repeated keys:
//
//	facts:
//	  - key: ceo
//	    value: Hans Huber
func Load(path string) (Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fact sheet: %w", err)
	}
	sheet, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fact sheet %s: %w", path, err)
	}
	return sheet, nil
}

// Parse decodes and validates fact sheet YAML.
func Parse(data []byte) (Sheet, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, ErrEmptySheet
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalidFact)
	}

	var sheet Sheet
	var err error
	if list := factList(doc); list != nil {
		sheet, err = fromList(list)
	} else {
		sheet, err = fromMapping(doc)
	}
	if err != nil {
		return nil, err
	}

	if len(sheet) == 0 {
		return nil, ErrEmptySheet
	}
	if errs := Validate(sheet); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return sheet, nil
}

// factList returns the sequence under a sole "facts" key, if that is the
// layout in use.
func factList(doc *yaml.Node) *yaml.Node {
	if len(doc.Content) != 2 || doc.Content[0].Value != "facts" {
		return nil
	}
	if doc.Content[1].Kind != yaml.SequenceNode {
		return nil
	}
	return doc.Content[1]
}

func fromMapping(doc *yaml.Node) (Sheet, error) {
	sheet := make(Sheet, 0, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: value of %q must be a scalar", ErrInvalidFact, value.Line, key.Value)
		}
		sheet = append(sheet, protocol.Fact{Key: key.Value, Value: value.Value})
	}
	return sheet, nil
}

type listEntry struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

func fromList(list *yaml.Node) (Sheet, error) {
	var entries []listEntry
	if err := list.Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFact, err)
	}
	sheet := make(Sheet, len(entries))
	for i, e := range entries {
		sheet[i] = protocol.Fact{Key: e.Key, Value: e.Value}
	}
	return sheet, nil
}
