package form

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfform "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/form"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Date fields are filled like text; pdfcpu checks the value against the
// field's date format on save.
var pdfKindTypes = map[string]FieldType{
	"textfield":        FieldText,
	"datefield":        FieldText,
	"checkbox":         FieldCheckbox,
	"radiobuttongroup": FieldRadio,
	"combobox":         FieldChoice,
	"listbox":          FieldChoice,
}

var disableConfigDir sync.Once

func pdfConfig() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	return model.NewDefaultConfiguration()
}

// pdfExport mirrors the JSON pdfcpu produces for "form export". Forms stay
// untyped so attributes this package does not know about survive the
// round trip back into "form fill".
type pdfExport struct {
	Header json.RawMessage  `json:"header,omitempty"`
	Forms  []map[string]any `json:"forms"`
}

// fieldLayout is what the export loses: the position of each field in
// the AcroForm tree and its tooltip (TU), both keyed by export id.
type fieldLayout struct {
	order map[string]int
	tips  map[string]string
}

type pdfField struct {
	entry map[string]any
	typ   FieldType
	desc  string
}

// PDFDocument is a Document backed by a PDF AcroForm. Fields are indexed
// in AcroForm order.
type PDFDocument struct {
	source string
	export pdfExport
	fields []pdfField
}

// OpenPDF reads the PDF at path, exports its form and indexes its fields.
func OpenPDF(path string) (*PDFDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	conf := pdfConfig()
	conf.Cmd = model.EXPORTFORMFIELDS
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("reading pdf %s: %w", path, err)
	}

	group, ok, err := pdfform.ExportForm(ctx.XRefTable, path)
	if err != nil {
		return nil, fmt.Errorf("exporting form of %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("exporting form of %s: %w", path, api.ErrNoFormFieldsAffected)
	}
	data, err := json.Marshal(group)
	if err != nil {
		return nil, fmt.Errorf("encoding form export: %w", err)
	}

	layout, err := readFieldLayout(ctx.XRefTable)
	if err != nil {
		return nil, fmt.Errorf("reading form fields of %s: %w", path, err)
	}

	doc, err := parsePDFExport(data, layout)
	if err != nil {
		return nil, fmt.Errorf("parsing form export of %s: %w", path, err)
	}
	doc.source = path
	return doc, nil
}

// readFieldLayout walks the AcroForm /Fields tree depth first. Ids are
// built the way pdfcpu's export builds them: the object number of a root
// field, and parent id plus "." plus object number below it.
func readFieldLayout(xrt *model.XRefTable) (fieldLayout, error) {
	layout := fieldLayout{order: map[string]int{}, tips: map[string]string{}}
	if xrt.Form == nil {
		return layout, nil
	}
	o, found := xrt.Form.Find("Fields")
	if !found {
		return layout, nil
	}
	roots, err := xrt.DereferenceArray(o)
	if err != nil {
		return layout, err
	}

	visited := map[int]bool{}
	var walk func(arr types.Array, parent string) error
	walk = func(arr types.Array, parent string) error {
		for _, obj := range arr {
			ir, ok := obj.(types.IndirectRef)
			if !ok || visited[ir.ObjectNumber.Value()] {
				continue
			}
			visited[ir.ObjectNumber.Value()] = true

			d, err := xrt.DereferenceDict(ir)
			if err != nil {
				return err
			}
			if len(d) == 0 {
				continue
			}

			id := ir.ObjectNumber.String()
			if parent != "" {
				id = parent + "." + id
			}
			layout.order[id] = len(layout.order)

			tu, err := d.StringOrHexLiteralEntry("TU")
			if err != nil {
				return err
			}
			if tu != nil {
				layout.tips[id] = *tu
			}

			k, found := d.Find("Kids")
			if !found {
				continue
			}
			kids, err := xrt.DereferenceArray(k)
			if err != nil {
				return err
			}
			if err := walk(kids, id); err != nil {
				return err
			}
		}
		return nil
	}
	return layout, walk(roots, "")
}

func parsePDFExport(data []byte, layout fieldLayout) (*PDFDocument, error) {
	var export pdfExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, err
	}

	doc := &PDFDocument{export: export}
	for _, f := range export.Forms {
		for kind, v := range f {
			list, ok := v.([]any)
			if !ok {
				continue
			}
			typ, known := pdfKindTypes[kind]
			if !known {
				typ = FieldUnknown
			}
			for _, item := range list {
				entry, ok := item.(map[string]any)
				if !ok {
					continue
				}
				t := typ
				if t == FieldText && boolAttr(entry, "locked") {
					t = FieldReadOnly
				}
				doc.fields = append(doc.fields, pdfField{
					entry: entry,
					typ:   t,
					desc:  layout.tips[stringAttr(entry, "id")],
				})
			}
		}
	}

	// Fields missing from the tree go last, ordered by id.
	rank := func(f pdfField) (int, string) {
		id := stringAttr(f.entry, "id")
		if n, ok := layout.order[id]; ok {
			return n, id
		}
		return len(layout.order), id
	}
	sort.SliceStable(doc.fields, func(i, j int) bool {
		ri, idi := rank(doc.fields[i])
		rj, idj := rank(doc.fields[j])
		if ri != rj {
			return ri < rj
		}
		return idi < idj
	})
	return doc, nil
}

func (d *PDFDocument) FieldCount() int { return len(d.fields) }

func (d *PDFDocument) FieldType(i int) FieldType {
	if checkIndex(i, d.FieldCount()) != nil {
		return FieldUnknown
	}
	return d.fields[i].typ
}

func (d *PDFDocument) FieldName(i int) *string {
	if checkIndex(i, d.FieldCount()) != nil {
		return nil
	}
	return optional(stringAttr(d.fields[i].entry, "name"))
}

// FieldDescription returns the field's tooltip (TU).
func (d *PDFDocument) FieldDescription(i int) *string {
	if checkIndex(i, d.FieldCount()) != nil {
		return nil
	}
	return optional(d.fields[i].desc)
}

func (d *PDFDocument) FieldText(i int) (string, error) {
	if err := checkIndex(i, d.FieldCount()); err != nil {
		return "", err
	}
	return stringAttr(d.fields[i].entry, "value"), nil
}

func (d *PDFDocument) SetFieldText(i int, text string) error {
	if err := checkIndex(i, d.FieldCount()); err != nil {
		return err
	}
	if d.fields[i].typ != FieldText {
		return fmt.Errorf("%w: field %d is %s", ErrNotText, i, d.fields[i].typ)
	}
	d.fields[i].entry["value"] = text
	return nil
}

// Save fills a copy of the source PDF with the current values and writes
// it to path.
func (d *PDFDocument) Save(path string) error {
	if sameFile(d.source, path) {
		return fmt.Errorf("%w: %s", ErrSameFile, path)
	}

	data, err := json.Marshal(d.export)
	if err != nil {
		return fmt.Errorf("encoding form values: %w", err)
	}

	tmp, err := os.MkdirTemp("", "vergabe-fill-*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	jsonPath := filepath.Join(tmp, "values.json")
	if err := os.WriteFile(jsonPath, data, 0o600); err != nil {
		return fmt.Errorf("writing form values: %w", err)
	}

	if err := api.FillFormFile(d.source, jsonPath, path, pdfConfig()); err != nil {
		return fmt.Errorf("filling %s: %w", path, err)
	}
	return nil
}

func stringAttr(entry map[string]any, key string) string {
	s, _ := entry[key].(string)
	return s
}

func boolAttr(entry map[string]any, key string) bool {
	b, _ := entry[key].(bool)
	return b
}
