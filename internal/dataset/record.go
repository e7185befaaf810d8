// Package dataset wraps one decoded DICOM file and the values derived
// from it.
package dataset

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// Field names one of the metadata attributes read from every record.
type Field string

const (
	FieldPatientID        Field = "PatientID"
	FieldPatientName      Field = "PatientName"
	FieldStudyInstanceUID Field = "StudyInstanceUID"
	FieldStudyDescription Field = "StudyDescription"
	FieldStudyDate        Field = "StudyDate"
	FieldModality         Field = "Modality"
	FieldRows             Field = "Rows"
	FieldColumns          Field = "Columns"
)

// fieldTags maps each extracted field to its DICOM tag. Extraction is an
// explicit lookup against this fixed set; unknown fields are simply absent.
var fieldTags = map[Field]tag.Tag{
	FieldPatientID:        tag.PatientID,
	FieldPatientName:      tag.PatientName,
	FieldStudyInstanceUID: tag.StudyInstanceUID,
	FieldStudyDescription: tag.StudyDescription,
	FieldStudyDate:        tag.StudyDate,
	FieldModality:         tag.Modality,
	FieldRows:             tag.Rows,
	FieldColumns:          tag.Columns,
}

// Fields returns the extracted fields in output column order.
func Fields() []Field {
	return []Field{
		FieldPatientID,
		FieldPatientName,
		FieldStudyInstanceUID,
		FieldStudyDescription,
		FieldStudyDate,
		FieldModality,
		FieldRows,
		FieldColumns,
	}
}

// Record is one successfully decoded file. It is never mutated after
// creation.
type Record struct {
	path string
	ds   dicom.Dataset
}

// NewRecord wraps a parsed dataset together with its originating path.
func NewRecord(path string, ds dicom.Dataset) *Record {
	return &Record{path: path, ds: ds}
}

// Path returns the originating file path.
func (r *Record) Path() string {
	return r.path
}

// BaseName returns the file's base name, the row key in the result table.
func (r *Record) BaseName() string {
	return filepath.Base(r.path)
}

// Field returns the textual representation of a metadata field, or false
// when the dataset does not carry it. Absence is an expected case
// (anonymized or partial exports), never an error. A present but empty
// value is normalized to absent so that the empty CSV field stays
// unambiguous.
func (r *Record) Field(f Field) (string, bool) {
	t, ok := fieldTags[f]
	if !ok {
		return "", false
	}

	elem, err := r.ds.FindElementByTag(t)
	if err != nil || elem == nil {
		return "", false
	}

	s := formatValue(elem.Value)
	if s == "" {
		return "", false
	}
	return s, true
}

// formatValue renders an element value from its typed form, so string
// values survive verbatim. Multi-valued elements join with a space;
// value types that have no textual form render as absent.
func formatValue(v dicom.Value) string {
	switch v.ValueType() {
	case dicom.Strings:
		return strings.TrimSpace(strings.Join(v.GetValue().([]string), " "))
	case dicom.Ints:
		ints := v.GetValue().([]int)
		parts := make([]string, len(ints))
		for i, n := range ints {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, " ")
	case dicom.Floats:
		floats := v.GetValue().([]float64)
		parts := make([]string, len(floats))
		for i, f := range floats {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}
