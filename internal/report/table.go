// Package report holds the tabular result of a collection scan and its
// CSV serialization.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/jszwec/csvutil"
)

// NullString is a string cell that distinguishes "field not present" from
// any present value. The zero value is the absent marker.
type NullString struct {
	String string
	Valid  bool
}

// SomeString returns a present cell holding s.
func SomeString(s string) NullString {
	return NullString{String: s, Valid: true}
}

// MarshalCSV serializes an absent cell as an empty field. Present cells
// are never empty (extraction normalizes empty tag values to absent), so
// the empty field is unambiguous.
func (ns NullString) MarshalCSV() ([]byte, error) {
	if !ns.Valid {
		return []byte{}, nil
	}
	return []byte(ns.String), nil
}

// UnmarshalCSV treats an empty field as the absent marker.
func (ns *NullString) UnmarshalCSV(data []byte) error {
	if len(data) == 0 {
		*ns = NullString{}
		return nil
	}
	*ns = NullString{String: string(data), Valid: true}
	return nil
}

// NullFloat64 is a float cell with an absent marker, used for the derived
// intensity column.
type NullFloat64 struct {
	Float64 float64
	Valid   bool
}

// SomeFloat64 returns a present cell holding v.
func SomeFloat64(v float64) NullFloat64 {
	return NullFloat64{Float64: v, Valid: true}
}

// MarshalCSV serializes an absent cell as an empty field.
func (nf NullFloat64) MarshalCSV() ([]byte, error) {
	if !nf.Valid {
		return []byte{}, nil
	}
	return strconv.AppendFloat(nil, nf.Float64, 'g', -1, 64), nil
}

// UnmarshalCSV treats an empty field as the absent marker.
func (nf *NullFloat64) UnmarshalCSV(data []byte) error {
	if len(data) == 0 {
		*nf = NullFloat64{}
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("parse intensity %q: %w", data, err)
	}
	*nf = NullFloat64{Float64: v, Valid: true}
	return nil
}

// Row is one result line. FileName is the row key and is always present;
// every other column may be absent.
type Row struct {
	FileName         string      `csv:"file_name"`
	PatientID        NullString  `csv:"patient_id"`
	PatientName      NullString  `csv:"patient_name"`
	StudyInstanceUID NullString  `csv:"study_instance_uid"`
	StudyDescription NullString  `csv:"study_description"`
	StudyDate        NullString  `csv:"study_date"`
	Modality         NullString  `csv:"modality"`
	Rows             NullString  `csv:"rows"`
	Columns          NullString  `csv:"columns"`
	AverageIntensity NullFloat64 `csv:"average_intensity"`
}

// Table is the ordered, columnar output of a scan. Row i corresponds to
// entry i of the batch the table was built from; nothing reorders rows
// after construction.
type Table struct {
	rows          []Row
	intensityDone bool
}

// New builds a table from pre-assembled rows. The intensity column is not
// yet populated.
func New(rows []Row) *Table {
	return &Table{rows: rows}
}

// Rows returns the rows in table order.
func (t *Table) Rows() []Row {
	return t.rows
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// HasIntensity reports whether the derived intensity column has been
// populated.
func (t *Table) HasIntensity() bool {
	return t.intensityDone
}

// AppendIntensity fills the derived intensity column in place. values must
// carry exactly one entry per row, positionally aligned.
func (t *Table) AppendIntensity(values []NullFloat64) error {
	if len(values) != len(t.rows) {
		return fmt.Errorf("intensity column has %d values for %d rows", len(values), len(t.rows))
	}
	for i := range t.rows {
		t.rows[i].AverageIntensity = values[i]
	}
	t.intensityDone = true
	return nil
}

// WriteCSV serializes the table: one header line, one line per row, in
// table order. Absent cells become empty fields.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	// The encoder only emits the header on the first Encode, so a
	// zero-row table needs it written explicitly.
	if err := enc.EncodeHeader(Row{}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for i := range t.rows {
		if err := enc.Encode(t.rows[i]); err != nil {
			return fmt.Errorf("encode row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the table to a file, replacing any previous content.
func (t *Table) SaveCSV(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	return t.WriteCSV(f)
}

// ReadCSV parses a table previously produced by WriteCSV.
func ReadCSV(r io.Reader) (*Table, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	var rows []Row
	for {
		var row Row
		err := dec.Decode(&row)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, row)
	}

	return &Table{rows: rows, intensityDone: true}, nil
}

// Format renders the table for a terminal. Absent cells print as "-".
func (t *Table) Format(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "FILE\tPATIENT ID\tPATIENT NAME\tSTUDY UID\tDESCRIPTION\tDATE\tMODALITY\tROWS\tCOLS\tAVG INTENSITY")
	for _, row := range t.rows {
		intensity := "-"
		if row.AverageIntensity.Valid {
			intensity = strconv.FormatFloat(row.AverageIntensity.Float64, 'f', 2, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.FileName,
			orDash(row.PatientID), orDash(row.PatientName),
			orDash(row.StudyInstanceUID), orDash(row.StudyDescription),
			orDash(row.StudyDate), orDash(row.Modality),
			orDash(row.Rows), orDash(row.Columns),
			intensity,
		)
	}

	return tw.Flush()
}

func orDash(ns NullString) string {
	if !ns.Valid {
		return "-"
	}
	return ns.String
}
