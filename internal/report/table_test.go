package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsinham/dicomscan/internal/report"
)

func sampleRows() []report.Row {
	return []report.Row{
		{
			FileName:         "IMG0001.dcm",
			PatientID:        report.SomeString("PID000042"),
			PatientName:      report.SomeString("DOE^JANE"),
			StudyInstanceUID: report.SomeString("2.25.1234"),
			StudyDescription: report.SomeString("HEAD MR"),
			StudyDate:        report.SomeString("20240315"),
			Modality:         report.SomeString("MR"),
			Rows:             report.SomeString("100"),
			Columns:          report.SomeString("100"),
		},
		{
			// Anonymized, metadata-only entry: everything but the file
			// name is absent.
			FileName: "IMG0002.dcm",
		},
	}
}

func TestTable_AppendIntensity(t *testing.T) {
	t.Parallel()

	table := report.New(sampleRows())
	require.False(t, table.HasIntensity())

	err := table.AppendIntensity([]report.NullFloat64{report.SomeFloat64(50)})
	require.Error(t, err, "mismatched value count must be rejected")
	assert.False(t, table.HasIntensity())

	err = table.AppendIntensity([]report.NullFloat64{
		report.SomeFloat64(50),
		{},
	})
	require.NoError(t, err)
	assert.True(t, table.HasIntensity())

	rows := table.Rows()
	assert.Equal(t, report.SomeFloat64(50), rows[0].AverageIntensity)
	assert.False(t, rows[1].AverageIntensity.Valid)
}

func TestTable_CSVRoundTrip(t *testing.T) {
	t.Parallel()

	table := report.New(sampleRows())
	require.NoError(t, table.AppendIntensity([]report.NullFloat64{
		report.SomeFloat64(50),
		{},
	}))

	var buf bytes.Buffer
	require.NoError(t, table.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3, "header plus one line per row")
	assert.Equal(t,
		"file_name,patient_id,patient_name,study_instance_uid,study_description,study_date,modality,rows,columns,average_intensity",
		lines[0],
	)
	assert.Equal(t, "IMG0002.dcm,,,,,,,,,", lines[2], "absent cells serialize as empty fields")

	parsed, err := report.ReadCSV(&buf)
	require.NoError(t, err)
	require.Equal(t, table.Len(), parsed.Len())
	assert.Equal(t, table.Rows(), parsed.Rows())
}

func TestTable_SaveCSV(t *testing.T) {
	t.Parallel()

	table := report.New(sampleRows())
	require.NoError(t, table.AppendIntensity(make([]report.NullFloat64, 2)))

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, table.SaveCSV(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "IMG0001.dcm")
	assert.Contains(t, string(data), "IMG0002.dcm")
}

func TestTable_Format(t *testing.T) {
	t.Parallel()

	table := report.New(sampleRows())
	require.NoError(t, table.AppendIntensity([]report.NullFloat64{
		report.SomeFloat64(50),
		{},
	}))

	var buf bytes.Buffer
	require.NoError(t, table.Format(&buf))

	out := buf.String()
	assert.Contains(t, out, "IMG0001.dcm")
	assert.Contains(t, out, "50.00")
	assert.Contains(t, out, "-", "absent cells render as a dash")
}

func TestTable_Empty(t *testing.T) {
	t.Parallel()

	table := report.New(nil)
	require.NoError(t, table.AppendIntensity(nil))

	var buf bytes.Buffer
	require.NoError(t, table.WriteCSV(&buf))
	assert.Equal(t,
		"file_name,patient_id,patient_name,study_instance_uid,study_description,study_date,modality,rows,columns,average_intensity\n",
		buf.String(),
		"a zero-row table still writes the header line")

	parsed, err := report.ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, parsed.Len(), "header-only output parses back to an empty table")
}
