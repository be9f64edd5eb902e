package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "School Report",
		Headers: []string{"Student", "Course", "Grade"},
		Rows: [][]string{
			{"Ann Lee", "CS101", "A"},
			{"Bob, Jr", "CS102", "N"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	assert.Equal(t, "Student,Course,Grade\nAnn Lee,CS101,A\n\"Bob, Jr\",CS102,N\n", string(out))
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderRejectsMalformedDatasets(t *testing.T) {
	for _, exporter := range []Exporter{NewCSVExporter(), NewPDFExporter()} {
		_, err := exporter.Render(Dataset{})
		assert.Error(t, err)

		_, err = exporter.Render(Dataset{Headers: []string{"a", "b"}, Rows: [][]string{{"only-one"}}})
		assert.Error(t, err)
	}
}

func TestForFormat(t *testing.T) {
	csvExporter, err := ForFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", csvExporter.ContentType())

	pdfExporter, err := ForFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf", pdfExporter.Extension())

	_, err = ForFormat("xlsx")
	assert.Error(t, err)
}
