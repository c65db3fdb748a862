package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBytesPlainText(t *testing.T) {
	text, err := FromBytes("resume.txt", []byte("Jane Doe\n8 years of Go.\n"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n8 years of Go.\n", text)
}

func TestFromBytesMarkdown(t *testing.T) {
	text, err := FromBytes("resume.md", []byte("# Jane Doe"))
	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe", text)
}

func TestFromBytesUnsupportedType(t *testing.T) {
	_, err := FromBytes("resume.rtf", []byte("{\\rtf1}"))

	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "resume.rtf", extErr.Source)
	assert.Contains(t, extErr.Error(), "unsupported file type")
}

func TestFromBytesCorruptPDF(t *testing.T) {
	_, err := FromBytes("resume.pdf", []byte("this is not a pdf"))

	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
}

func TestFromBytesCorruptDOCX(t *testing.T) {
	_, err := FromBytes("resume.docx", []byte("this is not a zip archive"))

	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	text, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.txt"))

	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Contains(t, extErr.Error(), "failed to read file")
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.PDF"))
	assert.True(t, Supported("a.docx"))
	assert.True(t, Supported("notes.txt"))
	assert.False(t, Supported("a.rtf"))
	assert.False(t, Supported("a"))
}
