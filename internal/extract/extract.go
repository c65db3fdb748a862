// Package extract pulls plain text out of resume documents so they can be
// fed to the evaluation prompt. PDF, DOCX and plain-text files are supported.
package extract

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// SupportedExtensions lists the file extensions FromFile accepts.
var SupportedExtensions = []string{".pdf", ".docx", ".txt", ".md"}

// FromFile reads path and extracts its text, dispatching on the file
// extension.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Source: path, Message: "failed to read file", Cause: err}
	}
	return FromBytes(path, data)
}

// FromBytes extracts text from an in-memory document. The name is used for
// format dispatch and error attribution only.
func FromBytes(name string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return pdfText(name, data)
	case ".docx":
		return docxText(name, data)
	case ".txt", ".md":
		return string(data), nil
	default:
		return "", &ExtractionError{Source: name, Message: "unsupported file type"}
	}
}

// Supported reports whether FromFile can handle the given file name.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

func pdfText(name string, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Source: name, Message: "failed to read pdf", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single damaged page should not sink the document.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", &ExtractionError{Source: name, Message: "pdf contains no extractable text"}
	}
	return out, nil
}

var docxTagRe = regexp.MustCompile(`<[^>]+>`)

func docxText(name string, data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Source: name, Message: "failed to parse docx", Cause: err}
	}
	defer doc.Close()

	// GetContent returns the raw document XML; paragraph boundaries become
	// newlines before the remaining markup is stripped.
	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = docxTagRe.ReplaceAllString(content, "")

	out := strings.TrimSpace(content)
	if out == "" {
		return "", &ExtractionError{Source: name, Message: "docx contains no extractable text"}
	}
	return out, nil
}
