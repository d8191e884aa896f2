package score

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned for uploads that are neither PDF nor DOCX.
var ErrUnsupportedFormat = errors.New("unsupported file format: only pdf and docx are allowed")

// ErrUnreadableDocument is returned when a correctly-named upload cannot be
// parsed as its claimed format. Handlers map it to a client error, not a
// collaborator failure.
var ErrUnreadableDocument = errors.New("document cannot be read")

// DocumentText extracts plain text from an uploaded resume so it can be sent
// to the scoring collaborator.
func DocumentText(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return textFromPDF(data)
	case ".docx":
		return textFromDocx(data)
	default:
		return "", ErrUnsupportedFormat
	}
}

func textFromPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrUnreadableDocument, err)
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrUnreadableDocument, err)
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrUnreadableDocument, err)
	}
	return normalizeWhitespace(buf.String()), nil
}

func textFromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrUnreadableDocument, err)
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("%w: docx: %v", ErrUnreadableDocument, err)
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", fmt.Errorf("%w: docx: %v", ErrUnreadableDocument, err)
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", fmt.Errorf("%w: docx: no document.xml in archive", ErrUnreadableDocument)
	}
	// Paragraph boundaries become newlines, then all remaining tags go.
	xml := string(docXML)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	txt := tagPattern.ReplaceAllString(xml, " ")
	return normalizeWhitespace(txt), nil
}

var (
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
	spaceRuns   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRuns = regexp.MustCompile(`\n+`)
)

func normalizeWhitespace(s string) string {
	s = spaceRuns.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " ", " ")
	s = newlineRuns.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
