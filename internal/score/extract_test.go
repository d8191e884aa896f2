package score

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// docxBytes builds a minimal docx archive whose document.xml contains one
// paragraph per input line.
func docxBytes(t *testing.T, text string) []byte {
	t.Helper()
	var body strings.Builder
	body.WriteString(`<?xml version="1.0"?><w:document><w:body>`)
	for _, line := range strings.Split(text, "\n") {
		body.WriteString(`<w:p><w:r><w:t>`)
		body.WriteString(line)
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(body.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDocumentTextDocx(t *testing.T) {
	data := docxBytes(t, "Jane Doe\nSoftware   Engineer")

	text, err := DocumentText("resume.docx", data)
	require.NoError(t, err)
	require.Contains(t, text, "Jane Doe")
	require.Contains(t, text, "Software Engineer", "space runs must collapse")

	lines := strings.Split(text, "\n")
	require.Len(t, lines, 2, "paragraph boundaries must become single newlines")
}

func TestDocumentTextDocxMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<w:p>text</w:p>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = DocumentText("resume.docx", buf.Bytes())
	require.Error(t, err)
}

func TestDocumentTextExtensionDispatch(t *testing.T) {
	cases := []struct {
		name     string
		filename string
	}{
		{"txt", "resume.txt"},
		{"no extension", "resume"},
		{"doc", "resume.doc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DocumentText(tc.filename, []byte("whatever"))
			require.ErrorIs(t, err, ErrUnsupportedFormat)
		})
	}
}

func TestDocumentTextCorruptUploads(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		data     []byte
	}{
		{"garbage pdf", "resume.pdf", []byte("definitely not a pdf")},
		{"garbage docx", "resume.docx", []byte("definitely not a zip")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DocumentText(tc.filename, tc.data)
			require.ErrorIs(t, err, ErrUnreadableDocument)
		})
	}
}

func TestDocumentTextDocxCaseInsensitiveExtension(t *testing.T) {
	data := docxBytes(t, "hello")
	text, err := DocumentText("Resume.DOCX", data)
	require.NoError(t, err)
	require.Contains(t, text, "hello")
}

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"a  b\tc", "a b c"},
		{"a\n\n\nb", "a\nb"},
		{"  padded  ", "padded"},
		{"non breaking", "non breaking"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, normalizeWhitespace(tc.in))
	}
}
