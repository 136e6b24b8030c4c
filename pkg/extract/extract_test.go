package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"resume.pdf", FormatPDF},
		{"Resume.PDF", FormatPDF},
		{"jd.docx", FormatDOCX},
		{"notes.txt", ""},
		{"archive.docx.zip", ""},
		{"noextension", ""},
	}

	for _, tt := range tests {
		if got := FormatFromFilename(tt.filename); got != tt.want {
			t.Errorf("FormatFromFilename(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestSupported(t *testing.T) {
	if !Supported("pdf") || !Supported("DOCX") {
		t.Error("pdf and docx should be supported")
	}
	if Supported("txt") || Supported("") {
		t.Error("txt and empty should not be supported")
	}
}

func TestTextDocx(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Senior Backend Engineer</w:t></w:r></w:p>
    <w:p><w:r><w:t>Go, Postgres, </w:t></w:r><w:r><w:t>NATS</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := Text(buildDocx(t, doc), FormatDOCX)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(text, "Senior Backend Engineer") {
		t.Errorf("first paragraph missing: %q", text)
	}
	// Runs inside one paragraph join without separators.
	if !strings.Contains(text, "Go, Postgres, NATS") {
		t.Errorf("runs not joined: %q", text)
	}
}

func TestTextDocxMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/styles.xml")
	w.Write([]byte("<styles/>"))
	zw.Close()

	if _, err := Text(buf.Bytes(), FormatDOCX); err == nil {
		t.Error("expected error for docx without word/document.xml")
	}
}

func TestTextCorruptInput(t *testing.T) {
	if _, err := Text([]byte("not a zip"), FormatDOCX); err == nil {
		t.Error("expected error for corrupt docx")
	}
	if _, err := Text([]byte("not a pdf"), FormatPDF); err == nil {
		t.Error("expected error for corrupt pdf")
	}
}

func TestTextUnsupportedFormat(t *testing.T) {
	if _, err := Text([]byte("hello"), "txt"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
