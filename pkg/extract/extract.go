// Package extract converts uploaded PDF and DOCX documents to plain text.
// Extraction is best effort: any failure yields an empty string, and the
// caller decides whether to log it. Nothing here returns an error to the
// upload path.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// Supported reports whether the declared format has a reader.
func Supported(format string) bool {
	switch strings.ToLower(format) {
	case FormatPDF, FormatDOCX:
		return true
	}
	return false
}

// FormatFromFilename maps a filename extension to a declared format.
// Returns "" for anything unsupported.
func FormatFromFilename(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return FormatPDF
	case strings.HasSuffix(lower, ".docx"):
		return FormatDOCX
	}
	return ""
}

// Text extracts plain text from the document bytes. Unknown formats and
// malformed documents yield ("", error); the error is for logging only.
func Text(content []byte, declaredFormat string) (string, error) {
	switch strings.ToLower(declaredFormat) {
	case FormatPDF:
		return pdfText(content)
	case FormatDOCX:
		return docxText(content)
	}
	return "", fmt.Errorf("unsupported document format %q", declaredFormat)
}

func pdfText(content []byte) (text string, err error) {
	// The pdf package panics on some malformed files; keep the contract
	// of empty-text-on-failure regardless.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf extraction panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("copy pdf text: %w", err)
	}

	return buf.String(), nil
}

// docxText reads word/document.xml out of the docx zip container and
// collects the <w:t> runs, one line per <w:p> paragraph.
func docxText(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open docx container: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("docx is missing word/document.xml")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
	)

	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	return strings.Join(paragraphs, "\n"), nil
}
