// Package document extracts the plain text of an uploaded transcript.
package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/kbukum/flairscribe/errors"
	"github.com/kbukum/flairscribe/util"
)

// Field is the multipart field transcripts are uploaded under.
const Field = "transcription"

// docxBody is the part of a .docx archive holding the main document.
const docxBody = "word/document.xml"

// Extract returns the text of a transcript. A .docx file is read as a Word
// document; anything else must be UTF-8 text.
func Extract(name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.InvalidFormat(Field, fmt.Sprintf("Failed to read text file: %v", err))
	}
	if util.HasExtension(name, []string{".docx"}) {
		text, err := DocxText(data)
		if err != nil || strings.TrimSpace(text) == "" {
			return "", errors.InvalidFormat(Field, "Failed to read .docx file").WithCause(err)
		}
		return text, nil
	}
	if !utf8.Valid(data) {
		return "", errors.InvalidFormat(Field, "Failed to read text file: content is not valid UTF-8")
	}
	return string(bytes.TrimPrefix(data, []byte("\ufeff"))), nil
}

// DocxText returns the paragraphs of a .docx document joined by newlines.
// Tabs and line breaks inside a paragraph are kept.
func DocxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != docxBody {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", docxBody, err)
		}
		defer rc.Close() //nolint:errcheck
		return paragraphs(rc)
	}
	return "", fmt.Errorf("docx archive has no %s", docxBody)
}

// paragraphs walks WordprocessingML and collects the text of each <w:p>.
func paragraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		out    []string
		cur    strings.Builder
		inPara bool
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", docxBody, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				cur.Reset()
			case "t":
				inText = true
			case "tab":
				if inPara {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if inPara {
					cur.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				out = append(out, cur.String())
				inPara = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
	return strings.Join(out, "\n"), nil
}
