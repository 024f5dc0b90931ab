package domain

import (
	"path/filepath"
	"strings"
)

// Well-known MIME types accepted for reference documents.
const (
	MIMETypePDF      = "application/pdf"
	MIMETypeDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETypeText     = "text/plain"
	MIMETypeMarkdown = "text/markdown"
)

// SourceDocument is an uploaded reference document. It is owned by a single
// request and never persisted by the core.
type SourceDocument struct {
	// Name is the original filename, if known.
	Name string

	// MIMEType is the declared content type. Short aliases ("pdf", "docx",
	// "txt") are accepted and resolved by CanonicalMIMEType.
	MIMEType string

	// Content is the raw document bytes.
	Content []byte
}

// IsEmpty reports whether the document carries no content.
func (d *SourceDocument) IsEmpty() bool {
	return d == nil || len(d.Content) == 0
}

// CanonicalMIMEType resolves the declared type, short aliases, or the file
// extension into a full MIME type. Returns "" when nothing matches.
func (d *SourceDocument) CanonicalMIMEType() string {
	if d == nil {
		return ""
	}
	if mt := canonicalMIME(d.MIMEType); mt != "" {
		return mt
	}
	return canonicalMIME(strings.TrimPrefix(filepath.Ext(d.Name), "."))
}

func canonicalMIME(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	switch s {
	case "pdf", MIMETypePDF:
		return MIMETypePDF
	case "docx", MIMETypeDOCX:
		return MIMETypeDOCX
	case "txt", "text", MIMETypeText:
		return MIMETypeText
	case "md", "markdown", MIMETypeMarkdown:
		return MIMETypeMarkdown
	default:
		return ""
	}
}

// Passage is a bounded span of extracted document text used as a retrieval
// unit. Offset is the rune offset of Text within the source text.
type Passage struct {
	Text   string
	Offset int
}
