package normalisers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// MaxDocumentSize caps reference documents read from disk.
const MaxDocumentSize = 25 << 20

// LoadFile reads a reference document. An empty mimeType is resolved from
// the file extension by the registry.
func LoadFile(path, mimeType string) (*domain.SourceDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if len(content) > MaxDocumentSize {
		return nil, fmt.Errorf("document %s exceeds %d MiB: %w", filepath.Base(path), MaxDocumentSize>>20, domain.ErrInvalidInput)
	}

	return &domain.SourceDocument{
		Name:     filepath.Base(path),
		MIMEType: mimeType,
		Content:  content,
	}, nil
}
