package service

import (
	"context"

	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/pkg/serverutils"
	"ai-interview-be/pkg/extract"
)

type IDocumentService interface {
	ExtractText(ctx context.Context, filename string, content []byte) (*dto.UploadDocumentResponse, error)
}

// documentService gates uploads on the supported extensions and extracts
// plain text. Extraction failures are logged and produce empty text, never
// an upload error.
type documentService struct {
	logger logger.ILogger
}

func NewDocumentService(log logger.ILogger) IDocumentService {
	return &documentService{logger: log}
}

func (c *documentService) ExtractText(ctx context.Context, filename string, content []byte) (*dto.UploadDocumentResponse, error) {
	format := extract.FormatFromFilename(filename)
	if format == "" {
		return nil, serverutils.BadRequestError("only PDF and DOCX files are supported")
	}

	text, err := extract.Text(content, format)
	if err != nil {
		c.logger.Warn("DocumentService", "Text extraction failed", map[string]interface{}{
			"filename": filename,
			"format":   format,
			"error":    err.Error(),
		})
		text = ""
	}

	return &dto.UploadDocumentResponse{
		Text:     text,
		Filename: filename,
	}, nil
}
