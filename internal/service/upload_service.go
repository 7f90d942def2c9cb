package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"bizprep/internal/config"
	"bizprep/internal/domain"
	"bizprep/internal/dto"
	"bizprep/internal/logger"
	"bizprep/internal/pdftext"
	"bizprep/internal/util"

	"go.uber.org/zap"
)

const pdfContentType = "application/pdf"

// UploadService defines the interface for study guide ingestion
type UploadService interface {
	UploadStudyGuide(ctx context.Context, eventID, fileName string, data []byte) (*dto.UploadResponse, error)
}

type uploadService struct {
	events    domain.EventRepository
	knowledge domain.KnowledgeBaseRepository
	storage   domain.FileStorage
	extractor domain.TextExtractor
	cfg       config.UploadConfig
}

// NewUploadService creates a new instance of uploadService
func NewUploadService(
	events domain.EventRepository,
	knowledge domain.KnowledgeBaseRepository,
	storage domain.FileStorage,
	extractor domain.TextExtractor,
	cfg config.UploadConfig,
) UploadService {
	return &uploadService{
		events:    events,
		knowledge: knowledge,
		storage:   storage,
		extractor: extractor,
		cfg:       cfg,
	}
}

// UploadStudyGuide validates and stores one uploaded PDF, extracts its text
// and persists the resulting knowledge base entry. The file is uploaded to
// object storage only after extraction succeeds; if the database insert then
// fails, the stored object is deleted best-effort.
func (s *uploadService) UploadStudyGuide(ctx context.Context, eventID, fileName string, data []byte) (*dto.UploadResponse, error) {
	if len(data) == 0 {
		return nil, domain.NewInvalidInputError("uploaded file is empty")
	}
	if s.cfg.MaxFileSize > 0 && int64(len(data)) > s.cfg.MaxFileSize {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("file exceeds maximum size of %d bytes", s.cfg.MaxFileSize))
	}
	if !strings.EqualFold(path.Ext(fileName), ".pdf") || !pdftext.IsPDF(data) {
		return nil, domain.NewInvalidInputError("only PDF files are supported")
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.NewNotFoundError("event not found: " + eventID)
	}

	text, err := s.extractor.Extract(data)
	if err != nil {
		return nil, domain.NewInvalidInputError("could not read PDF: " + err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewInvalidInputError("no extractable text found in PDF")
	}

	chunks := util.ChunkText(text, util.DefaultChunkSize, util.DefaultChunkOverlap)

	entry := &domain.KnowledgeBaseEntry{
		ID:            util.NewULID(),
		EventID:       event.ID,
		FileName:      fileName,
		FileSize:      int64(len(data)),
		FileType:      pdfContentType,
		ExtractedText: text,
		ChunkCount:    len(chunks),
	}

	objectKey := fmt.Sprintf("knowledge-base/%s/%s_%s", event.ID, entry.ID, fileName)
	fileURL, err := s.storage.Upload(ctx, objectKey, data, pdfContentType)
	if err != nil {
		return nil, domain.NewInternalError("failed to store uploaded file", err)
	}
	entry.FileURL = fileURL

	if err := entry.Validate(); err != nil {
		s.cleanupStoredFile(ctx, fileURL)
		return nil, err
	}

	if err := s.knowledge.Save(ctx, entry); err != nil {
		s.cleanupStoredFile(ctx, fileURL)
		return nil, err
	}

	logger.Get().Info("Study guide ingested",
		zap.String("event_id", event.ID),
		zap.String("knowledge_base_id", entry.ID),
		zap.String("file_name", fileName),
		zap.Int("chunk_count", entry.ChunkCount),
		zap.Int("text_length", len(text)),
	)

	return &dto.UploadResponse{
		Success: true,
		KnowledgeBase: dto.KnowledgeBaseResponse{
			ID:         entry.ID,
			EventID:    entry.EventID,
			FileName:   entry.FileName,
			FileURL:    entry.FileURL,
			FileSize:   entry.FileSize,
			FileType:   entry.FileType,
			ChunkCount: entry.ChunkCount,
			CreatedAt:  entry.CreatedAt,
		},
		Message: "File processed successfully",
	}, nil
}

func (s *uploadService) cleanupStoredFile(ctx context.Context, fileURL string) {
	if err := s.storage.Delete(ctx, fileURL); err != nil {
		logger.Get().Warn("Failed to clean up stored file after ingestion error",
			zap.String("file_url", fileURL),
			zap.Error(err),
		)
	}
}
