package domain

import "time"

// KnowledgeBaseEntry holds one uploaded study guide and its extracted text,
// scoped to one event. Entries are never mutated after creation; a failed
// follow-up write only triggers best-effort deletion of the stored file.
type KnowledgeBaseEntry struct {
	ID            string
	EventID       string
	FileName      string
	FileURL       string
	FileSize      int64
	FileType      string
	ExtractedText string
	ChunkCount    int
	CreatedAt     time.Time
}

// Validate validates the knowledge base entry
func (k *KnowledgeBaseEntry) Validate() error {
	if k.EventID == "" {
		return NewInvalidInputError("event ID is required")
	}
	if k.FileName == "" {
		return NewInvalidInputError("file name is required")
	}
	if k.ExtractedText == "" {
		return NewInvalidInputError("extracted text is required")
	}
	return nil
}
