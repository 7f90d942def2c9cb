package dto

import "time"

// KnowledgeBaseResponse is the stored record returned by POST /api/upload
type KnowledgeBaseResponse struct {
	ID         string    `json:"id"`
	EventID    string    `json:"eventId"`
	FileName   string    `json:"fileName"`
	FileURL    string    `json:"fileUrl"`
	FileSize   int64     `json:"fileSize"`
	FileType   string    `json:"fileType"`
	ChunkCount int       `json:"chunkCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UploadResponse wraps POST /api/upload
type UploadResponse struct {
	Success       bool                  `json:"success"`
	KnowledgeBase KnowledgeBaseResponse `json:"knowledgeBase"`
	Message       string                `json:"message"`
}
