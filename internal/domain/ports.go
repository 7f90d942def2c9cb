package domain

import "context"

// FileStorage abstracts the object storage backend holding uploaded PDFs.
type FileStorage interface {
	// Upload stores data under key and returns a publicly resolvable URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes the object behind a previously returned public URL.
	// Used for best-effort cleanup only.
	Delete(ctx context.Context, publicURL string) error
}

// TextExtractor turns raw uploaded bytes into plain text.
type TextExtractor interface {
	Extract(data []byte) (string, error)
}

// QuestionGenerator sends a built prompt pair to the hosted model and returns
// parsed, unvalidated candidates.
type QuestionGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) ([]*QuestionCandidate, error)
}
