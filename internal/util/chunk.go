package util

import "strings"

const (
	// DefaultChunkSize is the window length in characters.
	DefaultChunkSize = 2000
	// DefaultChunkOverlap is how many characters consecutive windows share.
	DefaultChunkOverlap = 200
)

// ChunkText splits text into overlapping windows, preferring to break at the
// last sentence or line boundary when one exists past the midpoint of the
// window. Chunks are trimmed and empty chunks are dropped.
func ChunkText(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = DefaultChunkOverlap
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + chunkSize
		if end > len(text) {
			end = len(text)
		}
		chunk := text[start:end]

		if end < len(text) {
			lastPeriod := strings.LastIndex(chunk, ".")
			lastNewline := strings.LastIndex(chunk, "\n")
			breakPoint := lastPeriod
			if lastNewline > breakPoint {
				breakPoint = lastNewline
			}

			if breakPoint > chunkSize/2 {
				chunk = text[start : start+breakPoint+1]
				start = start + breakPoint + 1 - overlap
			} else {
				start = end - overlap
			}
		} else {
			start = end
		}

		if trimmed := strings.TrimSpace(chunk); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
	}

	return chunks
}
