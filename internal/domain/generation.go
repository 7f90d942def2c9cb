package domain

import (
	"strings"
	"time"
)

// JobStatus is the lifecycle state of a generation job.
// processing -> completed | failed; terminal states are never re-run.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Difficulty labels match the 40/40/20 distribution buckets.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// NormalizeDifficulty lowers the label and falls back to medium for anything
// the model invented.
func NormalizeDifficulty(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// GenerationJob is one request to synthesize a batch of questions from one or
// more knowledge-base entries. A new client request always creates a new job;
// jobs are mutated exactly once, to their terminal state.
type GenerationJob struct {
	ID                string
	EventID           string
	KnowledgeBaseIDs  []string
	RequestedCount    int
	AdditionalContext string
	Status            JobStatus
	GeneratedCount    int
	ErrorMessage      string
	CompletedAt       *time.Time
	CreatedAt         time.Time
}

// Question is a generated multiple-choice question. Exactly four options;
// option order is semantic because CorrectAnswer indexes into it.
type Question struct {
	ID              string
	EventID         string
	KnowledgeBaseID string
	GenerationID    string
	Question        string
	Options         []string
	CorrectAnswer   int
	Explanation     string
	Difficulty      string
	TopicTags       []string
	IsPublished     bool
	CreatedAt       time.Time
}

// QuestionCandidate is the raw shape the generation API returns for one
// question, before validation.
type QuestionCandidate struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	TopicTags     []string `json:"topic_tags"`
}
