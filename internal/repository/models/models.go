package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON array in a TEXT column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// Event row of the events table
type Event struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	Organization   string    `db:"organization"`
	Slug           string    `db:"slug"`
	Description    string    `db:"description"`
	ImageURL       string    `db:"image_url"`
	TotalQuestions int       `db:"total_questions"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// KnowledgeBase row of the knowledge_base table
type KnowledgeBase struct {
	ID            string    `db:"id"`
	EventID       string    `db:"event_id"`
	FileName      string    `db:"file_name"`
	FileURL       string    `db:"file_url"`
	FileSize      int64     `db:"file_size"`
	FileType      string    `db:"file_type"`
	ExtractedText string    `db:"extracted_text"`
	ChunkCount    int       `db:"chunk_count"`
	CreatedAt     time.Time `db:"created_at"`
}

// QuestionGeneration row of the question_generations table
type QuestionGeneration struct {
	ID                string       `db:"id"`
	EventID           string       `db:"event_id"`
	KnowledgeBaseIDs  StringSlice  `db:"knowledge_base_ids"`
	RequestedCount    int          `db:"requested_count"`
	AdditionalContext string       `db:"additional_context"`
	Status            string       `db:"status"`
	GeneratedCount    int          `db:"generated_count"`
	ErrorMessage      string       `db:"error_message"`
	CompletedAt       sql.NullTime `db:"completed_at"`
	CreatedAt         time.Time    `db:"created_at"`
}

// Question row of the questions table
type Question struct {
	ID              string      `db:"id"`
	EventID         string      `db:"event_id"`
	KnowledgeBaseID string      `db:"knowledge_base_id"`
	GenerationID    string      `db:"generation_id"`
	Question        string      `db:"question"`
	Options         StringSlice `db:"options"`
	CorrectAnswer   int         `db:"correct_answer"`
	Explanation     string      `db:"explanation"`
	Difficulty      string      `db:"difficulty"`
	TopicTags       StringSlice `db:"topic_tags"`
	IsPublished     bool        `db:"is_published"`
	CreatedAt       time.Time   `db:"created_at"`
}
