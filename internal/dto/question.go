package dto

// QuestionResponse is one question in the quiz format the frontend consumes
type QuestionResponse struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	TopicTags     []string `json:"topicTags"`
}

// QuestionListResponse wraps GET /api/questions
type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
	Count     int                `json:"count"`
}
