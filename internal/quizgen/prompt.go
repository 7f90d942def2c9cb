package quizgen

import (
	"fmt"
	"strings"
)

// DefaultPromptTextBudget caps how much knowledge-base text one prompt embeds.
const DefaultPromptTextBudget = 12000

// TruncationMarker is appended when the knowledge-base text is cut.
const TruncationMarker = "\n[...truncated...]"

const systemPrompt = `You are an expert DECA exam question writer. Generate questions that EXACTLY match official DECA exam style.

CRITICAL STYLE REQUIREMENTS (based on official DECA exams):

1. QUESTION FORMAT:
   - Start with scenario: "Maria is preparing a marketing report..." or "A customer asks Roger..."
   - Use real names (common first names like Sarah, Kevin, Marcus, etc.)
   - End with specific question using patterns like:
     * "Which of the following..."
     * "What should [name] do..."
     * "Which technique/method/strategy..."
   - Questions must be 1-2 sentences maximum

2. ANSWER CHOICES (CRITICAL):
   - Each option must be 2-6 words MAXIMUM
   - Options must be parallel in structure
   - Use sentence case (capitalize first word only)
   - Examples of correct length:
     * "Ask his coworker for advice"
     * "Active listening"
     * "Refer to the style manual"
     * "Build positive relationships"
   - NO full sentences, NO explanations in options

3. EXPLANATION FORMAT (VERY IMPORTANT):
   - Must be 4-7 sentences long
   - First sentence: State correct answer and why it's correct
   - Middle sentences: Explain why each wrong answer is incorrect
   - Final sentence: Reinforce the concept being tested
   - Use connecting phrases like "Although...", "However...", "It's important to note..."
   - Sound authoritative and educational

4. DIFFICULTY LEVELS:
   - Easy: Test definitions and basic concepts (recall)
   - Medium: Test understanding and application (comprehension)
   - Hard: Test analysis, evaluation, and complex scenarios (critical thinking)

5. QUESTION STEMS TO USE:
   - "Which of the following..."
   - "What should [name]..."
   - "An example of ___ is..."
   - "Which technique/method/strategy..."
   - "[Name] wants to ___. What should [he/she]..."

EXAMPLE OF PERFECT DECA STYLE:

Question: "Kevin is editing a professional report and isn't sure whether to italicize or underscore a book title. To obtain the correct information, Kevin should"

Options:
A. Ask his coworker for advice
B. Refer to the style manual
C. Look up information in dictionary
D. Identify readers' preferences

Explanation: "Kevin should refer to the appropriate publisher's style manual because it provides the correct formatting guidelines for professional documents. Asking a coworker for advice may lead to incorrect information if the coworker is unsure. Looking up information in a dictionary won't provide specific formatting rules for book titles. Identifying readers' preferences is not relevant to standardized formatting conventions. Style manuals are the authoritative source for document formatting decisions."

Return ONLY valid JSON:
{
  "questions": [
    {
      "question": "Scenario with name and specific question",
      "options": ["2-6 words", "2-6 words", "2-6 words", "2-6 words"],
      "correct_answer": 0,
      "explanation": "4-7 sentence detailed explanation covering why correct answer is right and why each wrong answer is incorrect",
      "difficulty": "medium",
      "topic_tags": ["topic1", "topic2"]
    }
  ]
}`

// Prompt is the system/user instruction pair sent to the generation API.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt constructs the instruction pair for one generation batch. The
// knowledge-base text is truncated to textBudget characters (with a marker
// when cut); dist carries the exact per-difficulty counts the model must hit.
// Pure construction, no side effects.
func BuildPrompt(knowledgeBaseText, eventName, additionalContext string, questionCount int, dist Distribution, textBudget int) Prompt {
	if textBudget <= 0 {
		textBudget = DefaultPromptTextBudget
	}

	embedded := knowledgeBaseText
	if len(embedded) > textBudget {
		embedded = embedded[:textBudget] + TruncationMarker
	}

	contextPrompt := ""
	if additionalContext != "" {
		contextPrompt = "\n\nAdditional Context: " + additionalContext
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate EXACTLY %d DECA-style questions for: %s\n\n", questionCount, eventName)
	fmt.Fprintf(&sb, "REQUIRED DIFFICULTY DISTRIBUTION (MUST FOLLOW EXACTLY):\n")
	fmt.Fprintf(&sb, "- %d EASY questions (basic definitions and concepts)\n", dist.Easy)
	fmt.Fprintf(&sb, "- %d MEDIUM questions (understanding and application)\n", dist.Medium)
	fmt.Fprintf(&sb, "- %d HARD questions (analysis and complex scenarios)\n\n", dist.Hard)
	fmt.Fprintf(&sb, "Knowledge Base:\n%s%s\n\n", embedded, contextPrompt)
	fmt.Fprintf(&sb, "CRITICAL REMINDERS:\n")
	fmt.Fprintf(&sb, "- Use real names in scenarios\n")
	fmt.Fprintf(&sb, "- Keep options to 2-6 words MAXIMUM\n")
	fmt.Fprintf(&sb, "- Write 4-7 sentence explanations\n")
	fmt.Fprintf(&sb, "- Generate EXACTLY %d easy + %d medium + %d hard questions\n", dist.Easy, dist.Medium, dist.Hard)
	fmt.Fprintf(&sb, "- Match exact DECA style from examples")

	return Prompt{
		System: systemPrompt,
		User:   sb.String(),
	}
}
