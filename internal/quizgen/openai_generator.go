package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"bizprep/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// OpenAIQuestionGenerator implements domain.QuestionGenerator using the
// langchaingo OpenAI chat client in JSON mode.
type OpenAIQuestionGenerator struct {
	llm    llms.Model
	model  string
	logger *zap.Logger
}

// NewOpenAIQuestionGenerator creates a generator bound to one model. The API
// key must be present; its absence is a provider configuration error the
// caller reports synchronously.
func NewOpenAIQuestionGenerator(apiKey, model string, logger *zap.Logger) (*OpenAIQuestionGenerator, error) {
	if apiKey == "" {
		return nil, domain.NewProviderConfigError("OpenAI API key is not configured")
	}
	if model == "" {
		return nil, domain.NewProviderConfigError("OpenAI model name is not configured")
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, domain.NewProviderConfigError("failed to create OpenAI client: " + err.Error())
	}

	return &OpenAIQuestionGenerator{
		llm:    llm,
		model:  model,
		logger: logger,
	}, nil
}

// generationPayload is the JSON object the prompt instructs the model to
// return.
type generationPayload struct {
	Questions []*domain.QuestionCandidate `json:"questions"`
}

// Generate sends the prompt pair and parses the response into candidates.
// One attempt only; retry policy belongs to the caller.
func (g *OpenAIQuestionGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) ([]*domain.QuestionCandidate, error) {
	resp, err := g.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
			llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
		},
		llms.WithJSONMode(),
	)
	if err != nil {
		g.logger.Error("Generation API call rejected", zap.String("model", g.model), zap.Error(err))
		return nil, domain.NewGenerationAPIError(err)
	}

	if resp == nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return nil, domain.NewGenerationEmptyError()
	}
	content := resp.Choices[0].Content

	candidates, err := ParseCandidates(content)
	if err != nil {
		g.logger.Error("Generation API returned unparseable payload",
			zap.String("model", g.model),
			zap.Int("content_length", len(content)),
			zap.Error(err),
		)
		return nil, domain.NewGenerationMalformedError(err)
	}

	g.logger.Info("Parsed generation response",
		zap.String("model", g.model),
		zap.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

// ParseCandidates decodes the model output. The response is requested as a
// JSON object, but models occasionally wrap it in prose or a fenced code
// block, so parsing falls back to extracting the embedded object before
// giving up.
func ParseCandidates(content string) ([]*domain.QuestionCandidate, error) {
	var payload generationPayload

	raw := strings.TrimSpace(content)
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		return payload.Questions, nil
	}

	extracted, ok := extractJSONObject(raw)
	if !ok {
		return nil, errors.New("no JSON object found in response")
	}
	if err := json.Unmarshal([]byte(extracted), &payload); err != nil {
		return nil, err
	}
	return payload.Questions, nil
}

// extractJSONObject pulls a JSON object out of surrounding text: first by
// stripping a fenced code block, then by slicing from the first '{' to the
// last '}'.
func extractJSONObject(s string) (string, bool) {
	if idx := strings.Index(s, "```json"); idx != -1 {
		rest := s[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end]), true
		}
	}
	if idx := strings.Index(s, "```"); idx != -1 {
		rest := s[idx+3:]
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end]), true
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

var _ domain.QuestionGenerator = (*OpenAIQuestionGenerator)(nil)
