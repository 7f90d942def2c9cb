package quizgen

import (
	"strings"

	"bizprep/internal/domain"

	"go.uber.org/zap"
)

const (
	optionCount          = 4
	optionMinWords       = 2
	optionMaxWords       = 6
	explanationMinLength = 200
)

// ValidateCandidates filters raw candidates down to the ones that satisfy the
// structural rules: non-empty question, exactly four options of 2-6 words
// each, correct-answer index in [0,3], and an explanation of at least 200
// characters (a cheap proxy for "substantial, multi-sentence"). Failing
// candidates are dropped silently; only the aggregate counts are reported.
//
// The accepted per-difficulty tally is logged against the requested
// distribution as a diagnostic, but drift is never corrected - the 40/40/20
// target is a generation-time instruction, not a post-hoc invariant.
func ValidateCandidates(candidates []*domain.QuestionCandidate, requested Distribution, logger *zap.Logger) ([]*domain.QuestionCandidate, error) {
	accepted := make([]*domain.QuestionCandidate, 0, len(candidates))
	byDifficulty := map[string]int{}

	for _, c := range candidates {
		if c == nil || !isValidCandidate(c) {
			continue
		}
		cleaned := &domain.QuestionCandidate{
			Question:      strings.TrimSpace(c.Question),
			Options:       trimAll(c.Options),
			CorrectAnswer: c.CorrectAnswer,
			Explanation:   strings.TrimSpace(c.Explanation),
			Difficulty:    domain.NormalizeDifficulty(c.Difficulty),
			TopicTags:     c.TopicTags,
		}
		if cleaned.TopicTags == nil {
			cleaned.TopicTags = []string{}
		}
		accepted = append(accepted, cleaned)
		byDifficulty[cleaned.Difficulty]++
	}

	logger.Info("Validated generation candidates",
		zap.Int("received", len(candidates)),
		zap.Int("accepted", len(accepted)),
		zap.Int("easy", byDifficulty[domain.DifficultyEasy]),
		zap.Int("medium", byDifficulty[domain.DifficultyMedium]),
		zap.Int("hard", byDifficulty[domain.DifficultyHard]),
		zap.Int("requested_easy", requested.Easy),
		zap.Int("requested_medium", requested.Medium),
		zap.Int("requested_hard", requested.Hard),
	)

	if len(accepted) == 0 {
		return nil, domain.NewNoValidQuestionsError(len(candidates))
	}
	return accepted, nil
}

func isValidCandidate(c *domain.QuestionCandidate) bool {
	if strings.TrimSpace(c.Question) == "" {
		return false
	}
	if len(c.Options) != optionCount {
		return false
	}
	for _, opt := range c.Options {
		words := len(strings.Fields(opt))
		if words < optionMinWords || words > optionMaxWords {
			return false
		}
	}
	if c.CorrectAnswer < 0 || c.CorrectAnswer >= optionCount {
		return false
	}
	if len(strings.TrimSpace(c.Explanation)) < explanationMinLength {
		return false
	}
	return true
}

func trimAll(opts []string) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = strings.TrimSpace(o)
	}
	return out
}
