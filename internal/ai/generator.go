package ai

import (
	"context"

	"quiz-backend/internal/grading"
	"quiz-backend/internal/models"
	"quiz-backend/internal/scoring"
)

// GenerationRequest describes the quiz content to produce.
type GenerationRequest struct {
	Subject    string
	GradeLevel int
	Difficulty models.Difficulty
	Count      int
	Topics     []string
}

// GeneratedQuestion is a question as returned by the generation service,
// before it is attached to a quiz.
type GeneratedQuestion struct {
	Text          string              `json:"text"`
	Type          models.QuestionType `json:"type"`
	Options       []string            `json:"options,omitempty"`
	CorrectAnswer string              `json:"correct_answer"`
	Points        int                 `json:"points"`
	Difficulty    models.Difficulty   `json:"difficulty"`
}

// Generator is the generative backend capability: question generation,
// hints, free-text answer evaluation, and improvement suggestions. It is
// selected once at startup — either the OpenAI-backed client or the offline
// stub — and injected everywhere it is needed.
type Generator interface {
	GenerateQuestions(ctx context.Context, req GenerationRequest) ([]GeneratedQuestion, error)
	GenerateHint(ctx context.Context, questionText, subject string, gradeLevel int) (string, error)
	EvaluateAnswer(ctx context.Context, req grading.EvaluationRequest) (*grading.Evaluation, error)
	GenerateSuggestions(ctx context.Context, req scoring.SuggestionRequest) ([]string, error)
}

// GenericHint is the fixed fallback when hint generation is unavailable.
const GenericHint = "Take another careful look at the question and rule out the answers you know are wrong."
