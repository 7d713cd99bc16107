package ai

import (
	"context"

	"quiz-backend/internal/grading"
	"quiz-backend/internal/scoring"
)

// Stub is the deterministic offline Generator used when no API key is
// configured. It never fails: questions come from the built-in sample bank,
// evaluation uses word-overlap similarity, and hints and suggestions are
// fixed text.
type Stub struct{}

func NewStub() *Stub {
	return &Stub{}
}

func (s *Stub) GenerateQuestions(_ context.Context, req GenerationRequest) ([]GeneratedQuestion, error) {
	return SampleQuestions(req.Subject, req.Count), nil
}

func (s *Stub) GenerateHint(_ context.Context, _, _ string, _ int) (string, error) {
	return GenericHint, nil
}

func (s *Stub) EvaluateAnswer(_ context.Context, req grading.EvaluationRequest) (*grading.Evaluation, error) {
	credit := grading.Similarity(req.UserAnswer, req.CorrectAnswer)
	feedback := "Your answer covers little of the expected response."
	if credit > 0.7 {
		feedback = "Your answer matches the expected response well."
	} else if credit > 0.3 {
		feedback = "Your answer covers part of the expected response."
	}
	return &grading.Evaluation{
		IsCorrect:     credit > 0.7,
		PartialCredit: credit,
		Feedback:      feedback,
	}, nil
}

func (s *Stub) GenerateSuggestions(_ context.Context, _ scoring.SuggestionRequest) ([]string, error) {
	return scoring.GenericSuggestions(), nil
}
