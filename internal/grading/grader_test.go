package grading

import (
	"context"
	"errors"
	"testing"

	"quiz-backend/internal/models"
)

type fixedEvaluator struct {
	eval *Evaluation
	err  error
}

func (f *fixedEvaluator) EvaluateAnswer(_ context.Context, _ EvaluationRequest) (*Evaluation, error) {
	return f.eval, f.err
}

func testQuiz() *models.Quiz {
	return &models.Quiz{Subject: "science", GradeLevel: 7}
}

func TestGradeObjectiveQuestions(t *testing.T) {
	grader := NewGrader(&fixedEvaluator{err: errors.New("should not be called")})

	testCases := []struct {
		name          string
		questionType  models.QuestionType
		correctAnswer string
		userAnswer    string
		expectCorrect bool
		expectPoints  int
	}{
		{"multiple choice exact", models.QuestionMultipleChoice, "Mitochondria", "Mitochondria", true, 5},
		{"multiple choice case insensitive", models.QuestionMultipleChoice, "Mitochondria", "mitochondria", true, 5},
		{"multiple choice wrong", models.QuestionMultipleChoice, "Mitochondria", "Ribosome", false, 0},
		{"true false case insensitive", models.QuestionTrueFalse, "True", "TRUE", true, 5},
		{"true false wrong", models.QuestionTrueFalse, "True", "False", false, 0},
		{"whitespace trimmed", models.QuestionMultipleChoice, "Mitochondria", "  mitochondria ", true, 5},
		// Partial overlap never earns partial credit on objective types.
		{"near miss is zero", models.QuestionMultipleChoice, "The Mitochondria", "Mitochondria", false, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			question := &models.Question{
				Type:          tc.questionType,
				CorrectAnswer: tc.correctAnswer,
				Points:        5,
			}
			result, err := grader.Grade(context.Background(), testQuiz(), question, tc.userAnswer)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if result.IsCorrect != tc.expectCorrect {
				t.Errorf("Expected IsCorrect=%v, got %v", tc.expectCorrect, result.IsCorrect)
			}
			if result.PointsEarned != tc.expectPoints {
				t.Errorf("Expected %d points, got %d", tc.expectPoints, result.PointsEarned)
			}
		})
	}
}

func TestGradeFreeTextWithEvaluator(t *testing.T) {
	grader := NewGrader(&fixedEvaluator{
		eval: &Evaluation{IsCorrect: true, PartialCredit: 0.75, Feedback: "Mostly right"},
	})

	question := &models.Question{
		Type:          models.QuestionEssay,
		CorrectAnswer: "Plants convert sunlight into chemical energy",
		Points:        8,
	}

	result, err := grader.Grade(context.Background(), testQuiz(), question, "plants use light to make energy")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsCorrect {
		t.Error("Expected IsCorrect to be true")
	}
	// round(8 * 0.75) = 6
	if result.PointsEarned != 6 {
		t.Errorf("Expected 6 points, got %d", result.PointsEarned)
	}
	if result.Explanation != "Mostly right" {
		t.Errorf("Expected evaluator feedback, got %q", result.Explanation)
	}
}

func TestGradeFreeTextClampsPartialCredit(t *testing.T) {
	testCases := []struct {
		name         string
		credit       float64
		expectPoints int
	}{
		{"above one", 1.5, 8},
		{"below zero", -0.5, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			grader := NewGrader(&fixedEvaluator{
				eval: &Evaluation{IsCorrect: false, PartialCredit: tc.credit},
			})
			question := &models.Question{Type: models.QuestionShortAnswer, Points: 8}
			result, err := grader.Grade(context.Background(), testQuiz(), question, "whatever")
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if result.PointsEarned != tc.expectPoints {
				t.Errorf("Expected %d points, got %d", tc.expectPoints, result.PointsEarned)
			}
		})
	}
}

func TestGradeFreeTextFallsBackOnEvaluatorFailure(t *testing.T) {
	grader := NewGrader(&fixedEvaluator{err: errors.New("upstream unavailable")})

	question := &models.Question{
		Type:          models.QuestionShortAnswer,
		CorrectAnswer: "the water cycle",
		Points:        6,
	}

	// "the water cycle" vs "the water cycle" -> similarity 1.0 > 0.7
	result, err := grader.Grade(context.Background(), testQuiz(), question, "the water cycle")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsCorrect {
		t.Error("Expected fallback to mark matching answer correct")
	}
	if result.PointsEarned != 6 {
		t.Errorf("Expected full 6 points, got %d", result.PointsEarned)
	}

	// "water" vs "the water cycle" -> 1/3, below threshold, scaled points.
	result, err = grader.Grade(context.Background(), testQuiz(), question, "water")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsCorrect {
		t.Error("Expected low-overlap answer to be incorrect")
	}
	// round(6 * 1/3) = 2
	if result.PointsEarned != 2 {
		t.Errorf("Expected 2 scaled points, got %d", result.PointsEarned)
	}
}

func TestGradeUnknownTypeErrors(t *testing.T) {
	grader := NewGrader(&fixedEvaluator{})
	question := &models.Question{Type: "matching", Points: 5}

	if _, err := grader.Grade(context.Background(), testQuiz(), question, "a"); err == nil {
		t.Error("Expected error for unknown question type")
	}
}
