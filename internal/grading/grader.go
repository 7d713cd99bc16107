package grading

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"quiz-backend/internal/models"
)

// similarityThreshold is the overlap ratio above which a free-text answer
// graded by the offline fallback counts as correct.
const similarityThreshold = 0.7

// Result is the outcome of grading a single answer.
type Result struct {
	IsCorrect    bool   `json:"is_correct"`
	PointsEarned int    `json:"points_earned"`
	Explanation  string `json:"explanation,omitempty"`
}

// Evaluation is what the generation service returns for a free-text answer.
type Evaluation struct {
	IsCorrect     bool    `json:"is_correct"`
	PartialCredit float64 `json:"partial_credit"`
	Feedback      string  `json:"feedback"`
}

// EvaluationRequest carries the context the generation service needs to
// judge a free-text answer.
type EvaluationRequest struct {
	QuestionText  string
	UserAnswer    string
	CorrectAnswer string
	Subject       string
	GradeLevel    int
}

// AnswerEvaluator is the slice of the generation service the grader uses.
type AnswerEvaluator interface {
	EvaluateAnswer(ctx context.Context, req EvaluationRequest) (*Evaluation, error)
}

// Grader scores a single answer against its question. Objective types are
// matched exactly; free-text types are delegated to the evaluator with a
// word-overlap fallback when the evaluator fails. Grading has no side
// effects; persisting the resulting answer is the caller's job.
type Grader struct {
	evaluator AnswerEvaluator
}

func NewGrader(evaluator AnswerEvaluator) *Grader {
	return &Grader{evaluator: evaluator}
}

func (g *Grader) Grade(ctx context.Context, quiz *models.Quiz, question *models.Question, userAnswer string) (Result, error) {
	switch question.Type {
	case models.QuestionMultipleChoice, models.QuestionTrueFalse:
		return gradeExact(question, userAnswer), nil
	case models.QuestionShortAnswer, models.QuestionEssay:
		return g.gradeFreeText(ctx, quiz, question, userAnswer), nil
	default:
		return Result{}, fmt.Errorf("unknown question type %q", question.Type)
	}
}

// gradeExact scores objective questions: case-insensitive equality, full
// points or nothing, never partial credit.
func gradeExact(question *models.Question, userAnswer string) Result {
	submitted := strings.TrimSpace(userAnswer)
	expected := strings.TrimSpace(question.CorrectAnswer)
	if strings.EqualFold(submitted, expected) {
		return Result{IsCorrect: true, PointsEarned: question.Points}
	}
	return Result{IsCorrect: false, PointsEarned: 0}
}

func (g *Grader) gradeFreeText(ctx context.Context, quiz *models.Quiz, question *models.Question, userAnswer string) Result {
	eval, err := g.evaluator.EvaluateAnswer(ctx, EvaluationRequest{
		QuestionText:  question.Text,
		UserAnswer:    userAnswer,
		CorrectAnswer: question.CorrectAnswer,
		Subject:       quiz.Subject,
		GradeLevel:    quiz.GradeLevel,
	})
	if err != nil {
		log.Printf("answer evaluation unavailable, using similarity fallback: %v", err)
		return gradeBySimilarity(question, userAnswer)
	}

	credit := eval.PartialCredit
	if credit < 0 {
		credit = 0
	}
	if credit > 1 {
		credit = 1
	}

	return Result{
		IsCorrect:    eval.IsCorrect,
		PointsEarned: int(math.Round(float64(question.Points) * credit)),
		Explanation:  eval.Feedback,
	}
}

// gradeBySimilarity is the deterministic offline path for free-text answers.
// A match above the threshold earns full points; anything below earns points
// scaled by the overlap ratio.
func gradeBySimilarity(question *models.Question, userAnswer string) Result {
	sim := Similarity(userAnswer, question.CorrectAnswer)
	if sim > similarityThreshold {
		return Result{
			IsCorrect:    true,
			PointsEarned: question.Points,
			Explanation:  "Your answer closely matches the expected response.",
		}
	}
	return Result{
		IsCorrect:    false,
		PointsEarned: int(math.Round(float64(question.Points) * sim)),
		Explanation:  fmt.Sprintf("Your answer matched about %d%% of the expected response.", int(sim*100)),
	}
}
