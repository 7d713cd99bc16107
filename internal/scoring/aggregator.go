package scoring

import (
	"context"
	"log"
	"math"
	"time"

	"quiz-backend/internal/models"
)

// AnswerResult is one graded answer as the aggregator sees it.
type AnswerResult struct {
	QuestionID       string
	IsCorrect        bool
	PointsEarned     int
	TimeTakenSeconds int
}

// SuggestionRequest carries the performance context the generation service
// needs to produce improvement suggestions.
type SuggestionRequest struct {
	Subject            string
	GradeLevel         int
	ScorePercentage    float64
	IncorrectQuestions []string
}

// SuggestionProvider is the slice of the generation service the aggregator
// uses. It must return exactly two actionable suggestions.
type SuggestionProvider interface {
	GenerateSuggestions(ctx context.Context, req SuggestionRequest) ([]string, error)
}

// GenericSuggestions is the fixed pair substituted when the generation
// service fails or when there are no incorrect answers to improve on.
func GenericSuggestions() []string {
	return []string{
		"Review the questions you missed and re-read the related material before your next attempt.",
		"Practice with a fresh quiz on the same topic to reinforce what you have learned.",
	}
}

// Aggregator combines per-answer grading results into the final state of a
// completed submission.
type Aggregator struct {
	suggestions SuggestionProvider
}

func NewAggregator(suggestions SuggestionProvider) *Aggregator {
	return &Aggregator{suggestions: suggestions}
}

// Finalize mutates sub into its completed state from the graded results and
// returns the derived letter grade. The zero-possible-points case scores 0.
func (a *Aggregator) Finalize(ctx context.Context, sub *models.Submission, quiz *models.Quiz, results []AnswerResult) string {
	earned := 0
	correct := 0
	for _, r := range results {
		earned += r.PointsEarned
		if r.IsCorrect {
			correct++
		}
	}

	sub.TotalPointsEarned = earned
	sub.CorrectAnswers = correct
	if sub.TotalPointsPossible > 0 {
		sub.ScorePercentage = Round2(float64(earned) / float64(sub.TotalPointsPossible) * 100)
	} else {
		sub.ScorePercentage = 0
	}

	now := time.Now()
	sub.Status = models.SubmissionCompleted
	sub.CompletedAt = &now
	if !sub.StartedAt.IsZero() {
		sub.TimeTakenMinutes = Round2(now.Sub(sub.StartedAt).Minutes())
	}

	sub.PerformanceAnalysis = buildAnalysis(results)
	sub.ImprovementSuggestions = a.buildSuggestions(ctx, sub, quiz, results)

	return LetterGrade(sub.ScorePercentage)
}

// buildAnalysis groups question ids by outcome and averages answer timing.
// Answers without timing data count as zero seconds, which drags the average
// down when timing is only partially recorded; kept for parity with how
// history was always computed.
func buildAnalysis(results []AnswerResult) models.PerformanceAnalysis {
	analysis := models.PerformanceAnalysis{
		Strengths:  []string{},
		Weaknesses: []string{},
	}

	totalSeconds := 0
	for _, r := range results {
		if r.IsCorrect {
			analysis.Strengths = append(analysis.Strengths, r.QuestionID)
		} else {
			analysis.Weaknesses = append(analysis.Weaknesses, r.QuestionID)
		}
		totalSeconds += r.TimeTakenSeconds
	}

	if len(results) > 0 {
		analysis.AverageTimePerQuestion = Round2(float64(totalSeconds) / float64(len(results)))
	}

	return analysis
}

func (a *Aggregator) buildSuggestions(ctx context.Context, sub *models.Submission, quiz *models.Quiz, results []AnswerResult) []string {
	incorrect := make([]string, 0, len(results))
	for _, r := range results {
		if !r.IsCorrect {
			incorrect = append(incorrect, r.QuestionID)
		}
	}
	if len(incorrect) == 0 {
		return GenericSuggestions()
	}

	suggestions, err := a.suggestions.GenerateSuggestions(ctx, SuggestionRequest{
		Subject:            quiz.Subject,
		GradeLevel:         quiz.GradeLevel,
		ScorePercentage:    sub.ScorePercentage,
		IncorrectQuestions: incorrect,
	})
	if err != nil || len(suggestions) < 2 {
		log.Printf("suggestion generation unavailable, using generic suggestions: %v", err)
		return GenericSuggestions()
	}
	return suggestions[:2]
}

// LetterGrade maps a 0-100 score to its letter via fixed thresholds.
func LetterGrade(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 80:
		return "A-"
	case score >= 75:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 65:
		return "B-"
	case score >= 60:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 50:
		return "C-"
	default:
		return "F"
	}
}

// UpdateRunningAverage folds a new score into a user's rolling average. The
// old count must be used as the weight before it is incremented.
func UpdateRunningAverage(oldAverage float64, oldCount int, newScore float64) (float64, int) {
	newAverage := Round2((oldAverage*float64(oldCount) + newScore) / float64(oldCount+1))
	return newAverage, oldCount + 1
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
