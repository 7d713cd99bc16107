package scoring

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"quiz-backend/internal/models"
)

type fixedSuggestions struct {
	suggestions []string
	err         error
	called      bool
}

func (f *fixedSuggestions) GenerateSuggestions(_ context.Context, _ SuggestionRequest) ([]string, error) {
	f.called = true
	return f.suggestions, f.err
}

func TestFinalizeComputesTotals(t *testing.T) {
	agg := NewAggregator(&fixedSuggestions{suggestions: []string{"Do X", "Do Y"}})

	sub := &models.Submission{
		Status:              models.SubmissionInProgress,
		StartedAt:           time.Now().Add(-3 * time.Minute),
		TotalQuestions:      3,
		TotalPointsPossible: 15,
	}
	quiz := &models.Quiz{Subject: "math", GradeLevel: 6}
	results := []AnswerResult{
		{QuestionID: "q1", IsCorrect: true, PointsEarned: 5, TimeTakenSeconds: 30},
		{QuestionID: "q2", IsCorrect: false, PointsEarned: 2, TimeTakenSeconds: 60},
		{QuestionID: "q3", IsCorrect: true, PointsEarned: 5},
	}

	grade := agg.Finalize(context.Background(), sub, quiz, results)

	if sub.TotalPointsEarned != 12 {
		t.Errorf("Expected 12 points earned, got %d", sub.TotalPointsEarned)
	}
	if sub.CorrectAnswers != 2 {
		t.Errorf("Expected 2 correct answers, got %d", sub.CorrectAnswers)
	}
	if math.Abs(sub.ScorePercentage-80.0) > 1e-9 {
		t.Errorf("Expected score 80.0, got %f", sub.ScorePercentage)
	}
	if grade != "A-" {
		t.Errorf("Expected grade A-, got %s", grade)
	}
	if sub.Status != models.SubmissionCompleted {
		t.Errorf("Expected completed status, got %s", sub.Status)
	}
	if sub.CompletedAt == nil {
		t.Fatal("Expected CompletedAt to be set")
	}
	if sub.TimeTakenMinutes < 2.9 || sub.TimeTakenMinutes > 3.1 {
		t.Errorf("Expected roughly 3 minutes time taken, got %f", sub.TimeTakenMinutes)
	}

	if len(sub.PerformanceAnalysis.Strengths) != 2 {
		t.Errorf("Expected 2 strengths, got %v", sub.PerformanceAnalysis.Strengths)
	}
	if len(sub.PerformanceAnalysis.Weaknesses) != 1 || sub.PerformanceAnalysis.Weaknesses[0] != "q2" {
		t.Errorf("Expected weaknesses [q2], got %v", sub.PerformanceAnalysis.Weaknesses)
	}
	// Missing timing on q3 counts as zero: (30+60+0)/3 = 30.
	if math.Abs(sub.PerformanceAnalysis.AverageTimePerQuestion-30.0) > 1e-9 {
		t.Errorf("Expected average time 30.0, got %f", sub.PerformanceAnalysis.AverageTimePerQuestion)
	}
	if len(sub.ImprovementSuggestions) != 2 || sub.ImprovementSuggestions[0] != "Do X" {
		t.Errorf("Expected generated suggestions, got %v", sub.ImprovementSuggestions)
	}
}

func TestFinalizeZeroPossiblePoints(t *testing.T) {
	agg := NewAggregator(&fixedSuggestions{})
	sub := &models.Submission{StartedAt: time.Now()}
	grade := agg.Finalize(context.Background(), sub, &models.Quiz{}, nil)

	if sub.ScorePercentage != 0 {
		t.Errorf("Expected score 0 with no possible points, got %f", sub.ScorePercentage)
	}
	if grade != "F" {
		t.Errorf("Expected grade F, got %s", grade)
	}
}

func TestFinalizeSuggestionFallback(t *testing.T) {
	testCases := []struct {
		name       string
		provider   *fixedSuggestions
		results    []AnswerResult
		wantCalled bool
	}{
		{
			name:       "provider error",
			provider:   &fixedSuggestions{err: errors.New("unavailable")},
			results:    []AnswerResult{{QuestionID: "q1", IsCorrect: false}},
			wantCalled: true,
		},
		{
			name:       "too few suggestions",
			provider:   &fixedSuggestions{suggestions: []string{"only one"}},
			results:    []AnswerResult{{QuestionID: "q1", IsCorrect: false}},
			wantCalled: true,
		},
		{
			name:       "all correct skips provider",
			provider:   &fixedSuggestions{suggestions: []string{"Do X", "Do Y"}},
			results:    []AnswerResult{{QuestionID: "q1", IsCorrect: true, PointsEarned: 5}},
			wantCalled: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			agg := NewAggregator(tc.provider)
			sub := &models.Submission{StartedAt: time.Now(), TotalPointsPossible: 5}
			agg.Finalize(context.Background(), sub, &models.Quiz{}, tc.results)

			generic := GenericSuggestions()
			if len(sub.ImprovementSuggestions) != 2 {
				t.Fatalf("Expected 2 suggestions, got %d", len(sub.ImprovementSuggestions))
			}
			if sub.ImprovementSuggestions[0] != generic[0] {
				t.Errorf("Expected generic suggestions, got %v", sub.ImprovementSuggestions)
			}
			if tc.provider.called != tc.wantCalled {
				t.Errorf("Expected provider called=%v, got %v", tc.wantCalled, tc.provider.called)
			}
		})
	}
}

func TestLetterGradeBoundaries(t *testing.T) {
	testCases := []struct {
		score    float64
		expected string
	}{
		{100, "A+"},
		{90.0, "A+"},
		{89.99, "A"},
		{85, "A"},
		{80, "A-"},
		{75, "B+"},
		{70, "B"},
		{65, "B-"},
		{60, "C+"},
		{55, "C"},
		{50, "C-"},
		{49.99, "F"},
		{0, "F"},
	}

	for _, tc := range testCases {
		if got := LetterGrade(tc.score); got != tc.expected {
			t.Errorf("LetterGrade(%.2f) = %s, expected %s", tc.score, got, tc.expected)
		}
	}
}

func TestUpdateRunningAverage(t *testing.T) {
	testCases := []struct {
		name        string
		oldAverage  float64
		oldCount    int
		newScore    float64
		expectAvg   float64
		expectCount int
	}{
		{"first quiz", 0, 0, 75, 75, 1},
		{"weighted by pre-increment count", 80, 2, 100, 86.67, 3},
		{"unchanged when equal", 50, 4, 50, 50, 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			avg, count := UpdateRunningAverage(tc.oldAverage, tc.oldCount, tc.newScore)
			if math.Abs(avg-tc.expectAvg) > 1e-9 {
				t.Errorf("Expected average %.2f, got %.2f", tc.expectAvg, avg)
			}
			if count != tc.expectCount {
				t.Errorf("Expected count %d, got %d", tc.expectCount, count)
			}
		})
	}
}

func TestScorePercentageInvariant(t *testing.T) {
	agg := NewAggregator(&fixedSuggestions{suggestions: []string{"a", "b"}})

	for _, possible := range []int{1, 7, 13, 50} {
		for earned := 0; earned <= possible; earned++ {
			sub := &models.Submission{StartedAt: time.Now(), TotalPointsPossible: possible}
			agg.Finalize(context.Background(), sub, &models.Quiz{}, []AnswerResult{
				{QuestionID: "q1", IsCorrect: earned == possible, PointsEarned: earned},
			})

			expected := Round2(float64(earned) / float64(possible) * 100)
			if math.Abs(sub.ScorePercentage-expected) > 1e-9 {
				t.Errorf("score %d/%d: expected %.2f, got %.2f", earned, possible, expected, sub.ScorePercentage)
			}
			if sub.ScorePercentage < 0 || sub.ScorePercentage > 100 {
				t.Errorf("score %d/%d out of range: %.2f", earned, possible, sub.ScorePercentage)
			}
		}
	}
}
