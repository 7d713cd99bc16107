package adaptive

import (
	"math"
	"testing"

	"quiz-backend/internal/models"
)

// newestFirst builds history records from scores listed oldest to newest,
// reversing them into the newest-first order callers supply.
func newestFirst(scores ...float64) []AttemptRecord {
	records := make([]AttemptRecord, len(scores))
	for i, s := range scores {
		records[len(scores)-1-i] = AttemptRecord{ScorePercentage: s, Difficulty: models.DifficultyMedium}
	}
	return records
}

func TestRecommendColdStart(t *testing.T) {
	rec := NewEstimator().Recommend(nil)

	if rec.Difficulty != models.DifficultyMixed {
		t.Errorf("Expected mixed difficulty for empty history, got %s", rec.Difficulty)
	}
	if rec.Trend != TrendUnknown {
		t.Errorf("Expected unknown trend, got %s", rec.Trend)
	}
	if rec.Reasoning == "" {
		t.Error("Expected default reasoning text")
	}
}

func TestRecommendDecisionTable(t *testing.T) {
	testCases := []struct {
		name        string
		scores      []float64 // oldest to newest
		expected    models.Difficulty
		expectTrend Trend
	}{
		// avg=50 with positive trend: the <60 branch still wins because the
		// table is evaluated in order and 85/70 don't match first.
		{"improving but low average", []float64{40, 45, 50, 55, 60}, models.DifficultyEasy, TrendImproving},
		{"high average improving", []float64{85, 88, 90, 92, 95}, models.DifficultyHard, TrendImproving},
		{"high average declining", []float64{95, 92, 90, 85, 83}, models.DifficultyMedium, TrendDeclining},
		{"solid average", []float64{70, 72, 75}, models.DifficultyMedium, TrendImproving},
		{"middling average", []float64{62, 64, 66}, models.DifficultyMixed, TrendImproving},
		{"single low score", []float64{30}, models.DifficultyEasy, TrendStable},
		{"single high score", []float64{90}, models.DifficultyHard, TrendStable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := NewEstimator().Recommend(newestFirst(tc.scores...))
			if rec.Difficulty != tc.expected {
				t.Errorf("Expected difficulty %s, got %s", tc.expected, rec.Difficulty)
			}
			if rec.Trend != tc.expectTrend {
				t.Errorf("Expected trend %s, got %s", tc.expectTrend, rec.Trend)
			}
		})
	}
}

func TestRecommendAverageScore(t *testing.T) {
	rec := NewEstimator().Recommend(newestFirst(40, 45, 50, 55, 60))
	if math.Abs(rec.AverageScore-50.0) > 1e-9 {
		t.Errorf("Expected average 50.0, got %f", rec.AverageScore)
	}
}

func TestRecommendWindowLimitsToFive(t *testing.T) {
	// Ancient perfect scores beyond the window must not lift the average.
	rec := NewEstimator().Recommend(newestFirst(100, 100, 100, 40, 45, 50, 55, 60))
	if math.Abs(rec.AverageScore-50.0) > 1e-9 {
		t.Errorf("Expected window of 5 to exclude older scores, average %f", rec.AverageScore)
	}
	if rec.Difficulty != models.DifficultyEasy {
		t.Errorf("Expected easy from windowed average, got %s", rec.Difficulty)
	}
}

func TestRecommendMalformedHistory(t *testing.T) {
	testCases := []struct {
		name    string
		history []AttemptRecord
	}{
		{"negative score", []AttemptRecord{{ScorePercentage: -5}}},
		{"above hundred", []AttemptRecord{{ScorePercentage: 140}}},
		{"nan score", []AttemptRecord{{ScorePercentage: math.NaN()}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := NewEstimator().Recommend(tc.history)
			if rec.Difficulty != models.DifficultyMixed {
				t.Errorf("Expected mixed default for malformed history, got %s", rec.Difficulty)
			}
			if rec.Trend != TrendUnknown {
				t.Errorf("Expected unknown trend, got %s", rec.Trend)
			}
		})
	}
}
