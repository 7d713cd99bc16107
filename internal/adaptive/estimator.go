package adaptive

import (
	"fmt"
	"log"
	"math"

	"quiz-backend/internal/models"
)

// historyWindow is how many recent attempts feed the recommendation.
const historyWindow = 5

// Estimator recommends the difficulty of a user's next quiz from their
// recent score history.
type Estimator struct {
	window int
}

func NewEstimator() *Estimator {
	return &Estimator{window: historyWindow}
}

// Recommend inspects the most recent attempts (supplied newest first) and
// picks the next difficulty. It never fails: an empty or malformed history
// yields the mixed-difficulty cold-start default so quiz generation can
// always proceed.
func (e *Estimator) Recommend(history []AttemptRecord) (rec Recommendation) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("difficulty estimation failed, using default: %v", r)
			rec = coldStart(TrendUnknown)
		}
	}()

	if len(history) == 0 {
		return coldStart(TrendUnknown)
	}

	window := history
	if len(window) > e.window {
		window = window[:e.window]
	}

	// Reverse into chronological order: index 0 is the oldest of the window.
	scores := make([]float64, len(window))
	for i, record := range window {
		score := record.ScorePercentage
		if math.IsNaN(score) || score < 0 || score > 100 {
			return coldStart(TrendUnknown)
		}
		scores[len(window)-1-i] = score
	}

	avg := mean(scores)

	// Trend compares the later half of the window against the earlier half;
	// positive means the user is improving.
	delta := trendDelta(scores)

	rec = Recommendation{
		AverageScore: avg,
		Trend:        classifyTrend(delta),
	}

	switch {
	case avg >= 85 && delta >= 0:
		rec.Difficulty = models.DifficultyHard
		rec.Reasoning = fmt.Sprintf("Average score of %.1f%% with no downward trend; ready for harder questions.", avg)
	case avg >= 70:
		rec.Difficulty = models.DifficultyMedium
		rec.Reasoning = fmt.Sprintf("Average score of %.1f%%; medium difficulty keeps the challenge balanced.", avg)
	case avg < 60:
		rec.Difficulty = models.DifficultyEasy
		rec.Reasoning = fmt.Sprintf("Average score of %.1f%%; easier questions will rebuild the fundamentals.", avg)
	default:
		rec.Difficulty = models.DifficultyMixed
		rec.Reasoning = fmt.Sprintf("Average score of %.1f%%; a mixed set gives the clearest picture of current level.", avg)
	}

	return rec
}

func coldStart(trend Trend) Recommendation {
	return Recommendation{
		Difficulty: models.DifficultyMixed,
		Reasoning:  "No recent quiz history; starting with a mixed difficulty set.",
		Trend:      trend,
	}
}

// trendDelta splits the chronological scores in half (half = floor(n/2)) and
// returns mean(later half) - mean(earlier half). Windows too small to split
// report no movement.
func trendDelta(scores []float64) float64 {
	half := len(scores) / 2
	if half == 0 {
		return 0
	}
	earlier := scores[:half]
	later := scores[len(scores)-half:]
	return mean(later) - mean(earlier)
}

func classifyTrend(delta float64) Trend {
	switch {
	case delta > 0:
		return TrendImproving
	case delta < 0:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
