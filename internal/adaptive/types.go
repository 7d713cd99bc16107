package adaptive

import "quiz-backend/internal/models"

// AttemptRecord is one completed attempt as the estimator sees it. Callers
// supply records ordered most-recent first.
type AttemptRecord struct {
	ScorePercentage float64           `json:"score_percentage"`
	Difficulty      models.Difficulty `json:"difficulty"`
}

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
	TrendUnknown   Trend = "unknown"
)

// Recommendation is the estimator's output for the next quiz.
type Recommendation struct {
	Difficulty   models.Difficulty `json:"difficulty"`
	Reasoning    string            `json:"reasoning"`
	AverageScore float64           `json:"average_score"`
	Trend        Trend             `json:"trend"`
}
