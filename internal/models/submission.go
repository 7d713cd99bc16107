package models

import "time"

type SubmissionStatus string

const (
	SubmissionInProgress SubmissionStatus = "in_progress"
	SubmissionCompleted  SubmissionStatus = "completed"
	SubmissionAbandoned  SubmissionStatus = "abandoned"
	SubmissionExpired    SubmissionStatus = "expired"
)

// PerformanceAnalysis summarizes where a submission did well and poorly.
// AverageTimePerQuestion counts answers without timing data as zero seconds.
type PerformanceAnalysis struct {
	Strengths              []string `bson:"strengths" json:"strengths"`
	Weaknesses             []string `bson:"weaknesses" json:"weaknesses"`
	AverageTimePerQuestion float64  `bson:"average_time_per_question" json:"average_time_per_question"`
}

// Submission is one attempt of a user taking a quiz. Submissions are never
// deleted; they form the audit trail behind history and adaptive difficulty.
type Submission struct {
	ID            string           `bson:"_id,omitempty" json:"id"`
	UserID        string           `bson:"user_id" json:"user_id"`
	QuizID        string           `bson:"quiz_id" json:"quiz_id"`
	AttemptNumber int              `bson:"attempt_number" json:"attempt_number"`
	Status        SubmissionStatus `bson:"status" json:"status"`

	// Snapshotted from the quiz at start time so history queries and the
	// adaptive estimator don't depend on quizzes still existing.
	Subject    string     `bson:"subject" json:"subject"`
	Difficulty Difficulty `bson:"difficulty" json:"difficulty"`

	StartedAt   time.Time  `bson:"started_at" json:"started_at"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`

	TotalQuestions      int     `bson:"total_questions" json:"total_questions"`
	TotalPointsPossible int     `bson:"total_points_possible" json:"total_points_possible"`
	TotalPointsEarned   int     `bson:"total_points_earned" json:"total_points_earned"`
	CorrectAnswers      int     `bson:"correct_answers" json:"correct_answers"`
	ScorePercentage     float64 `bson:"score_percentage" json:"score_percentage"`
	TimeTakenMinutes    float64 `bson:"time_taken_minutes,omitempty" json:"time_taken_minutes,omitempty"`

	ImprovementSuggestions []string            `bson:"improvement_suggestions,omitempty" json:"improvement_suggestions,omitempty"`
	PerformanceAnalysis    PerformanceAnalysis `bson:"performance_analysis" json:"performance_analysis"`
}
