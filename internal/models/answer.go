package models

import "time"

// Answer records how one question was answered within one submission.
// An answer is written exactly once during grading and never updated.
type Answer struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	SubmissionID     string    `bson:"submission_id" json:"submission_id"`
	QuestionID       string    `bson:"question_id" json:"question_id"`
	UserAnswer       string    `bson:"user_answer" json:"user_answer"`
	IsCorrect        bool      `bson:"is_correct" json:"is_correct"`
	PointsEarned     int       `bson:"points_earned" json:"points_earned"`
	TimeTakenSeconds int       `bson:"time_taken_seconds,omitempty" json:"time_taken_seconds,omitempty"`
	HintUsed         bool      `bson:"hint_used" json:"hint_used"`
	AIExplanation    string    `bson:"ai_explanation,omitempty" json:"ai_explanation,omitempty"`
	AnsweredAt       time.Time `bson:"answered_at" json:"answered_at"`
}
