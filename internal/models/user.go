package models

import "time"

type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	GradeLevel   int       `bson:"grade_level" json:"grade_level"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`

	// Rolling statistics updated as completed submissions are scored.
	QuizzesTaken int     `bson:"quizzes_taken" json:"quizzes_taken"`
	AverageScore float64 `bson:"average_score" json:"average_score"`
}
