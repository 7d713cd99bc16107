package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyMixed  Difficulty = "mixed"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyMixed:
		return true
	}
	return false
}

type Quiz struct {
	ID               string     `bson:"_id,omitempty" json:"id"`
	Subject          string     `bson:"subject" json:"subject"`
	GradeLevel       int        `bson:"grade_level" json:"grade_level"`
	Difficulty       Difficulty `bson:"difficulty" json:"difficulty"`
	MaxAttempts      int        `bson:"max_attempts" json:"max_attempts"`
	TimeLimitMinutes int        `bson:"time_limit_minutes,omitempty" json:"time_limit_minutes,omitempty"`
	CreatedBy        string     `bson:"created_by" json:"created_by"`
	IsActive         bool       `bson:"is_active" json:"is_active"`
	CreatedAt        time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `bson:"updated_at" json:"updated_at"`

	// Questions live in their own collection and are attached on load.
	Questions []Question `bson:"-" json:"questions,omitempty"`
}
