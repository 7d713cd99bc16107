package models

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionShortAnswer    QuestionType = "short_answer"
	QuestionEssay          QuestionType = "essay"
)

// Valid reports whether t is one of the four supported question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionShortAnswer, QuestionEssay:
		return true
	}
	return false
}

// Objective reports whether answers to this type are checked by exact match.
func (t QuestionType) Objective() bool {
	return t == QuestionMultipleChoice || t == QuestionTrueFalse
}

const (
	MinQuestionPoints = 1
	MaxQuestionPoints = 10
)

type Question struct {
	ID            string       `bson:"_id,omitempty" json:"id"`
	QuizID        string       `bson:"quiz_id" json:"quiz_id"`
	Text          string       `bson:"text" json:"text"`
	Type          QuestionType `bson:"type" json:"type"`
	Options       []string     `bson:"options,omitempty" json:"options,omitempty"`
	CorrectAnswer string       `bson:"correct_answer" json:"correct_answer,omitempty"`
	Points        int          `bson:"points" json:"points"`
	Difficulty    Difficulty   `bson:"difficulty" json:"difficulty"`
	OrderIndex    int          `bson:"order_index" json:"order_index"`
}

// ClampPoints forces the point value into the allowed 1-10 range.
func (q *Question) ClampPoints() {
	if q.Points < MinQuestionPoints {
		q.Points = MinQuestionPoints
	}
	if q.Points > MaxQuestionPoints {
		q.Points = MaxQuestionPoints
	}
}
