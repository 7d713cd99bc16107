package ai

import (
	"strings"

	"quiz-backend/internal/models"
)

// sampleQuestions is the built-in bank used when the generation service is
// unavailable, keyed by lower-cased subject.
var sampleQuestions = map[string][]GeneratedQuestion{
	"math": {
		{Text: "What is 7 x 8?", Type: models.QuestionMultipleChoice, Options: []string{"54", "56", "58", "64"}, CorrectAnswer: "56", Points: 2, Difficulty: models.DifficultyEasy},
		{Text: "A rectangle has sides of 4 and 9. What is its area?", Type: models.QuestionShortAnswer, CorrectAnswer: "36", Points: 3, Difficulty: models.DifficultyMedium},
		{Text: "Every prime number greater than 2 is odd.", Type: models.QuestionTrueFalse, Options: []string{"True", "False"}, CorrectAnswer: "True", Points: 2, Difficulty: models.DifficultyEasy},
	},
	"science": {
		{Text: "Which part of the cell produces energy?", Type: models.QuestionMultipleChoice, Options: []string{"Nucleus", "Mitochondria", "Ribosome", "Cell wall"}, CorrectAnswer: "Mitochondria", Points: 2, Difficulty: models.DifficultyEasy},
		{Text: "Water boils at 100 degrees Celsius at sea level.", Type: models.QuestionTrueFalse, Options: []string{"True", "False"}, CorrectAnswer: "True", Points: 1, Difficulty: models.DifficultyEasy},
		{Text: "Explain how plants make their own food.", Type: models.QuestionEssay, CorrectAnswer: "Plants use photosynthesis to convert sunlight water and carbon dioxide into glucose and oxygen", Points: 5, Difficulty: models.DifficultyMedium},
	},
	"history": {
		{Text: "In which year did World War II end?", Type: models.QuestionMultipleChoice, Options: []string{"1943", "1944", "1945", "1946"}, CorrectAnswer: "1945", Points: 2, Difficulty: models.DifficultyEasy},
		{Text: "The Great Wall of China was built in a single dynasty.", Type: models.QuestionTrueFalse, Options: []string{"True", "False"}, CorrectAnswer: "False", Points: 2, Difficulty: models.DifficultyMedium},
	},
	"english": {
		{Text: "Which word is a synonym of 'rapid'?", Type: models.QuestionMultipleChoice, Options: []string{"Slow", "Quick", "Quiet", "Heavy"}, CorrectAnswer: "Quick", Points: 2, Difficulty: models.DifficultyEasy},
		{Text: "A noun names a person, place, or thing.", Type: models.QuestionTrueFalse, Options: []string{"True", "False"}, CorrectAnswer: "True", Points: 1, Difficulty: models.DifficultyEasy},
	},
}

var defaultSamples = []GeneratedQuestion{
	{Text: "Which option best describes this subject's main focus?", Type: models.QuestionMultipleChoice, Options: []string{"Understanding key concepts", "Memorizing dates only", "Guessing answers", "Skipping fundamentals"}, CorrectAnswer: "Understanding key concepts", Points: 2, Difficulty: models.DifficultyEasy},
	{Text: "Reviewing your mistakes helps you improve.", Type: models.QuestionTrueFalse, Options: []string{"True", "False"}, CorrectAnswer: "True", Points: 1, Difficulty: models.DifficultyEasy},
	{Text: "Describe one important idea you have studied in this subject.", Type: models.QuestionEssay, CorrectAnswer: "An explanation of a core concept from the subject with supporting detail", Points: 5, Difficulty: models.DifficultyMedium},
}

// SampleQuestions returns count questions from the built-in bank for the
// subject, reusing the bank cyclically when count exceeds what is available.
func SampleQuestions(subject string, count int) []GeneratedQuestion {
	bank, ok := sampleQuestions[strings.ToLower(strings.TrimSpace(subject))]
	if !ok || len(bank) == 0 {
		bank = defaultSamples
	}
	if count <= 0 {
		count = len(bank)
	}

	out := make([]GeneratedQuestion, count)
	for i := 0; i < count; i++ {
		out[i] = bank[i%len(bank)]
	}
	return out
}
