package service

import (
	"context"
	"log"
	"strings"
	"time"

	"quiz-backend/internal/adaptive"
	"quiz-backend/internal/ai"
	"quiz-backend/internal/event"
	"quiz-backend/internal/models"
)

// GenerateQuizRequest describes the quiz a user wants. Difficulty left empty
// (or set to "adaptive") lets the estimator choose from recent history.
type GenerateQuizRequest struct {
	Subject          string   `json:"subject" binding:"required"`
	GradeLevel       int      `json:"grade_level" binding:"required,min=1,max=12"`
	Difficulty       string   `json:"difficulty"`
	QuestionCount    int      `json:"question_count" binding:"min=0,max=20"`
	Topics           []string `json:"topics"`
	MaxAttempts      int      `json:"max_attempts" binding:"min=0,max=10"`
	TimeLimitMinutes int      `json:"time_limit_minutes" binding:"min=0"`
}

// QuizService creates and serves quizzes. Question generation degrades to
// the built-in sample bank when the generation service fails, so a quiz
// request never fails on upstream trouble.
type QuizService struct {
	quizzes     QuizStore
	questions   QuestionStore
	submissions SubmissionStore
	generator   ai.Generator
	estimator   *adaptive.Estimator
	events      *event.Publisher
}

func NewQuizService(
	quizzes QuizStore,
	questions QuestionStore,
	submissions SubmissionStore,
	generator ai.Generator,
	estimator *adaptive.Estimator,
	events *event.Publisher,
) *QuizService {
	return &QuizService{
		quizzes:     quizzes,
		questions:   questions,
		submissions: submissions,
		generator:   generator,
		estimator:   estimator,
		events:      events,
	}
}

// GenerateQuiz builds a new quiz for the user. The returned recommendation
// is non-nil only when the difficulty was chosen adaptively.
func (s *QuizService) GenerateQuiz(ctx context.Context, userID string, req GenerateQuizRequest) (*models.Quiz, *adaptive.Recommendation, error) {
	if req.QuestionCount <= 0 {
		req.QuestionCount = 5
	}
	if req.MaxAttempts <= 0 {
		req.MaxAttempts = 3
	}

	difficulty := models.Difficulty(strings.ToLower(strings.TrimSpace(req.Difficulty)))
	var recommendation *adaptive.Recommendation
	if difficulty == "" || difficulty == "adaptive" {
		rec := s.recommendDifficulty(ctx, userID, req.Subject)
		difficulty = rec.Difficulty
		recommendation = &rec
	} else if !difficulty.Valid() {
		return nil, nil, validation("INVALID_DIFFICULTY", "Difficulty must be easy, medium, hard, mixed, or adaptive")
	}

	generated, err := s.generator.GenerateQuestions(ctx, ai.GenerationRequest{
		Subject:    req.Subject,
		GradeLevel: req.GradeLevel,
		Difficulty: difficulty,
		Count:      req.QuestionCount,
		Topics:     req.Topics,
	})
	if err != nil {
		log.Printf("question generation unavailable, using sample questions: %v", err)
		generated = ai.SampleQuestions(req.Subject, req.QuestionCount)
	}

	now := time.Now()
	quiz := &models.Quiz{
		Subject:          req.Subject,
		GradeLevel:       req.GradeLevel,
		Difficulty:       difficulty,
		MaxAttempts:      req.MaxAttempts,
		TimeLimitMinutes: req.TimeLimitMinutes,
		CreatedBy:        userID,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return nil, nil, err
	}

	questions := make([]models.Question, 0, len(generated))
	for i, g := range generated {
		if g.Type == models.QuestionMultipleChoice && len(g.Options) < 2 {
			log.Printf("skipping generated multiple choice question with %d options", len(g.Options))
			continue
		}
		if !g.Type.Valid() {
			log.Printf("skipping generated question with unknown type %q", g.Type)
			continue
		}
		question := models.Question{
			QuizID:        quiz.ID,
			Text:          g.Text,
			Type:          g.Type,
			Options:       g.Options,
			CorrectAnswer: g.CorrectAnswer,
			Points:        g.Points,
			Difficulty:    g.Difficulty,
			OrderIndex:    i,
		}
		question.ClampPoints()
		questions = append(questions, question)
	}
	if err := s.questions.CreateMany(ctx, questions); err != nil {
		return nil, nil, err
	}
	quiz.Questions = questions

	s.events.Publish(event.QuizGenerated, map[string]interface{}{
		"quiz_id":    quiz.ID,
		"user_id":    userID,
		"subject":    quiz.Subject,
		"difficulty": quiz.Difficulty,
		"questions":  len(questions),
	})

	return quiz, recommendation, nil
}

// recommendDifficulty feeds the user's recent completed attempts into the
// estimator. Estimation never blocks generation: on any lookup failure the
// estimator's cold-start default applies.
func (s *QuizService) recommendDifficulty(ctx context.Context, userID, subject string) adaptive.Recommendation {
	recent, err := s.submissions.FindRecentCompleted(ctx, userID, subject, 5)
	if err != nil {
		log.Printf("history lookup failed, using default difficulty: %v", err)
		return s.estimator.Recommend(nil)
	}

	history := make([]adaptive.AttemptRecord, len(recent))
	for i, sub := range recent {
		history[i] = adaptive.AttemptRecord{
			ScorePercentage: sub.ScorePercentage,
			Difficulty:      sub.Difficulty,
		}
	}
	return s.estimator.Recommend(history)
}

// GetQuiz loads a quiz with its questions attached.
func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (*models.Quiz, error) {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, notFound("QUIZ_NOT_FOUND", "Quiz not found")
	}
	questions, err := s.questions.FindByQuizID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	quiz.Questions = questions
	return quiz, nil
}

func (s *QuizService) ListQuizzes(ctx context.Context, userID string) ([]models.Quiz, error) {
	return s.quizzes.FindByCreator(ctx, userID)
}

// DeleteQuiz removes a quiz and cascades to its questions. Submissions are
// kept; they carry their own subject and difficulty snapshots.
func (s *QuizService) DeleteQuiz(ctx context.Context, userID, quizID string) error {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return err
	}
	if quiz == nil {
		return notFound("QUIZ_NOT_FOUND", "Quiz not found")
	}
	if quiz.CreatedBy != userID {
		return permissionDenied("NOT_QUIZ_OWNER", "Only the quiz owner can delete it")
	}

	if err := s.questions.DeleteByQuizID(ctx, quizID); err != nil {
		return err
	}
	if err := s.quizzes.Delete(ctx, quizID); err != nil {
		return err
	}

	s.events.Publish(event.QuizDeleted, map[string]interface{}{
		"quiz_id": quizID,
		"user_id": userID,
	})
	return nil
}

// GetHint returns a nudge for the question, never failing on upstream
// trouble: the generic encouragement line stands in when generation fails.
func (s *QuizService) GetHint(ctx context.Context, questionID string) (string, error) {
	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		return "", err
	}
	if question == nil {
		return "", notFound("QUESTION_NOT_FOUND", "Question not found")
	}

	quiz, err := s.quizzes.FindByID(ctx, question.QuizID)
	if err != nil {
		return "", err
	}
	subject := ""
	gradeLevel := 0
	if quiz != nil {
		subject = quiz.Subject
		gradeLevel = quiz.GradeLevel
	}

	hint, err := s.generator.GenerateHint(ctx, question.Text, subject, gradeLevel)
	if err != nil {
		log.Printf("hint generation unavailable, using generic hint: %v", err)
		return ai.GenericHint, nil
	}
	return hint, nil
}
