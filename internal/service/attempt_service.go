package service

import (
	"context"
	"time"

	"quiz-backend/internal/event"
	"quiz-backend/internal/grading"
	"quiz-backend/internal/models"
	"quiz-backend/internal/scoring"
)

// AnswerInput is one answer as submitted by the client.
type AnswerInput struct {
	QuestionID       string `json:"question_id" binding:"required"`
	Answer           string `json:"answer"`
	TimeTakenSeconds int    `json:"time_taken_seconds"`
	HintUsed         bool   `json:"hint_used"`
}

// QuestionResult is the per-question feedback returned after grading.
type QuestionResult struct {
	QuestionID    string `json:"question_id"`
	IsCorrect     bool   `json:"is_correct"`
	PointsEarned  int    `json:"points_earned"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
}

// SubmitResult is the full payload of a graded submission.
type SubmitResult struct {
	Submission        *models.Submission `json:"submission"`
	Results           []QuestionResult   `json:"results"`
	Grade             string             `json:"grade"`
	Suggestions       []string           `json:"suggestions"`
	CanRetry          bool               `json:"can_retry"`
	AttemptsRemaining int                `json:"attempts_remaining"`
}

// RetryStatus reports attempt usage for one (user, quiz) pair.
type RetryStatus struct {
	AttemptsUsed      int       `json:"attempts_used"`
	MaxAttempts       int       `json:"max_attempts"`
	AttemptsRemaining int       `json:"attempts_remaining"`
	CanRetry          bool      `json:"can_retry"`
	RecentScores      []float64 `json:"recent_scores"`
}

// AttemptService owns the submission lifecycle: starting attempts under the
// attempt cap, grading and finalizing submissions, and the read-side history
// and summary queries.
type AttemptService struct {
	submissions SubmissionStore
	answers     AnswerStore
	quizzes     QuizStore
	questions   QuestionStore
	users       UserStore
	grader      *grading.Grader
	aggregator  *scoring.Aggregator
	events      *event.Publisher
}

func NewAttemptService(
	submissions SubmissionStore,
	answers AnswerStore,
	quizzes QuizStore,
	questions QuestionStore,
	users UserStore,
	grader *grading.Grader,
	aggregator *scoring.Aggregator,
	events *event.Publisher,
) *AttemptService {
	return &AttemptService{
		submissions: submissions,
		answers:     answers,
		quizzes:     quizzes,
		questions:   questions,
		users:       users,
		grader:      grader,
		aggregator:  aggregator,
		events:      events,
	}
}

// StartAttempt opens a submission for the user on the quiz. Starting is
// idempotent: an existing in_progress submission is returned as-is, before
// the attempt cap is checked, so a user at the cap can always resume their
// open attempt.
func (s *AttemptService) StartAttempt(ctx context.Context, userID, quizID string) (*models.Submission, error) {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, notFound("QUIZ_NOT_FOUND", "Quiz not found")
	}
	if !quiz.IsActive {
		return nil, invalidState("QUIZ_INACTIVE", "Quiz is not accepting attempts")
	}

	if existing, err := s.submissions.FindInProgress(ctx, userID, quizID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	activeCount, err := s.submissions.CountActive(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	if activeCount >= quiz.MaxAttempts {
		return nil, limitExceeded("MAX_ATTEMPTS_REACHED", "No attempts remaining for this quiz")
	}

	// attempt_number counts every prior submission, terminal or not, so
	// numbering stays strictly increasing even across expired attempts.
	totalCount, err := s.submissions.CountAll(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questions.FindByQuizID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	pointsPossible := 0
	for _, q := range questions {
		pointsPossible += q.Points
	}

	sub := &models.Submission{
		UserID:              userID,
		QuizID:              quizID,
		AttemptNumber:       totalCount + 1,
		Status:              models.SubmissionInProgress,
		Subject:             quiz.Subject,
		Difficulty:          quiz.Difficulty,
		StartedAt:           time.Now(),
		TotalQuestions:      len(questions),
		TotalPointsPossible: pointsPossible,
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.events.Publish(event.AttemptStarted, map[string]interface{}{
		"submission_id":  sub.ID,
		"user_id":        userID,
		"quiz_id":        quizID,
		"attempt_number": sub.AttemptNumber,
	})

	return sub, nil
}

// SubmitAttempt grades the answers, finalizes the submission, and updates
// the user's rolling statistics. Past the time limit the submission expires
// instead: no answers are stored and no score is computed.
func (s *AttemptService) SubmitAttempt(ctx context.Context, userID, submissionID string, inputs []AnswerInput) (*SubmitResult, error) {
	sub, err := s.submissions.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.UserID != userID {
		return nil, notFound("SUBMISSION_NOT_FOUND", "Submission not found")
	}
	if sub.Status != models.SubmissionInProgress {
		return nil, invalidState("QUIZ_NOT_IN_PROGRESS", "Submission is no longer in progress")
	}

	quiz, err := s.quizzes.FindByID(ctx, sub.QuizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, notFound("QUIZ_NOT_FOUND", "Quiz not found")
	}

	if quiz.TimeLimitMinutes > 0 {
		elapsed := time.Since(sub.StartedAt).Minutes()
		if elapsed > float64(quiz.TimeLimitMinutes) {
			sub.Status = models.SubmissionExpired
			if err := s.submissions.Update(ctx, sub); err != nil {
				return nil, err
			}
			s.events.Publish(event.AttemptExpired, map[string]interface{}{
				"submission_id": sub.ID,
				"user_id":       userID,
				"quiz_id":       sub.QuizID,
			})
			return nil, limitExceeded("TIME_LIMIT_EXCEEDED", "Time limit for this quiz has elapsed")
		}
	}

	questions, err := s.questions.FindByQuizID(ctx, sub.QuizID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	answers := make([]models.Answer, 0, len(inputs))
	questionResults := make([]QuestionResult, 0, len(inputs))
	answerResults := make([]scoring.AnswerResult, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))

	for _, input := range inputs {
		question, ok := byID[input.QuestionID]
		if !ok {
			return nil, validation("QUESTION_NOT_FOUND", "Answer references a question not in this quiz")
		}
		if seen[input.QuestionID] {
			continue
		}
		seen[input.QuestionID] = true

		result, err := s.grader.Grade(ctx, quiz, question, input.Answer)
		if err != nil {
			return nil, err
		}

		answers = append(answers, models.Answer{
			SubmissionID:     sub.ID,
			QuestionID:       question.ID,
			UserAnswer:       input.Answer,
			IsCorrect:        result.IsCorrect,
			PointsEarned:     result.PointsEarned,
			TimeTakenSeconds: input.TimeTakenSeconds,
			HintUsed:         input.HintUsed,
			AIExplanation:    result.Explanation,
			AnsweredAt:       time.Now(),
		})
		questionResults = append(questionResults, QuestionResult{
			QuestionID:    question.ID,
			IsCorrect:     result.IsCorrect,
			PointsEarned:  result.PointsEarned,
			CorrectAnswer: question.CorrectAnswer,
			Explanation:   result.Explanation,
		})
		answerResults = append(answerResults, scoring.AnswerResult{
			QuestionID:       question.ID,
			IsCorrect:        result.IsCorrect,
			PointsEarned:     result.PointsEarned,
			TimeTakenSeconds: input.TimeTakenSeconds,
		})
	}

	if err := s.answers.CreateMany(ctx, answers); err != nil {
		return nil, err
	}

	grade := s.aggregator.Finalize(ctx, sub, quiz, answerResults)
	if err := s.submissions.Update(ctx, sub); err != nil {
		return nil, err
	}

	if err := s.updateUserStats(ctx, userID, sub.ScorePercentage); err != nil {
		return nil, err
	}

	activeCount, err := s.submissions.CountActive(ctx, userID, sub.QuizID)
	if err != nil {
		return nil, err
	}
	remaining := quiz.MaxAttempts - activeCount
	if remaining < 0 {
		remaining = 0
	}

	s.events.Publish(event.AttemptCompleted, map[string]interface{}{
		"submission_id": sub.ID,
		"user_id":       userID,
		"quiz_id":       sub.QuizID,
		"score":         sub.ScorePercentage,
		"grade":         grade,
	})

	return &SubmitResult{
		Submission:        sub,
		Results:           questionResults,
		Grade:             grade,
		Suggestions:       sub.ImprovementSuggestions,
		CanRetry:          remaining > 0,
		AttemptsRemaining: remaining,
	}, nil
}

func (s *AttemptService) updateUserStats(ctx context.Context, userID string, score float64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return notFound("USER_NOT_FOUND", "User not found")
	}
	newAverage, newCount := scoring.UpdateRunningAverage(user.AverageScore, user.QuizzesTaken, score)
	return s.users.UpdateStats(ctx, userID, newAverage, newCount)
}

// GetRetryStatus reports attempt usage without mutating anything.
func (s *AttemptService) GetRetryStatus(ctx context.Context, userID, quizID string) (*RetryStatus, error) {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, notFound("QUIZ_NOT_FOUND", "Quiz not found")
	}

	activeCount, err := s.submissions.CountActive(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	recent, err := s.submissions.FindCompletedByQuiz(ctx, userID, quizID, 3)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, 0, len(recent))
	for _, r := range recent {
		scores = append(scores, r.ScorePercentage)
	}

	remaining := quiz.MaxAttempts - activeCount
	if remaining < 0 {
		remaining = 0
	}

	return &RetryStatus{
		AttemptsUsed:      activeCount,
		MaxAttempts:       quiz.MaxAttempts,
		AttemptsRemaining: remaining,
		CanRetry:          remaining > 0,
		RecentScores:      scores,
	}, nil
}

// GetHistory pages through a user's submissions, optionally by status.
func (s *AttemptService) GetHistory(ctx context.Context, userID string, status models.SubmissionStatus, page, pageSize int) ([]models.Submission, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.submissions.FindByUser(ctx, userID, status, page, pageSize)
}

// SubjectStats aggregates completed attempts for one subject.
type SubjectStats struct {
	Attempts     int     `json:"attempts"`
	AverageScore float64 `json:"average_score"`
}

// PerformanceSummary is the aggregate view across all completed submissions.
type PerformanceSummary struct {
	QuizzesCompleted int                     `json:"quizzes_completed"`
	AverageScore     float64                 `json:"average_score"`
	BestScore        float64                 `json:"best_score"`
	WorstScore       float64                 `json:"worst_score"`
	TotalQuestions   int                     `json:"total_questions"`
	TotalCorrect     int                     `json:"total_correct"`
	BySubject        map[string]SubjectStats `json:"by_subject"`
}

// GetPerformanceSummary aggregates every completed submission for the user.
func (s *AttemptService) GetPerformanceSummary(ctx context.Context, userID string) (*PerformanceSummary, error) {
	subs, err := s.submissions.ListCompleted(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &PerformanceSummary{BySubject: map[string]SubjectStats{}}
	if len(subs) == 0 {
		return summary, nil
	}

	totalScore := 0.0
	summary.WorstScore = subs[0].ScorePercentage
	subjectTotals := map[string]float64{}

	for _, sub := range subs {
		summary.QuizzesCompleted++
		totalScore += sub.ScorePercentage
		if sub.ScorePercentage > summary.BestScore {
			summary.BestScore = sub.ScorePercentage
		}
		if sub.ScorePercentage < summary.WorstScore {
			summary.WorstScore = sub.ScorePercentage
		}
		summary.TotalQuestions += sub.TotalQuestions
		summary.TotalCorrect += sub.CorrectAnswers

		stats := summary.BySubject[sub.Subject]
		stats.Attempts++
		summary.BySubject[sub.Subject] = stats
		subjectTotals[sub.Subject] += sub.ScorePercentage
	}

	summary.AverageScore = scoring.Round2(totalScore / float64(len(subs)))
	for subject, stats := range summary.BySubject {
		stats.AverageScore = scoring.Round2(subjectTotals[subject] / float64(stats.Attempts))
		summary.BySubject[subject] = stats
	}

	return summary, nil
}
