package service

import (
	"context"

	"quiz-backend/internal/models"
)

// The store interfaces below are the slices of the Mongo repositories the
// services depend on. Lookups return (nil, nil) when the document is absent.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateStats(ctx context.Context, id string, averageScore float64, quizzesTaken int) error
}

type QuizStore interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
	FindByCreator(ctx context.Context, userID string) ([]models.Quiz, error)
	Delete(ctx context.Context, id string) error
}

type QuestionStore interface {
	CreateMany(ctx context.Context, questions []models.Question) error
	FindByID(ctx context.Context, id string) (*models.Question, error)
	FindByQuizID(ctx context.Context, quizID string) ([]models.Question, error)
	DeleteByQuizID(ctx context.Context, quizID string) error
}

type SubmissionStore interface {
	Create(ctx context.Context, sub *models.Submission) error
	Update(ctx context.Context, sub *models.Submission) error
	FindByID(ctx context.Context, id string) (*models.Submission, error)
	FindInProgress(ctx context.Context, userID, quizID string) (*models.Submission, error)
	CountActive(ctx context.Context, userID, quizID string) (int, error)
	CountAll(ctx context.Context, userID, quizID string) (int, error)
	FindRecentCompleted(ctx context.Context, userID, subject string, limit int) ([]models.Submission, error)
	FindCompletedByQuiz(ctx context.Context, userID, quizID string, limit int) ([]models.Submission, error)
	FindByUser(ctx context.Context, userID string, status models.SubmissionStatus, page, pageSize int) ([]models.Submission, int, error)
	ListCompleted(ctx context.Context, userID string) ([]models.Submission, error)
}

type AnswerStore interface {
	CreateMany(ctx context.Context, answers []models.Answer) error
	FindBySubmission(ctx context.Context, submissionID string) ([]models.Answer, error)
}
