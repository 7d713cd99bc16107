package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quiz-backend/internal/models"
)

type SubmissionRepository struct {
	Col *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{Col: db.Collection("submissions")}
}

func (r *SubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	if sub.ID == "" {
		sub.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, sub)
	return err
}

// Update replaces the whole submission document.
func (r *SubmissionRepository) Update(ctx context.Context, sub *models.Submission) error {
	_, err := r.Col.ReplaceOne(ctx, bson.M{"_id": sub.ID}, sub)
	return err
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	var sub models.Submission
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindInProgress returns the user's open submission for the quiz, or nil.
func (r *SubmissionRepository) FindInProgress(ctx context.Context, userID, quizID string) (*models.Submission, error) {
	var sub models.Submission
	err := r.Col.FindOne(ctx, bson.M{
		"user_id": userID,
		"quiz_id": quizID,
		"status":  models.SubmissionInProgress,
	}).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// CountActive counts submissions that consume an attempt slot, i.e. those in
// completed or in_progress state.
func (r *SubmissionRepository) CountActive(ctx context.Context, userID, quizID string) (int, error) {
	n, err := r.Col.CountDocuments(ctx, bson.M{
		"user_id": userID,
		"quiz_id": quizID,
		"status":  bson.M{"$in": []models.SubmissionStatus{models.SubmissionCompleted, models.SubmissionInProgress}},
	})
	return int(n), err
}

// CountAll counts every submission for the pair regardless of status; used
// for strictly increasing attempt numbering.
func (r *SubmissionRepository) CountAll(ctx context.Context, userID, quizID string) (int, error) {
	n, err := r.Col.CountDocuments(ctx, bson.M{"user_id": userID, "quiz_id": quizID})
	return int(n), err
}

// FindRecentCompleted returns completed submissions newest first, optionally
// filtered by subject. This feeds the adaptive difficulty estimator.
func (r *SubmissionRepository) FindRecentCompleted(ctx context.Context, userID, subject string, limit int) ([]models.Submission, error) {
	filter := bson.M{
		"user_id": userID,
		"status":  models.SubmissionCompleted,
	}
	if subject != "" {
		filter["subject"] = subject
	}
	cur, err := r.Col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "completed_at", Value: -1}}).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeSubmissions(ctx, cur)
}

// FindCompletedByQuiz returns the user's completed attempts of one quiz,
// newest first.
func (r *SubmissionRepository) FindCompletedByQuiz(ctx context.Context, userID, quizID string, limit int) ([]models.Submission, error) {
	cur, err := r.Col.Find(ctx, bson.M{
		"user_id": userID,
		"quiz_id": quizID,
		"status":  models.SubmissionCompleted,
	}, options.Find().
		SetSort(bson.D{{Key: "completed_at", Value: -1}}).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeSubmissions(ctx, cur)
}

// FindByUser pages through a user's submissions, newest first, optionally
// filtered by status. It returns the page and the unpaged total.
func (r *SubmissionRepository) FindByUser(ctx context.Context, userID string, status models.SubmissionStatus, page, pageSize int) ([]models.Submission, int, error) {
	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.Col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.Col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetSkip(int64((page-1)*pageSize)).
		SetLimit(int64(pageSize)))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	subs, err := decodeSubmissions(ctx, cur)
	return subs, int(total), err
}

// ListCompleted returns all completed submissions for a user, newest first.
func (r *SubmissionRepository) ListCompleted(ctx context.Context, userID string) ([]models.Submission, error) {
	cur, err := r.Col.Find(ctx, bson.M{
		"user_id": userID,
		"status":  models.SubmissionCompleted,
	}, options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeSubmissions(ctx, cur)
}

func decodeSubmissions(ctx context.Context, cur *mongo.Cursor) ([]models.Submission, error) {
	var subs []models.Submission
	for cur.Next(ctx) {
		var s models.Submission
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, cur.Err()
}
