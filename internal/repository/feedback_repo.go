package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/hireflowhq/hireflow-api/internal/models"
)

// FeedbackRepository persists interviewer feedback documents.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.InterviewFeedback) error
	Exists(ctx context.Context, interviewID uint, interviewer string) (bool, error)
	ListByInterview(ctx context.Context, interviewID uint) ([]models.InterviewFeedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository instantiates a GORM-backed feedback repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.InterviewFeedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) Exists(ctx context.Context, interviewID uint, interviewer string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InterviewFeedback{}).
		Where("interview_id = ? AND LOWER(interviewer) = ?", interviewID, strings.ToLower(strings.TrimSpace(interviewer))).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *feedbackRepository) ListByInterview(ctx context.Context, interviewID uint) ([]models.InterviewFeedback, error) {
	var feedback []models.InterviewFeedback
	err := r.db.WithContext(ctx).
		Preload("Assessments.Skill").
		Where("interview_id = ?", interviewID).
		Order("created_at ASC").
		Find(&feedback).Error
	if err != nil {
		return nil, err
	}
	return feedback, nil
}
